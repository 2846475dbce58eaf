package typesystem

import (
	"testing"
)

func TestTypeString(t *testing.T) {
	intT := TBasic{Name: "int"}
	charT := TBasic{Name: "char"}
	voidT := TBasic{Name: "void"}
	widget := TNamed{Kind: ClassKind, Name: "Widget"}
	classC := TNamed{Kind: ClassKind, Name: "C"}

	tests := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"int", intT, "int"},
		{"const int", TBasic{Qual: Const, Name: "int"}, "const int"},
		{"const volatile int", TBasic{Qual: Const | Volatile, Name: "int"}, "const volatile int"},
		{"unsigned long long", TBasic{Name: "unsigned long long"}, "unsigned long long"},
		{"class", widget, "Widget"},
		{"const class", TNamed{Qual: Const, Kind: ClassKind, Name: "Widget"}, "const Widget"},
		{"pointer", TPointer{Elem: intT}, "int *"},
		{"const pointer", TPointer{Qual: Const, Elem: intT}, "int *const"},
		{"pointer to const", TPointer{Elem: TBasic{Qual: Const, Name: "char"}}, "const char *"},
		{"pointer to const pointer", TPointer{Elem: TPointer{Qual: Const, Elem: intT}}, "int *const *"},
		{"lvalue ref", TRef{Kind: LvalueRef, Elem: intT}, "int &"},
		{"const lvalue ref", TRef{Kind: LvalueRef, Elem: TNamed{Qual: Const, Kind: ClassKind, Name: "Widget"}}, "const Widget &"},
		{"rvalue ref", TRef{Kind: RvalueRef, Elem: widget}, "Widget &&"},
		{"array", TArray{Elem: intT, Bound: 5, HasBound: true}, "int[5]"},
		{"unbounded array", TArray{Elem: charT}, "char[]"},
		{"array of pointers", TArray{Elem: TPointer{Elem: intT}, Bound: 3, HasBound: true}, "int *[3]"},
		{"pointer to array", TPointer{Elem: TArray{Elem: intT, Bound: 5, HasBound: true}}, "int (*)[5]"},
		{"ref to array", TRef{Kind: LvalueRef, Elem: TArray{Elem: intT, Bound: 5, HasBound: true}}, "int (&)[5]"},
		{"rvalue ref to array", TRef{Kind: RvalueRef, Elem: TArray{Elem: intT, Bound: 5, HasBound: true}}, "int (&&)[5]"},
		{"nullary function", TFunc{ReturnType: voidT}, "void ()"},
		{"function", TFunc{Params: []Type{intT, charT}, ReturnType: voidT}, "void (int, char)"},
		{"variadic function", TFunc{Params: []Type{charT}, ReturnType: intT, Variadic: true}, "int (char, ...)"},
		{"function pointer", TPointer{Elem: TFunc{Params: []Type{TBasic{Name: "double"}}, ReturnType: intT}}, "int (*)(double)"},
		{"function ref", TRef{Kind: LvalueRef, Elem: TFunc{Params: []Type{intT}, ReturnType: voidT}}, "void (&)(int)"},
		{"member object pointer", TMemberPtr{Class: classC, Elem: intT}, "int C::*"},
		{"member function pointer", TMemberPtr{Class: classC, Elem: TFunc{Params: []Type{intT}, ReturnType: voidT}}, "void (C::*)(int)"},
		{"alias keeps its name", TNamed{Kind: AliasKind, Name: "buffer_t", Underlying: TArray{Elem: charT, Bound: 16, HasBound: true}}, "buffer_t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUnalias(t *testing.T) {
	intT := TBasic{Name: "int"}
	charPtr := TPointer{Elem: TBasic{Name: "char"}}

	// 1. Plain alias resolves to the underlying type
	strAlias := TNamed{Kind: AliasKind, Name: "str_t", Underlying: charPtr}
	if got := Unalias(strAlias); !Equal(got, charPtr) {
		t.Errorf("Unalias(str_t) = %s, want %s", got, charPtr)
	}

	// 2. Qualifiers on the alias merge into the underlying type
	constAlias := TNamed{Qual: Const, Kind: AliasKind, Name: "str_t", Underlying: charPtr}
	wantConstPtr := TPointer{Qual: Const, Elem: TBasic{Name: "char"}}
	if got := Unalias(constAlias); !Equal(got, wantConstPtr) {
		t.Errorf("Unalias(const str_t) = %s, want %s", got, wantConstPtr)
	}

	// 3. Alias chains resolve all the way down
	inner := TNamed{Kind: AliasKind, Name: "inner_t", Underlying: intT}
	outer := TNamed{Kind: AliasKind, Name: "outer_t", Underlying: inner}
	if got := Unalias(outer); !Equal(got, intT) {
		t.Errorf("Unalias(outer_t) = %s, want int", got)
	}

	// 4. Qualifiers sink into array elements
	buf := TNamed{Qual: Const, Kind: AliasKind, Name: "buf_t",
		Underlying: TArray{Elem: TBasic{Name: "char"}, Bound: 8, HasBound: true}}
	want := TArray{Elem: TBasic{Qual: Const, Name: "char"}, Bound: 8, HasBound: true}
	if got := Unalias(buf); !Equal(got, want) {
		t.Errorf("Unalias(const buf_t) = %s, want %s", got, want)
	}

	// 5. Non-aliases pass through untouched
	if got := Unalias(intT); !Equal(got, intT) {
		t.Errorf("Unalias(int) = %s, want int", got)
	}
}

func TestCanonical(t *testing.T) {
	intT := TBasic{Name: "int"}
	alias := TNamed{Kind: AliasKind, Name: "word_t", Underlying: intT}

	tests := []struct {
		name string
		typ  Type
		want Type
	}{
		{
			name: "alias under a pointer",
			typ:  TPointer{Elem: alias},
			want: TPointer{Elem: intT},
		},
		{
			name: "alias in function params and return",
			typ:  TFunc{Params: []Type{alias}, ReturnType: alias},
			want: TFunc{Params: []Type{intT}, ReturnType: intT},
		},
		{
			name: "alias under a reference",
			typ:  TRef{Kind: RvalueRef, Elem: alias},
			want: TRef{Kind: RvalueRef, Elem: intT},
		},
		{
			name: "alias as array element",
			typ:  TArray{Elem: alias, Bound: 4, HasBound: true},
			want: TArray{Elem: intT, Bound: 4, HasBound: true},
		},
		{
			name: "alias as member pointer class",
			typ:  TMemberPtr{Class: TNamed{Kind: AliasKind, Name: "c_t", Underlying: TNamed{Kind: ClassKind, Name: "C"}}, Elem: intT},
			want: TMemberPtr{Class: TNamed{Kind: ClassKind, Name: "C"}, Elem: intT},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonical(tt.typ); !Equal(got, tt.want) {
				t.Errorf("Canonical() = %s, want %s", got, tt.want)
			}
		})
	}
}
