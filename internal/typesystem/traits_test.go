package typesystem

import (
	"testing"
)

func TestTraitQueries(t *testing.T) {
	intT := TBasic{Name: "int"}
	color := TNamed{Kind: EnumKind, Name: "Color"}
	widget := TNamed{Kind: ClassKind, Name: "Widget"}
	packet := TNamed{Kind: UnionKind, Name: "Packet"}
	fn := TFunc{Params: []Type{intT}, ReturnType: TBasic{Name: "void"}}

	tests := []struct {
		name string
		typ  Type
		pred func(Type) bool
		want bool
	}{
		{"function is function", fn, IsFunction, true},
		{"pointer to function is not function", TPointer{Elem: fn}, IsFunction, false},
		{"array is array", TArray{Elem: intT, Bound: 5, HasBound: true}, IsArray, true},
		{"unbounded array is array", TArray{Elem: intT}, IsArray, true},
		{"pointer is pointer", TPointer{Elem: intT}, IsPointer, true},
		{"member pointer is not pointer", TMemberPtr{Class: widget, Elem: intT}, IsPointer, false},
		{"member pointer is member pointer", TMemberPtr{Class: widget, Elem: intT}, IsMemberPointer, true},
		{"lvalue ref is reference", TRef{Kind: LvalueRef, Elem: intT}, IsReference, true},
		{"rvalue ref is reference", TRef{Kind: RvalueRef, Elem: intT}, IsReference, true},
		{"lvalue ref is not rvalue ref", TRef{Kind: LvalueRef, Elem: intT}, IsRvalueReference, false},
		{"rvalue ref is rvalue ref", TRef{Kind: RvalueRef, Elem: widget}, IsRvalueReference, true},
		{"int is fundamental", intT, IsFundamental, true},
		{"class is not fundamental", widget, IsFundamental, false},
		{"void is void", TBasic{Name: "void"}, IsVoid, true},
		{"const void is void", TBasic{Qual: Const, Name: "void"}, IsVoid, true},
		{"enum is enum", color, IsEnum, true},
		{"enum is not class", color, IsClass, false},
		{"class is class", widget, IsClass, true},
		{"union is class", packet, IsClass, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.typ); got != tt.want {
				t.Errorf("predicate(%s) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestTraitsSeeThroughAliases(t *testing.T) {
	color := TNamed{Kind: EnumKind, Name: "Color"}
	aliasEnum := TNamed{Kind: AliasKind, Name: "color_t", Underlying: color}
	if !IsEnum(aliasEnum) {
		t.Errorf("IsEnum(color_t) = false, want true")
	}

	aliasArr := TNamed{Kind: AliasKind, Name: "buf_t",
		Underlying: TArray{Elem: TBasic{Name: "char"}, Bound: 16, HasBound: true}}
	if !IsArray(aliasArr) {
		t.Errorf("IsArray(buf_t) = false, want true")
	}
	if IsClass(aliasArr) {
		t.Errorf("IsClass(buf_t) = true, want false")
	}

	aliasRef := TNamed{Kind: AliasKind, Name: "ref_t",
		Underlying: TRef{Kind: RvalueRef, Elem: TNamed{Kind: ClassKind, Name: "Widget"}}}
	if !IsRvalueReference(aliasRef) {
		t.Errorf("IsRvalueReference(ref_t) = false, want true")
	}
}
