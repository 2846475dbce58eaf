package typesystem

import (
	"testing"
)

func TestEqual(t *testing.T) {
	intT := TBasic{Name: "int"}

	tests := []struct {
		name string
		a    Type
		b    Type
		want bool
	}{
		{"same basic", intT, TBasic{Name: "int"}, true},
		{"different basic", intT, TBasic{Name: "char"}, false},
		{"qualifier matters", intT, TBasic{Qual: Const, Name: "int"}, false},
		{"same array", TArray{Elem: intT, Bound: 5, HasBound: true}, TArray{Elem: intT, Bound: 5, HasBound: true}, true},
		{"different bound", TArray{Elem: intT, Bound: 5, HasBound: true}, TArray{Elem: intT, Bound: 6, HasBound: true}, false},
		{"bounded vs unbounded", TArray{Elem: intT, Bound: 5, HasBound: true}, TArray{Elem: intT}, false},
		{"ref kind matters", TRef{Kind: LvalueRef, Elem: intT}, TRef{Kind: RvalueRef, Elem: intT}, false},
		{"same function", TFunc{Params: []Type{intT}, ReturnType: intT}, TFunc{Params: []Type{intT}, ReturnType: intT}, true},
		{"variadic matters", TFunc{Params: []Type{intT}, ReturnType: intT, Variadic: true}, TFunc{Params: []Type{intT}, ReturnType: intT}, false},
		{"arity matters", TFunc{Params: []Type{intT, intT}, ReturnType: intT}, TFunc{Params: []Type{intT}, ReturnType: intT}, false},
		{"class vs enum of same name", TNamed{Kind: ClassKind, Name: "X"}, TNamed{Kind: EnumKind, Name: "X"}, false},
		{"pointer vs member pointer", TPointer{Elem: intT}, TMemberPtr{Class: TNamed{Kind: ClassKind, Name: "C"}, Elem: intT}, false},
		{"nil against nil", nil, nil, true},
		{"nil against type", nil, intT, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIdentical(t *testing.T) {
	intT := TBasic{Name: "int"}
	alias := TNamed{Kind: AliasKind, Name: "word_t", Underlying: intT}

	// Equal treats the alias as a distinct name, Identical does not.
	if Equal(alias, intT) {
		t.Errorf("Equal(word_t, int) = true, want false")
	}
	if !Identical(alias, intT) {
		t.Errorf("Identical(word_t, int) = false, want true")
	}

	// Aliases buried inside a structure are resolved too.
	a := TFunc{Params: []Type{TPointer{Elem: alias}}, ReturnType: TBasic{Name: "void"}}
	b := TFunc{Params: []Type{TPointer{Elem: intT}}, ReturnType: TBasic{Name: "void"}}
	if !Identical(a, b) {
		t.Errorf("Identical(void (word_t *), void (int *)) = false, want true")
	}
}
