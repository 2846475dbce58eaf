package typesystem

import (
	"strconv"
	"strings"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	Qualifiers() Qual
}

// RefKind distinguishes lvalue references from rvalue references.
type RefKind int

const (
	LvalueRef RefKind = 0
	RvalueRef RefKind = 1
)

// NameKind says what sort of entity a TNamed refers to.
type NameKind int

const (
	ClassKind NameKind = 0
	UnionKind NameKind = 1
	EnumKind  NameKind = 2
	AliasKind NameKind = 3
)

// TBasic represents a fundamental type (e.g. int, unsigned long long,
// double). Name is the canonical spelling.
type TBasic struct {
	Qual Qual
	Name string
}

func (t TBasic) String() string {
	return format(t, "")
}

func (t TBasic) Qualifiers() Qual { return t.Qual }

// TNamed represents a user-declared type: a class, struct, union, enum
// or alias. Underlying is only set for AliasKind.
type TNamed struct {
	Qual       Qual
	Kind       NameKind
	Name       string
	Underlying Type
}

func (t TNamed) String() string {
	return format(t, "")
}

func (t TNamed) Qualifiers() Qual { return t.Qual }

// TPointer represents a pointer type (e.g. int*, char** const).
// Qual qualifies the pointer itself; the pointee's qualifiers live on
// Elem.
type TPointer struct {
	Qual Qual
	Elem Type
}

func (t TPointer) String() string {
	return format(t, "")
}

func (t TPointer) Qualifiers() Qual { return t.Qual }

// TMemberPtr represents a pointer to member (e.g. int C::*,
// void (C::*)(int)). Class is the owning type, Elem the member type.
type TMemberPtr struct {
	Qual  Qual
	Class Type
	Elem  Type
}

func (t TMemberPtr) String() string {
	return format(t, "")
}

func (t TMemberPtr) Qualifiers() Qual { return t.Qual }

// TRef represents a reference type (e.g. int&, Widget&&). References
// themselves carry no cv-qualifiers; const-ness belongs to Elem.
type TRef struct {
	Kind RefKind
	Elem Type
}

func (t TRef) String() string {
	return format(t, "")
}

func (t TRef) Qualifiers() Qual { return 0 }

// TArray represents an array type (e.g. int[5], char[]). HasBound is
// false for arrays of unknown bound. Element qualifiers live on Elem;
// a cv-qualified array is an array of cv-qualified elements.
type TArray struct {
	Elem     Type
	Bound    int
	HasBound bool
}

func (t TArray) String() string {
	return format(t, "")
}

func (t TArray) Qualifiers() Qual { return 0 }

// TFunc represents a function type (e.g. void (int, char)).
type TFunc struct {
	Params     []Type
	ReturnType Type
	Variadic   bool
}

func (t TFunc) String() string {
	return format(t, "")
}

func (t TFunc) Qualifiers() Qual { return 0 }

// format renders t around a partial declarator, producing the C
// spelling. The declarator grows inside-out: pointers and references
// prepend, arrays and parameter lists append, and grouping parentheses
// appear whenever a prefix operator applies to an array or function.
func format(t Type, decl string) string {
	switch typ := t.(type) {
	case TBasic:
		return joinDecl(typ.Qual.prefix()+typ.Name, decl)
	case TNamed:
		return joinDecl(typ.Qual.prefix()+typ.Name, decl)
	case TPointer:
		inner := "*" + typ.Qual.suffix()
		if typ.Qual != 0 && decl != "" {
			inner += " "
		}
		inner += decl
		if needsParens(typ.Elem) {
			inner = "(" + inner + ")"
		}
		return format(typ.Elem, inner)
	case TMemberPtr:
		inner := typ.Class.String() + "::*" + typ.Qual.suffix()
		if typ.Qual != 0 && decl != "" {
			inner += " "
		}
		inner += decl
		if needsParens(typ.Elem) {
			inner = "(" + inner + ")"
		}
		return format(typ.Elem, inner)
	case TRef:
		op := "&"
		if typ.Kind == RvalueRef {
			op = "&&"
		}
		inner := op + decl
		if needsParens(typ.Elem) {
			inner = "(" + inner + ")"
		}
		return format(typ.Elem, inner)
	case TArray:
		bound := "[]"
		if typ.HasBound {
			bound = "[" + strconv.Itoa(typ.Bound) + "]"
		}
		return format(typ.Elem, decl+bound)
	case TFunc:
		params := make([]string, 0, len(typ.Params)+1)
		for _, p := range typ.Params {
			params = append(params, p.String())
		}
		if typ.Variadic {
			params = append(params, "...")
		}
		return format(typ.ReturnType, decl+"("+strings.Join(params, ", ")+")")
	default:
		return "<unknown>"
	}
}

// joinDecl glues the base spelling to the declarator. Array and
// function suffixes attach directly; everything else gets a space.
func joinDecl(base, decl string) string {
	if decl == "" {
		return base
	}
	if decl[0] == '[' {
		return base + decl
	}
	return base + " " + decl
}

// needsParens reports whether a prefix declarator operator applied to
// elem must be parenthesized to keep suffix operators from binding
// first.
func needsParens(elem Type) bool {
	switch elem.(type) {
	case TArray, TFunc:
		return true
	}
	return false
}

// Unalias resolves the top-level alias chain of t, if any. Qualifiers
// written on the alias merge into the underlying type; when the
// underlying type cannot carry qualifiers (references, functions) they
// are discarded, matching how the language treats cv on such aliases.
func Unalias(t Type) Type {
	for {
		named, ok := t.(TNamed)
		if !ok || named.Kind != AliasKind || named.Underlying == nil {
			return t
		}
		t = applyQual(named.Underlying, named.Qual)
	}
}

// Canonical resolves aliases at every level of t, producing the fully
// structural view that equality and classification operate on.
func Canonical(t Type) Type {
	t = Unalias(t)
	switch typ := t.(type) {
	case TPointer:
		return TPointer{Qual: typ.Qual, Elem: Canonical(typ.Elem)}
	case TMemberPtr:
		return TMemberPtr{Qual: typ.Qual, Class: Canonical(typ.Class), Elem: Canonical(typ.Elem)}
	case TRef:
		return TRef{Kind: typ.Kind, Elem: Canonical(typ.Elem)}
	case TArray:
		return TArray{Elem: Canonical(typ.Elem), Bound: typ.Bound, HasBound: typ.HasBound}
	case TFunc:
		params := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			params[i] = Canonical(p)
		}
		return TFunc{Params: params, ReturnType: Canonical(typ.ReturnType), Variadic: typ.Variadic}
	default:
		return t
	}
}

// applyQual merges extra qualifiers onto t. Arrays push qualifiers down
// to the element; references and functions silently drop them.
func applyQual(t Type, q Qual) Type {
	if q == 0 {
		return t
	}
	switch typ := t.(type) {
	case TBasic:
		typ.Qual |= q
		return typ
	case TNamed:
		typ.Qual |= q
		return typ
	case TPointer:
		typ.Qual |= q
		return typ
	case TMemberPtr:
		typ.Qual |= q
		return typ
	case TArray:
		typ.Elem = applyQual(typ.Elem, q)
		return typ
	default:
		return t
	}
}
