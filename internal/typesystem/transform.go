package typesystem

// RemoveReference strips one level of reference from t. Non-reference
// types come back unchanged.
func RemoveReference(t Type) Type {
	if r, ok := Unalias(t).(TRef); ok {
		return r.Elem
	}
	return t
}

// RemoveCV clears the top-level cv-qualifiers of t. Reference, array
// and function types carry none, so they come back unchanged.
func RemoveCV(t Type) Type {
	switch typ := Unalias(t).(type) {
	case TBasic:
		typ.Qual = 0
		return typ
	case TNamed:
		typ.Qual = 0
		return typ
	case TPointer:
		typ.Qual = 0
		return typ
	case TMemberPtr:
		typ.Qual = 0
		return typ
	default:
		return t
	}
}

// AddConst marks t const at the top level. For arrays the qualifier
// sinks into the element type, matching the language rule that a const
// array is an array of const elements. References and functions stay
// as they are.
func AddConst(t Type) Type {
	return applyQual(Unalias(t), Const)
}

// Decay turns an array, or a reference to an array, into a pointer to
// its element. The bound is lost; that is the point of decay. Any
// other type comes back unchanged.
func Decay(t Type) Type {
	u := Unalias(t)
	if r, ok := u.(TRef); ok {
		u = Unalias(r.Elem)
	}
	if a, ok := u.(TArray); ok {
		return TPointer{Elem: a.Elem}
	}
	return t
}

// MakeLvalueRef wraps t in an lvalue reference. Applied to an existing
// reference it collapses: an lvalue reference always wins.
func MakeLvalueRef(t Type) Type {
	if r, ok := Unalias(t).(TRef); ok {
		return TRef{Kind: LvalueRef, Elem: r.Elem}
	}
	return TRef{Kind: LvalueRef, Elem: t}
}

// MakeRvalueRef wraps t in an rvalue reference. Applied to an existing
// reference it collapses to the existing kind.
func MakeRvalueRef(t Type) Type {
	if r, ok := Unalias(t).(TRef); ok {
		return r
	}
	return TRef{Kind: RvalueRef, Elem: t}
}
