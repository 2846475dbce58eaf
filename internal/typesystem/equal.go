package typesystem

// Equal reports structural equality of two types. Aliases are
// compared by name, not by what they expand to; use Identical for
// alias-insensitive comparison.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch at := a.(type) {
	case TBasic:
		bt, ok := b.(TBasic)
		return ok && at.Qual == bt.Qual && at.Name == bt.Name
	case TNamed:
		bt, ok := b.(TNamed)
		return ok && at.Qual == bt.Qual && at.Kind == bt.Kind && at.Name == bt.Name
	case TPointer:
		bt, ok := b.(TPointer)
		return ok && at.Qual == bt.Qual && Equal(at.Elem, bt.Elem)
	case TMemberPtr:
		bt, ok := b.(TMemberPtr)
		return ok && at.Qual == bt.Qual && Equal(at.Class, bt.Class) && Equal(at.Elem, bt.Elem)
	case TRef:
		bt, ok := b.(TRef)
		return ok && at.Kind == bt.Kind && Equal(at.Elem, bt.Elem)
	case TArray:
		bt, ok := b.(TArray)
		if !ok || at.HasBound != bt.HasBound {
			return false
		}
		if at.HasBound && at.Bound != bt.Bound {
			return false
		}
		return Equal(at.Elem, bt.Elem)
	case TFunc:
		bt, ok := b.(TFunc)
		if !ok || at.Variadic != bt.Variadic || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !Equal(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return Equal(at.ReturnType, bt.ReturnType)
	default:
		return false
	}
}

// Identical reports whether two types are the same after resolving
// aliases everywhere.
func Identical(a, b Type) bool {
	return Equal(Canonical(a), Canonical(b))
}
