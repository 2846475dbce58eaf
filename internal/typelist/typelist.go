// Package typelist selects parameter types by position.
package typelist

import "github.com/funvibe/funrelay/internal/typesystem"

// Nth returns the type at position n, counting from zero. The second
// result is false when n is negative or the list is too short. One
// recursive step peels one element; there is no per-arity case work,
// so lists of any length cost the same code.
func Nth(n int, list []typesystem.Type) (typesystem.Type, bool) {
	if n < 0 || len(list) == 0 {
		return nil, false
	}
	if n == 0 {
		return list[0], true
	}
	return Nth(n-1, list[1:])
}

// SelectParam resolves t to a function type and selects its n-th
// parameter. Functions may be given directly, by reference or through
// a pointer.
func SelectParam(n int, t typesystem.Type) (typesystem.Type, bool) {
	u := typesystem.RemoveReference(typesystem.Canonical(t))
	if ptr, ok := u.(typesystem.TPointer); ok {
		u = ptr.Elem
	}
	f, ok := u.(typesystem.TFunc)
	if !ok {
		return nil, false
	}
	return Nth(n, f.Params)
}
