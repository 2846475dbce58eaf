package bridge

import (
	"fmt"
	"go/types"

	"github.com/funvibe/funrelay/internal/classify"
	"github.com/funvibe/funrelay/internal/relay"
	"github.com/funvibe/funrelay/internal/typesystem"
)

// CheckSignature compares a Go function signature against the planned
// parameters of a declared signature. variadic reports whether the
// declared signature ends in "...", in which case the Go side may take
// more parameters than were planned. A Go variadic function absorbs
// trailing parameters in its last slice.
func CheckSignature(sig *types.Signature, plans []relay.Plan, variadic bool) []Finding {
	var findings []Finding

	want := len(plans)
	got := sig.Params().Len()
	fixed := got
	if sig.Variadic() {
		fixed = got - 1
	}

	switch {
	case sig.Variadic():
		if want < fixed {
			findings = append(findings, Finding{
				Param: -1,
				Msg:   fmt.Sprintf("needs at least %d parameters, declared signature has %d", fixed, want),
			})
		}
	case variadic:
		if got < want {
			findings = append(findings, Finding{
				Param: -1,
				Msg:   fmt.Sprintf("parameter count %d, declared signature has %d before the ellipsis", got, want),
			})
		}
	default:
		if got != want {
			findings = append(findings, Finding{
				Param: -1,
				Msg:   fmt.Sprintf("parameter count %d, declared signature has %d", got, want),
			})
		}
	}

	n := want
	if fixed < n {
		n = fixed
	}
	for i := 0; i < n; i++ {
		goType := sig.Params().At(i).Type()
		if desc, ok := accepts(plans[i], goType); !ok {
			findings = append(findings, Finding{
				Param: i,
				Msg: fmt.Sprintf("%s arrives as %s, got %s",
					plans[i].Target, desc, types.TypeString(goType, nil)),
			})
		}
	}
	return findings
}

// accepts decides whether goType can receive what the plan delivers.
// It returns a description of the acceptable shape either way, for the
// finding message.
func accepts(p relay.Plan, goType types.Type) (string, bool) {
	u := goType.Underlying()

	switch p.Desc.Category {
	case classify.Function:
		_, ok := u.(*types.Signature)
		return "a Go func", ok

	case classify.Array:
		return "a pointer, slice or array", isIndirect(u) || isSliceOrArray(u)

	case classify.Class:
		return "a pointer or struct", isIndirect(u) || isStruct(u)

	case classify.RvalueRef:
		// The target is an rvalue reference to the source object.
		return "a pointer", isIndirect(u)

	case classify.Basic:
		if p.Desc.IsReference {
			return "a pointer", isIndirect(u)
		}
		base := typesystem.RemoveReference(typesystem.Canonical(p.Target))
		return scalarShape(base, u)
	}

	return "an unknown shape", false
}

// scalarShape matches one by-value fundamental, pointer or enum against
// a Go type's underlying shape.
func scalarShape(base typesystem.Type, u types.Type) (string, bool) {
	switch {
	case isCharPointer(base):
		// C strings routinely cross as Go strings or byte slices.
		return "a pointer, slice, string or uintptr",
			isIndirect(u) || isSliceOrArray(u) || isUintptr(u) || isString(u)
	case typesystem.IsPointer(base), typesystem.IsMemberPointer(base):
		return "a pointer, slice or uintptr", isIndirect(u) || isSliceOrArray(u) || isUintptr(u)
	case typesystem.IsEnum(base):
		return "an integer", isInteger(u)
	}

	b, ok := typesystem.RemoveCV(base).(typesystem.TBasic)
	if !ok {
		return "a scalar", false
	}
	kinds, ok := scalarKinds[b.Name]
	if !ok {
		return "a scalar", false
	}

	gb, isBasic := u.(*types.Basic)
	if !isBasic {
		return "a " + b.Name + " sized scalar", false
	}
	for _, k := range kinds {
		if gb.Kind() == k {
			return "", true
		}
	}
	return "a " + b.Name + " sized scalar", false
}

// scalarKinds maps each fundamental name to the Go basic kinds that can
// carry it. Plain int accepts Go int alongside int32 because existing
// bindings use both.
var scalarKinds = map[string][]types.BasicKind{
	"bool":               {types.Bool},
	"char":               {types.Int8, types.Uint8, types.Int32},
	"signed char":        {types.Int8},
	"unsigned char":      {types.Uint8},
	"wchar_t":            {types.Int16, types.Int32, types.Uint16, types.Uint32},
	"char8_t":            {types.Uint8},
	"char16_t":           {types.Uint16},
	"char32_t":           {types.Uint32, types.Int32},
	"short":              {types.Int16},
	"unsigned short":     {types.Uint16},
	"int":                {types.Int32, types.Int},
	"unsigned int":       {types.Uint32, types.Uint},
	"long":               {types.Int64, types.Int},
	"unsigned long":      {types.Uint64, types.Uint},
	"long long":          {types.Int64},
	"unsigned long long": {types.Uint64},
	"float":              {types.Float32},
	"double":             {types.Float64},
	"long double":        {types.Float64},
}

func isIndirect(u types.Type) bool {
	if _, ok := u.(*types.Pointer); ok {
		return true
	}
	b, ok := u.(*types.Basic)
	return ok && b.Kind() == types.UnsafePointer
}

func isSliceOrArray(u types.Type) bool {
	switch u.(type) {
	case *types.Slice, *types.Array:
		return true
	}
	return false
}

func isStruct(u types.Type) bool {
	_, ok := u.(*types.Struct)
	return ok
}

func isCharPointer(base typesystem.Type) bool {
	p, ok := typesystem.RemoveCV(base).(typesystem.TPointer)
	if !ok {
		return false
	}
	e, ok := typesystem.RemoveCV(p.Elem).(typesystem.TBasic)
	if !ok {
		return false
	}
	switch e.Name {
	case "char", "signed char", "unsigned char", "char8_t":
		return true
	}
	return false
}

func isUintptr(u types.Type) bool {
	b, ok := u.(*types.Basic)
	return ok && b.Kind() == types.Uintptr
}

func isString(u types.Type) bool {
	b, ok := u.(*types.Basic)
	return ok && b.Kind() == types.String
}

func isInteger(u types.Type) bool {
	b, ok := u.(*types.Basic)
	return ok && b.Info()&types.IsInteger != 0
}
