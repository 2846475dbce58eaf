// Package classify sorts C++ types into the five categories the relay
// planner distinguishes. The categories are mutually exclusive and
// checked in a fixed order: function and array win over reference
// kinds, rvalue references win over everything an object type could
// otherwise be, fundamentals and pointer-like types are basic, and
// whatever remains is a class.
package classify

import "github.com/funvibe/funrelay/internal/typesystem"

type Category int

const (
	Function Category = iota
	Array
	RvalueRef
	Basic
	Class
)

func (c Category) String() string {
	switch c {
	case Function:
		return "function"
	case Array:
		return "array"
	case RvalueRef:
		return "rvalue reference"
	case Basic:
		return "basic"
	case Class:
		return "class"
	default:
		return "unknown"
	}
}

// Descriptor is the classification of one type.
type Descriptor struct {
	Category    Category
	IsReference bool

	// Base is the canonical type with any top-level reference
	// removed. Function, array, basic and class judgements are made
	// on it; only the rvalue-reference judgement looks at the
	// original type.
	Base typesystem.Type
}

// Classify resolves aliases, strips one reference level and assigns
// the category.
func Classify(t typesystem.Type) Descriptor {
	canon := typesystem.Canonical(t)
	base := typesystem.RemoveReference(canon)

	d := Descriptor{
		IsReference: typesystem.IsReference(canon),
		Base:        base,
	}

	switch {
	case typesystem.IsFunction(base):
		d.Category = Function
	case typesystem.IsArray(base):
		d.Category = Array
	case typesystem.IsRvalueReference(canon):
		d.Category = RvalueRef
	case typesystem.IsFundamental(base),
		typesystem.IsPointer(base),
		typesystem.IsMemberPointer(base),
		typesystem.IsEnum(base):
		d.Category = Basic
	default:
		d.Category = Class
	}
	return d
}
