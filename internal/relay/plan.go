// Package relay plans how a value of a given C++ type travels through
// a forwarding layer without losing what makes it that type: functions
// and arrays keep their identity instead of decaying into it, rvalue
// references keep their right to be moved from, and plain values keep
// their independence from the caller.
//
// A Plan has three parts. The forwarding type is what the relay layer
// itself accepts; it is chosen so that binding to it never slices,
// copies a class, or collapses an array. The target type is what the
// receiving side reconstitutes; for arrays it restores the exact
// bound the forwarding pointer dropped. The conversion names the step
// between them.
package relay

import (
	"github.com/funvibe/funrelay/internal/classify"
	"github.com/funvibe/funrelay/internal/typesystem"
)

// Conversion is the reconstitution step between the forwarding type
// and the target type.
type Conversion int

const (
	// Identity binds the target straight to the forwarded object.
	Identity Conversion = iota
	// ArrayReform rebuilds a sized array reference from the decayed
	// element pointer.
	ArrayReform
	// MoveTransfer relays through a const reference and moves out of
	// the original object at the target.
	MoveTransfer
	// ValueCopy carries an independent copy, stripped of top-level
	// cv-qualifiers.
	ValueCopy
)

func (c Conversion) String() string {
	switch c {
	case Identity:
		return "identity"
	case ArrayReform:
		return "array reform"
	case MoveTransfer:
		return "move transfer"
	case ValueCopy:
		return "value copy"
	default:
		return "unknown"
	}
}

// Options control planning behavior.
type Options struct {
	// MoveSemantics allows by-value class types to plan a move into
	// their target. Disabled, they relay through a const reference
	// and the target copies once.
	MoveSemantics bool
}

func DefaultOptions() Options {
	return Options{MoveSemantics: true}
}

// Plan describes one parameter's trip through the relay.
type Plan struct {
	Source     typesystem.Type
	Desc       classify.Descriptor
	Forwarding typesystem.Type
	Target     typesystem.Type
	Conversion Conversion
}

func PlanFor(t typesystem.Type) Plan {
	return PlanWith(t, DefaultOptions())
}

func PlanWith(t typesystem.Type, opts Options) Plan {
	d := classify.Classify(t)
	p := Plan{Source: t, Desc: d}

	switch d.Category {
	case classify.Function:
		// Functions pass by lvalue reference whatever their written
		// reference kind; nothing else preserves their identity.
		ref := typesystem.MakeLvalueRef(d.Base)
		p.Forwarding = ref
		p.Target = ref
		p.Conversion = Identity

	case classify.Array:
		// The relay accepts the decayed element pointer and the
		// target restores the reference to the full array, bound
		// included.
		p.Forwarding = typesystem.Decay(d.Base)
		p.Target = typesystem.MakeLvalueRef(d.Base)
		p.Conversion = ArrayReform

	case classify.RvalueRef:
		p.Forwarding = constRef(d.Base)
		p.Target = typesystem.MakeRvalueRef(d.Base)
		p.Conversion = MoveTransfer

	case classify.Basic:
		if d.IsReference {
			p.Forwarding = typesystem.Canonical(t)
			p.Target = p.Forwarding
			p.Conversion = Identity
		} else {
			// Top-level cv on a by-value parameter has no calling
			// effect, so the trip drops it; the consumer's own
			// declaration reapplies what it needs.
			p.Forwarding = typesystem.RemoveCV(d.Base)
			p.Target = d.Base
			p.Conversion = ValueCopy
		}

	case classify.Class:
		switch {
		case d.IsReference:
			p.Forwarding = typesystem.Canonical(t)
			p.Target = p.Forwarding
			p.Conversion = Identity
		case opts.MoveSemantics && !d.Base.Qualifiers().IsConst():
			p.Forwarding = constRef(d.Base)
			p.Target = typesystem.MakeRvalueRef(d.Base)
			p.Conversion = MoveTransfer
		default:
			// Without move semantics, or for a const value that
			// cannot be moved from, the const reference is also the
			// target and reconstitution copies.
			cref := constRef(d.Base)
			p.Forwarding = cref
			p.Target = cref
			p.Conversion = Identity
		}
	}
	return p
}

// SignaturePlans plans every parameter of a function type, given as a
// function, a reference to one, or a pointer to one.
func SignaturePlans(t typesystem.Type, opts Options) ([]Plan, bool) {
	u := typesystem.RemoveReference(typesystem.Canonical(t))
	if ptr, ok := u.(typesystem.TPointer); ok {
		u = ptr.Elem
	}
	f, ok := u.(typesystem.TFunc)
	if !ok {
		return nil, false
	}
	plans := make([]Plan, 0, len(f.Params))
	for _, param := range f.Params {
		plans = append(plans, PlanWith(param, opts))
	}
	return plans, true
}

func constRef(t typesystem.Type) typesystem.Type {
	return typesystem.MakeLvalueRef(typesystem.AddConst(t))
}
