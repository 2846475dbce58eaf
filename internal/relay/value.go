package relay

// Cell is a storage location for a relayed value. Object identity is
// pointer identity: a forwarded value refers to the caller's object
// exactly when it holds the caller's *Cell.
type Cell struct {
	V interface{}
}

func NewCell(v interface{}) *Cell {
	return &Cell{V: v}
}

// Copier lets class-like values define what copying them means.
// Values that do not implement it are copied by assignment.
type Copier interface {
	Copy() interface{}
}

// Forwarded is a value in flight: a borrow of the caller's cell for
// reference-like plans, or an independent value for ValueCopy plans.
type Forwarded struct {
	plan   Plan
	cell   *Cell
	val    interface{}
	copies int
	hops   int
}

// Forward starts a value's trip through the relay according to plan.
// ValueCopy plans copy out of the cell here, at the boundary; every
// other plan borrows the cell itself.
func Forward(plan Plan, cell *Cell) Forwarded {
	if plan.Conversion == ValueCopy {
		return Forwarded{plan: plan, val: copyValue(cell.V), copies: 1}
	}
	return Forwarded{plan: plan, cell: cell}
}

// Thread relays f through hops more forwarding layers. A borrow stays
// the same cell and a carried value stays the same copy, so depth
// changes nothing about the value; only the hop count grows.
func Thread(f Forwarded, hops int) Forwarded {
	if hops > 0 {
		f.hops += hops
	}
	return f
}

// Reconstitute lands f at the target side of the relay.
func Reconstitute(f Forwarded) Final {
	return Final{
		plan:    f.plan,
		cell:    f.cell,
		val:     f.val,
		movable: f.plan.Conversion == MoveTransfer,
		copies:  f.copies,
		hops:    f.hops,
	}
}

// Final is the reconstituted value at the target.
type Final struct {
	plan    Plan
	cell    *Cell
	val     interface{}
	movable bool
	copies  int
	hops    int
}

// Addr is the caller's cell when the plan preserved object identity,
// nil when the value travelled by copy.
func (f *Final) Addr() *Cell {
	return f.cell
}

// Value observes the value without consuming it.
func (f *Final) Value() interface{} {
	if f.cell != nil {
		return f.cell.V
	}
	return f.val
}

// Movable reports whether Take may move out of the original object.
func (f *Final) Movable() bool {
	return f.movable
}

// CopyCount is the number of copies made so far on this value's trip.
func (f *Final) CopyCount() int {
	return f.copies
}

// Hops is how many forwarding layers the value went through.
func (f *Final) Hops() int {
	return f.hops
}

// Take consumes the value at the target. A movable value is stolen
// from its cell, leaving the cell moved-from; a borrowed const view
// copies once; a carried value is handed over as the copy it already
// is.
func (f *Final) Take() interface{} {
	switch {
	case f.cell == nil:
		return f.val
	case f.movable:
		v := f.cell.V
		f.cell.V = nil
		return v
	default:
		f.copies++
		return copyValue(f.cell.V)
	}
}

func copyValue(v interface{}) interface{} {
	if c, ok := v.(Copier); ok {
		return c.Copy()
	}
	return v
}
