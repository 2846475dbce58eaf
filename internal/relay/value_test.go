package relay_test

import (
	"testing"

	"github.com/funvibe/funrelay/internal/relay"
)

// gadget is a class-like payload whose copies are observable.
type gadget struct {
	serial int
	copied bool
}

func (g gadget) Copy() interface{} {
	return gadget{serial: g.serial, copied: true}
}

func TestBorrowKeepsAddress(t *testing.T) {
	plan := relay.PlanFor(mustParse(t, "Widget &"))
	cell := relay.NewCell(gadget{serial: 7})

	f := relay.Forward(plan, cell)
	f = relay.Thread(f, 5)
	fin := relay.Reconstitute(f)

	if fin.Addr() != cell {
		t.Error("a by-reference plan must land on the caller's cell")
	}
	if fin.Hops() != 5 {
		t.Errorf("Hops() = %d, want 5", fin.Hops())
	}
	if g := fin.Value().(gadget); g.serial != 7 || g.copied {
		t.Errorf("Value() = %+v, want the original uncopied gadget", g)
	}
}

func TestMoveTransferStealsWithoutCopying(t *testing.T) {
	plan := relay.PlanWith(mustParse(t, "Widget"), relay.DefaultOptions())
	cell := relay.NewCell(gadget{serial: 12})

	fin := relay.Reconstitute(relay.Thread(relay.Forward(plan, cell), 3))

	if !fin.Movable() {
		t.Fatal("a move-transfer plan must be movable at the target")
	}
	if fin.Addr() != cell {
		t.Error("the move source must be the caller's cell")
	}

	got := fin.Take().(gadget)
	if got.serial != 12 || got.copied {
		t.Errorf("Take() = %+v, want the original gadget moved, not copied", got)
	}
	if cell.V != nil {
		t.Error("the cell should be moved-from after Take")
	}
	if fin.CopyCount() != 0 {
		t.Errorf("CopyCount() = %d, want 0 for a move", fin.CopyCount())
	}
}

func TestCopyFallbackCopiesOnce(t *testing.T) {
	plan := relay.PlanWith(mustParse(t, "Widget"), relay.Options{MoveSemantics: false})
	cell := relay.NewCell(gadget{serial: 3})

	fin := relay.Reconstitute(relay.Forward(plan, cell))

	if fin.Movable() {
		t.Fatal("the copy fallback must not be movable")
	}

	got := fin.Take().(gadget)
	if got.serial != 3 || !got.copied {
		t.Errorf("Take() = %+v, want a copy of the gadget", got)
	}
	if g := cell.V.(gadget); g.serial != 3 || g.copied {
		t.Error("the original must survive a copying Take")
	}
	if fin.CopyCount() != 1 {
		t.Errorf("CopyCount() = %d, want exactly 1", fin.CopyCount())
	}
}

func TestValueCopyIsIndependent(t *testing.T) {
	plan := relay.PlanFor(mustParse(t, "const int"))
	cell := relay.NewCell(41)

	f := relay.Forward(plan, cell)
	cell.V = 99 // the caller mutates after handing the value over

	fin := relay.Reconstitute(f)
	if fin.Addr() != nil {
		t.Error("a by-value plan must not retain the caller's cell")
	}
	if got := fin.Value(); got != 41 {
		t.Errorf("Value() = %v, want the copy made at the boundary (41)", got)
	}
	if got := fin.Take(); got != 41 {
		t.Errorf("Take() = %v, want 41", got)
	}
	if fin.CopyCount() != 1 {
		t.Errorf("CopyCount() = %d, want 1", fin.CopyCount())
	}
}

func TestArrayReformKeepsIdentity(t *testing.T) {
	plan := relay.PlanFor(mustParse(t, "int[3]"))
	cell := relay.NewCell([3]int{1, 2, 3})

	fin := relay.Reconstitute(relay.Thread(relay.Forward(plan, cell), 2))
	if fin.Addr() != cell {
		t.Error("array reform must land back on the original array's cell")
	}
	if got := fin.Value().([3]int); got != [3]int{1, 2, 3} {
		t.Errorf("Value() = %v, want the original array", got)
	}
}

func TestRvalueRefMovesOriginal(t *testing.T) {
	plan := relay.PlanFor(mustParse(t, "Widget &&"))
	cell := relay.NewCell(gadget{serial: 9})

	fin := relay.Reconstitute(relay.Forward(plan, cell))
	if !fin.Movable() {
		t.Fatal("an rvalue reference plan must be movable")
	}
	if got := fin.Take().(gadget); got.copied {
		t.Errorf("Take() = %+v, want a move", got)
	}
	if cell.V != nil {
		t.Error("the referenced object should be moved-from")
	}
}
