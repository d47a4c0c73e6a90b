package cursor

import (
	"testing"

	"github.com/dshills/editcore/engine/buffer"
)

func pos(line, col uint32) Position {
	return Position{Line: line, Column: col}
}

// Cursor Tests

func TestNewCaret(t *testing.T) {
	c := NewCaret(pos(2, 3))
	if !c.IsCaret() {
		t.Error("expected a caret")
	}
	if c.HasSelection() {
		t.Error("caret should have no selection")
	}
	if c.PreferredColumn != NoPreferredColumn {
		t.Errorf("expected no preferred column, got %d", c.PreferredColumn)
	}
}

func TestCursorStartEnd(t *testing.T) {
	// Backward selection: head before anchor.
	c := NewCursor(pos(1, 5), pos(0, 2))
	if c.Start() != pos(0, 2) {
		t.Errorf("expected start (0:2), got %v", c.Start())
	}
	if c.End() != pos(1, 5) {
		t.Errorf("expected end (1:5), got %v", c.End())
	}
	if c.IsForward() {
		t.Error("head before anchor should not be forward")
	}
}

func TestCursorMoveTo(t *testing.T) {
	c := NewCaret(pos(0, 0))

	moved := c.MoveTo(pos(0, 4), false)
	if !moved.IsCaret() {
		t.Error("non-extending move should collapse")
	}

	extended := c.MoveTo(pos(0, 4), true)
	if !extended.HasSelection() {
		t.Error("extending move should keep the anchor")
	}
	if extended.Anchor != pos(0, 0) {
		t.Errorf("anchor should stay at (0:0), got %v", extended.Anchor)
	}
}

func TestCursorOverlaps(t *testing.T) {
	a := NewCursor(pos(0, 0), pos(0, 2))
	b := NewCursor(pos(0, 1), pos(0, 3))
	c := NewCursor(pos(0, 2), pos(0, 4))
	d := NewCursor(pos(0, 5), pos(0, 6))

	if !a.Overlaps(b) {
		t.Error("intersecting ranges should overlap")
	}
	if !a.Overlaps(c) {
		t.Error("touching ranges should overlap")
	}
	if a.Overlaps(d) {
		t.Error("disjoint ranges should not overlap")
	}
}

// Set Tests

func TestSetMergeOverlapping(t *testing.T) {
	s := NewSetFrom([]Cursor{
		NewCursor(pos(0, 0), pos(0, 2)),
		NewCursor(pos(0, 1), pos(0, 3)),
	})

	if s.Count() != 1 {
		t.Fatalf("expected 1 cursor after merge, got %d", s.Count())
	}
	got := s.Primary()
	if got.Start() != pos(0, 0) || got.End() != pos(0, 3) {
		t.Errorf("expected merged range (0:0)-(0:3), got %v-%v", got.Start(), got.End())
	}
}

func TestSetMergeKeepsRecentHead(t *testing.T) {
	s := NewSet(pos(0, 0))
	s.MovePrimary(pos(0, 2), true) // select (0:0)-(0:2)
	s.AddCursor(NewCursor(pos(0, 1), pos(0, 4)))

	if s.Count() != 1 {
		t.Fatalf("expected 1 cursor, got %d", s.Count())
	}
	// The added cursor moved last, so its head wins.
	if s.Primary().Head != pos(0, 4) {
		t.Errorf("expected head (0:4), got %v", s.Primary().Head)
	}
	if s.Primary().Start() != pos(0, 0) {
		t.Errorf("merged range should start at (0:0), got %v", s.Primary().Start())
	}
}

func TestSetAddSorted(t *testing.T) {
	s := NewSet(pos(2, 0))
	s.Add(pos(0, 0))
	s.Add(pos(1, 0))

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 cursors, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if !all[i-1].Start().Before(all[i].Start()) {
			t.Errorf("cursors out of order at %d: %v >= %v", i, all[i-1].Start(), all[i].Start())
		}
	}
}

func TestSetAddDuplicateMerges(t *testing.T) {
	s := NewSet(pos(0, 3))
	s.Add(pos(0, 3))
	if s.Count() != 1 {
		t.Errorf("duplicate caret should merge, got %d cursors", s.Count())
	}
}

func TestSetClearSecondary(t *testing.T) {
	s := NewSet(pos(0, 0))
	s.Add(pos(1, 0))
	s.Add(pos(2, 0))
	s.ClearSecondary()
	if s.Count() != 1 {
		t.Errorf("expected 1 cursor, got %d", s.Count())
	}
}

func TestSetMovePrimaryResetsPreferred(t *testing.T) {
	s := NewSet(pos(0, 5))
	s.SetPrimaryPreferred(5)
	s.MovePrimary(pos(1, 2), false)
	if s.Primary().PreferredColumn != NoPreferredColumn {
		t.Errorf("horizontal move should reset preferred column, got %d", s.Primary().PreferredColumn)
	}
}

// Transform Tests

func insertOp(at Position, text string) buffer.EditOperation {
	b := buffer.New(makeDoc())
	op, err := b.Replace(buffer.NewPointRange(at, at), text)
	if err != nil {
		panic(err)
	}
	return op
}

func makeDoc() string {
	return "0123456789\n0123456789\n0123456789"
}

func TestTransformPositionAfterInsert(t *testing.T) {
	op := insertOp(pos(0, 2), "ab")

	// Before the edit: unchanged.
	if got := TransformPosition(pos(0, 1), op); got != pos(0, 1) {
		t.Errorf("expected (0:1), got %v", got)
	}
	// At the insertion point: shifts to end of inserted text.
	if got := TransformPosition(pos(0, 2), op); got != pos(0, 4) {
		t.Errorf("expected (0:4), got %v", got)
	}
	// After on the same line: shifts by the inserted length.
	if got := TransformPosition(pos(0, 5), op); got != pos(0, 7) {
		t.Errorf("expected (0:7), got %v", got)
	}
	// Later lines: untouched.
	if got := TransformPosition(pos(1, 3), op); got != pos(1, 3) {
		t.Errorf("expected (1:3), got %v", got)
	}
}

func TestTransformPositionAfterNewlineInsert(t *testing.T) {
	op := insertOp(pos(0, 4), "x\ny")

	// Same line after the insertion point: moves to the new line.
	if got := TransformPosition(pos(0, 6), op); got != pos(1, 3) {
		t.Errorf("expected (1:3), got %v", got)
	}
	// Later lines shift down.
	if got := TransformPosition(pos(2, 5), op); got != pos(3, 5) {
		t.Errorf("expected (3:5), got %v", got)
	}
}

func TestTransformPositionInsideDelete(t *testing.T) {
	b := buffer.New(makeDoc())
	op, err := b.Replace(buffer.NewPointRange(pos(0, 2), pos(1, 4)), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Inside the removed range: collapses to start.
	if got := TransformPosition(pos(0, 7), op); got != pos(0, 2) {
		t.Errorf("expected (0:2), got %v", got)
	}
	if got := TransformPosition(pos(1, 0), op); got != pos(0, 2) {
		t.Errorf("expected (0:2), got %v", got)
	}
	// At the removed end: lands at the edit start too (delta is the
	// whole removal).
	if got := TransformPosition(pos(1, 4), op); got != pos(0, 2) {
		t.Errorf("expected (0:2), got %v", got)
	}
	// After on the end line: shifts left and up.
	if got := TransformPosition(pos(1, 8), op); got != pos(0, 6) {
		t.Errorf("expected (0:6), got %v", got)
	}
}

func TestSetApplyEditMergesCollapsed(t *testing.T) {
	s := NewSetFrom([]Cursor{
		NewCaret(pos(0, 3)),
		NewCaret(pos(0, 6)),
	})
	b := buffer.New(makeDoc())
	op, err := b.Replace(buffer.NewPointRange(pos(0, 2), pos(0, 8)), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.ApplyEdit(op)
	// Both carets were inside the removed range; they collapse to the
	// same spot and merge.
	if s.Count() != 1 {
		t.Fatalf("expected 1 cursor, got %d", s.Count())
	}
	if s.Primary().Head != pos(0, 2) {
		t.Errorf("expected head (0:2), got %v", s.Primary().Head)
	}
}

func TestTransformCursorSelection(t *testing.T) {
	op := insertOp(pos(0, 0), "zz")
	c := NewCursor(pos(0, 1), pos(0, 3))
	got := TransformCursor(c, op)
	if got.Anchor != pos(0, 3) || got.Head != pos(0, 5) {
		t.Errorf("expected (0:3)-(0:5), got %v-%v", got.Anchor, got.Head)
	}
}
