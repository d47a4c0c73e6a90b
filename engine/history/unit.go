package history

import (
	"time"

	"github.com/dshills/editcore/engine/buffer"
	"github.com/dshills/editcore/engine/cursor"
)

// Unit is one undo/redo step: one or more operations applied and
// reverted atomically. Units are built by coalescing (rapid typing)
// or by explicit grouping (multi-cursor batches).
type Unit struct {
	// ops in the order they were applied to the buffer.
	ops []buffer.EditOperation

	// Cursor snapshots taken around the unit, restored on undo/redo.
	cursorsBefore []cursor.Cursor
	cursorsAfter  []cursor.Cursor

	// sealed units never accept further coalesced operations.
	sealed bool
}

// Ops returns the unit's operations in application order.
func (u *Unit) Ops() []buffer.EditOperation {
	out := make([]buffer.EditOperation, len(u.ops))
	copy(out, u.ops)
	return out
}

// Len returns the number of operations in the unit.
func (u *Unit) Len() int {
	return len(u.ops)
}

// lastOp returns the most recently appended operation.
func (u *Unit) lastOp() buffer.EditOperation {
	return u.ops[len(u.ops)-1]
}

// UnitResult describes the effect of one undo or redo call.
type UnitResult struct {
	// Ops are the unit's original operations in application order.
	Ops []buffer.EditOperation

	// Range is the buffer range affected by the call, in post-call
	// coordinates.
	Range buffer.PointRange
}

// canCoalesce reports whether next may join the same undo unit as
// prev. Operations coalesce when they are the same kind (pure insert
// or pure delete, never mixed), adjacent in the buffer, and within the
// configured time window. Anything else starts a new unit.
func canCoalesce(prev, next buffer.EditOperation, window time.Duration) bool {
	if next.Time.Sub(prev.Time) > window {
		return false
	}
	switch {
	case prev.IsInsert() && next.IsInsert():
		// Typing forward: the next insert starts where the last ended.
		return next.Range.Start == prev.NewEnd
	case prev.IsDelete() && next.IsDelete():
		// Backspace run: the next removal ends where the last began.
		// Forward-delete run: both removals start at the same spot.
		return next.Range.End == prev.Range.Start ||
			next.Range.Start == prev.Range.Start
	default:
		return false
	}
}
