package history

import (
	"fmt"
	"time"

	"github.com/dshills/editcore/engine/buffer"
	"github.com/dshills/editcore/engine/cursor"
)

// Default configuration values. The coalescing window is a product
// heuristic, not a protocol constant; it is configurable via options.
const (
	DefaultCoalesceWindow = 500 * time.Millisecond
	DefaultMaxUnits       = 1000
)

// History holds the linear undo/redo timeline for a buffer: two stacks
// of units, where recording a new edit always discards the redo stack.
// Units only ever move between the stacks; undo and redo never lose
// them.
type History struct {
	undo []*Unit
	redo []*Unit

	window   time.Duration
	maxUnits int

	// boundary forces the next recorded operation into a new unit.
	boundary bool
}

// Option configures a History.
type Option func(*History)

// WithCoalesceWindow sets the maximum time gap between operations that
// may share an undo unit.
func WithCoalesceWindow(d time.Duration) Option {
	return func(h *History) {
		if d > 0 {
			h.window = d
		}
	}
}

// WithMaxUnits caps the undo stack depth; the oldest units are dropped
// past the cap.
func WithMaxUnits(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxUnits = n
		}
	}
}

// New creates an empty history.
func New(opts ...Option) *History {
	h := &History{
		window:   DefaultCoalesceWindow,
		maxUnits: DefaultMaxUnits,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Record appends an applied operation to the current undo unit, or
// starts a new unit if boundary is true, a boundary event is pending,
// or the coalescing predicate fails against the unit's last operation.
// Recording always clears the redo stack.
//
// The cursor snapshots are restored on undo (before) and redo (after);
// they may be nil, in which case undo/redo fall back to positioning
// cursors at the affected range.
func (h *History) Record(op buffer.EditOperation, boundary bool, before, after []cursor.Cursor) {
	h.redo = nil

	if !boundary && !h.boundary && len(h.undo) > 0 {
		top := h.undo[len(h.undo)-1]
		if !top.sealed && canCoalesce(top.lastOp(), op, h.window) {
			top.ops = append(top.ops, op)
			top.cursorsAfter = after
			return
		}
	}

	h.push(&Unit{
		ops:           []buffer.EditOperation{op},
		cursorsBefore: before,
		cursorsAfter:  after,
		// A boundary-started unit stays closed: the next keystroke
		// begins its own unit rather than merging into a paste or
		// other forced break.
		sealed: boundary,
	})
	h.boundary = false
}

// RecordGroup records a batch of operations, in application order, as
// a single sealed undo unit. Multi-cursor edits use this so one undo
// reverts every cursor's change.
func (h *History) RecordGroup(ops []buffer.EditOperation, before, after []cursor.Cursor) {
	if len(ops) == 0 {
		return
	}
	h.redo = nil
	h.push(&Unit{
		ops:           append([]buffer.EditOperation(nil), ops...),
		cursorsBefore: before,
		cursorsAfter:  after,
		sealed:        true,
	})
	h.boundary = false
}

// push appends a unit to the undo stack and enforces the depth cap.
func (h *History) push(u *Unit) {
	h.undo = append(h.undo, u)
	if len(h.undo) > h.maxUnits {
		excess := len(h.undo) - h.maxUnits
		h.undo = append(h.undo[:0], h.undo[excess:]...)
	}
}

// Boundary marks a boundary event (focus loss, cursor jump, explicit
// commit): the next recorded operation starts a new undo unit
// regardless of adjacency or timing.
func (h *History) Boundary() {
	h.boundary = true
	if len(h.undo) > 0 {
		h.undo[len(h.undo)-1].sealed = true
	}
}

// Undo reverts the most recent unit against the buffer, repositions
// the cursors, and moves the unit to the redo stack. An empty undo
// stack is a defined no-op returning (nil, nil).
func (h *History) Undo(buf *buffer.TextBuffer, cursors *cursor.Set) (*UnitResult, error) {
	if len(h.undo) == 0 {
		return nil, nil
	}
	u := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	// Apply inverses in reverse application order so each one sees the
	// coordinates it was recorded against.
	for i := len(u.ops) - 1; i >= 0; i-- {
		inv := u.ops[i].Invert()
		if _, err := buf.Replace(inv.Range, inv.InsertedText); err != nil {
			h.undo = append(h.undo, u)
			return nil, fmt.Errorf("undo: %w", err)
		}
	}

	// The chronologically earliest operation's restored range is valid
	// in post-undo coordinates: every other inverse lies at or beyond
	// its end.
	r := u.ops[0].Range
	if u.cursorsBefore != nil {
		cursors.Replace(u.cursorsBefore)
	} else {
		cursors.Replace([]cursor.Cursor{cursor.NewCursor(r.Start, r.End)})
	}

	h.redo = append(h.redo, u)
	return &UnitResult{Ops: u.Ops(), Range: r}, nil
}

// Redo re-applies the most recently undone unit and moves it back to
// the undo stack. An empty redo stack is a defined no-op returning
// (nil, nil).
func (h *History) Redo(buf *buffer.TextBuffer, cursors *cursor.Set) (*UnitResult, error) {
	if len(h.redo) == 0 {
		return nil, nil
	}
	u := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	for _, op := range u.ops {
		if _, err := buf.Replace(op.Range, op.InsertedText); err != nil {
			h.redo = append(h.redo, u)
			return nil, fmt.Errorf("redo: %w", err)
		}
	}

	// The last-applied operation's new range is valid in post-redo
	// coordinates.
	r := u.lastOp().NewRange()
	if u.cursorsAfter != nil {
		cursors.Replace(u.cursorsAfter)
	} else {
		cursors.Replace([]cursor.Cursor{cursor.NewCaret(r.End)})
	}

	h.undo = append(h.undo, u)
	return &UnitResult{Ops: u.Ops(), Range: r}, nil
}

// CanUndo returns true if the undo stack is non-empty.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns true if the redo stack is non-empty.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoCount returns the number of undo units available.
func (h *History) UndoCount() int {
	return len(h.undo)
}

// RedoCount returns the number of redo units available.
func (h *History) RedoCount() int {
	return len(h.redo)
}

// Clear drops all undo and redo units.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.boundary = false
}
