package cursor

import (
	"fmt"

	"github.com/dshills/editcore/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// PointRange is an alias for buffer.PointRange for convenience.
type PointRange = buffer.PointRange

// NoPreferredColumn marks a cursor with no remembered column for
// vertical movement.
const NoPreferredColumn = -1

// Cursor represents a caret or selection in the buffer. Head is the
// moving end where typing occurs; Anchor is the fixed end. When
// Anchor == Head the cursor is a caret with no selection.
//
// PreferredColumn remembers the column the cursor wants to be on when
// moving vertically through lines shorter than it; NoPreferredColumn
// means none is set.
type Cursor struct {
	Anchor          Position
	Head            Position
	PreferredColumn int

	// stamp orders cursors by recency of movement; the set uses it to
	// pick the surviving head when overlapping cursors merge.
	stamp uint64
}

// NewCaret creates a cursor with no selection at the given position.
func NewCaret(at Position) Cursor {
	return Cursor{Anchor: at, Head: at, PreferredColumn: NoPreferredColumn}
}

// NewCursor creates a cursor with a selection from anchor to head.
func NewCursor(anchor, head Position) Cursor {
	return Cursor{Anchor: anchor, Head: head, PreferredColumn: NoPreferredColumn}
}

// IsCaret returns true if the cursor has no selection.
func (c Cursor) IsCaret() bool {
	return c.Anchor == c.Head
}

// HasSelection returns true if the cursor selects a non-empty range.
func (c Cursor) HasSelection() bool {
	return c.Anchor != c.Head
}

// Start returns the lesser of anchor and head.
func (c Cursor) Start() Position {
	return c.Anchor.Min(c.Head)
}

// End returns the greater of anchor and head.
func (c Cursor) End() Position {
	return c.Anchor.Max(c.Head)
}

// Range returns the selection as a forward point range. For a caret
// the range is empty.
func (c Cursor) Range() PointRange {
	return PointRange{Start: c.Start(), End: c.End()}
}

// IsForward returns true if head is at or after anchor.
func (c Cursor) IsForward() bool {
	return c.Head.Compare(c.Anchor) >= 0
}

// MoveTo returns the cursor with its head at the given position. If
// extend is false the anchor snaps to the same position, collapsing
// any selection.
func (c Cursor) MoveTo(to Position, extend bool) Cursor {
	c.Head = to
	if !extend {
		c.Anchor = to
	}
	return c
}

// Collapse returns a caret at the head position.
func (c Cursor) Collapse() Cursor {
	return Cursor{Anchor: c.Head, Head: c.Head, PreferredColumn: c.PreferredColumn, stamp: c.stamp}
}

// Overlaps returns true if the two cursors' ranges overlap or touch,
// treating carets as single points.
func (c Cursor) Overlaps(other Cursor) bool {
	return c.Start().Compare(other.End()) <= 0 && other.Start().Compare(c.End()) <= 0
}

// Merge returns a cursor spanning the union of both ranges. The head
// orientation is taken from the cursor moved most recently.
func (c Cursor) Merge(other Cursor) Cursor {
	start := c.Start().Min(other.Start())
	end := c.End().Max(other.End())
	latest := c
	if other.stamp > c.stamp {
		latest = other
	}
	merged := Cursor{PreferredColumn: latest.PreferredColumn, stamp: latest.stamp}
	if latest.IsForward() {
		merged.Anchor, merged.Head = start, end
	} else {
		merged.Anchor, merged.Head = end, start
	}
	return merged
}

// Equals returns true if both cursors have the same anchor and head.
func (c Cursor) Equals(other Cursor) bool {
	return c.Anchor == other.Anchor && c.Head == other.Head
}

// String returns a human-readable representation of the cursor.
func (c Cursor) String() string {
	if c.IsCaret() {
		return fmt.Sprintf("Caret%s", c.Head)
	}
	return fmt.Sprintf("Selection(%s..%s)", c.Anchor, c.Head)
}
