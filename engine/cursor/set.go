package cursor

import "sort"

// Set manages the cursors over a buffer. Cursors are kept sorted by
// the lesser of anchor and head, and overlapping or touching cursors
// are merged so no two ranges intersect. At least one cursor always
// exists; the first cursor is the primary.
//
// Set operations never validate against buffer content: the owning
// editor state only passes positions already validated against the
// buffer that is current when they were computed.
type Set struct {
	cursors []Cursor
	clock   uint64
}

// NewSet creates a set with a single caret at the given position.
func NewSet(at Position) *Set {
	return &Set{cursors: []Cursor{NewCaret(at)}}
}

// NewSetFrom creates a set from the given cursors, normalizing them.
// An empty slice yields a single caret at (0:0).
func NewSetFrom(cursors []Cursor) *Set {
	s := &Set{}
	if len(cursors) == 0 {
		s.cursors = []Cursor{NewCaret(Position{})}
		return s
	}
	s.cursors = make([]Cursor, len(cursors))
	copy(s.cursors, cursors)
	for i := range s.cursors {
		s.cursors[i].stamp = s.tick()
	}
	s.Normalize()
	return s
}

// tick returns the next recency stamp.
func (s *Set) tick() uint64 {
	s.clock++
	return s.clock
}

// Primary returns the first cursor.
func (s *Set) Primary() Cursor {
	return s.cursors[0]
}

// All returns a copy of all cursors in order.
func (s *Set) All() []Cursor {
	out := make([]Cursor, len(s.cursors))
	copy(out, s.cursors)
	return out
}

// Count returns the number of cursors.
func (s *Set) Count() int {
	return len(s.cursors)
}

// IsMulti returns true if there is more than one cursor.
func (s *Set) IsMulti() bool {
	return len(s.cursors) > 1
}

// Get returns the cursor at the given index and whether it exists.
func (s *Set) Get(index int) (Cursor, bool) {
	if index < 0 || index >= len(s.cursors) {
		return Cursor{}, false
	}
	return s.cursors[index], true
}

// MovePrimary moves the primary cursor's head to the given position.
// If extend is false the anchor snaps with it, collapsing any
// selection.
func (s *Set) MovePrimary(to Position, extend bool) {
	c := s.cursors[0].MoveTo(to, extend)
	c.PreferredColumn = NoPreferredColumn
	c.stamp = s.tick()
	s.cursors[0] = c
	s.Normalize()
}

// SetPrimaryPreferred updates the primary cursor's preferred column.
func (s *Set) SetPrimaryPreferred(col int) {
	s.cursors[0].PreferredColumn = col
}

// Add inserts a new caret at the given position and normalizes.
func (s *Set) Add(at Position) {
	c := NewCaret(at)
	c.stamp = s.tick()
	s.cursors = append(s.cursors, c)
	s.Normalize()
}

// AddCursor inserts a cursor (possibly with a selection) and
// normalizes.
func (s *Set) AddCursor(c Cursor) {
	c.stamp = s.tick()
	s.cursors = append(s.cursors, c)
	s.Normalize()
}

// Replace swaps in a new cursor slice wholesale and normalizes. An
// empty slice yields a single caret at (0:0).
func (s *Set) Replace(cursors []Cursor) {
	if len(cursors) == 0 {
		s.cursors = []Cursor{NewCaret(Position{})}
		return
	}
	s.cursors = make([]Cursor, len(cursors))
	copy(s.cursors, cursors)
	for i := range s.cursors {
		s.cursors[i].stamp = s.tick()
	}
	s.Normalize()
}

// CollapseAll collapses every cursor to a caret at its head.
func (s *Set) CollapseAll() {
	for i := range s.cursors {
		s.cursors[i] = s.cursors[i].Collapse()
	}
	s.Normalize()
}

// ClearSecondary removes every cursor except the primary.
func (s *Set) ClearSecondary() {
	s.cursors = s.cursors[:1]
}

// Normalize re-sorts cursors by start position and merges any that
// overlap or touch. Merging keeps the head of the most recently moved
// participant.
func (s *Set) Normalize() {
	if len(s.cursors) <= 1 {
		return
	}

	sort.SliceStable(s.cursors, func(i, j int) bool {
		si, sj := s.cursors[i].Start(), s.cursors[j].Start()
		if c := si.Compare(sj); c != 0 {
			return c < 0
		}
		// Same start: larger range first so merging folds into it.
		return s.cursors[i].End().After(s.cursors[j].End())
	})

	merged := s.cursors[:1]
	for _, c := range s.cursors[1:] {
		last := &merged[len(merged)-1]
		if last.Overlaps(c) {
			*last = last.Merge(c)
		} else {
			merged = append(merged, c)
		}
	}
	s.cursors = merged
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	out := &Set{clock: s.clock, cursors: make([]Cursor, len(s.cursors))}
	copy(out.cursors, s.cursors)
	return out
}

// Equals returns true if both sets hold the same cursors in order.
func (s *Set) Equals(other *Set) bool {
	if other == nil || len(s.cursors) != len(other.cursors) {
		return false
	}
	for i, c := range s.cursors {
		if !c.Equals(other.cursors[i]) {
			return false
		}
	}
	return true
}
