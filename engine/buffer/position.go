package buffer

import "fmt"

// Offset is a byte position in the buffer text.
type Offset = int

// Position represents a line and column position.
// Both Line and Column are 0-indexed.
// Column is measured in code points from the start of the line,
// not bytes and not rendered width.
type Position struct {
	Line   uint32 // 0-indexed line number
	Column uint32 // 0-indexed column in code points
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Min returns the earlier of the two positions.
func (p Position) Min(other Position) Position {
	if p.Before(other) {
		return p
	}
	return other
}

// Max returns the later of the two positions.
func (p Position) Max(other Position) Position {
	if p.After(other) {
		return p
	}
	return other
}

// IsZero returns true if this is the zero position (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// PointRange represents a range between two positions.
// Start is inclusive, End is exclusive: [Start, End).
type PointRange struct {
	Start Position // Inclusive start position
	End   Position // Exclusive end position
}

// NewPointRange creates a range from start and end positions.
func NewPointRange(start, end Position) PointRange {
	return PointRange{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r PointRange) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}

// IsEmpty returns true if start equals end.
func (r PointRange) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// IsValid returns true if start <= end.
func (r PointRange) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// IsSingleLine returns true if the range spans only one line.
func (r PointRange) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// Contains returns true if the given position is within [Start, End).
func (r PointRange) Contains(p Position) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}
