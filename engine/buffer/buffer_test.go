package buffer

import (
	"errors"
	"testing"
)

// Position Tests

func TestPositionCompare(t *testing.T) {
	a := Position{Line: 1, Column: 5}
	b := Position{Line: 1, Column: 7}
	c := Position{Line: 2, Column: 0}

	if a.Compare(b) != -1 {
		t.Errorf("expected -1, got %d", a.Compare(b))
	}
	if c.Compare(a) != 1 {
		t.Errorf("expected 1, got %d", c.Compare(a))
	}
	if a.Compare(a) != 0 {
		t.Errorf("expected 0, got %d", a.Compare(a))
	}
	if !a.Before(b) || !c.After(b) {
		t.Error("Before/After disagree with Compare")
	}
}

func TestPointRangeContains(t *testing.T) {
	r := NewPointRange(Position{Line: 0, Column: 2}, Position{Line: 1, Column: 0})

	if !r.Contains(Position{Line: 0, Column: 2}) {
		t.Error("start should be contained")
	}
	if r.Contains(Position{Line: 1, Column: 0}) {
		t.Error("end is exclusive")
	}
	if r.Contains(Position{Line: 0, Column: 1}) {
		t.Error("position before start should not be contained")
	}
}

// TextBuffer Tests

func TestNewEmpty(t *testing.T) {
	b := New("")
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("empty buffer should have 1 line, got %d", b.LineCount())
	}
}

func TestLineText(t *testing.T) {
	b := New("hello\nworld\n")

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}
	line, err := b.LineText(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "world" {
		t.Errorf("expected %q, got %q", "world", line)
	}
	last, err := b.LineText(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != "" {
		t.Errorf("trailing newline should yield empty last line, got %q", last)
	}
	if _, err := b.LineText(3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestOffsetPositionRoundTrip(t *testing.T) {
	b := New("héllo\nwörld\nx")

	for off := 0; off <= b.Len(); off++ {
		p, err := b.PositionAt(off)
		if err != nil {
			// Mid-rune offsets are invalid.
			continue
		}
		back, err := b.OffsetAt(p)
		if err != nil {
			t.Fatalf("OffsetAt(%v): %v", p, err)
		}
		if back != off {
			t.Errorf("round trip at %d: got %d via %v", off, back, p)
		}
	}
}

func TestOffsetAtMultibyteColumn(t *testing.T) {
	b := New("héllo")

	// Column counts code points, not bytes.
	off, err := b.OffsetAt(Position{Line: 0, Column: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if off != 3 {
		t.Errorf("expected byte offset 3, got %d", off)
	}
}

func TestOffsetAtInvalid(t *testing.T) {
	b := New("ab\ncd")

	cases := []Position{
		{Line: 2, Column: 0},
		{Line: 0, Column: 3},
		{Line: 1, Column: 10},
	}
	for _, p := range cases {
		if _, err := b.OffsetAt(p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("OffsetAt(%v): expected ErrOutOfBounds, got %v", p, err)
		}
	}

	// End of a line is valid.
	if _, err := b.OffsetAt(Position{Line: 0, Column: 2}); err != nil {
		t.Errorf("line end should be valid, got %v", err)
	}
}

func TestPositionAtMidRune(t *testing.T) {
	b := New("é")
	if _, err := b.PositionAt(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds for mid-rune offset, got %v", err)
	}
}

func TestReplaceInsert(t *testing.T) {
	b := New("hello world")
	p := Position{Line: 0, Column: 5}

	op, err := b.Replace(NewPointRange(p, p), ",")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Text() != "hello, world" {
		t.Errorf("expected %q, got %q", "hello, world", b.Text())
	}
	if !op.IsInsert() {
		t.Error("expected insert operation")
	}
	if op.NewEnd != (Position{Line: 0, Column: 6}) {
		t.Errorf("expected NewEnd (0:6), got %v", op.NewEnd)
	}
}

func TestReplaceDelete(t *testing.T) {
	b := New("hello world")

	op, err := b.Replace(NewPointRange(Position{Column: 5}, Position{Column: 11}), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Text() != "hello" {
		t.Errorf("expected %q, got %q", "hello", b.Text())
	}
	if op.RemovedText != " world" {
		t.Errorf("expected removed %q, got %q", " world", op.RemovedText)
	}
	if !op.IsDelete() {
		t.Error("expected delete operation")
	}
}

func TestReplaceAcrossLines(t *testing.T) {
	b := New("one\ntwo\nthree")

	_, err := b.Replace(NewPointRange(Position{Line: 0, Column: 2}, Position{Line: 2, Column: 1}), "X\nY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Text() != "onX\nYhree" {
		t.Errorf("expected %q, got %q", "onX\nYhree", b.Text())
	}
	if b.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", b.LineCount())
	}
}

func TestReplaceUpdatesLineIndex(t *testing.T) {
	b := New("aaa\nbbb\nccc")

	if _, err := b.Replace(NewPointRange(Position{Line: 1, Column: 0}, Position{Line: 1, Column: 3}), "x\ny\nz"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.LineCount() != 5 {
		t.Fatalf("expected 5 lines, got %d", b.LineCount())
	}
	fresh := newLineIndex(b.Text())
	for i := 0; i < fresh.lineCount(); i++ {
		if b.lines.start(i) != fresh.start(i) {
			t.Errorf("line %d: incremental start %d, rebuilt %d", i, b.lines.start(i), fresh.start(i))
		}
	}
}

func TestReplaceInvalidRange(t *testing.T) {
	b := New("hello")

	// Reversed range.
	r := PointRange{Start: Position{Column: 3}, End: Position{Column: 1}}
	if _, err := b.Replace(r, "x"); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	// Out of bounds endpoint.
	r = NewPointRange(Position{}, Position{Line: 1, Column: 0})
	if _, err := b.Replace(r, "x"); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	// Buffer untouched on error.
	if b.Text() != "hello" {
		t.Errorf("failed replace must not mutate, got %q", b.Text())
	}
}

// EditOperation Tests

func TestOperationInvert(t *testing.T) {
	b := New("hello world")
	op, err := b.Replace(NewPointRange(Position{Column: 0}, Position{Column: 5}), "goodbye")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inv := op.Invert()
	if _, err := b.Replace(inv.Range, inv.InsertedText); err != nil {
		t.Fatalf("applying inverse: %v", err)
	}
	if b.Text() != "hello world" {
		t.Errorf("inverse should restore content, got %q", b.Text())
	}
}

func TestOperationInvertTwiceIsIdentity(t *testing.T) {
	op := EditOperation{
		Range:        NewPointRange(Position{Column: 2}, Position{Column: 5}),
		NewEnd:       Position{Column: 3},
		RemovedText:  "abc",
		InsertedText: "x",
	}
	back := op.Invert().Invert()
	if back.Range != op.Range || back.NewEnd != op.NewEnd ||
		back.RemovedText != op.RemovedText || back.InsertedText != op.InsertedText {
		t.Errorf("double inversion changed operation: %+v", back)
	}
}

func TestOperationDelta(t *testing.T) {
	op := EditOperation{RemovedText: "ab", InsertedText: "xyz"}
	if op.Delta() != 1 {
		t.Errorf("expected delta 1, got %d", op.Delta())
	}
}
