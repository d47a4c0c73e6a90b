package buffer

import (
	"errors"
	"time"
	"unicode/utf8"
)

// ErrOutOfBounds indicates a position, offset, or range outside the
// current buffer. Positions are never clamped: a stale position is a
// caller bug and is surfaced immediately.
var ErrOutOfBounds = errors.New("position out of bounds")

// TextBuffer owns the document text and a derived line-start index.
// It converts between byte offsets and (line, column) positions in
// O(log n) and applies validated replace-range edits. The buffer has
// no notification mechanism of its own; the owning editor state is
// responsible for signaling changes.
type TextBuffer struct {
	text  string
	lines lineIndex
}

// New creates a buffer with the given initial content.
func New(text string) *TextBuffer {
	return &TextBuffer{
		text:  text,
		lines: newLineIndex(text),
	}
}

// Text returns the full buffer content.
func (b *TextBuffer) Text() string {
	return b.text
}

// Len returns the total byte length of the buffer.
func (b *TextBuffer) Len() int {
	return len(b.text)
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *TextBuffer) LineCount() uint32 {
	return uint32(b.lines.lineCount())
}

// lineSpan returns the byte offsets of the given line's start and end,
// excluding the trailing newline. The line must be in range.
func (b *TextBuffer) lineSpan(line int) (start, end int) {
	start = b.lines.start(line)
	if line+1 < b.lines.lineCount() {
		return start, b.lines.start(line+1) - 1
	}
	return start, len(b.text)
}

// LineText returns the text of a line without its trailing newline.
func (b *TextBuffer) LineText(line uint32) (string, error) {
	if int(line) >= b.lines.lineCount() {
		return "", ErrOutOfBounds
	}
	start, end := b.lineSpan(int(line))
	return b.text[start:end], nil
}

// LineLen returns the length of a line in code points, without its
// trailing newline.
func (b *TextBuffer) LineLen(line uint32) (uint32, error) {
	s, err := b.LineText(line)
	if err != nil {
		return 0, err
	}
	return uint32(utf8.RuneCountInString(s)), nil
}

// OffsetAt converts a position to a byte offset. A position is valid
// when its line exists and its column is at most the line length in
// code points.
func (b *TextBuffer) OffsetAt(p Position) (int, error) {
	if int(p.Line) >= b.lines.lineCount() {
		return 0, ErrOutOfBounds
	}
	start, end := b.lineSpan(int(p.Line))
	off := start
	for col := uint32(0); col < p.Column; col++ {
		if off >= end {
			return 0, ErrOutOfBounds
		}
		_, size := utf8.DecodeRuneInString(b.text[off:])
		off += size
	}
	return off, nil
}

// PositionAt converts a byte offset to a position. The offset must lie
// within [0, Len()] and on a code point boundary.
func (b *TextBuffer) PositionAt(offset int) (Position, error) {
	if offset < 0 || offset > len(b.text) {
		return Position{}, ErrOutOfBounds
	}
	line := b.lines.lineAt(offset)
	start := b.lines.start(line)
	col := uint32(0)
	for i := start; i < offset; {
		_, size := utf8.DecodeRuneInString(b.text[i:])
		i += size
		if i > offset {
			return Position{}, ErrOutOfBounds
		}
		col++
	}
	return Position{Line: uint32(line), Column: col}, nil
}

// validRange resolves a point range to byte offsets, failing with
// ErrOutOfBounds if either endpoint is invalid or the range is
// reversed.
func (b *TextBuffer) validRange(r PointRange) (start, end int, err error) {
	start, err = b.OffsetAt(r.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err = b.OffsetAt(r.End)
	if err != nil {
		return 0, 0, err
	}
	if start > end {
		return 0, 0, ErrOutOfBounds
	}
	return start, end, nil
}

// Replace replaces the given range with text and returns the operation
// that was applied, including the text actually removed. The range is
// validated against the current content before any mutation; the line
// index is patched in the same step.
func (b *TextBuffer) Replace(r PointRange, text string) (EditOperation, error) {
	start, end, err := b.validRange(r)
	if err != nil {
		return EditOperation{}, err
	}

	removed := b.text[start:end]
	b.text = b.text[:start] + text + b.text[end:]
	b.lines.splice(start, end, text)

	return EditOperation{
		Range:        r,
		NewEnd:       endOfInsertion(r.Start, text),
		RemovedText:  removed,
		InsertedText: text,
		Time:         time.Now(),
	}, nil
}

// endOfInsertion computes the position just past text inserted at
// start.
func endOfInsertion(start Position, text string) Position {
	line := start.Line
	col := start.Column
	for _, r := range text {
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col}
}
