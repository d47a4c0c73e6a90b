package cursor

import "github.com/dshills/editcore/engine/buffer"

// TransformPosition remaps a position across an applied edit.
//
// Rules:
//   - Positions strictly before the edited range are unaffected.
//   - Positions at or after the removed range's end shift by the net
//     length delta of the edit. A caret sitting exactly at an insertion
//     point therefore moves to the end of the inserted text.
//   - Positions inside the removed range collapse to the edit start.
func TransformPosition(p Position, op buffer.EditOperation) Position {
	start, oldEnd, newEnd := op.Range.Start, op.Range.End, op.NewEnd

	if p.Compare(oldEnd) >= 0 {
		if p.Line == oldEnd.Line {
			// Same line as the old end: the column shifts with it.
			return Position{
				Line:   newEnd.Line,
				Column: newEnd.Column + (p.Column - oldEnd.Column),
			}
		}
		lineDelta := int(newEnd.Line) - int(oldEnd.Line)
		return Position{Line: uint32(int(p.Line) + lineDelta), Column: p.Column}
	}

	if p.Compare(start) <= 0 {
		return p
	}

	return start
}

// TransformCursor remaps both ends of a cursor across an applied edit.
func TransformCursor(c Cursor, op buffer.EditOperation) Cursor {
	c.Anchor = TransformPosition(c.Anchor, op)
	c.Head = TransformPosition(c.Head, op)
	return c
}

// ApplyEdit remaps every cursor in the set across an applied edit and
// normalizes. This must be called after any buffer edit, because edits
// shift the positions of cursors that did not originate them.
func (s *Set) ApplyEdit(op buffer.EditOperation) {
	for i := range s.cursors {
		s.cursors[i] = TransformCursor(s.cursors[i], op)
	}
	s.Normalize()
}

// ApplyEdits remaps cursors across a sequence of edits given in the
// order they were applied to the buffer.
func (s *Set) ApplyEdits(ops []buffer.EditOperation) {
	for _, op := range ops {
		s.ApplyEdit(op)
	}
}
