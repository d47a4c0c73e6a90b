package engine

import (
	"fmt"
	"hash/fnv"
	"time"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/editcore/config"
	"github.com/dshills/editcore/engine/buffer"
	"github.com/dshills/editcore/engine/cursor"
	"github.com/dshills/editcore/engine/history"
)

// Re-exported types so most callers only import the engine package.
type (
	// Position is a 0-indexed line/column pair; columns count code
	// points.
	Position = buffer.Position

	// PointRange is a half-open range between two positions.
	PointRange = buffer.PointRange

	// EditOperation is a recorded, invertible buffer mutation.
	EditOperation = buffer.EditOperation

	// Cursor is an anchor/head pair over the buffer.
	Cursor = cursor.Cursor

	// Config is the per-session editor configuration.
	Config = config.Config
)

// EditorState composes the text buffer, cursor set, history, and
// configuration behind a single mutation entry point. It is
// single-threaded and synchronous: every operation runs to completion
// before returning, with no locks and no internal goroutines. The
// owning session is the sole mutator; asynchronous collaborators
// (highlighter, search) read versioned snapshots and re-derive their
// output when the version advances.
type EditorState struct {
	buf     *buffer.TextBuffer
	cursors *cursor.Set
	hist    *history.History

	cfg      config.Config
	language string

	version  uint64
	modified bool
	savedSum uint64

	listener       ChangeListener
	coalesceWindow time.Duration
	maxUndo        int
}

// New creates an editor session from initial text and options.
func New(content string, opts ...Option) *EditorState {
	s := &EditorState{
		cfg: config.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.buf = buffer.New(content)
	s.cursors = cursor.NewSet(buffer.Position{})

	var hopts []history.Option
	if s.coalesceWindow > 0 {
		hopts = append(hopts, history.WithCoalesceWindow(s.coalesceWindow))
	}
	if s.maxUndo > 0 {
		hopts = append(hopts, history.WithMaxUnits(s.maxUndo))
	}
	s.hist = history.New(hopts...)

	s.savedSum = s.contentSum()
	return s
}

// ===========================================================================
// Mutation
// ===========================================================================

// ApplyEdit resolves an intent against the current cursors and buffer,
// applies it, records it in history, transforms all cursors, and bumps
// the version. Validation happens before any mutation: on error the
// state is unchanged and the version does not advance.
func (s *EditorState) ApplyEdit(intent EditIntent) (EditResult, error) {
	if s.cfg.ReadOnly {
		return EditResult{}, ErrReadOnly
	}

	switch intent.Kind {
	case IntentInsert, IntentPaste:
		return s.editAtCursors(intent)
	case IntentDeleteBackward:
		return s.deleteAtCursors(intent, false)
	case IntentDeleteForward:
		return s.deleteAtCursors(intent, true)
	case IntentReplaceRange:
		return s.replaceRange(intent.Range, intent.Text)
	case IntentSetContent:
		return s.replaceRange(s.fullRange(), intent.Text)
	default:
		return EditResult{}, fmt.Errorf("%w: kind %d", ErrInvalidIntent, intent.Kind)
	}
}

// editAtCursors inserts intent.Text at each targeted cursor, replacing
// selections. Edits apply in descending document order so earlier
// ranges stay valid; new carets are computed with a running byte delta
// in ascending order.
func (s *EditorState) editAtCursors(intent EditIntent) (EditResult, error) {
	targets, err := s.resolveTargets(intent.Cursor)
	if err != nil {
		return EditResult{}, err
	}

	before := s.cursors.All()

	type span struct {
		r          buffer.PointRange
		start, end buffer.Offset
	}
	spans := make([]span, len(targets))
	for i, c := range targets {
		r := c.Range()
		so, err := s.buf.OffsetAt(r.Start)
		if err != nil {
			return EditResult{}, err
		}
		eo, err := s.buf.OffsetAt(r.End)
		if err != nil {
			return EditResult{}, err
		}
		spans[i] = span{r: r, start: so, end: eo}
	}

	ops := make([]buffer.EditOperation, 0, len(spans))
	for i := len(spans) - 1; i >= 0; i-- {
		op, err := s.buf.Replace(spans[i].r, intent.Text)
		if err != nil {
			return EditResult{}, err
		}
		ops = append(ops, op)
	}

	if intent.Cursor == AllCursors {
		next := make([]cursor.Cursor, len(spans))
		delta := 0
		for i, sp := range spans {
			off := sp.start + delta + len(intent.Text)
			p, perr := s.buf.PositionAt(off)
			if perr != nil {
				return EditResult{}, perr
			}
			next[i] = cursor.NewCaret(p)
			delta += len(intent.Text) - (sp.end - sp.start)
		}
		s.cursors.Replace(next)
	} else {
		op := ops[0]
		next := make([]cursor.Cursor, len(before))
		for i, c := range before {
			if i == intent.Cursor {
				next[i] = cursor.NewCaret(op.NewEnd)
			} else {
				next[i] = cursor.TransformCursor(c, op)
			}
		}
		s.cursors.Replace(next)
	}

	after := s.cursors.All()
	if len(ops) > 1 {
		s.hist.RecordGroup(ops, before, after)
	} else {
		s.hist.Record(ops[0], intent.Kind == IntentPaste, before, after)
	}

	s.modified = true
	s.bump()
	return EditResult{Version: s.version, Ops: ops}, nil
}

// deleteAtCursors removes each targeted cursor's selection, or one
// grapheme cluster before/after the caret. Carets at a document edge
// with nothing to remove contribute no operation; if every target is
// in that situation the call is a no-op and the version does not
// advance.
func (s *EditorState) deleteAtCursors(intent EditIntent, forward bool) (EditResult, error) {
	targets, err := s.resolveTargets(intent.Cursor)
	if err != nil {
		return EditResult{}, err
	}

	before := s.cursors.All()

	type span struct {
		start, end buffer.Offset
		r          buffer.PointRange
	}
	spans := make([]span, len(targets))
	nonEmpty := 0
	for i, c := range targets {
		r, rerr := s.deleteRangeFor(c, forward)
		if rerr != nil {
			return EditResult{}, rerr
		}
		so, oerr := s.buf.OffsetAt(r.Start)
		if oerr != nil {
			return EditResult{}, oerr
		}
		eo, oerr := s.buf.OffsetAt(r.End)
		if oerr != nil {
			return EditResult{}, oerr
		}
		spans[i] = span{start: so, end: eo, r: r}
		if eo > so {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return EditResult{Version: s.version}, nil
	}

	ops := make([]buffer.EditOperation, 0, nonEmpty)
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].end == spans[i].start {
			continue
		}
		op, rerr := s.buf.Replace(spans[i].r, "")
		if rerr != nil {
			return EditResult{}, rerr
		}
		ops = append(ops, op)
	}

	if intent.Cursor == AllCursors {
		next := make([]cursor.Cursor, len(spans))
		delta := 0
		for i, sp := range spans {
			p, perr := s.buf.PositionAt(sp.start + delta)
			if perr != nil {
				return EditResult{}, perr
			}
			next[i] = cursor.NewCaret(p)
			delta -= sp.end - sp.start
		}
		s.cursors.Replace(next)
	} else {
		op := ops[0]
		next := make([]cursor.Cursor, len(before))
		for i, c := range before {
			if i == intent.Cursor {
				next[i] = cursor.NewCaret(op.Range.Start)
			} else {
				next[i] = cursor.TransformCursor(c, op)
			}
		}
		s.cursors.Replace(next)
	}

	after := s.cursors.All()
	if len(ops) > 1 {
		s.hist.RecordGroup(ops, before, after)
	} else {
		s.hist.Record(ops[0], false, before, after)
	}

	s.modified = true
	s.bump()
	return EditResult{Version: s.version, Ops: ops}, nil
}

// deleteRangeFor resolves the range a backspace or forward delete
// removes for one cursor. Selections delete themselves; carets delete
// one grapheme cluster, joining lines at line boundaries. An empty
// range means nothing to remove.
func (s *EditorState) deleteRangeFor(c cursor.Cursor, forward bool) (buffer.PointRange, error) {
	if c.HasSelection() {
		return c.Range(), nil
	}

	p := c.Head
	line, err := s.buf.LineText(p.Line)
	if err != nil {
		return buffer.PointRange{}, err
	}

	if !forward {
		if p.Column > 0 {
			n := lastGraphemeRunes(line[:runeIndex(line, p.Column)])
			return buffer.NewPointRange(buffer.Position{Line: p.Line, Column: p.Column - n}, p), nil
		}
		if p.Line > 0 {
			prevLen, lerr := s.buf.LineLen(p.Line - 1)
			if lerr != nil {
				return buffer.PointRange{}, lerr
			}
			return buffer.NewPointRange(buffer.Position{Line: p.Line - 1, Column: prevLen}, p), nil
		}
		return buffer.NewPointRange(p, p), nil
	}

	lineLen := uint32(utf8.RuneCountInString(line))
	if p.Column < lineLen {
		n := firstGraphemeRunes(line[runeIndex(line, p.Column):])
		return buffer.NewPointRange(p, buffer.Position{Line: p.Line, Column: p.Column + n}), nil
	}
	if p.Line+1 < s.buf.LineCount() {
		return buffer.NewPointRange(p, buffer.Position{Line: p.Line + 1, Column: 0}), nil
	}
	return buffer.NewPointRange(p, p), nil
}

// replaceRange replaces an explicit range independent of cursors and
// always starts a new undo unit. Cursors are transformed across the
// edit like any other.
func (s *EditorState) replaceRange(r buffer.PointRange, text string) (EditResult, error) {
	before := s.cursors.All()

	op, err := s.buf.Replace(r, text)
	if err != nil {
		return EditResult{}, err
	}

	s.cursors.ApplyEdit(op)
	after := s.cursors.All()
	s.hist.Record(op, true, before, after)

	s.modified = true
	s.bump()
	return EditResult{Version: s.version, Ops: []buffer.EditOperation{op}}, nil
}

// resolveTargets returns the cursors an intent applies to, in document
// order.
func (s *EditorState) resolveTargets(index int) ([]cursor.Cursor, error) {
	if index == AllCursors {
		return s.cursors.All(), nil
	}
	c, ok := s.cursors.Get(index)
	if !ok {
		return nil, fmt.Errorf("%w: no cursor at index %d", ErrInvalidIntent, index)
	}
	return []cursor.Cursor{c}, nil
}

// fullRange returns the range covering the entire document.
func (s *EditorState) fullRange() buffer.PointRange {
	last := s.buf.LineCount() - 1
	lastLen, _ := s.buf.LineLen(last)
	return buffer.NewPointRange(buffer.Position{}, buffer.Position{Line: last, Column: lastLen})
}

// ===========================================================================
// History
// ===========================================================================

// Undo reverts the most recent undo unit. It returns false with a nil
// error when the undo stack is empty; content, cursors, and version are
// untouched in that case.
func (s *EditorState) Undo() (bool, error) {
	if s.cfg.ReadOnly {
		return false, ErrReadOnly
	}
	res, err := s.hist.Undo(s.buf, s.cursors)
	if err != nil {
		return false, err
	}
	if res == nil {
		return false, nil
	}
	s.modified = s.contentSum() != s.savedSum
	s.bump()
	return true, nil
}

// Redo re-applies the most recently undone unit. It returns false with
// a nil error when the redo stack is empty.
func (s *EditorState) Redo() (bool, error) {
	if s.cfg.ReadOnly {
		return false, ErrReadOnly
	}
	res, err := s.hist.Redo(s.buf, s.cursors)
	if err != nil {
		return false, err
	}
	if res == nil {
		return false, nil
	}
	s.modified = s.contentSum() != s.savedSum
	s.bump()
	return true, nil
}

// CanUndo reports whether an undo unit is available.
func (s *EditorState) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether a redo unit is available.
func (s *EditorState) CanRedo() bool { return s.hist.CanRedo() }

// CommitBoundary seals the current undo unit so the next edit starts a
// fresh one. Hosts call this on focus loss or explicit save points.
func (s *EditorState) CommitBoundary() { s.hist.Boundary() }

// ===========================================================================
// Cursors
// ===========================================================================

// MovePrimary places the primary cursor at a position, extending the
// selection when extend is set. The position must be valid for the
// current content; stale positions are rejected, never clamped.
func (s *EditorState) MovePrimary(to buffer.Position, extend bool) error {
	if _, err := s.buf.OffsetAt(to); err != nil {
		return err
	}
	s.cursors.MovePrimary(to, extend)
	s.hist.Boundary()
	return nil
}

// AddCursor adds a caret at a position. Adding on top of an existing
// cursor merges with it during normalization.
func (s *EditorState) AddCursor(at buffer.Position) error {
	if _, err := s.buf.OffsetAt(at); err != nil {
		return err
	}
	s.cursors.Add(at)
	s.hist.Boundary()
	return nil
}

// MoveHorizontal moves the primary cursor by delta code points,
// crossing line boundaries and clamping at the document edges.
func (s *EditorState) MoveHorizontal(delta int, extend bool) {
	off, err := s.buf.OffsetAt(s.cursors.Primary().Head)
	if err != nil {
		return
	}
	text := s.buf.Text()
	for delta > 0 && off < len(text) {
		_, n := utf8.DecodeRuneInString(text[off:])
		off += n
		delta--
	}
	for delta < 0 && off > 0 {
		_, n := utf8.DecodeLastRuneInString(text[:off])
		off -= n
		delta++
	}
	p, err := s.buf.PositionAt(off)
	if err != nil {
		return
	}
	s.cursors.MovePrimary(p, extend)
	s.hist.Boundary()
}

// MoveVertical moves the primary cursor by delta lines, preserving the
// preferred column across short lines.
func (s *EditorState) MoveVertical(delta int, extend bool) {
	prim := s.cursors.Primary()
	pref := prim.PreferredColumn
	if pref == cursor.NoPreferredColumn {
		pref = int(prim.Head.Column)
	}

	line := int(prim.Head.Line) + delta
	if line < 0 {
		line = 0
	}
	if max := int(s.buf.LineCount()) - 1; line > max {
		line = max
	}

	lineLen, err := s.buf.LineLen(uint32(line))
	if err != nil {
		return
	}
	col := uint32(pref)
	if col > lineLen {
		col = lineLen
	}

	s.cursors.MovePrimary(buffer.Position{Line: uint32(line), Column: col}, extend)
	s.cursors.SetPrimaryPreferred(pref)
	s.hist.Boundary()
}

// ClearSecondaryCursors drops all cursors except the primary.
func (s *EditorState) ClearSecondaryCursors() {
	s.cursors.ClearSecondary()
	s.hist.Boundary()
}

// Cursors returns a copy of all cursors in document order.
func (s *EditorState) Cursors() []cursor.Cursor { return s.cursors.All() }

// PrimaryCursor returns the primary cursor.
func (s *EditorState) PrimaryCursor() cursor.Cursor { return s.cursors.Primary() }

// CursorCount returns the number of cursors.
func (s *EditorState) CursorCount() int { return s.cursors.Count() }

// ===========================================================================
// Content and session
// ===========================================================================

// SetContent replaces the whole document. With resetHistory set the
// undo and redo stacks are cleared and a single caret is placed at the
// origin, as when loading a file; otherwise the replacement is a
// normal undoable edit.
func (s *EditorState) SetContent(text string, resetHistory bool) error {
	if s.cfg.ReadOnly {
		return ErrReadOnly
	}
	if !resetHistory {
		_, err := s.ApplyEdit(SetContent(text))
		return err
	}
	s.buf = buffer.New(text)
	s.cursors = cursor.NewSet(buffer.Position{})
	s.hist.Clear()
	s.modified = s.contentSum() != s.savedSum
	s.bump()
	return nil
}

// MarkSaved records the current content as the saved baseline and
// clears the modified flag. Undoing back to this exact content clears
// the flag again. Saving is a boundary event: edits after it undo
// separately from edits before it.
func (s *EditorState) MarkSaved() {
	s.savedSum = s.contentSum()
	s.modified = false
	s.hist.Boundary()
}

// Text returns the full document text.
func (s *EditorState) Text() string { return s.buf.Text() }

// Len returns the document length in bytes.
func (s *EditorState) Len() int { return s.buf.Len() }

// LineCount returns the number of lines.
func (s *EditorState) LineCount() uint32 { return s.buf.LineCount() }

// LineText returns the text of a line without its trailing newline.
func (s *EditorState) LineText(line uint32) (string, error) { return s.buf.LineText(line) }

// LineLen returns the length of a line in code points.
func (s *EditorState) LineLen(line uint32) (uint32, error) { return s.buf.LineLen(line) }

// OffsetAt converts a position to a byte offset.
func (s *EditorState) OffsetAt(p buffer.Position) (buffer.Offset, error) { return s.buf.OffsetAt(p) }

// PositionAt converts a byte offset to a position.
func (s *EditorState) PositionAt(off buffer.Offset) (buffer.Position, error) {
	return s.buf.PositionAt(off)
}

// Version returns the monotonically increasing state version. It
// advances on every content-affecting mutation, including undo and
// redo.
func (s *EditorState) Version() uint64 { return s.version }

// Modified reports whether the content differs from the last saved
// baseline.
func (s *EditorState) Modified() bool { return s.modified }

// Config returns the session configuration.
func (s *EditorState) Config() config.Config { return s.cfg }

// Language returns the opaque language identifier, or "".
func (s *EditorState) Language() string { return s.language }

// SetLanguage sets the language identifier. The engine never
// interprets it; it is carried for external collaborators.
func (s *EditorState) SetLanguage(lang string) { s.language = lang }

// Snapshot is a point-in-time view of the session handed to
// asynchronous collaborators.
type Snapshot struct {
	Text     string
	Cursors  []cursor.Cursor
	Version  uint64
	Config   config.Config
	Language string
	Modified bool
}

// Snapshot returns a consistent copy of the observable state.
func (s *EditorState) Snapshot() Snapshot {
	return Snapshot{
		Text:     s.buf.Text(),
		Cursors:  s.cursors.All(),
		Version:  s.version,
		Config:   s.cfg,
		Language: s.language,
		Modified: s.modified,
	}
}

func (s *EditorState) bump() {
	s.version++
	if s.listener != nil {
		s.listener(s.version)
	}
}

func (s *EditorState) contentSum() uint64 {
	h := fnv.New64a()
	h.Write([]byte(s.buf.Text()))
	return h.Sum64()
}

// runeIndex returns the byte index of code point col within s.
func runeIndex(s string, col uint32) int {
	i := 0
	for ; col > 0; col-- {
		_, n := utf8.DecodeRuneInString(s[i:])
		i += n
	}
	return i
}

// lastGraphemeRunes returns the code-point length of the final grapheme
// cluster of s.
func lastGraphemeRunes(s string) uint32 {
	var cluster string
	state := -1
	for len(s) > 0 {
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
	}
	return uint32(utf8.RuneCountInString(cluster))
}

// firstGraphemeRunes returns the code-point length of the first
// grapheme cluster of s.
func firstGraphemeRunes(s string) uint32 {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return uint32(utf8.RuneCountInString(cluster))
}
