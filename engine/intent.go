package engine

import (
	"fmt"

	"github.com/dshills/editcore/engine/buffer"
)

// IntentKind identifies what an edit intent asks for.
type IntentKind uint8

const (
	// IntentInsert types text at every targeted cursor, replacing any
	// selection. Consecutive inserts may coalesce into one undo unit.
	IntentInsert IntentKind = iota
	// IntentPaste inserts text like IntentInsert but always starts a
	// new undo unit.
	IntentPaste
	// IntentDeleteBackward removes the selection, or the grapheme
	// cluster before each caret.
	IntentDeleteBackward
	// IntentDeleteForward removes the selection, or the grapheme
	// cluster after each caret.
	IntentDeleteForward
	// IntentReplaceRange replaces an explicit range, independent of
	// cursors. Used by external find/replace engines.
	IntentReplaceRange
	// IntentSetContent replaces the whole document as a normal,
	// undoable edit.
	IntentSetContent
)

// String returns the intent kind name.
func (k IntentKind) String() string {
	switch k {
	case IntentInsert:
		return "insert"
	case IntentPaste:
		return "paste"
	case IntentDeleteBackward:
		return "delete-backward"
	case IntentDeleteForward:
		return "delete-forward"
	case IntentReplaceRange:
		return "replace-range"
	case IntentSetContent:
		return "set-content"
	default:
		return "unknown"
	}
}

// AllCursors targets every cursor in the set.
const AllCursors = -1

// EditIntent describes a requested mutation. External input sources
// (key handler, paste, find/replace engine) build intents and hand
// them to EditorState.ApplyEdit, which resolves them against the
// current cursors and buffer.
type EditIntent struct {
	Kind   IntentKind
	Text   string
	Range  buffer.PointRange // IntentReplaceRange only
	Cursor int               // target cursor index, or AllCursors
}

// Insert creates a typed-text intent targeting every cursor.
func Insert(text string) EditIntent {
	return EditIntent{Kind: IntentInsert, Text: text, Cursor: AllCursors}
}

// Paste creates a paste intent targeting every cursor.
func Paste(text string) EditIntent {
	return EditIntent{Kind: IntentPaste, Text: text, Cursor: AllCursors}
}

// DeleteBackward creates a backspace intent targeting every cursor.
func DeleteBackward() EditIntent {
	return EditIntent{Kind: IntentDeleteBackward, Cursor: AllCursors}
}

// DeleteForward creates a forward-delete intent targeting every
// cursor.
func DeleteForward() EditIntent {
	return EditIntent{Kind: IntentDeleteForward, Cursor: AllCursors}
}

// ReplaceRange creates an explicit replace-range intent.
func ReplaceRange(r buffer.PointRange, text string) EditIntent {
	return EditIntent{Kind: IntentReplaceRange, Text: text, Range: r, Cursor: AllCursors}
}

// SetContent creates an intent replacing the whole document.
func SetContent(text string) EditIntent {
	return EditIntent{Kind: IntentSetContent, Text: text, Cursor: AllCursors}
}

// At narrows the intent to a single cursor index.
func (i EditIntent) At(cursorIndex int) EditIntent {
	i.Cursor = cursorIndex
	return i
}

// String returns a human-readable representation of the intent.
func (i EditIntent) String() string {
	if i.Kind == IntentReplaceRange {
		return fmt.Sprintf("%s%s %q", i.Kind, i.Range, i.Text)
	}
	return fmt.Sprintf("%s %q", i.Kind, i.Text)
}

// EditResult describes a completed ApplyEdit call.
type EditResult struct {
	// Version is the state version after the edit.
	Version uint64
	// Ops are the operations applied, in application order. Empty when
	// the intent resolved to nothing (backspace at document start).
	Ops []buffer.EditOperation
}
