// Package buffer implements the document text store for the editor
// engine.
//
// A TextBuffer holds the content as a contiguous string together with a
// line-start offset index, giving O(log n) conversion between byte
// offsets and (line, column) positions. Columns are measured in code
// points, not bytes and not rendered width.
//
// All mutation goes through Replace, which validates its range against
// the current content, splices the text, patches the line index in the
// same step, and returns the EditOperation that was applied. The
// returned operation carries the removed text and is invertible, which
// is what the history package builds undo units from.
//
// The buffer performs no change notification and holds no locks; it is
// owned and serialized by a single EditorState.
package buffer
