// Package cursor implements multi-cursor and selection management for
// the editor engine.
//
// A Cursor is an anchor/head pair of buffer positions; anchor == head
// is a caret. A Set keeps its cursors sorted by start position and
// merges overlapping or touching cursors, so no two selections ever
// intersect and at least one cursor always exists. When cursors merge,
// the head orientation of the most recently moved cursor wins.
//
// The set never validates positions against buffer content; the owning
// editor state does that before handing positions in. After any buffer
// edit the owner calls ApplyEdit so cursors that did not originate the
// edit are remapped across it.
package cursor
