// Package history implements coalescing undo/redo for the editor
// engine.
//
// Applied operations are recorded into units: a unit is one undo step.
// Consecutive operations of the same kind (pure insert or pure delete)
// that are adjacent in the buffer and arrive within the coalescing
// window share a unit, so rapid typing undoes as a word rather than a
// character at a time. Boundary events (paste, cursor jumps, explicit
// commits) seal the current unit.
//
// The timeline is strictly linear: recording anything discards the
// redo stack. Undo and redo move units between the two stacks and
// never lose them, and calling either on an empty stack is a defined
// no-op rather than an error.
package history
