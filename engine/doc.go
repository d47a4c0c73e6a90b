// Package engine is the editor state engine: the headless core that
// owns document text, cursors, history, and configuration for one
// editing session.
//
// The engine is deliberately free of I/O and rendering. Hosts feed it
// EditIntent values describing what the user asked for; the engine
// resolves them against the current state through the single mutation
// entry point, EditorState.ApplyEdit, and everything downstream
// (history recording, cursor transformation, version bump, change
// notification) happens inside that call. There is no way to mutate
// content that bypasses history.
//
// Layering:
//
//	buffer  - text plus line index, position/offset conversion
//	cursor  - multi-cursor set with overlap merging and edit transforms
//	history - coalescing undo/redo over invertible operations
//	engine  - EditorState tying them together
//
// A monotonically increasing version counter advances on every
// content-affecting mutation, including undo and redo. Asynchronous
// collaborators (syntax highlighting, search) take a Snapshot, work on
// it, and discard their result if the version has moved on.
package engine
