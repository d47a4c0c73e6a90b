package engine

import (
	"errors"

	"github.com/dshills/editcore/engine/buffer"
)

// Errors returned by engine operations.
var (
	// ErrOutOfBounds indicates a position or range outside the current
	// buffer. Positions are never clamped: a stale position is a
	// caller bug and is surfaced immediately.
	ErrOutOfBounds = buffer.ErrOutOfBounds

	// ErrInvalidIntent indicates an edit intent referencing a cursor
	// that does not exist or carrying a malformed range.
	ErrInvalidIntent = errors.New("invalid edit intent")

	// ErrReadOnly indicates a mutation was attempted on a read-only
	// session.
	ErrReadOnly = errors.New("editor is read-only")
)
