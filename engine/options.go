package engine

import (
	"time"

	"github.com/dshills/editcore/config"
)

// ChangeListener is notified once per content-affecting mutation with
// the new version. External observers (renderer, highlighter) use it
// or poll Version directly; either way they see a monotonically
// increasing counter.
type ChangeListener func(version uint64)

// Option configures an EditorState at construction.
type Option func(*EditorState)

// WithConfig sets the session configuration.
func WithConfig(cfg config.Config) Option {
	return func(s *EditorState) {
		s.cfg = cfg
	}
}

// WithLanguage sets the opaque language identifier handed through to
// external collaborators such as syntax highlighters.
func WithLanguage(lang string) Option {
	return func(s *EditorState) {
		s.language = lang
	}
}

// WithChangeListener registers a change notification callback.
func WithChangeListener(fn ChangeListener) Option {
	return func(s *EditorState) {
		s.listener = fn
	}
}

// WithCoalesceWindow sets the undo coalescing time window.
func WithCoalesceWindow(d time.Duration) Option {
	return func(s *EditorState) {
		if d > 0 {
			s.coalesceWindow = d
		}
	}
}

// WithMaxUndo caps the undo stack depth.
func WithMaxUndo(n int) Option {
	return func(s *EditorState) {
		if n > 0 {
			s.maxUndo = n
		}
	}
}
