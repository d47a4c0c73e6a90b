// Package config defines the per-session editor configuration.
//
// A Config is an immutable-per-session value object: the engine reads
// it but never changes it. Most fields are presentation hints carried
// for external collaborators (renderer, gutter); TabSize, InsertSpaces,
// and ReadOnly affect engine behavior directly.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds editor session settings.
type Config struct {
	// TabSize is the tab width in columns.
	TabSize int `toml:"tab-size"`
	// InsertSpaces makes the Tab key insert spaces instead of a tab
	// character. This affects buffer content, not just display.
	InsertSpaces bool `toml:"insert-spaces"`
	// WordWrap enables soft wrapping in the renderer.
	WordWrap bool `toml:"word-wrap"`
	// ShowLineNumbers enables the line number gutter.
	ShowLineNumbers bool `toml:"show-line-numbers"`
	// HighlightCurrentLine highlights the primary cursor's line.
	HighlightCurrentLine bool `toml:"highlight-current-line"`
	// ShowWhitespace renders whitespace characters visibly.
	ShowWhitespace bool `toml:"show-whitespace"`
	// AutoIndent carries the leading whitespace of the previous line
	// onto new lines. Presentation-layer concern; carried for hosts.
	AutoIndent bool `toml:"auto-indent"`
	// ReadOnly rejects all content mutations.
	ReadOnly bool `toml:"read-only"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		TabSize:              4,
		InsertSpaces:         true,
		WordWrap:             true,
		ShowLineNumbers:      true,
		HighlightCurrentLine: true,
		ShowWhitespace:       false,
		AutoIndent:           true,
		ReadOnly:             false,
	}
}

// Load reads a TOML config file over the defaults. Missing fields keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.TabSize < 1 {
		cfg.TabSize = Default().TabSize
	}
	return cfg, nil
}

// IndentString returns the text the Tab key inserts: spaces when
// InsertSpaces is set, otherwise a tab character.
func (c Config) IndentString() string {
	if c.InsertSpaces {
		return strings.Repeat(" ", c.TabSize)
	}
	return "\t"
}
