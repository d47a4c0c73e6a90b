// Package stats computes document statistics for status lines and
// document summaries.
package stats

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// WordsPerMinute is the reading speed used for the estimated reading
// time.
const WordsPerMinute = 200

// Stats summarizes a document's content.
type Stats struct {
	// Bytes is the UTF-8 encoded length.
	Bytes int
	// Runes is the number of Unicode code points.
	Runes int
	// Graphemes is the number of user-perceived characters.
	Graphemes int
	// Words is the number of whitespace-separated words.
	Words int
	// Lines is the number of lines; an empty document has one.
	Lines int
	// ReadingMinutes is the estimated reading time, rounded up to at
	// least one minute for non-empty text.
	ReadingMinutes int
}

// Compute calculates statistics for text in a single pass over the
// grapheme segmenter plus a word scan.
func Compute(text string) Stats {
	s := Stats{
		Bytes: len(text),
		Runes: utf8.RuneCountInString(text),
		Lines: strings.Count(text, "\n") + 1,
		Words: len(strings.Fields(text)),
	}

	rest := text
	state := -1
	for len(rest) > 0 {
		_, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		s.Graphemes++
	}

	if s.Words > 0 {
		s.ReadingMinutes = (s.Words + WordsPerMinute - 1) / WordsPerMinute
	}
	return s
}
