package buffer

import (
	"sort"
	"strings"
)

// lineIndex tracks the byte offset of the start of every line.
// starts[0] is always 0; a trailing newline opens a final empty line.
// The index is patched incrementally on every edit so queries never
// observe a stale view.
type lineIndex struct {
	starts []int
}

// newLineIndex builds an index for the given text.
func newLineIndex(text string) lineIndex {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	starts[0] = 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return lineIndex{starts: starts}
}

// lineCount returns the number of lines.
func (ix *lineIndex) lineCount() int {
	return len(ix.starts)
}

// start returns the byte offset of the start of the given line.
func (ix *lineIndex) start(line int) int {
	return ix.starts[line]
}

// lineAt returns the line containing the given byte offset: the
// greatest line whose start is <= offset. O(log n).
func (ix *lineIndex) lineAt(offset int) int {
	return sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	}) - 1
}

// splice patches the index for a replacement of [start, end) with the
// given text. Line starts inside the removed span are dropped, starts
// for newlines in the inserted text are added, and everything after
// the edit shifts by the length delta.
func (ix *lineIndex) splice(start, end int, inserted string) {
	// First start strictly inside the removed span.
	drop := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > start
	})
	// First start past the removed span; these survive, shifted.
	keep := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > end
	})

	delta := len(inserted) - (end - start)
	tail := ix.starts[keep:]

	patched := make([]int, 0, drop+strings.Count(inserted, "\n")+len(tail))
	patched = append(patched, ix.starts[:drop]...)
	for i := 0; i < len(inserted); i++ {
		if inserted[i] == '\n' {
			patched = append(patched, start+i+1)
		}
	}
	for _, s := range tail {
		patched = append(patched, s+delta)
	}
	ix.starts = patched
}
