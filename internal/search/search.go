// Package search keeps the matches of the current search pattern and the
// selection cursor stepping through them.
package search

import (
	"strings"

	"github.com/willibrandon/hire/internal/buffer"
)

// Match is one occurrence of the pattern: Len bytes starting at (Row, Col)
type Match struct {
	Row int
	Col int
	Len int
}

// Before reports whether m starts strictly before (row, col) in row-major order
func (m Match) Before(row, col int) bool {
	return m.Row < row || (m.Row == row && m.Col < col)
}

// Index holds the last search. selected is -1 while nothing is selected.
type Index struct {
	pattern  string
	matches  []Match
	selected int
}

// New returns an empty index
func New() *Index {
	return &Index{selected: -1}
}

// Find scans every line for non-overlapping occurrences of pattern,
// left to right within a line and top to bottom across lines.
// Terminators never take part in a match.
func Find(lines []string, pattern string) []Match {
	if pattern == "" {
		return nil
	}

	var matches []Match
	for row, line := range lines {
		content := buffer.Content(line)
		start := 0
		for {
			idx := strings.Index(content[start:], pattern)
			if idx == -1 {
				break
			}
			matches = append(matches, Match{Row: row, Col: start + idx, Len: len(pattern)})
			start += idx + len(pattern)
		}
	}
	return matches
}

// Rebuild replaces the index content and drops the selection
func (ix *Index) Rebuild(pattern string, matches []Match) {
	ix.pattern = pattern
	ix.matches = matches
	ix.selected = -1
}

// Refresh swaps in matches recomputed after an edit. The pattern stays. The
// selection follows the selected match while one still starts at its
// position, and is dropped otherwise.
func (ix *Index) Refresh(matches []Match) {
	prev, ok := ix.Current()
	ix.matches = matches
	ix.selected = -1
	if !ok {
		return
	}
	for i, m := range matches {
		if m.Row == prev.Row && m.Col == prev.Col {
			ix.selected = i
			return
		}
	}
}

// Clear forgets the pattern, the matches and the selection
func (ix *Index) Clear() {
	ix.pattern = ""
	ix.matches = nil
	ix.selected = -1
}

// HasHistory reports whether a search is remembered
func (ix *Index) HasHistory() bool {
	return ix.pattern != "" || len(ix.matches) > 0 || ix.selected >= 0
}

// NearestNext selects the first match at or after (row, col), wrapping to
// the first match when every match lies before it.
func (ix *Index) NearestNext(row, col int) (Match, bool) {
	if len(ix.matches) == 0 {
		return Match{}, false
	}

	ix.selected = 0
	for i, m := range ix.matches {
		if !m.Before(row, col) {
			ix.selected = i
			break
		}
	}
	return ix.matches[ix.selected], true
}

// Advance moves the selection one match forward or backward, circularly.
// With nothing selected, forward selects the first match and backward the last.
func (ix *Index) Advance(forward bool) (Match, bool) {
	n := len(ix.matches)
	if n == 0 {
		return Match{}, false
	}

	switch {
	case ix.selected < 0 && forward:
		ix.selected = 0
	case ix.selected < 0:
		ix.selected = n - 1
	case forward:
		ix.selected = (ix.selected + 1) % n
	default:
		ix.selected = (ix.selected - 1 + n) % n
	}
	return ix.matches[ix.selected], true
}

// Contains reports whether the byte at (row, col) belongs to a match
func (ix *Index) Contains(row, col int) bool {
	for _, m := range ix.matches {
		if m.Row > row {
			return false
		}
		if m.Row == row && col >= m.Col && col < m.Col+m.Len {
			return true
		}
	}
	return false
}

// Current returns the selected match
func (ix *Index) Current() (Match, bool) {
	if ix.selected < 0 {
		return Match{}, false
	}
	return ix.matches[ix.selected], true
}

// Selected returns the selected index, or -1
func (ix *Index) Selected() int {
	return ix.selected
}

// Len returns the number of matches
func (ix *Index) Len() int {
	return len(ix.matches)
}

// Pattern returns the pattern of the last search
func (ix *Index) Pattern() string {
	return ix.pattern
}

// Matches returns a copy of the matches
func (ix *Index) Matches() []Match {
	return append([]Match(nil), ix.matches...)
}
