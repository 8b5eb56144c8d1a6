package viewport

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// CellWidth is how many terminal columns r takes once drawn. Tabs expand to
// tabWidth; runes that cannot be drawn take one column for their placeholder.
func CellWidth(r rune, tabWidth int) int {
	switch {
	case r == '\t':
		return tabWidth
	case r == utf8.RuneError, !unicode.IsPrint(r):
		return 1
	}
	return max(1, runewidth.RuneWidth(r))
}

// content returns the text of row without its terminator
func content(lines Bounds, row int) string {
	line, _ := lines.Line(row)
	return line[:min(len(line), lines.LineLen(row))]
}

// snap moves col back to the start of the rune it falls in
func snap(s string, col int) int {
	for col > 0 && col < len(s) && !utf8.RuneStart(s[col]) {
		col--
	}
	return col
}

// step moves col by n runes through s, stopping at either end
func step(s string, col, n int) int {
	for ; n > 0 && col < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[col:])
		col += size
	}
	for ; n < 0 && col > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(s[:col])
		col -= size
	}
	return col
}

// screenCol is the screen column where byte offset col of s is drawn
func screenCol(s string, col, tabWidth int) int {
	x := 0
	for i, r := range s {
		if i >= col {
			break
		}
		x += CellWidth(r, tabWidth)
	}
	if col > len(s) {
		x += col - len(s)
	}
	return x
}

// cellAt is the width of the cell drawn at byte offset col; past the end the
// cursor takes one column
func cellAt(s string, col, tabWidth int) int {
	if col >= len(s) {
		return 1
	}
	r, _ := utf8.DecodeRuneInString(s[col:])
	return CellWidth(r, tabWidth)
}

// offsetAt returns the first rune start drawn at or right of screen column x
func offsetAt(s string, x, tabWidth int) int {
	pos := 0
	for i, r := range s {
		if pos >= x {
			return i
		}
		pos += CellWidth(r, tabWidth)
	}
	return len(s) + max(0, x-pos)
}
