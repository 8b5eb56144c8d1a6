// Package viewport tracks the cursor, the selection mark and the visible
// window over the buffer, and reconciles them once per display tick.
package viewport

import (
	"errors"
	"strconv"
	"unicode/utf8"
)

// ErrEmpty is returned by motions on a buffer without lines
var ErrEmpty = errors.New("buffer is empty")

// Position is an absolute location in the file. Col is a byte offset.
type Position struct {
	Col int
	Row int
}

// Less orders positions row-major
func (p Position) Less(o Position) bool {
	return p.Row < o.Row || (p.Row == o.Row && p.Col < o.Col)
}

// Ordered returns a and b with the earlier one first
func Ordered(a, b Position) (Position, Position) {
	if b.Less(a) {
		return b, a
	}
	return a, b
}

// Bounds is the read-only view of the buffer the viewport needs. LineLen is
// the byte length of a row without its terminator.
type Bounds interface {
	Len() int
	Line(row int) (string, bool)
	LineLen(row int) int
}

// defaultTabWidth applies when no tab width was configured
const defaultTabWidth = 4

// Viewport is the visible window. Height and Width are zero until the first tick.
type Viewport struct {
	VOffset int
	HOffset int
	Height  int
	Width   int
	Gutter  int

	// Scrolling marks the last vertical move as user scrolling rather than
	// cursor motion. Consumed by the next Reconcile.
	Scrolling bool
}

// ContentWidth is the number of text columns right of the gutter
func (v Viewport) ContentWidth() int {
	return max(1, v.Width-v.Gutter)
}

// GutterWidth returns the width of the line number column plus its separator
func GutterWidth(lineCount int) int {
	digits := len(strconv.Itoa(lineCount))
	return max(4, digits) + 2
}

// Input is everything Reconcile looks at
type Input struct {
	Cursor Position
	View   Viewport
	Height int
	Width  int
	Lines  Bounds

	// Insert allows the cursor one column past the last rune
	Insert bool
	// TabWidth is how many columns a tab is drawn as
	TabWidth int
}

// Output is the reconciled state
type Output struct {
	Cursor  Position
	View    Viewport
	Changed bool
}

// Reconcile brings cursor and window back in agreement for a window of
// height x width. Cursor motion drags the window, centring the cursor row;
// explicit scrolling drags the cursor to the nearest edge of the window.
// Columns are byte offsets but the horizontal window is measured in drawn
// cells, so tabs and wide runes count for what they take on screen.
// Changed reports that the visible slice differs from the previous tick.
func Reconcile(in Input) Output {
	v := in.View
	cur := in.Cursor
	changed := v.Scrolling
	height := max(1, in.Height)

	if v.Height != height {
		if v.Height != 0 {
			changed = true
		}
		v.Height = height
	}
	v.Width = in.Width

	switch {
	case cur.Row < v.VOffset:
		if v.Scrolling {
			cur.Row = v.VOffset
		} else {
			v.VOffset = max(0, cur.Row-height/2)
		}
		changed = true
	case cur.Row >= v.VOffset+height:
		if v.Scrolling {
			cur.Row = v.VOffset + height - 1
		} else {
			v.VOffset = max(0, cur.Row-height/2)
		}
		changed = true
	}

	var text string
	if in.Lines != nil {
		n := in.Lines.Len()
		if n > 0 {
			cur.Row = min(cur.Row, n-1)
			text = content(in.Lines, cur.Row)
		}
		cur.Col = snap(text, min(cur.Col, maxCol(in.Lines, cur.Row, in.Insert)))
		v.Gutter = GutterWidth(n)
	}

	tab := in.TabWidth
	if tab < 1 {
		tab = defaultTabWidth
	}
	width := v.ContentWidth()
	hoff := snap(text, v.HOffset)
	curX := screenCol(text, cur.Col, tab)
	// cells from off through the end of the cursor cell
	reach := func(off int) int {
		return curX - screenCol(text, off, tab) + cellAt(text, cur.Col, tab)
	}
	if hoff > cur.Col {
		hoff = cur.Col
	} else if reach(hoff) >= width {
		hoff = offsetAt(text, max(0, curX-width/2), tab)
		if hoff > cur.Col || reach(hoff) > width {
			hoff = cur.Col
		}
	}
	if hoff != v.HOffset {
		v.HOffset = hoff
		changed = true
	}

	v.Scrolling = false
	return Output{Cursor: cur, View: v, Changed: changed}
}

// maxCol is the largest column the cursor may occupy on row. Insert mode
// may sit just past the last rune; normal mode stays on its first byte.
func maxCol(lines Bounds, row int, insert bool) int {
	n := lines.LineLen(row)
	if insert || n == 0 {
		return n
	}
	_, size := utf8.DecodeLastRuneInString(content(lines, row))
	return n - size
}

// Kind selects a motion
type Kind int

const (
	// Relative moves by N columns or rows
	Relative Kind = iota
	// Start moves to the first column, or the first row across the buffer
	Start
	// End moves to the last column, or the last row across the buffer
	End
)

// Motion is a cursor move request
type Motion struct {
	Kind Kind
	N    int
}

// CursorViewport owns the cursor, the mark and the window
type CursorViewport struct {
	cursor   Position
	mark     *Position
	view     Viewport
	tabWidth int
}

// New returns a cursor at the origin with no mark
func New() *CursorViewport {
	return &CursorViewport{tabWidth: defaultTabWidth}
}

// SetTabWidth sets how many columns a tab is drawn as
func (c *CursorViewport) SetTabWidth(n int) {
	if n > 0 {
		c.tabWidth = n
	}
}

// Cursor returns the cursor position
func (c *CursorViewport) Cursor() Position {
	return c.cursor
}

// SetCursor moves the cursor without validation; call Clamp afterwards
func (c *CursorViewport) SetCursor(p Position) {
	c.cursor = p
}

// Mark returns the mark if set
func (c *CursorViewport) Mark() (Position, bool) {
	if c.mark == nil {
		return Position{}, false
	}
	return *c.mark, true
}

// SetMark places the mark
func (c *CursorViewport) SetMark(p Position) {
	c.mark = &p
}

// ClearMark removes the mark
func (c *CursorViewport) ClearMark() {
	c.mark = nil
}

// View returns the window state
func (c *CursorViewport) View() Viewport {
	return c.view
}

// Update runs Reconcile for the current tick and stores the result
func (c *CursorViewport) Update(height, width int, lines Bounds, insert bool) bool {
	out := Reconcile(Input{
		Cursor: c.cursor,
		View:   c.view,
		Height: height,
		Width:  width,
		Lines:    lines,
		Insert:   insert,
		TabWidth: c.tabWidth,
	})
	c.cursor = out.Cursor
	c.view = out.View
	return out.Changed
}

// Move applies a motion. Relative motions clamp instead of failing. Columns
// step over whole runes.
func (c *CursorViewport) Move(m Motion, withinLine bool, lines Bounds) (Position, error) {
	n := lines.Len()
	if n == 0 {
		c.cursor = Position{}
		return c.cursor, ErrEmpty
	}

	cur := c.cursor
	if withinLine {
		last := maxCol(lines, cur.Row, false)
		switch m.Kind {
		case Relative:
			text := content(lines, cur.Row)
			cur.Col = min(step(text, snap(text, cur.Col), m.N), last)
		case Start:
			cur.Col = 0
		case End:
			cur.Col = last
		}
	} else {
		switch m.Kind {
		case Relative:
			cur.Row = clamp(cur.Row+m.N, 0, n-1)
		case Start:
			cur.Row = 0
		case End:
			cur.Row = n - 1
		}
		cur.Col = snap(content(lines, cur.Row), min(cur.Col, maxCol(lines, cur.Row, false)))
	}

	c.cursor = cur
	return cur, nil
}

// PageScroll shifts the window by whole pages, clamped to the document.
func (c *CursorViewport) PageScroll(pages, lineCount int) {
	limit := max(0, lineCount-c.view.Height)
	c.view.VOffset = clamp(c.view.VOffset+pages*c.view.Height, 0, limit)
	c.view.Scrolling = true
}

// Clamp pulls cursor and mark back inside the buffer after an edit
func (c *CursorViewport) Clamp(lines Bounds, insert bool) {
	c.cursor = clampPosition(c.cursor, lines, insert)
	if c.mark != nil {
		m := clampPosition(*c.mark, lines, true)
		c.mark = &m
	}
}

func clampPosition(p Position, lines Bounds, insert bool) Position {
	n := lines.Len()
	if n == 0 {
		return Position{}
	}
	p.Row = clamp(p.Row, 0, n-1)
	p.Col = snap(content(lines, p.Row), clamp(p.Col, 0, maxCol(lines, p.Row, insert)))
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
