// Package ui draws the editor pane and the info line as lipgloss-styled
// strings for the Bubble Tea view.
package ui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/willibrandon/hire/internal/buffer"
	"github.com/willibrandon/hire/internal/engine"
	"github.com/willibrandon/hire/internal/highlight"
	"github.com/willibrandon/hire/internal/search"
	"github.com/willibrandon/hire/internal/ui/styles"
	"github.com/willibrandon/hire/internal/viewport"
)

// EmptyText is shown in place of an empty document
const EmptyText = "Empty file (Use newline to open a new line)"

// State is what the panes read from the engine
type State interface {
	Buffer() *buffer.Buffer
	Cursor() viewport.Position
	Mark() (viewport.Position, bool)
	View() viewport.Viewport
	Search() *search.Index
	Mode() engine.Mode
	Prompt() (text string, cursor int, ok bool)
	Ask() string
	Message() string
	CurrentError() (string, bool)
	SearchSummary() (selected, total int, ok bool)
	Dirty() bool
	ConfirmKey() rune
}

// Highlighter splits a line into styled spans
type Highlighter interface {
	Spans(line string) []highlight.Span
}

// Editor renders the visible slice of the buffer with a line number gutter.
// Highlighted rows are kept until Invalidate or until the window moves.
type Editor struct {
	styles   styles.Styles
	hl       Highlighter
	tabWidth int

	first   int
	visible [][]highlight.Span
	valid   bool
}

// NewEditor creates the pane. A nil highlighter draws plain text.
func NewEditor(s styles.Styles, hl Highlighter, tabWidth int) *Editor {
	if tabWidth < 1 {
		tabWidth = 4
	}
	return &Editor{styles: s, hl: hl, tabWidth: tabWidth}
}

// Invalidate drops the highlighted rows so the next Render re-reads them
func (ed *Editor) Invalidate() {
	ed.valid = false
}

func (ed *Editor) rows(buf *buffer.Buffer, v viewport.Viewport) [][]highlight.Span {
	last := min(buf.Len(), v.VOffset+v.Height)
	count := max(0, last-v.VOffset)
	if ed.valid && ed.first == v.VOffset && len(ed.visible) == count {
		return ed.visible
	}

	ed.visible = ed.visible[:0]
	for row := v.VOffset; row < last; row++ {
		line, _ := buf.Line(row)
		ed.visible = append(ed.visible, ed.spans(line))
	}
	ed.first = v.VOffset
	ed.valid = true
	return ed.visible
}

func (ed *Editor) spans(line string) []highlight.Span {
	if ed.hl != nil {
		return ed.hl.Spans(line)
	}
	content := buffer.Content(line)
	if content == "" {
		return nil
	}
	return []highlight.Span{{Text: content, Style: ed.styles.Base}}
}

// Render draws Height rows of at most Width cells
func (ed *Editor) Render(st State) string {
	v := st.View()
	buf := st.Buffer()
	if v.Height == 0 || v.Width == 0 {
		return ""
	}
	if buf.Len() == 0 {
		return ed.styles.Placeholder.Render(ansi.Truncate(EmptyText, v.Width, ""))
	}

	rows := ed.rows(buf, v)
	out := make([]string, v.Height)
	for i := range out {
		if i < len(rows) {
			out[i] = ansi.Truncate(ed.renderRow(st, v, v.VOffset+i, rows[i]), v.Width, "")
		}
	}
	return strings.Join(out, "\n")
}

// cell classes, in drawing priority
type cellClass int

const (
	cellPlain cellClass = iota
	cellHighlighted
	cellCursor
	cellCursorMarked
)

type rowPainter struct {
	b     strings.Builder
	run   strings.Builder
	style lipgloss.Style
	key   [2]int
	open  bool
}

func (p *rowPainter) put(key [2]int, style lipgloss.Style, text string) {
	if p.open && key != p.key {
		p.flush()
	}
	if !p.open {
		p.key, p.style, p.open = key, style, true
	}
	p.run.WriteString(text)
}

func (p *rowPainter) flush() {
	if p.open {
		p.b.WriteString(p.style.Render(p.run.String()))
		p.run.Reset()
		p.open = false
	}
}

func (ed *Editor) renderRow(st State, v viewport.Viewport, row int, spans []highlight.Span) string {
	buf := st.Buffer()
	cur := st.Cursor()
	_, _, prompting := st.Prompt()
	drawCursor := !prompting

	mark, marked := st.Mark()
	lo, hi := viewport.Ordered(cur, mark)
	index := st.Search()

	classify := func(col int) cellClass {
		isCursor := drawCursor && cur.Row == row && cur.Col == col
		lit := index.Contains(row, col) || (marked && within(lo, hi, row, col))
		switch {
		case isCursor && (lit || marked):
			return cellCursorMarked
		case isCursor:
			return cellCursor
		case lit:
			return cellHighlighted
		}
		return cellPlain
	}
	styleOf := func(class cellClass, span lipgloss.Style) lipgloss.Style {
		switch class {
		case cellCursor:
			return ed.styles.Cursor
		case cellCursorMarked:
			return ed.styles.CursorMarked
		case cellHighlighted:
			return styles.Highlighted(span)
		}
		return span
	}

	var p rowPainter

	gutter := v.Gutter
	if gutter == 0 {
		gutter = viewport.GutterWidth(buf.Len())
	}
	number := ed.styles.LineNumber
	if row == cur.Row {
		number = ed.styles.LineNumberCur
	}
	p.b.WriteString(number.Render(fmt.Sprintf("%*d ", gutter-2, row+1)))
	p.b.WriteString(ed.styles.Separator.Render("│"))

	width := v.ContentWidth()
	used, col := 0, 0
	full := false

spans:
	for si, span := range spans {
		text := span.Text
		for len(text) > 0 {
			r, size := utf8.DecodeRuneInString(text)
			text = text[size:]
			if col < v.HOffset {
				col += size
				continue
			}

			cell, w := ed.cell(r)
			if used+w > width {
				full = true
				break spans
			}
			class := classify(col)
			p.put([2]int{si, int(class)}, styleOf(class, span.Style), cell)
			used += w
			col += size
		}
	}

	// the cell past the content shows an insert cursor or a selected terminator
	if !full && used < width && col >= v.HOffset {
		if class := classify(col); class != cellPlain {
			p.put([2]int{len(spans), int(class)}, styleOf(class, ed.styles.Base), " ")
		}
	}

	p.flush()
	return p.b.String()
}

// cell returns what one rune draws as and how many columns it takes
func (ed *Editor) cell(r rune) (string, int) {
	w := viewport.CellWidth(r, ed.tabWidth)
	switch {
	case r == '\t':
		return strings.Repeat(" ", w), w
	case r == utf8.RuneError, !unicode.IsPrint(r), runewidth.RuneWidth(r) == 0:
		return "?", 1
	}
	return string(r), w
}

// within reports whether (row, col) lies in the inclusive region [lo, hi]
func within(lo, hi viewport.Position, row, col int) bool {
	p := viewport.Position{Col: col, Row: row}
	return !p.Less(lo) && !hi.Less(p)
}
