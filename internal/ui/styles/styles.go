package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds every style the editor pane and the info line draw with
type Styles struct {
	Palette Palette

	// Editor pane
	Base          lipgloss.Style
	LineNumber    lipgloss.Style
	LineNumberCur lipgloss.Style
	Separator     lipgloss.Style
	Cursor        lipgloss.Style
	CursorMarked  lipgloss.Style
	Placeholder   lipgloss.Style

	// Info line
	Error    lipgloss.Style
	ErrorEnd lipgloss.Style
	Yes      lipgloss.Style
	Prompt   lipgloss.Style
	Insert   lipgloss.Style
	Modified lipgloss.Style
}

// New builds the styles for a palette. bg overrides the palette background
// when the syntax theme supplies one; pass "" to keep it.
func New(p Palette, bg lipgloss.Color) Styles {
	if bg != "" {
		p.Background = bg
	}

	return Styles{
		Palette: p,

		Base: lipgloss.NewStyle().
			Foreground(p.Text),

		LineNumber: lipgloss.NewStyle().
			Foreground(p.Muted),

		// The cursor row number is drawn inverted
		LineNumberCur: lipgloss.NewStyle().
			Foreground(p.CursorOn).
			Background(p.Cursor),

		Separator: lipgloss.NewStyle().
			Foreground(p.Muted),

		Cursor: lipgloss.NewStyle().
			Foreground(p.Background).
			Background(p.Cursor),

		CursorMarked: lipgloss.NewStyle().
			Foreground(p.Cursor).
			Background(p.CursorOn),

		Placeholder: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Error: lipgloss.NewStyle().
			Foreground(p.Error),

		ErrorEnd: lipgloss.NewStyle().
			Background(p.Cursor),

		Yes: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(p.CursorOn).
			Background(p.Cursor),

		Insert: lipgloss.NewStyle().
			Bold(true),

		Modified: lipgloss.NewStyle().
			Bold(true),
	}
}

// Highlighted returns span drawn inverted, the way marked text and search
// matches appear
func Highlighted(span lipgloss.Style) lipgloss.Style {
	return span.Reverse(true)
}
