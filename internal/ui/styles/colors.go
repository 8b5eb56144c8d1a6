// Package styles provides centralized Lipgloss styling for the hire UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colours one UI theme draws with
type Palette struct {
	Text       lipgloss.Color
	Background lipgloss.Color
	Muted      lipgloss.Color // line numbers, separators
	Accent     lipgloss.Color // the "y" of a question
	Error      lipgloss.Color
	Cursor     lipgloss.Color // block cursor background
	CursorOn   lipgloss.Color // cursor inside a selection
}

// Color palettes
var (
	// Dark is the default palette
	Dark = Palette{
		Text:       lipgloss.Color("#F8F8F2"),
		Background: lipgloss.Color("#1A1A2E"),
		Muted:      lipgloss.Color("8"),
		Accent:     lipgloss.Color("6"),
		Error:      lipgloss.Color("9"),
		Cursor:     lipgloss.Color("15"),
		CursorOn:   lipgloss.Color("0"),
	}

	// Light suits terminals with a pale background
	Light = Palette{
		Text:       lipgloss.Color("#383A42"),
		Background: lipgloss.Color("#FAFAFA"),
		Muted:      lipgloss.Color("245"),
		Accent:     lipgloss.Color("#0184BC"),
		Error:      lipgloss.Color("#E45649"),
		Cursor:     lipgloss.Color("0"),
		CursorOn:   lipgloss.Color("15"),
	}
)

// PaletteFor returns the palette of a ui.theme value; unknown names get Dark
func PaletteFor(theme string) Palette {
	if theme == "light" {
		return Light
	}
	return Dark
}
