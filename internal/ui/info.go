package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mitchellh/go-wordwrap"

	"github.com/willibrandon/hire/internal/engine"
	"github.com/willibrandon/hire/internal/ui/styles"
)

// InfoLine renders the bottom area for a window width. It is one row,
// except that a long or multi-line error wraps onto as many rows as it needs.
// The first of these wins: the oldest error, the pending question, the
// search prompt, then the mode and status signs.
func InfoLine(st State, s styles.Styles, width int) string {
	if width <= 0 {
		return ""
	}

	if msg, ok := st.CurrentError(); ok {
		return errorLines(msg, s, width)
	}

	if ask := st.Ask(); ask != "" {
		line := ask + " (" + s.Yes.Render(string(st.ConfirmKey())) + " for yes)"
		return ansi.Truncate(line, width, "")
	}

	if text, cursor, ok := st.Prompt(); ok {
		return ansi.Truncate("/"+promptLine(text, cursor, s), width, "")
	}

	var left string
	if st.Mode() == engine.ModeInsert {
		left = s.Insert.Render(" --INSERT--")
	} else if msg := st.Message(); msg != "" {
		left = msg
	}

	var right strings.Builder
	if selected, total, ok := st.SearchSummary(); ok && selected > 0 {
		fmt.Fprintf(&right, "[%d/%d] ", selected, total)
	}
	if st.Dirty() {
		right.WriteString(s.Modified.Render("*  "))
	} else {
		right.WriteString("   ")
	}

	return join(left, right.String(), width)
}

// join places left and right on one row, giving up left text when they collide
func join(left, right string, width int) string {
	rw := lipgloss.Width(right)
	if rw >= width {
		return ansi.Truncate(right, width, "")
	}
	left = ansi.Truncate(left, width-rw, "")
	gap := width - rw - lipgloss.Width(left)
	return left + strings.Repeat(" ", gap) + right
}

func errorLines(msg string, s styles.Styles, width int) string {
	// leave room for the acknowledgement block
	wrapAt := uint(max(1, width-1))

	var rows []string
	for _, part := range strings.Split(msg, "\n") {
		for _, row := range strings.Split(wordwrap.WrapString(part, wrapAt), "\n") {
			rows = append(rows, ansi.Truncate(row, int(wrapAt), ""))
		}
	}
	for i, row := range rows {
		rows[i] = s.Error.Render(row)
	}
	rows[len(rows)-1] += s.ErrorEnd.Render(" ")
	return strings.Join(rows, "\n")
}

func promptLine(text string, cursor int, s styles.Styles) string {
	runes := []rune(text)
	if cursor >= len(runes) {
		return text + s.Prompt.Render(" ")
	}
	return string(runes[:cursor]) + s.Prompt.Render(string(runes[cursor])) + string(runes[cursor+1:])
}
