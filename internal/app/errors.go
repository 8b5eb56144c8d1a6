package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/willibrandon/hire/internal/buffer"
)

// ErrNotTerminal is returned when stdout cannot host the editor
var ErrNotTerminal = errors.New("stdout is not a terminal")

// ThemeError reports a syntax theme chroma does not know
type ThemeError struct {
	Theme string
	Err   error
}

func (e *ThemeError) Error() string {
	return fmt.Sprintf("syntax theme %q: %v", e.Theme, e.Err)
}

func (e *ThemeError) Unwrap() error {
	return e.Err
}

// FormatStartupError formats a failure before the editor starts with
// actionable guidance
func FormatStartupError(err error) string {
	errMsg := err.Error()

	var ioErr *buffer.IOError
	if errors.As(err, &ioErr) {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return fmt.Sprintf(
				"File not found: %s\n\n"+
					"Troubleshooting steps:\n"+
					"  1. Check the path for typos\n"+
					"  2. Create the file first: touch %s\n"+
					"\nOriginal error: %s", ioErr.Path, ioErr.Path, errMsg)
		case errors.Is(err, fs.ErrPermission):
			return fmt.Sprintf(
				"Permission denied: %s\n\n"+
					"Troubleshooting steps:\n"+
					"  1. Check the file mode: ls -l %s\n"+
					"  2. Verify you own the file or its directory\n"+
					"\nOriginal error: %s", ioErr.Path, ioErr.Path, errMsg)
		}
		return fmt.Sprintf("Cannot read %s:\n\n%s", ioErr.Path, errMsg)
	}

	var themeErr *ThemeError
	if errors.As(err, &themeErr) {
		return fmt.Sprintf(
			"Unknown syntax theme: %s\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Set ui.syntax_theme to a chroma style, e.g. base16-snazzy, monokai, dracula, hire\n"+
				"  2. Or override it for one run: HIRE_UI_SYNTAX_THEME=monokai\n"+
				"\nOriginal error: %s", themeErr.Theme, errMsg)
	}

	if errors.Is(err, ErrNotTerminal) {
		return "hire needs an interactive terminal.\n\n" +
			"Run it directly in a terminal rather than through a pipe or redirect."
	}

	if strings.Contains(errMsg, "config") || strings.Contains(errMsg, "keymap") ||
		strings.HasPrefix(errMsg, "options.") || strings.HasPrefix(errMsg, "ui.") {
		return fmt.Sprintf(
			"Configuration error:\n\n"+
				"%s\n\n"+
				"Troubleshooting steps:\n"+
				"  1. Check config.yaml against `hire config init --force` output\n"+
				"  2. Unset HIRE_* environment variables to rule them out\n", errMsg)
	}

	// Default error formatting
	return fmt.Sprintf(
		"hire failed to start:\n\n"+
			"%s\n\n"+
			"Run with --debug flag for detailed logs.", errMsg)
}
