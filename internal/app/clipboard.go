package app

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"golang.design/x/clipboard"

	"github.com/willibrandon/hire/internal/logger"
)

// Clipboard receives yanked text. It prefers the native clipboard and falls
// back to the platform copy tools when the native one cannot start, as on
// headless Linux without X11.
type Clipboard struct {
	native bool
	tools  *toolWriter
}

// NewClipboard detects the native clipboard and the copy tools
func NewClipboard() *Clipboard {
	c := &Clipboard{tools: newToolWriter()}
	if err := clipboard.Init(); err != nil {
		logger.Debug("app: native clipboard unavailable", "error", err)
	} else {
		c.native = true
	}
	return c
}

// WriteText copies text to the system clipboard
func (c *Clipboard) WriteText(text string) error {
	if c.native {
		clipboard.Write(clipboard.FmtText, []byte(text))
		return nil
	}
	return c.tools.Write(text)
}

// toolWriter shells out to pbcopy, xclip, xsel, wl-copy or clip
type toolWriter struct {
	name string
	args []string

	errMsg string
}

func newToolWriter() *toolWriter {
	w := &toolWriter{}
	w.detect()
	return w
}

// detect picks the first copy tool found on PATH
func (w *toolWriter) detect() {
	var candidates [][]string
	switch runtime.GOOS {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "linux", "freebsd", "openbsd", "netbsd":
		candidates = [][]string{
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
			{"wl-copy"},
		}
	case "windows":
		candidates = [][]string{{"clip"}}
	default:
		w.errMsg = fmt.Sprintf("unsupported platform: %s", runtime.GOOS)
		return
	}

	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			w.name, w.args = c[0], c[1:]
			return
		}
	}

	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		w.errMsg = candidates[0][0] + " not found"
	} else {
		w.errMsg = "clipboard tool not found (install xclip, xsel, or wl-copy)"
	}
}

// Write pipes text into the copy tool
func (w *toolWriter) Write(text string) error {
	if w.name == "" {
		return fmt.Errorf("clipboard unavailable: %s", w.errMsg)
	}

	cmd := exec.Command(w.name, w.args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", w.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
