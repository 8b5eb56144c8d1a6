package engine

import (
	"strings"

	"github.com/willibrandon/hire/internal/buffer"
	"github.com/willibrandon/hire/internal/command"
	"github.com/willibrandon/hire/internal/viewport"
)

// handleInsert types one key in insert mode. Keys without an insert
// meaning are ignored.
func (e *Engine) handleInsert(key command.Key) error {
	e.message = ""

	switch key.Code {
	case command.CodeEsc:
		e.mode = ModeNormal
		e.cv.Clamp(e.buf, false)
		return nil
	case command.CodeChar:
		return e.insertText(string(key.Rune))
	case command.CodeTab:
		if e.opts.tabIndent {
			return e.insertText(strings.Repeat(" ", e.opts.tabWidth))
		}
		return e.insertText("\t")
	case command.CodeEnter:
		return e.splitLine()
	case command.CodeBackspace:
		refresh, err := e.backwardChar()
		if refresh {
			e.refresh = true
		}
		return err
	}
	return nil
}

// insertText inserts s at the cursor and moves past it
func (e *Engine) insertText(s string) error {
	line, ok := e.currentLine()
	if !ok {
		return errEmptyFile
	}

	cur := e.cv.Cursor()
	col := min(cur.Col, buffer.ContentLen(line))
	if err := e.buf.ReplaceRange(cur.Row, cur.Row, []string{line[:col] + s + line[col:]}); err != nil {
		return err
	}
	e.cv.SetCursor(viewport.Position{Row: cur.Row, Col: col + len(s)})
	e.afterEdit()
	e.refresh = true
	return nil
}

// splitLine breaks the row at the cursor. The head keeps a terminator and
// the tail keeps whatever terminator the row had.
func (e *Engine) splitLine() error {
	line, ok := e.currentLine()
	if !ok {
		return errEmptyFile
	}

	cur := e.cv.Cursor()
	content := buffer.Content(line)
	term := buffer.Terminator(line)
	col := min(cur.Col, len(content))

	eol := term
	if eol == "" {
		eol = e.lineEnding()
	}
	head := content[:col] + eol
	tail := content[col:] + term
	if err := e.buf.ReplaceRange(cur.Row, cur.Row, []string{head, tail}); err != nil {
		return err
	}
	e.cv.SetCursor(viewport.Position{Row: cur.Row + 1})
	e.afterEdit()
	e.refresh = true
	return nil
}
