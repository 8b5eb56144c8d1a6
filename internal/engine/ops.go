package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/willibrandon/hire/internal/buffer"
	"github.com/willibrandon/hire/internal/command"
	"github.com/willibrandon/hire/internal/search"
	"github.com/willibrandon/hire/internal/viewport"
)

// invocation carries the key behind an operation. arg is set when key
// completes a pending command, and armed is that command.
type invocation struct {
	key   command.Key
	arg   bool
	armed Pending
}

// repeats reports whether the argument key is the one that armed the command
func (in invocation) repeats() bool {
	return in.arg && in.key == in.armed.Key
}

// exec runs one operation and records whether the content changed
func (e *Engine) exec(op command.Operation, in invocation) error {
	e.message = ""

	var (
		refresh bool
		err     error
	)
	switch op := op.(type) {
	case command.Save:
		err = e.save()
	case command.Mark:
		refresh, err = e.mark(op, in)
	case command.Quit:
		e.quit(in)
	case command.Change:
		refresh, err = e.change(in)
	case command.ChangeInsert:
		err = e.changeInsert(op.Where)
	case command.ReplaceChar:
		refresh, err = e.replaceChar(in)
	case command.BackwardChar:
		refresh, err = e.backwardChar()
	case command.DeleteChar:
		refresh, err = e.deleteChar()
	case command.EscapeCommand:
		refresh = e.escape()
	case command.Delete:
		refresh, err = e.delete(in)
	case command.Search:
		refresh = e.runSearch(op.Pattern, in)
	case command.SearchJump:
		refresh = e.jump(op.Forward)
	case command.NewLine:
		refresh, err = e.newLine(op.Below)
	case command.PageScroll:
		e.cv.PageScroll(op.Pages, e.buf.Len())
		refresh = true
	case command.Move:
		err = e.move(op)
	case command.Yank:
		refresh, err = e.yank()
	default:
		err = &InvalidCommandError{Key: in.key}
	}

	if refresh {
		e.refresh = true
	}
	return err
}

func (e *Engine) save() error {
	n, err := e.buf.Save()
	if err != nil {
		return err
	}
	e.message = fmt.Sprintf("%q %s written", e.buf.Path(), humanize.Bytes(uint64(n)))
	return nil
}

func (e *Engine) mark(op command.Mark, in invocation) (bool, error) {
	if op.Cancel {
		_, had := e.cv.Mark()
		e.cv.ClearMark()
		return had, nil
	}
	if !in.arg {
		e.pending = Pending{Kind: PendingMark, Key: in.key}
		return false, nil
	}
	if !in.repeats() {
		return false, &InvalidCommandError{Key: in.key}
	}
	e.cv.SetMark(e.cv.Cursor())
	return true, nil
}

func (e *Engine) quit(in invocation) {
	if in.arg {
		e.ask = ""
		if in.key == command.Char(e.opts.confirmKey) {
			e.pending = Pending{Kind: PendingQuit, Confirmed: true}
		}
		return
	}

	if e.buf.IsDirty() {
		e.pending = Pending{Kind: PendingQuit, Key: in.key}
		e.ask = "Buffer has unsaved changes, quit anyway?"
		return
	}
	e.pending = Pending{Kind: PendingQuit, Confirmed: true}
}

func (e *Engine) delete(in invocation) (bool, error) {
	if !in.arg {
		mark, ok := e.cv.Mark()
		if !ok {
			e.pending = Pending{Kind: PendingDelete, Key: in.key}
			return false, nil
		}
		if _, err := e.deleteRegion(mark, e.cv.Cursor()); err != nil {
			return false, err
		}
		e.cv.ClearMark()
		return true, nil
	}

	if !in.repeats() {
		return false, &InvalidCommandError{Key: in.key}
	}
	if e.buf.Len() == 0 {
		return false, errEmptyFile
	}
	row := e.cv.Cursor().Row
	if err := e.buf.ReplaceRange(row, row, nil); err != nil {
		return false, err
	}
	e.afterEdit()
	return true, nil
}

func (e *Engine) change(in invocation) (bool, error) {
	if !in.arg {
		mark, ok := e.cv.Mark()
		if !ok {
			e.pending = Pending{Kind: PendingChange, Key: in.key}
			return false, nil
		}
		pos, err := e.deleteRegion(mark, e.cv.Cursor())
		if err != nil {
			return false, err
		}
		e.cv.ClearMark()
		e.enterInsert()
		e.cv.SetCursor(pos)
		e.cv.Clamp(e.buf, true)
		return true, nil
	}

	eol := e.lineEnding()
	refresh, err := e.delete(in)
	if err != nil {
		return false, err
	}
	if e.buf.Len() == 0 {
		// the last row went; open an empty one to type into
		if err := e.buf.Insert(0, []string{eol}); err != nil {
			return false, err
		}
		e.cv.SetCursor(viewport.Position{})
	}
	e.enterInsert()
	e.afterEdit()
	return refresh, nil
}

func (e *Engine) changeInsert(where command.Where) error {
	line, ok := e.currentLine()
	if !ok {
		return errEmptyFile
	}

	cur := e.cv.Cursor()
	content := buffer.Content(line)
	cur.Col = min(cur.Col, len(content))
	switch where {
	case command.After:
		if cur.Col < len(content) {
			_, size := utf8.DecodeRuneInString(content[cur.Col:])
			cur.Col += size
		}
	case command.Head:
		cur.Col = 0
	case command.Tail:
		cur.Col = len(content)
	}
	e.cv.SetCursor(cur)
	e.enterInsert()
	return nil
}

func (e *Engine) replaceChar(in invocation) (bool, error) {
	if !in.arg {
		e.pending = Pending{Kind: PendingReplaceChar, Key: in.key}
		return false, nil
	}
	if !in.key.SingleByte() {
		return false, &InvalidCommandError{Key: in.key}
	}

	line, ok := e.currentLine()
	if !ok {
		return false, errEmptyFile
	}
	cur := e.cv.Cursor()
	content := buffer.Content(line)
	if cur.Col >= len(content) {
		return false, nil
	}
	_, size := utf8.DecodeRuneInString(content[cur.Col:])
	replaced := content[:cur.Col] + string(byte(in.key.Rune)) + content[cur.Col+size:] + buffer.Terminator(line)
	if err := e.buf.ReplaceRange(cur.Row, cur.Row, []string{replaced}); err != nil {
		return false, err
	}
	e.afterEdit()
	return true, nil
}

// backwardChar deletes the rune before the cursor, or joins the row onto
// the previous one at column 0.
func (e *Engine) backwardChar() (bool, error) {
	line, ok := e.currentLine()
	if !ok {
		return false, errEmptyFile
	}
	cur := e.cv.Cursor()
	content := buffer.Content(line)
	col := min(cur.Col, len(content))

	if col == 0 {
		if cur.Row == 0 {
			return false, nil
		}
		prev, _ := e.buf.Line(cur.Row - 1)
		joined := buffer.Content(prev) + line
		if err := e.buf.ReplaceRange(cur.Row-1, cur.Row, []string{joined}); err != nil {
			return false, err
		}
		e.cv.SetCursor(viewport.Position{Row: cur.Row - 1, Col: buffer.ContentLen(prev)})
		e.afterEdit()
		return true, nil
	}

	_, size := utf8.DecodeLastRuneInString(content[:col])
	edited := content[:col-size] + content[col:] + buffer.Terminator(line)
	if err := e.buf.ReplaceRange(cur.Row, cur.Row, []string{edited}); err != nil {
		return false, err
	}
	e.cv.SetCursor(viewport.Position{Row: cur.Row, Col: col - size})
	e.afterEdit()
	return true, nil
}

// deleteChar deletes the rune under the cursor. The terminator stays.
func (e *Engine) deleteChar() (bool, error) {
	line, ok := e.currentLine()
	if !ok {
		return false, errEmptyFile
	}
	cur := e.cv.Cursor()
	content := buffer.Content(line)
	if cur.Col >= len(content) {
		return false, nil
	}

	_, size := utf8.DecodeRuneInString(content[cur.Col:])
	edited := content[:cur.Col] + content[cur.Col+size:] + buffer.Terminator(line)
	if err := e.buf.ReplaceRange(cur.Row, cur.Row, []string{edited}); err != nil {
		return false, err
	}
	e.afterEdit()
	return true, nil
}

// escape drops the mark, or the search when there is no mark
func (e *Engine) escape() bool {
	if _, ok := e.cv.Mark(); ok {
		e.cv.ClearMark()
		return true
	}
	if e.search.HasHistory() {
		e.search.Clear()
		return true
	}
	return false
}

func (e *Engine) runSearch(pattern string, in invocation) bool {
	if pattern == "" {
		e.prompt = newPrompt()
		e.pending = Pending{Kind: PendingSearch, Key: in.key}
		return false
	}

	e.search.Rebuild(pattern, search.Find(e.buf.Lines(), pattern))
	cur := e.cv.Cursor()
	if m, ok := e.search.NearestNext(cur.Row, cur.Col); ok {
		e.cv.SetCursor(viewport.Position{Row: m.Row, Col: m.Col})
	}
	e.pending = Pending{}
	return true
}

func (e *Engine) jump(forward bool) bool {
	m, ok := e.search.Advance(forward)
	if !ok {
		return false
	}
	e.cv.SetCursor(viewport.Position{Row: m.Row, Col: m.Col})
	return true
}

// newLine opens an empty row below or above the cursor and enters insert mode
func (e *Engine) newLine(below bool) (bool, error) {
	eol := e.lineEnding()

	if e.buf.Len() == 0 {
		if err := e.buf.Insert(0, []string{eol}); err != nil {
			return false, err
		}
		e.cv.SetCursor(viewport.Position{})
		e.enterInsert()
		e.afterEdit()
		return true, nil
	}

	row := e.cv.Cursor().Row
	line, _ := e.buf.Line(row)
	at := row
	if below {
		at = row + 1
		if buffer.Terminator(line) == "" {
			// the last row gains a terminator and the new row inherits its absence
			if err := e.buf.ReplaceRange(row, row, []string{line + eol, ""}); err != nil {
				return false, err
			}
			e.cv.SetCursor(viewport.Position{Row: at})
			e.enterInsert()
			e.afterEdit()
			return true, nil
		}
	}

	if err := e.buf.Insert(at, []string{eol}); err != nil {
		return false, err
	}
	e.cv.SetCursor(viewport.Position{Row: at})
	e.enterInsert()
	e.afterEdit()
	return true, nil
}

func (e *Engine) move(op command.Move) error {
	if _, err := e.cv.Move(op.Motion, op.WithinLine, e.buf); err != nil {
		return Specific(err.Error())
	}
	return nil
}

func (e *Engine) yank() (bool, error) {
	if e.opts.clipboard == nil {
		return false, Specific("clipboard unavailable")
	}

	var text string
	if mark, ok := e.cv.Mark(); ok {
		lo, hi := viewport.Ordered(mark, e.cv.Cursor())
		text = e.regionText(lo, hi)
	} else {
		line, ok := e.currentLine()
		if !ok {
			return false, errEmptyFile
		}
		text = line
	}

	if err := e.opts.clipboard.WriteText(text); err != nil {
		return false, Specific(fmt.Sprintf("clipboard write failed: %v", err))
	}
	e.message = fmt.Sprintf("yanked %d characters", utf8.RuneCountInString(text))
	_, marked := e.cv.Mark()
	e.cv.ClearMark()
	return marked, nil
}

// region resolves the inclusive span [lo, hi] to the rows it touches. The
// returned head is the text kept before lo and tail the text kept after hi.
// When hi sits on or past the end of its row's content the span swallows
// that row's terminator, joining the following row.
func (e *Engine) region(lo, hi viewport.Position) (from, to int, head, tail string) {
	first, _ := e.buf.Line(lo.Row)
	last, _ := e.buf.Line(hi.Row)

	head = buffer.Content(first)[:min(lo.Col, buffer.ContentLen(first))]
	from, to = lo.Row, hi.Row

	content := buffer.Content(last)
	if hi.Col < len(content) {
		_, size := utf8.DecodeRuneInString(content[hi.Col:])
		tail = last[hi.Col+size:]
		return from, to, head, tail
	}
	if next, ok := e.buf.Line(hi.Row + 1); ok {
		tail = next
		to = hi.Row + 1
	}
	return from, to, head, tail
}

// regionText returns the bytes covered by the inclusive span [lo, hi]
func (e *Engine) regionText(lo, hi viewport.Position) string {
	from, to, head, tail := e.region(lo, hi)
	lines, err := e.buf.GetRange(from, to)
	if err != nil {
		return ""
	}
	all := strings.Join(lines, "")
	return all[len(head) : len(all)-len(tail)]
}

// deleteRegion removes the inclusive span between a and b, in whichever
// order they come. It returns where the span started.
func (e *Engine) deleteRegion(a, b viewport.Position) (viewport.Position, error) {
	if e.buf.Len() == 0 {
		return viewport.Position{}, errEmptyFile
	}
	lo, hi := viewport.Ordered(a, b)
	from, to, head, tail := e.region(lo, hi)

	var merged []string
	if joined := head + tail; joined != "" {
		merged = []string{joined}
	}
	if err := e.buf.ReplaceRange(from, to, merged); err != nil {
		return viewport.Position{}, err
	}
	pos := viewport.Position{Row: lo.Row, Col: len(head)}
	e.cv.SetCursor(pos)
	e.afterEdit()
	return pos, nil
}

// currentLine returns the row under the cursor, false on an empty buffer
func (e *Engine) currentLine() (string, bool) {
	return e.buf.Line(e.cv.Cursor().Row)
}

// lineEnding is the terminator new rows get: the first one found in the
// document, or "\n".
func (e *Engine) lineEnding() string {
	for row := 0; row < e.buf.Len(); row++ {
		line, _ := e.buf.Line(row)
		if t := buffer.Terminator(line); t != "" {
			return t
		}
	}
	return "\n"
}

func (e *Engine) enterInsert() {
	e.mode = ModeInsert
}

// afterEdit revalidates cursor, mark and search matches against the buffer
func (e *Engine) afterEdit() {
	e.cv.Clamp(e.buf, e.mode == ModeInsert)
	if pattern := e.search.Pattern(); pattern != "" {
		e.search.Refresh(search.Find(e.buf.Lines(), pattern))
	}
}
