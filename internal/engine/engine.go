// Package engine is the modal command state machine of hire. It owns the
// buffer, the cursor and viewport, and the search index, and turns key
// presses into edits.
package engine

import (
	"github.com/willibrandon/hire/internal/buffer"
	"github.com/willibrandon/hire/internal/command"
	"github.com/willibrandon/hire/internal/search"
	"github.com/willibrandon/hire/internal/viewport"
)

// Clipboard is where yanked text goes
type Clipboard interface {
	WriteText(text string) error
}

type options struct {
	tabIndent  bool
	tabWidth   int
	confirmKey rune
	clipboard  Clipboard
}

// Option configures an Engine
type Option func(*options)

// WithTabIndent makes Tab insert spaces instead of a tab character
func WithTabIndent(enable bool) Option {
	return func(o *options) {
		o.tabIndent = enable
	}
}

// WithTabWidth sets the number of spaces Tab inserts with tab indent on. It
// is also the drawn width of a tab when the window follows the cursor.
func WithTabWidth(width int) Option {
	return func(o *options) {
		if width > 0 {
			o.tabWidth = width
		}
	}
}

// WithConfirmKey sets the key that confirms quitting with unsaved changes
func WithConfirmKey(r rune) Option {
	return func(o *options) {
		o.confirmKey = r
	}
}

// WithClipboard sets the yank target
func WithClipboard(c Clipboard) Option {
	return func(o *options) {
		o.clipboard = c
	}
}

// Engine dispatches keys. It is not safe for concurrent use; the host
// feeds it one key at a time.
type Engine struct {
	buf    *buffer.Buffer
	table  *command.Table
	cv     *viewport.CursorViewport
	search *search.Index
	opts   options

	mode    Mode
	pending Pending
	prompt  *Prompt

	// errs is the FIFO of failures awaiting acknowledgement
	errs    []error
	ask     string
	message string
	refresh bool
}

// New creates an engine over a loaded buffer and a binding table
func New(buf *buffer.Buffer, table *command.Table, opts ...Option) *Engine {
	o := options{
		tabWidth:   4,
		confirmKey: 'y',
	}
	for _, opt := range opts {
		opt(&o)
	}
	if table == nil {
		table = command.Default()
	}

	cv := viewport.New()
	cv.SetTabWidth(o.tabWidth)

	return &Engine{
		buf:     buf,
		table:   table,
		cv:      cv,
		search:  search.New(),
		opts:    o,
		refresh: true,
	}
}

// HandleKey dispatches one key. A failure is queued for display and also
// returned so the host can log it.
func (e *Engine) HandleKey(key command.Key) error {
	if e.pending.Kind == PendingConfirmError {
		e.acknowledge()
		return nil
	}

	if e.prompt != nil {
		return e.fail(e.handlePrompt(key))
	}

	if e.mode == ModeInsert {
		return e.fail(e.handleInsert(key))
	}

	if op, ok := e.pending.operation(); ok {
		armed := e.pending
		e.pending = Pending{}
		return e.fail(e.exec(op, invocation{key: key, arg: true, armed: armed}))
	}
	// a stale search state without its prompt completes nothing
	e.pending = Pending{}

	op, ok := e.table.Lookup(key)
	if !ok {
		return e.fail(&InvalidCommandError{Key: key})
	}
	return e.fail(e.exec(op, invocation{key: key}))
}

// Execute runs op as if its key had been pressed in normal mode. Hosts use
// it for bindings that live outside the table.
func (e *Engine) Execute(op command.Operation) error {
	if e.pending.Kind == PendingConfirmError {
		e.acknowledge()
	}
	e.prompt = nil
	e.pending = Pending{}
	e.mode = ModeNormal
	return e.fail(e.exec(op, invocation{}))
}

// Report queues an error raised outside of key dispatch
func (e *Engine) Report(err error) {
	e.fail(err)
}

// fail queues err and switches to the confirm-error state
func (e *Engine) fail(err error) error {
	if err == nil {
		return nil
	}
	e.errs = append(e.errs, err)
	e.pending = Pending{Kind: PendingConfirmError}
	e.prompt = nil
	e.ask = ""
	return err
}

// acknowledge drops the oldest error. The confirm state lasts while more
// errors wait.
func (e *Engine) acknowledge() {
	if len(e.errs) > 0 {
		e.errs = e.errs[1:]
	}
	if len(e.errs) == 0 {
		e.pending = Pending{}
	}
}

func (e *Engine) handlePrompt(key command.Key) error {
	switch e.prompt.Handle(key) {
	case promptCancelled:
		e.prompt = nil
		e.pending = Pending{}
	case promptDone:
		pattern := e.prompt.Text()
		e.prompt = nil
		if pattern == "" {
			e.pending = Pending{}
			return nil
		}
		e.pending = Pending{Kind: PendingSearch, Pattern: pattern}
		return e.exec(command.Search{Pattern: pattern}, invocation{key: key})
	}
	return nil
}

// Update reconciles the viewport for a window of height x width. It reports
// whether the visible slice changed.
func (e *Engine) Update(height, width int) bool {
	return e.cv.Update(height, width, e.buf, e.mode == ModeInsert)
}

// TakeRefresh reports and clears the content-changed flag
func (e *Engine) TakeRefresh() bool {
	r := e.refresh
	e.refresh = false
	return r
}

// Cursor returns the cursor position
func (e *Engine) Cursor() viewport.Position {
	return e.cv.Cursor()
}

// Mark returns the mark if set
func (e *Engine) Mark() (viewport.Position, bool) {
	return e.cv.Mark()
}

// Mode returns the modal state
func (e *Engine) Mode() Mode {
	return e.mode
}

// Pending returns the pending command
func (e *Engine) Pending() Pending {
	return e.pending
}

// Dirty reports unsaved changes
func (e *Engine) Dirty() bool {
	return e.buf.IsDirty()
}

// SearchSummary returns the 1-based selected match and the match count.
// ok is false without a remembered search.
func (e *Engine) SearchSummary() (selected, total int, ok bool) {
	if !e.search.HasHistory() {
		return 0, 0, false
	}
	return e.search.Selected() + 1, e.search.Len(), true
}

// Prompt returns the prompt text and cursor while a prompt is open
func (e *Engine) Prompt() (text string, cursor int, ok bool) {
	if e.prompt == nil {
		return "", 0, false
	}
	return e.prompt.Text(), e.prompt.Cursor(), true
}

// Ask returns the pending confirmation question
func (e *Engine) Ask() string {
	return e.ask
}

// Message returns the last informational message
func (e *Engine) Message() string {
	return e.message
}

// CurrentError returns the oldest unacknowledged error, rendered
func (e *Engine) CurrentError() (string, bool) {
	if len(e.errs) == 0 {
		return "", false
	}
	return Describe(e.errs[0]), true
}

// Exiting reports that the host should stop
func (e *Engine) Exiting() bool {
	return e.pending.Kind == PendingQuit && e.pending.Confirmed
}

// View returns the viewport state
func (e *Engine) View() viewport.Viewport {
	return e.cv.View()
}

// Buffer returns the buffer for rendering. Callers must not mutate it.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// Search returns the search index for rendering
func (e *Engine) Search() *search.Index {
	return e.search
}

// Table returns the binding table
func (e *Engine) Table() *command.Table {
	return e.table
}

// ConfirmKey returns the key that confirms a quit
func (e *Engine) ConfirmKey() rune {
	return e.opts.confirmKey
}
