package command

import (
	"fmt"
	"strconv"

	"github.com/willibrandon/hire/internal/viewport"
)

// Operation is an editor action a key can be bound to. String returns the
// keymap spelling, so Parse(op.String()) gives back an equal operation.
type Operation interface {
	fmt.Stringer
	operation()
}

// Save writes the buffer to its file
type Save struct{}

// Mark arms the mark, or with Cancel drops it immediately
type Mark struct {
	Cancel bool
}

// Quit leaves the editor, asking first when there are unsaved changes
type Quit struct{}

// Change deletes like Delete and then enters insert mode
type Change struct{}

// Where picks the insert position of ChangeInsert
type Where int

const (
	Before Where = iota
	After
	Head
	Tail
)

var whereNames = []string{"before", "after", "head", "tail"}

func (w Where) String() string {
	if w < 0 || int(w) >= len(whereNames) {
		return "unknown"
	}
	return whereNames[w]
}

// ChangeInsert enters insert mode at a position relative to the cursor
type ChangeInsert struct {
	Where Where
}

// ReplaceChar overwrites the byte under the cursor with the next key
type ReplaceChar struct{}

// BackwardChar deletes the byte before the cursor, joining lines at column 0
type BackwardChar struct{}

// DeleteChar deletes the byte under the cursor
type DeleteChar struct{}

// EscapeCommand drops the mark, or the search when no mark is set
type EscapeCommand struct{}

// Delete removes the marked region, or arms a whole-line delete
type Delete struct{}

// Search opens the search prompt, or searches Pattern when set
type Search struct {
	Pattern string
}

// SearchJump selects the next or previous match
type SearchJump struct {
	Forward bool
}

// NewLine opens an empty line below or above the cursor
type NewLine struct {
	Below bool
}

// PageScroll moves the window by whole pages
type PageScroll struct {
	Pages int
}

// Move moves the cursor inside the line or across the buffer
type Move struct {
	WithinLine bool
	Motion     viewport.Motion
}

// Yank copies the marked region, or the current line, to the clipboard
type Yank struct{}

func (Save) operation()          {}
func (Mark) operation()          {}
func (Quit) operation()          {}
func (Change) operation()        {}
func (ChangeInsert) operation()  {}
func (ReplaceChar) operation()   {}
func (BackwardChar) operation()  {}
func (DeleteChar) operation()    {}
func (EscapeCommand) operation() {}
func (Delete) operation()        {}
func (Search) operation()        {}
func (SearchJump) operation()    {}
func (NewLine) operation()       {}
func (PageScroll) operation()    {}
func (Move) operation()          {}
func (Yank) operation()          {}

func (Save) String() string { return "save" }

func (o Mark) String() string {
	if o.Cancel {
		return "mark cancel"
	}
	return "mark"
}

func (Quit) String() string          { return "quit" }
func (Change) String() string        { return "change" }
func (ReplaceChar) String() string   { return "replace_char" }
func (BackwardChar) String() string  { return "backward_char" }
func (DeleteChar) String() string    { return "delete_char" }
func (EscapeCommand) String() string { return "escape_command" }
func (Delete) String() string        { return "delete" }
func (Yank) String() string          { return "yank" }

func (o ChangeInsert) String() string {
	return "change_insert " + o.Where.String()
}

func (o Search) String() string {
	if o.Pattern == "" {
		return "search"
	}
	return "search " + o.Pattern
}

func (o SearchJump) String() string {
	if o.Forward {
		return "search_jump next"
	}
	return "search_jump prev"
}

func (o NewLine) String() string {
	if o.Below {
		return "newline down"
	}
	return "newline up"
}

func (o PageScroll) String() string {
	return "page_scroll " + strconv.Itoa(o.Pages)
}

func (o Move) String() string {
	scope := "buffer"
	if o.WithinLine {
		scope = "line"
	}
	return "move_cursor " + scope + " " + motionString(o.Motion)
}

func motionString(m viewport.Motion) string {
	switch m.Kind {
	case viewport.Start:
		return "start"
	case viewport.End:
		return "end"
	}
	if m.N >= 0 {
		return "+" + strconv.Itoa(m.N)
	}
	return strconv.Itoa(m.N)
}
