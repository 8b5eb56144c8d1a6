package engine

import "github.com/willibrandon/hire/internal/command"

// Mode is the modal state of the editor
type Mode int

const (
	// ModeNormal dispatches keys through the binding table
	ModeNormal Mode = iota
	// ModeInsert types keys into the buffer
	ModeInsert
)

// String returns the string representation of the mode
func (m Mode) String() string {
	return [...]string{"NORMAL", "INSERT"}[m]
}

// PendingKind names the operation waiting for another key
type PendingKind int

const (
	PendingNone PendingKind = iota
	PendingMark
	PendingDelete
	PendingChange
	PendingReplaceChar
	PendingQuit
	PendingSearch
	PendingConfirmError
)

func (k PendingKind) String() string {
	return [...]string{
		"none",
		"mark",
		"delete",
		"change",
		"replace_char",
		"quit",
		"search",
		"confirm_error",
	}[k]
}

// Pending is the cross-keystroke continuation. Only the fields of the
// active Kind are meaningful.
type Pending struct {
	Kind PendingKind

	// Confirmed is set on PendingQuit once the editor may exit
	Confirmed bool

	// Pattern is the finished search prompt input
	Pattern string

	// Key is the key that armed the pending command
	Key command.Key
}

// operation returns the operation that completes p
func (p Pending) operation() (command.Operation, bool) {
	switch p.Kind {
	case PendingMark:
		return command.Mark{}, true
	case PendingDelete:
		return command.Delete{}, true
	case PendingChange:
		return command.Change{}, true
	case PendingReplaceChar:
		return command.ReplaceChar{}, true
	case PendingQuit:
		return command.Quit{}, true
	}
	return nil, false
}
