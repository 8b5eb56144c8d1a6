package engine

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/willibrandon/hire/internal/buffer"
	"github.com/willibrandon/hire/internal/command"
)

// ErrInvalidCommand matches every InvalidCommandError
var ErrInvalidCommand = errors.New("invalid command")

// InvalidCommandError reports a key that is unbound, or that does not
// complete the pending command.
type InvalidCommandError struct {
	Key command.Key
}

func (e *InvalidCommandError) Error() string {
	return "invalid command: " + e.Key.String()
}

func (e *InvalidCommandError) Is(target error) bool {
	return target == ErrInvalidCommand
}

// SpecificError is a user-facing failure with its own message
type SpecificError struct {
	Msg string
}

func (e *SpecificError) Error() string {
	return e.Msg
}

// Specific returns a SpecificError
func Specific(msg string) error {
	return &SpecificError{Msg: msg}
}

var errEmptyFile = Specific("cannot edit an empty file")

// Kind classifies errors for display
type Kind int

const (
	KindSpecific Kind = iota
	KindIO
	KindRange
	KindInvalidCommand
)

func (k Kind) String() string {
	return [...]string{"specific", "io", "range", "invalid_command"}[k]
}

// Classify returns the kind of err
func Classify(err error) Kind {
	var ioErr *buffer.IOError
	switch {
	case errors.As(err, &ioErr):
		return KindIO
	case errors.Is(err, buffer.ErrRange):
		return KindRange
	case errors.Is(err, ErrInvalidCommand):
		return KindInvalidCommand
	}
	return KindSpecific
}

// Describe renders err for the info line
func Describe(err error) string {
	var ioErr *buffer.IOError
	if errors.As(err, &ioErr) {
		return fmt.Sprintf("[IO Error]: %s\nCause: %v", ioKind(ioErr), ioErr.Err)
	}

	var invalid *InvalidCommandError
	if errors.As(err, &invalid) {
		return fmt.Sprintf("[Error]: Invalid Command: %s!", invalid.Key)
	}

	return fmt.Sprintf("[Error]: %s!", err)
}

func ioKind(err *buffer.IOError) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "entity not found"
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	case errors.Is(err, fs.ErrExist):
		return "entity already exists"
	case errors.Is(err, fs.ErrInvalid):
		return "invalid input"
	}
	return err.Op + " failed"
}
