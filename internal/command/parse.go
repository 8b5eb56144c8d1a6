package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/willibrandon/hire/internal/viewport"
)

// ErrUnknownOperation is returned by Parse for text that names no operation
var ErrUnknownOperation = errors.New("unknown operation")

// Parse reads an operation as written in the `run` field of a keymap entry,
// for example "move_cursor line +1", "page_scroll -1" or "newline down".
func Parse(s string) (Operation, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrUnknownOperation)
	}
	name, args := fields[0], fields[1:]

	// operations without arguments
	simple := map[string]Operation{
		"save":           Save{},
		"quit":           Quit{},
		"change":         Change{},
		"replace_char":   ReplaceChar{},
		"backward_char":  BackwardChar{},
		"delete_char":    DeleteChar{},
		"escape_command": EscapeCommand{},
		"delete":         Delete{},
		"yank":           Yank{},
	}
	if op, ok := simple[name]; ok {
		if len(args) != 0 {
			return nil, fmt.Errorf("%s takes no argument, got %q", name, strings.Join(args, " "))
		}
		return op, nil
	}

	switch name {
	case "mark":
		switch {
		case len(args) == 0:
			return Mark{}, nil
		case len(args) == 1 && args[0] == "cancel":
			return Mark{Cancel: true}, nil
		}
		return nil, fmt.Errorf("mark: invalid argument %q", strings.Join(args, " "))

	case "search":
		// the pattern is the rest of the line, spaces included
		pattern := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "search"))
		return Search{Pattern: pattern}, nil

	case "search_jump":
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		switch args[0] {
		case "next":
			return SearchJump{Forward: true}, nil
		case "prev", "previous":
			return SearchJump{Forward: false}, nil
		}
		return nil, fmt.Errorf("search_jump: expected next or prev, got %q", args[0])

	case "newline":
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		switch args[0] {
		case "down":
			return NewLine{Below: true}, nil
		case "up":
			return NewLine{Below: false}, nil
		}
		return nil, fmt.Errorf("newline: expected up or down, got %q", args[0])

	case "change_insert":
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		for i, w := range whereNames {
			if args[0] == w {
				return ChangeInsert{Where: Where(i)}, nil
			}
		}
		return nil, fmt.Errorf("change_insert: expected one of %s, got %q", strings.Join(whereNames, ", "), args[0])

	case "page_scroll":
		if err := wantArgs(name, args, 1); err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("page_scroll: %w", err)
		}
		return PageScroll{Pages: n}, nil

	case "move_cursor":
		if err := wantArgs(name, args, 2); err != nil {
			return nil, err
		}
		var within bool
		switch args[0] {
		case "line":
			within = true
		case "buffer":
			within = false
		default:
			return nil, fmt.Errorf("move_cursor: expected line or buffer, got %q", args[0])
		}
		m, err := parseMotion(args[1])
		if err != nil {
			return nil, fmt.Errorf("move_cursor: %w", err)
		}
		return Move{WithinLine: within, Motion: m}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

func wantArgs(name string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func parseMotion(s string) (viewport.Motion, error) {
	switch s {
	case "start", "head":
		return viewport.Motion{Kind: viewport.Start}, nil
	case "end", "tail":
		return viewport.Motion{Kind: viewport.End}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return viewport.Motion{}, fmt.Errorf("invalid motion %q", s)
	}
	return viewport.Motion{Kind: viewport.Relative, N: n}, nil
}
