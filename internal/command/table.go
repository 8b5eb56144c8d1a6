package command

import (
	"fmt"
)

// Spec is one keymap entry as it appears in the config file
type Spec struct {
	Key string `mapstructure:"key" yaml:"key"`
	Run string `mapstructure:"run" yaml:"run"`
}

// Binding is a parsed keymap entry
type Binding struct {
	Key Key
	Op  Operation
}

// Table maps normal mode keys to operations. It is built once at startup
// and only read afterwards.
type Table struct {
	exact map[Key]Operation

	// List of all bindings in keymap order, for `hire keys`
	all []Binding
}

// NewTable builds a table from bindings. A later binding for the same key
// replaces the earlier one.
func NewTable(bindings []Binding) *Table {
	t := &Table{exact: make(map[Key]Operation, len(bindings))}
	for _, b := range bindings {
		t.Add(b.Key, b.Op)
	}
	return t
}

// Compile parses keymap entries into a table. The first bad entry fails the
// whole keymap.
func Compile(specs []Spec) (*Table, error) {
	bindings := make([]Binding, 0, len(specs))
	for i, s := range specs {
		key, err := ParseKey(s.Key)
		if err != nil {
			return nil, fmt.Errorf("keymap entry %d: %w", i, err)
		}
		op, err := Parse(s.Run)
		if err != nil {
			return nil, fmt.Errorf("keymap entry %d (%s): %w", i, s.Key, err)
		}
		bindings = append(bindings, Binding{Key: key, Op: op})
	}
	return NewTable(bindings), nil
}

// Add registers or replaces the binding for key
func (t *Table) Add(key Key, op Operation) {
	if _, exists := t.exact[key]; exists {
		for i := range t.all {
			if t.all[i].Key == key {
				t.all[i].Op = op
			}
		}
	} else {
		t.all = append(t.all, Binding{Key: key, Op: op})
	}
	t.exact[key] = op
}

// Lookup returns the operation bound to key
func (t *Table) Lookup(key Key) (Operation, bool) {
	op, ok := t.exact[key]
	return op, ok
}

// Bindings returns every binding in keymap order
func (t *Table) Bindings() []Binding {
	return append([]Binding(nil), t.all...)
}

// Len returns the number of bound keys
func (t *Table) Len() int {
	return len(t.exact)
}

// DefaultSpecs returns the keymap used when the config file has none
func DefaultSpecs() []Spec {
	return []Spec{
		// Motion
		{Key: "h", Run: "move_cursor line -1"},
		{Key: "l", Run: "move_cursor line +1"},
		{Key: "j", Run: "move_cursor buffer +1"},
		{Key: "k", Run: "move_cursor buffer -1"},
		{Key: "Left", Run: "move_cursor line -1"},
		{Key: "Right", Run: "move_cursor line +1"},
		{Key: "Down", Run: "move_cursor buffer +1"},
		{Key: "Up", Run: "move_cursor buffer -1"},
		{Key: "0", Run: "move_cursor line start"},
		{Key: "$", Run: "move_cursor line end"},
		{Key: "Home", Run: "move_cursor line start"},
		{Key: "End", Run: "move_cursor line end"},
		{Key: "g", Run: "move_cursor buffer start"},
		{Key: "G", Run: "move_cursor buffer end"},
		{Key: "PgDown", Run: "page_scroll 1"},
		{Key: "PgUp", Run: "page_scroll -1"},
		{Key: "f", Run: "page_scroll 1"},
		{Key: "b", Run: "page_scroll -1"},

		// Insert
		{Key: "i", Run: "change_insert before"},
		{Key: "a", Run: "change_insert after"},
		{Key: "I", Run: "change_insert head"},
		{Key: "A", Run: "change_insert tail"},
		{Key: "o", Run: "newline down"},
		{Key: "O", Run: "newline up"},

		// Editing
		{Key: "x", Run: "delete_char"},
		{Key: "Backspace", Run: "backward_char"},
		{Key: "d", Run: "delete"},
		{Key: "c", Run: "change"},
		{Key: "r", Run: "replace_char"},
		{Key: "m", Run: "mark"},
		{Key: "M", Run: "mark cancel"},
		{Key: "y", Run: "yank"},

		// Search
		{Key: "/", Run: "search"},
		{Key: "n", Run: "search_jump next"},
		{Key: "N", Run: "search_jump prev"},
		{Key: "ESC", Run: "escape_command"},

		// File
		{Key: "s", Run: "save"},
		{Key: "q", Run: "quit"},
	}
}

// Default returns the table built from DefaultSpecs
func Default() *Table {
	t, err := Compile(DefaultSpecs())
	if err != nil {
		panic(fmt.Sprintf("default keymap: %v", err))
	}
	return t
}
