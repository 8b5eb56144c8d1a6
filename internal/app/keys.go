package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/hire/internal/command"
)

// KeyMap holds the bindings the terminal host handles itself, before the
// engine sees a key. They stay fixed whatever the configured keymap says.
type KeyMap struct {
	Quit key.Binding
	Save key.Binding
}

// DefaultKeyMap returns the host bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit (asks when modified)"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save from any mode"),
		),
	}
}

// ShortHelp returns the host bindings for listings
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Save}
}

// namedKeys maps Bubble Tea key types onto engine keys
var namedKeys = map[tea.KeyType]command.Code{
	tea.KeyUp:        command.CodeUp,
	tea.KeyDown:      command.CodeDown,
	tea.KeyLeft:      command.CodeLeft,
	tea.KeyRight:     command.CodeRight,
	tea.KeyTab:       command.CodeTab,
	tea.KeyEsc:       command.CodeEsc,
	tea.KeyEnter:     command.CodeEnter,
	tea.KeyBackspace: command.CodeBackspace,
	tea.KeyPgUp:      command.CodePgUp,
	tea.KeyPgDown:    command.CodePgDown,
	tea.KeyHome:      command.CodeHome,
	tea.KeyEnd:       command.CodeEnd,
}

// translateKey converts a terminal key event into engine keys. Pasted text
// arrives as one event and yields one key per rune. Keys the engine has no
// name for yield nothing.
func translateKey(msg tea.KeyMsg) []command.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]command.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			switch r {
			case '\r', '\n':
				keys = append(keys, command.Named(command.CodeEnter))
			case '\t':
				keys = append(keys, command.Named(command.CodeTab))
			default:
				keys = append(keys, command.Char(r))
			}
		}
		return keys
	case tea.KeySpace:
		return []command.Key{command.Char(' ')}
	}

	if code, ok := namedKeys[msg.Type]; ok {
		return []command.Key{command.Named(code)}
	}
	return nil
}
