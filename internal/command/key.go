// Package command defines the keys hire understands, the operations they
// trigger and the binding table that maps one to the other.
package command

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Code identifies a key. Printable keys use CodeChar with Key.Rune set.
type Code int

const (
	CodeChar Code = iota
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeTab
	CodeEsc
	CodeEnter
	CodeBackspace
	CodePgUp
	CodePgDown
	CodeHome
	CodeEnd
)

// codeNames holds the display name of every named key
var codeNames = map[Code]string{
	CodeUp:        "up",
	CodeDown:      "down",
	CodeLeft:      "left",
	CodeRight:     "right",
	CodeTab:       "tab",
	CodeEsc:       "esc",
	CodeEnter:     "enter",
	CodeBackspace: "backspace",
	CodePgUp:      "pgup",
	CodePgDown:    "pgdown",
	CodeHome:      "home",
	CodeEnd:       "end",
}

// keyAliases maps accepted spellings (lower-cased) to codes
var keyAliases = map[string]Code{
	"up":        CodeUp,
	"down":      CodeDown,
	"left":      CodeLeft,
	"right":     CodeRight,
	"tab":       CodeTab,
	"esc":       CodeEsc,
	"escape":    CodeEsc,
	"enter":     CodeEnter,
	"return":    CodeEnter,
	"backspace": CodeBackspace,
	"pgup":      CodePgUp,
	"pageup":    CodePgUp,
	"pgdown":    CodePgDown,
	"pagedown":  CodePgDown,
	"home":      CodeHome,
	"end":       CodeEnd,
}

// Key is one key press as seen by the engine
type Key struct {
	Code Code
	Rune rune
}

// Char returns the key for a printable rune
func Char(r rune) Key {
	return Key{Code: CodeChar, Rune: r}
}

// Named returns the key for a non-printable code
func Named(c Code) Key {
	return Key{Code: c}
}

// IsChar reports whether the key carries a printable rune
func (k Key) IsChar() bool {
	return k.Code == CodeChar
}

// SingleByte reports whether the key is a character encoded in one byte
func (k Key) SingleByte() bool {
	return k.IsChar() && k.Rune >= 0 && k.Rune < utf8.RuneSelf
}

// String renders the key the way keymaps spell it
func (k Key) String() string {
	if k.IsChar() {
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	}
	if name, ok := codeNames[k.Code]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k.Code))
}

// ParseKey reads a key as written in a keymap: a single printable
// character, "space", or a key name such as "Up", "ESC" or "pgdown".
// Names are case-insensitive; characters are not.
func ParseKey(s string) (Key, error) {
	if s == "" {
		return Key{}, fmt.Errorf("empty key")
	}

	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if r < ' ' || r == utf8.RuneError || r == 0x7f {
			return Key{}, fmt.Errorf("invalid key %q", s)
		}
		return Char(r), nil
	}

	lower := strings.ToLower(s)
	if lower == "space" {
		return Char(' '), nil
	}
	if code, ok := keyAliases[lower]; ok {
		return Named(code), nil
	}
	return Key{}, fmt.Errorf("unknown key %q", s)
}
