package engine

import (
	"slices"

	"github.com/willibrandon/hire/internal/command"
)

// Prompt is the single-line text entry used for search patterns
type Prompt struct {
	text   []rune
	cursor int
}

// promptResult is what a key did to the prompt
type promptResult int

const (
	promptEditing promptResult = iota
	promptDone
	promptCancelled
)

func newPrompt() *Prompt {
	return &Prompt{}
}

// Handle applies one key
func (p *Prompt) Handle(key command.Key) promptResult {
	switch key.Code {
	case command.CodeEsc:
		return promptCancelled
	case command.CodeEnter:
		return promptDone
	case command.CodeLeft:
		if p.cursor > 0 {
			p.cursor--
		}
	case command.CodeRight:
		if p.cursor < len(p.text) {
			p.cursor++
		}
	case command.CodeHome:
		p.cursor = 0
	case command.CodeEnd:
		p.cursor = len(p.text)
	case command.CodeBackspace:
		if p.cursor > 0 {
			p.text = slices.Delete(p.text, p.cursor-1, p.cursor)
			p.cursor--
		}
	case command.CodeTab:
		p.insert('\t')
	case command.CodeChar:
		p.insert(key.Rune)
	}
	return promptEditing
}

func (p *Prompt) insert(r rune) {
	p.text = slices.Insert(p.text, p.cursor, r)
	p.cursor++
}

// Text returns the entered text
func (p *Prompt) Text() string {
	return string(p.text)
}

// Cursor returns the cursor position in runes
func (p *Prompt) Cursor() int {
	return p.cursor
}
