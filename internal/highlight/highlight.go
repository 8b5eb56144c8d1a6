// Package highlight turns buffer lines into styled spans using Chroma.
package highlight

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/hire/internal/buffer"
)

// ErrNoBackground is returned when the theme defines no background colour
var ErrNoBackground = errors.New("background color unavailable")

// maxCached bounds the per-line cache; it is dropped wholesale when full
const maxCached = 4096

// Span is a run of text drawn with one style
type Span struct {
	Text  string
	Style lipgloss.Style
}

// Provider highlights lines of one file with one theme
type Provider struct {
	lexer chroma.Lexer
	style *chroma.Style
	cache map[string][]Span
}

// New picks the lexer from the file name and the named Chroma theme.
// Files no lexer claims are highlighted as plain text.
func New(path, theme string) (*Provider, error) {
	style, ok := styles.Registry[theme]
	if !ok {
		return nil, fmt.Errorf("unknown syntax theme %q", theme)
	}

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Fallback
	}

	return &Provider{
		lexer: chroma.Coalesce(lexer),
		style: style,
		cache: make(map[string][]Span),
	}, nil
}

// Language returns the name of the selected lexer
func (p *Provider) Language() string {
	return p.lexer.Config().Name
}

// Theme returns the name of the Chroma style
func (p *Provider) Theme() string {
	return p.style.Name
}

// Background returns the editor background colour of the theme
func (p *Provider) Background() (lipgloss.Color, error) {
	bg := p.style.Get(chroma.Background).Background
	if !bg.IsSet() {
		return "", ErrNoBackground
	}
	return lipgloss.Color(bg.String()), nil
}

// Spans highlights one line. The terminator is not part of the result and
// concatenating the span texts gives back the line content.
func (p *Provider) Spans(line string) []Span {
	content := buffer.Content(line)
	if content == "" {
		return nil
	}
	if spans, ok := p.cache[content]; ok {
		return spans
	}

	spans := p.tokenise(content)
	if len(p.cache) >= maxCached {
		clear(p.cache)
	}
	p.cache[content] = spans
	return spans
}

func (p *Provider) tokenise(content string) []Span {
	plain := []Span{{Text: content, Style: lipgloss.NewStyle()}}

	// lexers expect line-terminated input
	it, err := p.lexer.Tokenise(nil, content+"\n")
	if err != nil {
		return plain
	}

	var spans []Span
	for _, tok := range it.Tokens() {
		text := strings.TrimRight(tok.Value, "\n")
		if text == "" {
			continue
		}
		spans = append(spans, Span{Text: text, Style: p.styleFor(tok.Type)})
	}
	if len(spans) == 0 {
		return plain
	}
	return spans
}

func (p *Provider) styleFor(t chroma.TokenType) lipgloss.Style {
	entry := p.style.Get(t)

	s := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}
