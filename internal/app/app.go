// Package app hosts the editing engine in a Bubble Tea program.
package app

import (
	"context"
	"time"

	"github.com/VividCortex/ewma"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/willibrandon/hire/internal/buffer"
	"github.com/willibrandon/hire/internal/command"
	"github.com/willibrandon/hire/internal/config"
	"github.com/willibrandon/hire/internal/engine"
	"github.com/willibrandon/hire/internal/highlight"
	"github.com/willibrandon/hire/internal/logger"
	"github.com/willibrandon/hire/internal/ui"
	"github.com/willibrandon/hire/internal/ui/styles"
)

// latencyEvery is how many dispatched keys pass between latency reports
const latencyEvery = 200

// Options is what the CLI hands to Load
type Options struct {
	Path   string
	Config *config.Config

	// Fs backs the edited file; nil is the OS filesystem
	Fs afero.Fs
	// Clipboard receives yanks; nil detects the system clipboard
	Clipboard engine.Clipboard
}

// Model represents the main Bubbletea application model
type Model struct {
	config *config.Config
	engine *engine.Engine
	editor *ui.Editor
	styles styles.Styles
	keys   KeyMap

	// UI state
	width  int
	height int
	ready  bool

	// Dispatch latency in microseconds
	latency    ewma.MovingAverage
	dispatched int
}

// Load prepares the model. Reading the file, resolving the syntax
// highlighter and probing the clipboard run concurrently; every one must
// succeed before the engine is built.
func Load(ctx context.Context, opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	var (
		buf      = buffer.New(opts.Fs)
		provider *highlight.Provider
		clip     = opts.Clipboard
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return buf.Load(opts.Path)
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := highlight.New(opts.Path, cfg.UI.SyntaxTheme)
		if err != nil {
			return &ThemeError{Theme: cfg.UI.SyntaxTheme, Err: err}
		}
		provider = p
		return nil
	})
	if clip == nil {
		g.Go(func() error {
			clip = NewClipboard()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("app: file loaded",
		"path", opts.Path,
		"lines", buf.Len(),
		"language", provider.Language(),
		"theme", provider.Theme())

	eng := engine.New(buf, table,
		engine.WithTabIndent(cfg.Options.TabIndent),
		engine.WithTabWidth(cfg.Options.TabWidth),
		engine.WithConfirmKey(cfg.ConfirmRune()),
		engine.WithClipboard(clip),
	)

	bg, bgErr := provider.Background()
	st := styles.New(styles.PaletteFor(cfg.UI.Theme), bg)
	if bgErr != nil {
		logger.Warn("app: syntax theme has no background", "theme", provider.Theme())
		eng.Report(engine.Specific(bgErr.Error()))
	}

	return &Model{
		config:  cfg,
		engine:  eng,
		editor:  ui.NewEditor(st, provider, cfg.Options.TabWidth),
		styles:  st,
		keys:    DefaultKeyMap(),
		latency: ewma.NewMovingAverage(),
	}, nil
}

// Engine returns the hosted engine
func (m Model) Engine() *engine.Engine {
	return m.engine
}

// Init starts the refresh tick
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.config.UI.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg{Timestamp: t}
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.sync()
		return m, nil

	case tickMsg:
		m.sync()
		return m, m.tick()

	case ErrorMsg:
		m.engine.Report(msg.Err)
		m.sync()
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.logDispatch("ctrl+c", m.engine.Execute(command.Quit{}))
	case key.Matches(msg, m.keys.Save):
		m.logDispatch("ctrl+s", m.engine.Execute(command.Save{}))
	default:
		for _, k := range translateKey(msg) {
			m.dispatch(k)
			if m.engine.Exiting() {
				break
			}
		}
	}

	if m.engine.Exiting() {
		logger.Info("app: quitting", "modified", m.engine.Dirty())
		return m, tea.Quit
	}
	m.sync()
	return m, nil
}

// dispatch feeds one key to the engine and tracks how long it took
func (m *Model) dispatch(k command.Key) {
	start := time.Now()
	err := m.engine.HandleKey(k)
	m.latency.Add(float64(time.Since(start).Microseconds()))

	m.dispatched++
	if m.dispatched%latencyEvery == 0 {
		logger.Debug("app: dispatch latency", "keys", m.dispatched, "avg_us", m.latency.Value())
	}
	m.logDispatch(k.String(), err)
}

func (m *Model) logDispatch(name string, err error) {
	if err == nil {
		return
	}
	switch engine.Classify(err) {
	case engine.KindIO:
		logger.Warn("app: io error", "key", name, "error", err)
	default:
		logger.Debug("app: key rejected", "key", name, "error", err)
	}
}

// sync reconciles the viewport with the window and drops stale highlights
func (m *Model) sync() {
	if !m.ready {
		return
	}
	info := ui.InfoLine(m.engine, m.styles, m.width)
	changed := m.engine.Update(max(1, m.height-lipgloss.Height(info)), m.width)
	if m.engine.TakeRefresh() || changed {
		m.editor.Invalidate()
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return ""
	}

	info := ui.InfoLine(m.engine, m.styles, m.width)
	height := max(1, m.height-lipgloss.Height(info))
	pane := lipgloss.PlaceVertical(height, lipgloss.Top, m.editor.Render(m.engine))
	return lipgloss.JoinVertical(lipgloss.Left, pane, info)
}
