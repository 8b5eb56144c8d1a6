package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/willibrandon/hire/internal/app"
	"github.com/willibrandon/hire/internal/config"
	"github.com/willibrandon/hire/internal/logger"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool
	logFile    string
)

var (
	errorFormat   = color.New(color.FgHiRed).SprintFunc()
	warningFormat = color.New(color.FgHiYellow).SprintFunc()
	goodFormat    = color.New(color.FgGreen).SprintFunc()
)

// errMissingFile is returned when hire is started without a file
var errMissingFile = errors.New("missing file argument: hire <file>")

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorFormat(app.FormatStartupError(err)))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hire <file>",
		Short: "Modal terminal text editor",
		Long: `hire is a vi-like modal text editor for the terminal.

It opens one file, edits it in normal and insert mode, and writes it back
with every line ending preserved. Keys are configured in config.yaml:

  hire keys              List the active key bindings
  hire config init       Write the default config.yaml`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errMissingFile
			}
			return runEditor(cmd.Context(), args[0])
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default <user config dir>/hire/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (default ~/.config/hire/hire.log)")

	rootCmd.AddCommand(
		newKeysCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// loadConfig reads the config and applies the command line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

// runEditor opens path in the terminal UI until the user quits
func runEditor(ctx context.Context, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logger.DefaultPath()
	}
	if err := logger.Init(level, logPath); err != nil {
		fmt.Fprintln(os.Stderr, warningFormat(fmt.Sprintf("Logging disabled: %v", err)))
	}
	defer logger.Close()
	logger.Info("hire starting", "version", version, "path", path, "config", cfg.File)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return app.ErrNotTerminal
	}

	if ctx == nil {
		ctx = context.Background()
	}
	model, err := app.Load(ctx, app.Options{Path: path, Config: cfg})
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}

	p := tea.NewProgram(*model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program failed", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	printLogSummary(logPath)
	return nil
}

// printLogSummary points at the log when the session logged problems
func printLogSummary(logPath string) {
	warnings, errs := logger.Counts()
	if warnings == 0 && errs == 0 {
		return
	}

	fmt.Fprintln(os.Stderr, warningFormat(fmt.Sprintf("%d warning(s), %d error(s) logged to %s", warnings, errs, logPath)))
	for _, e := range logger.Entries() {
		fmt.Fprintln(os.Stderr, "  "+e.Format())
	}
}
