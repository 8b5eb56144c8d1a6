// Package logger is the process-wide structured logger of hire: JSON records
// on a rotating file, plus an in-memory tail of warnings and errors that the
// CLI summarises on exit.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a captured WARN or ERROR record
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Format renders the entry on one line
func (e Entry) Format() string {
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), e.Level, e.Message)
}

// tail keeps the last size captured entries
type tail struct {
	mu      sync.Mutex
	entries []Entry
	size    int
	head    int
	count   int

	warnings int
	errors   int
}

func newTail(size int) *tail {
	return &tail{
		entries: make([]Entry, size),
		size:    size,
	}
}

func (t *tail) add(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries[t.head] = e
	t.head = (t.head + 1) % t.size
	if t.count < t.size {
		t.count++
	}

	if e.Level >= slog.LevelError {
		t.errors++
	} else {
		t.warnings++
	}
}

func (t *tail) all() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Entry, t.count)
	for i := range out {
		out[i] = t.entries[(t.head-t.count+i+t.size)%t.size]
	}
	return out
}

func (t *tail) counts() (warnings, errors int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.warnings, t.errors
}

// captureHandler feeds WARN and above into the tail before passing records on
type captureHandler struct {
	inner slog.Handler
	tail  *tail
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.tail.add(Entry{Time: r.Time, Level: r.Level, Message: r.Message})
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{inner: h.inner.WithAttrs(attrs), tail: h.tail}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{inner: h.inner.WithGroup(name), tail: h.tail}
}

var (
	// Log is the global structured logger
	Log *slog.Logger
	// Path is the file the logger writes to
	Path string
	// Session identifies the records of this process
	Session string

	writer   *lumberjack.Logger
	captured *tail
)

// ParseLevel maps a config or flag value to a slog level. Unknown values
// are INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// DefaultPath is ~/.config/hire/hire.log, or the temp dir without a home
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "hire", "hire.log")
}

// Init installs the global logger. An empty path means DefaultPath.
func Init(level slog.Level, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	Path = path
	Session = uuid.NewString()
	writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}
	captured = newTail(100)

	handler := &captureHandler{
		inner: slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level}),
		tail:  captured,
	}
	Log = slog.New(handler).With("session", Session)
	slog.SetDefault(Log)
	return nil
}

// Close flushes and closes the log file
func Close() {
	if writer != nil {
		writer.Close()
	}
}

func get() *slog.Logger {
	if Log != nil {
		return Log
	}
	return slog.Default()
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

// With creates a new logger with additional attributes
func With(args ...any) *slog.Logger {
	return get().With(args...)
}

// Counts returns how many warnings and errors were logged since Init
func Counts() (warnings, errors int) {
	if captured == nil {
		return 0, 0
	}
	return captured.counts()
}

// Entries returns the most recent warnings and errors, oldest first
func Entries() []Entry {
	if captured == nil {
		return nil
	}
	return captured.all()
}
