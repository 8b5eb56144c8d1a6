// Package buffer holds the line-oriented document edited by hire.
package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// ErrRange is returned when a row range is inconsistent or out of bounds
var ErrRange = errors.New("invalid row range")

// IOError wraps a failure of the backing filesystem
type IOError struct {
	Op   string // "open", "read", "write" or "stat"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Buffer is the in-memory document: an ordered sequence of lines, each
// carrying its own trailing terminator (the last line may have none).
type Buffer struct {
	fs    afero.Fs
	path  string
	lines []string
	dirty bool
}

// New creates an empty buffer backed by the given filesystem.
// A nil fs means the real OS filesystem.
func New(fs afero.Fs) *Buffer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Buffer{fs: fs}
}

// Load reads path line by line and replaces the buffer content.
// The previous content survives any failure.
func (b *Buffer) Load(path string) error {
	f, err := b.fs.Open(path)
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return &IOError{Op: "read", Path: path, Err: err}
		}
	}

	b.path = path
	b.lines = lines
	b.dirty = false
	return nil
}

// Save truncates the backing file and writes every line in order.
// It returns the number of bytes written. On failure the buffer stays dirty.
func (b *Buffer) Save() (int64, error) {
	if b.path == "" {
		return 0, &IOError{Op: "write", Path: b.path, Err: os.ErrInvalid}
	}

	perm := os.FileMode(0644)
	if info, err := b.fs.Stat(b.path); err == nil {
		perm = info.Mode().Perm()
	}

	f, err := b.fs.OpenFile(b.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, &IOError{Op: "open", Path: b.path, Err: err}
	}

	w := bufio.NewWriter(f)
	var written int64
	for _, line := range b.lines {
		n, err := w.WriteString(line)
		written += int64(n)
		if err != nil {
			f.Close()
			return written, &IOError{Op: "write", Path: b.path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return written, &IOError{Op: "write", Path: b.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return written, &IOError{Op: "write", Path: b.path, Err: err}
	}

	b.dirty = false
	return written, nil
}

// checkRange validates a closed row range against the current content
func (b *Buffer) checkRange(from, to int) error {
	if len(b.lines) == 0 {
		return fmt.Errorf("%w: buffer is empty", ErrRange)
	}
	if from < 0 || from > to || to >= len(b.lines) {
		return fmt.Errorf("%w: [%d, %d] with %d lines", ErrRange, from, to, len(b.lines))
	}
	return nil
}

// GetRange returns a copy of rows [from, to]
func (b *Buffer) GetRange(from, to int) ([]string, error) {
	if err := b.checkRange(from, to); err != nil {
		return nil, err
	}
	return slices.Clone(b.lines[from : to+1]), nil
}

// ReplaceRange overwrites rows [from, to] with newLines.
//
// An empty newLines deletes the whole range. Otherwise rows are replaced
// positionally; extra new lines are inserted after to, and rows of the range
// left without a replacement are removed.
func (b *Buffer) ReplaceRange(from, to int, newLines []string) error {
	if err := b.checkRange(from, to); err != nil {
		return err
	}

	b.lines = slices.Replace(b.lines, from, to+1, newLines...)
	b.dirty = true
	return nil
}

// Insert places newLines before row at. at may equal Len() to append.
func (b *Buffer) Insert(at int, newLines []string) error {
	if at < 0 || at > len(b.lines) {
		return fmt.Errorf("%w: insert at %d with %d lines", ErrRange, at, len(b.lines))
	}
	if len(newLines) == 0 {
		return nil
	}

	b.lines = slices.Insert(b.lines, at, newLines...)
	b.dirty = true
	return nil
}

// IsDirty reports whether the buffer changed since the last load or save
func (b *Buffer) IsDirty() bool {
	return b.dirty
}

// Path returns the file the buffer was loaded from
func (b *Buffer) Path() string {
	return b.path
}

// Len returns the number of lines
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Line returns the row including its terminator
func (b *Buffer) Line(row int) (string, bool) {
	if row < 0 || row >= len(b.lines) {
		return "", false
	}
	return b.lines[row], true
}

// LineLen returns the byte length of a row without its terminator.
// Out of range rows have length 0.
func (b *Buffer) LineLen(row int) int {
	line, ok := b.Line(row)
	if !ok {
		return 0
	}
	return ContentLen(line)
}

// Lines returns a copy of every row
func (b *Buffer) Lines() []string {
	return slices.Clone(b.lines)
}

// Text joins the rows back into the file content
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "")
}

// Terminator returns the line ending carried by line: "\r\n", "\n" or "".
func Terminator(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	}
	return ""
}

// Content strips the terminator from line
func Content(line string) string {
	return line[:len(line)-len(Terminator(line))]
}

// ContentLen is len(Content(line))
func ContentLen(line string) int {
	return len(line) - len(Terminator(line))
}
