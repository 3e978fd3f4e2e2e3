// Package display shows the calculator display text on a terminal or stream.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"
)

// Renderer shows display text verbatim
type Renderer interface {
	// Render replaces what is shown with s. s may span several lines.
	Render(s string) error
	// Close releases the output
	Close() error
}

// New returns a LiveRenderer when out is a terminal and a LineRenderer otherwise
func New(out *os.File) Renderer {
	if IsTerminal(out) {
		return NewLive(out)
	}
	return NewLine(out)
}

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// LiveRenderer redraws its output in place
type LiveRenderer struct {
	mu     sync.Mutex
	writer *uilive.Writer
}

// NewLive creates a LiveRenderer writing to out
func NewLive(out io.Writer) *LiveRenderer {
	writer := uilive.New()
	writer.Out = out

	return &LiveRenderer{writer: writer}
}

// Render overwrites the previous render with s
func (r *LiveRenderer) Render(s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := fmt.Fprintln(r.writer, strings.TrimRight(s, "\n")); err != nil {
		return err
	}
	return r.writer.Flush()
}

// Close leaves the last render on screen
func (r *LiveRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writer.Flush()
}

// LineRenderer appends every render to its output, for pipes and logs
type LineRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewLine creates a LineRenderer writing to out
func NewLine(out io.Writer) *LineRenderer {
	return &LineRenderer{out: out}
}

// Render writes s followed by a newline
func (r *LineRenderer) Render(s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := fmt.Fprintln(r.out, strings.TrimRight(s, "\n"))
	return err
}

// Close does nothing; the output belongs to the caller
func (r *LineRenderer) Close() error {
	return nil
}
