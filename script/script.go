// Package script reads keystroke scripts: plain text files listing calculator
// keys, one or more per line, with '#' comments.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bond-kaneko/go-calc/calc"
	"github.com/bond-kaneko/go-calc/keypad"
)

// ErrEmptyScript is returned when a script contains no keys
var ErrEmptyScript = errors.New("script has no keys")

// Press is one key of a script with the line it came from
type Press struct {
	Line int
	Key  keypad.Key
}

// Step reports the display after a key was pressed
type Step struct {
	Press
	Display string
}

// Script is a parsed keystroke script
type Script struct {
	Name    string
	Presses []Press
}

// Load reads and parses the script at path
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Name = path
	return s, nil
}

// Parse reads a script from r
func Parse(r io.Reader) (*Script, error) {
	s := &Script{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		keys, err := keypad.ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		for _, k := range keys {
			s.Presses = append(s.Presses, Press{Line: lineNo, Key: k})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	if len(s.Presses) == 0 {
		return nil, ErrEmptyScript
	}
	return s, nil
}

// Run presses every key on e. If step is not nil it is called after each key.
// The final display is returned.
func (s *Script) Run(e *calc.Engine, step func(Step)) string {
	for _, p := range s.Presses {
		keypad.Press(e, p.Key)
		if step != nil {
			step(Step{Press: p, Display: e.Display()})
		}
	}
	return e.Display()
}

// Lines groups the final display of each script line, in order.
// It is what a reader of the script expects to see next to each line.
func (s *Script) Lines(e *calc.Engine) []Step {
	var out []Step
	s.Run(e, func(st Step) {
		if n := len(out); n > 0 && out[n-1].Line == st.Line {
			out[n-1] = st
			return
		}
		out = append(out, st)
	})
	return out
}
