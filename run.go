package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bond-kaneko/go-calc/calc"
	"github.com/bond-kaneko/go-calc/display"
	"github.com/bond-kaneko/go-calc/keypad"
	"github.com/bond-kaneko/go-calc/script"
)

// runScript evaluates the script at path once and prints the display after
// every line, or after every key when trace is set
func runScript(path string, out io.Writer, trace bool) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}

	renderer := display.NewLine(out)
	e := calc.New()

	if trace {
		var renderErr error
		s.Run(e, func(st script.Step) {
			if renderErr == nil {
				renderErr = renderer.Render(fmt.Sprintf("%4d  %-4s %s", st.Line, st.Key, st.Display))
			}
		})
		return renderErr
	}

	for _, st := range s.Lines(e) {
		if err := renderer.Render(fmt.Sprintf("%4d  %s", st.Line, st.Display)); err != nil {
			return err
		}
	}
	return nil
}

// runInteractive reads lines of keys from in and shows the display after
// each line. Lines that do not parse are reported and skipped.
func runInteractive(in io.Reader, out io.Writer, trace bool) error {
	renderer := display.NewLine(out)
	e := calc.New()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		keys, err := keypad.ParseLine(scanner.Text())
		if err != nil {
			if err := renderer.Render("error: " + err.Error()); err != nil {
				return err
			}
			continue
		}
		if len(keys) == 0 {
			continue
		}

		for _, k := range keys {
			keypad.Press(e, k)
			if trace {
				if err := renderer.Render(fmt.Sprintf("%-4s %s", k, e.Display())); err != nil {
					return err
				}
			}
		}
		if !trace {
			if err := renderer.Render(e.Display()); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read keys: %w", err)
	}
	return nil
}
