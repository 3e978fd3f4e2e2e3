// Package calc implements the input state machine of a four-function
// calculator. Operators are applied strictly left to right as soon as the
// next operator or equals arrives; there is no precedence.
//
// An Engine is not safe for concurrent use. Every method reads and writes the
// whole state, so callers delivering events from several goroutines must
// serialize them.
package calc

import (
	"strconv"
	"strings"
)

// Mode tells how the display is derived
type Mode int

const (
	// ModeEntering shows the committed expression followed by the entry
	ModeEntering Mode = iota
	// ModeResult shows the frozen solved expression produced by equals
	ModeResult
)

// String implements fmt.Stringer
func (m Mode) String() string {
	if m == ModeResult {
		return "result"
	}
	return "entering"
}

// Engine holds the state of one calculator session
type Engine struct {
	total   float64
	pending Op
	// lhs is the normalized left operand shown before the pending operator
	lhs   string
	entry string
	// fresh makes the next digit or dot start a new entry
	fresh  bool
	mode   Mode
	solved string

	// last completed operation, re-applied by a repeated equals
	lastOp  Op
	lastRHS float64
}

// State is a snapshot of the observable engine fields
type State struct {
	Total            float64
	Pending          Op
	Expr             string
	Entry            string
	ClearOnNextDigit bool
	Mode             Mode
}

// New returns an engine in the zero state
func New() *Engine {
	e := &Engine{}
	e.Clear()
	return e
}

// Display returns the text the UI should show after the last event
func (e *Engine) Display() string {
	if e.mode == ModeResult {
		return e.solved
	}
	if s := e.expr() + e.entry; s != "" {
		return s
	}
	return "0"
}

// Mode returns the current display mode
func (e *Engine) Mode() Mode {
	return e.mode
}

// State returns a copy of the current state
func (e *Engine) State() State {
	return State{
		Total:            e.total,
		Pending:          e.pending,
		Expr:             e.expr(),
		Entry:            e.entry,
		ClearOnNextDigit: e.fresh,
		Mode:             e.mode,
	}
}

// Digit types the decimal digit d. Values outside 0-9 are ignored.
func (e *Engine) Digit(d int) {
	if d < 0 || d > 9 {
		return
	}
	e.startEntry()
	if e.entry == "0" {
		e.entry = ""
	}
	e.entry += strconv.Itoa(d)
	e.refresh()
}

// Dot types a decimal point unless the entry already has one
func (e *Engine) Dot() {
	e.startEntry()
	if !strings.Contains(e.entry, ".") {
		e.entry += "."
	}
	e.refresh()
}

// Clear resets the engine to the zero state
func (e *Engine) Clear() {
	*e = Engine{
		entry: "0",
		mode:  ModeEntering,
	}
}

// Backspace removes the last typed character, never going below "0".
// Right after equals it only cancels the fresh-start state.
func (e *Engine) Backspace() {
	if e.fresh {
		e.fresh = false
		e.entry = "0"
		e.refresh()
		return
	}

	if len(e.entry) <= 1 {
		e.entry = "0"
	} else {
		e.entry = e.entry[:len(e.entry)-1]
		// A lone sign is not a number
		if e.entry == "-" {
			e.entry = "0"
		}
	}
	e.refresh()
}

// ToggleSign negates the entry. It does nothing when the entry is not a number.
func (e *Engine) ToggleSign() {
	v, ok := parseNumber(e.entry)
	if !ok {
		return
	}
	e.entry = FormatNumber(-v)
	e.refresh()
}

// SetOp selects the operator for the next operand. A pending operator is
// first applied to the accumulator and the entry; selecting an operator
// before any new operand is typed replaces the pending one.
func (e *Engine) SetOp(op Op) {
	if !op.Valid() {
		return
	}

	switch {
	case e.pending != OpNone && e.entry == "":
		// Operator tapped again with no operand: swap it
		e.pending = op
		if e.lhs == "" {
			e.lhs = "0"
		}

	case e.pending == OpNone:
		// Start a chain with the entry as the first operand
		e.total = parseOrZero(e.entry)
		e.lhs = normalizeEntry(e.entry)
		e.commit(op)

	default:
		// Fire the pending operator and continue the chain
		e.applyPending(parseOrZero(e.entry))
		e.lhs = FormatNumber(e.total)
		e.commit(op)
	}
	e.refresh()
}

// Equals applies the pending operator and freezes the display to the solved
// expression, e.g. "8 * 4 = 32". Pressed again right after a result it
// repeats the last operator and operand.
func (e *Engine) Equals() {
	if e.pending == OpNone {
		if e.fresh && e.lastOp != OpNone {
			e.repeat()
			return
		}
		e.refresh()
		return
	}

	rhs, right := e.total, FormatNumber(e.total)
	if e.entry != "" {
		rhs, right = parseOrZero(e.entry), normalizeEntry(e.entry)
	}
	expr := e.expr()
	op := e.pending
	e.applyPending(rhs)
	e.solve(expr+right, op, rhs)
}

// repeat re-applies the last operation to the current entry
func (e *Engine) repeat() {
	lhs := parseOrZero(e.entry)
	expr := normalizeEntry(e.entry) + " " + e.lastOp.Symbol() + " " + FormatNumber(e.lastRHS)

	e.total = lhs
	e.pending = e.lastOp
	e.applyPending(e.lastRHS)
	e.solve(expr, e.lastOp, e.lastRHS)
}

// solve finishes an equals: the result becomes the new entry and the chain
// is closed
func (e *Engine) solve(expr string, op Op, rhs float64) {
	result := FormatNumber(e.total)
	e.solved = expr + " = " + result

	e.lastOp, e.lastRHS = op, rhs
	e.pending = OpNone
	e.lhs = ""
	e.entry = result
	e.fresh = true
	e.mode = ModeResult
}

// applyPending folds rhs into the accumulator using the pending operator
func (e *Engine) applyPending(rhs float64) {
	if e.pending == OpNone {
		e.total = rhs
		return
	}
	if v, ok := e.pending.Apply(e.total, rhs); ok {
		e.total = v
	}
}

// commit moves the chain to waiting for the operand of op
func (e *Engine) commit(op Op) {
	e.entry = ""
	e.pending = op
	e.fresh = false
}

// startEntry begins a new entry if a result is showing
func (e *Engine) startEntry() {
	if e.fresh {
		e.entry = "0"
		e.fresh = false
	}
}

// refresh drops a frozen result display
func (e *Engine) refresh() {
	e.mode = ModeEntering
	e.solved = ""
}

func (e *Engine) expr() string {
	if e.pending == OpNone {
		return ""
	}
	return e.lhs + " " + e.pending.Symbol() + " "
}

// normalizeEntry formats a typed entry for the expression trace
func normalizeEntry(s string) string {
	if _, ok := parseNumber(s); !ok {
		return "0"
	}
	return Normalize(s)
}
