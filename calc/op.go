package calc

import "math"

// Op is a binary operator waiting for its right-hand operand
type Op int

const (
	// OpNone means no operator is pending
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

var opSymbols = [...]string{
	OpNone: "",
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "÷",
}

// Symbol returns the operator as it appears in the expression trace
func (o Op) Symbol() string {
	if !o.Valid() {
		return ""
	}
	return opSymbols[o]
}

// String implements fmt.Stringer
func (o Op) String() string {
	if o == OpNone {
		return "none"
	}
	if !o.Valid() {
		return "invalid"
	}
	return opSymbols[o]
}

// Valid reports whether o is one of the four supported operators
func (o Op) Valid() bool {
	return o >= OpAdd && o <= OpDiv
}

// ParseOp maps an operator symbol to an Op. Both the keypad symbols and
// their ASCII spellings are accepted.
func ParseOp(sym string) (Op, bool) {
	switch sym {
	case "+":
		return OpAdd, true
	case "-", "−":
		return OpSub, true
	case "*", "x", "×":
		return OpMul, true
	case "/", "÷":
		return OpDiv, true
	}
	return OpNone, false
}

// Apply computes a <op> b. Division by zero yields NaN. The second result is
// false for OpNone and for values outside the closed operator set.
func (o Op) Apply(a, b float64) (float64, bool) {
	switch o {
	case OpAdd:
		return a + b, true
	case OpSub:
		return a - b, true
	case OpMul:
		return a * b, true
	case OpDiv:
		if b == 0 {
			return math.NaN(), true
		}
		return a / b, true
	}
	return 0, false
}
