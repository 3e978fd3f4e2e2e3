// Package keypad maps calculator buttons to engine events.
// It is the vocabulary shared by the interactive prompt, keystroke scripts
// and the keytrace tool.
package keypad

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bond-kaneko/go-calc/calc"
)

// ErrUnknownKey is returned for tokens that name no button
var ErrUnknownKey = errors.New("unknown key")

// Key is one calculator button
type Key int

const (
	Digit0 Key = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Dot
	Clear
	ClearEntry
	Backspace
	Negate
	Add
	Sub
	Mul
	Div
	Equals
	// Blank is the unlabeled button; pressing it does nothing
	Blank
)

var keyNames = [...]string{
	Dot:        ".",
	Clear:      "C",
	ClearEntry: "CE",
	Backspace:  "DEL",
	Negate:     "±",
	Add:        "+",
	Sub:        "-",
	Mul:        "*",
	Div:        "÷",
	Equals:     "=",
	Blank:      "_",
}

// aliases maps lower-cased tokens to keys
var aliases = map[string]Key{
	".":     Dot,
	",":     Dot,
	"c":     Clear,
	"ac":    Clear,
	"ce":    ClearEntry,
	"del":   Backspace,
	"bs":    Backspace,
	"⌫":     Backspace,
	"neg":   Negate,
	"±":     Negate,
	"+/-":   Negate,
	"+":     Add,
	"-":     Sub,
	"−":     Sub,
	"*":     Mul,
	"x":     Mul,
	"×":     Mul,
	"/":     Div,
	"÷":     Div,
	"=":     Equals,
	"enter": Equals,
	"_":     Blank,
}

// String returns the canonical token for k
func (k Key) String() string {
	if k.IsDigit() {
		return string(rune('0' + int(k)))
	}
	if k < 0 || int(k) >= len(keyNames) {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// IsDigit reports whether k is one of the ten digit keys
func (k Key) IsDigit() bool {
	return k >= Digit0 && k <= Digit9
}

// ParseKey reads a single key token. Tokens are case-insensitive.
func ParseKey(tok string) (Key, error) {
	t := strings.ToLower(strings.TrimSpace(tok))
	if len(t) == 1 && t[0] >= '0' && t[0] <= '9' {
		return Key(t[0] - '0'), nil
	}
	if k, ok := aliases[t]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKey, tok)
}

// ParseLine reads whitespace separated tokens. A run of digits and dots such
// as "12.5" is expanded to one key per character, and '#' starts a comment.
func ParseLine(line string) ([]Key, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	var keys []Key
	for _, tok := range strings.Fields(line) {
		if isNumberRun(tok) {
			for _, c := range tok {
				k, err := ParseKey(string(c))
				if err != nil {
					return nil, err
				}
				keys = append(keys, k)
			}
			continue
		}

		k, err := ParseKey(tok)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// isNumberRun reports whether tok is made only of digits and dots
func isNumberRun(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	for _, c := range tok {
		if c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Press delivers k to the engine
func Press(e *calc.Engine, k Key) {
	switch {
	case k.IsDigit():
		e.Digit(int(k))
	case k == Dot:
		e.Dot()
	case k == Clear, k == ClearEntry:
		// CE has no entry-only behavior; both reset the whole session
		e.Clear()
	case k == Backspace:
		e.Backspace()
	case k == Negate:
		e.ToggleSign()
	case k == Add:
		e.SetOp(calc.OpAdd)
	case k == Sub:
		e.SetOp(calc.OpSub)
	case k == Mul:
		e.SetOp(calc.OpMul)
	case k == Div:
		e.SetOp(calc.OpDiv)
	case k == Equals:
		e.Equals()
	}
}

// PressAll delivers keys in order and returns the final display
func PressAll(e *calc.Engine, keys []Key) string {
	for _, k := range keys {
		Press(e, k)
	}
	return e.Display()
}
