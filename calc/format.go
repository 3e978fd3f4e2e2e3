package calc

import (
	"errors"
	"strconv"
	"strings"
)

// FormatNumber renders v with 15 significant digits and normalizes the result.
// Negative zero is shown as "0"; NaN and the infinities keep Go's spelling.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return Normalize(strconv.FormatFloat(v, 'g', 15, 64))
}

// Normalize trims insignificant trailing zeros and a bare trailing decimal
// point: "12.3400" becomes "12.34" and "5." becomes "5". Only the mantissa of
// an exponent form is touched.
func Normalize(s string) string {
	mant, exp := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant, exp = s[:i], s[i:]
	}

	if strings.Contains(mant, ".") {
		mant = strings.TrimRight(mant, "0")
		mant = strings.TrimSuffix(mant, ".")
	}

	switch mant {
	case "", "-", "+":
		return "0"
	}
	return mant + exp
}

// parseNumber reads a number typed into the entry buffer.
// Out of range values keep the infinity strconv returns for them.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// parseOrZero is parseNumber with the unparsable case read as 0
func parseOrZero(s string) float64 {
	v, _ := parseNumber(s)
	return v
}
