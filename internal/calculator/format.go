package calculator

import (
	"math"
	"strconv"
	"strings"
)

// FractionDigits is the number of fractional digits kept when a
// non-integral result is written to the display.
const FractionDigits = 8

// Format renders v using the display rules: integral values without a
// decimal point, other values fixed-point with up to FractionDigits digits
// and no trailing zeros. Non-finite values render as "Inf", "-Inf" or "NaN".
func Format(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case v == 0:
		// Also folds negative zero.
		return "0"
	case v == math.Trunc(v):
		return strconv.FormatFloat(v, 'f', 0, 64)
	}

	s := strconv.FormatFloat(v, 'f', FractionDigits, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		// Magnitude below the last kept digit.
		return "0"
	}
	return s
}

// parseDisplay reads the display back as a number.
func parseDisplay(display string) (float64, bool) {
	v, err := strconv.ParseFloat(display, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isEditable reports whether digits can be appended to display, which is
// false for the non-finite renderings.
func isEditable(display string) bool {
	v, ok := parseDisplay(display)
	return ok && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// countDigits returns the number of decimal digits in display.
func countDigits(display string) int {
	n := 0
	for i := 0; i < len(display); i++ {
		if display[i] >= '0' && display[i] <= '9' {
			n++
		}
	}
	return n
}
