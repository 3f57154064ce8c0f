package sheet

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a formula result the way the desktop shows numbers:
// shortest round-trip digits, plain notation between 1e-6 and 1e21 and
// exponent notation ("1e+21", "1e-7") outside that range.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return ErrorMarker
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'g', -1, 64)
		return trimExponent(s)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent drops the leading zero Go pads single-digit exponents with.
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + string(sign) + digits
}

// ParseLeadingFloat reads the longest numeric prefix of s after leading
// whitespace, like the browser's parseFloat: "12px" is 12, "  -.5e2x" is
// -50, "Infinity" is +Inf. ok is false when there is no numeric prefix.
func ParseLeadingFloat(s string) (f float64, ok bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		// Out-of-range exponents saturate, as in the browser.
		if ne, isNum := err.(*strconv.NumError); isNum && ne.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}
