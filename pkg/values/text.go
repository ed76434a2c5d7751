package values

import (
	"math"
	"strconv"
)

// ParseText returns the text form of a scalar attribute. Strings are
// returned as they are, numbers and booleans are formatted ("7", "1.5",
// "true"). ok is false for null, objects and arrays.
func ParseText(v any) (s string, ok bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case bool:
		return strconv.FormatBool(value), true
	case float64:
		return formatNumber(value), true
	default:
		return "", false
	}
}

// TextOf is ParseText without the ok flag: non-scalars read as "".
func TextOf(v any) string {
	s, _ := ParseText(v)
	return s
}

// ParseTextList reads a list attribute such as a class list. Scalar entries
// are kept in their text form, other entries are skipped. Anything but a
// list yields nil.
func ParseTextList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := ParseText(item); ok {
			out = append(out, s)
		}
	}
	return out
}

// formatNumber writes integers without a fraction and switches to exponent
// notation only for very large or very small magnitudes.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
