// Package values normalizes raw scalar attributes found in import payloads:
// dimensions into pixel numbers and color notations into scene colors.
//
// None of the parsers fail. Malformed input is replaced by a documented
// default so that a conversion always produces a complete tree.
package values

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDimension is the size used when a dimension is missing or unparsable.
const DefaultDimension = 100

// leadingNumber matches the numeric prefix of a string the way CSS-ish
// values are read: "12.5em" -> "12.5".
var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseDimension converts a dimension value to pixels.
//
// Numbers are returned unchanged and nil returns def. Strings are trimmed,
// a trailing "px" suffix is stripped and the leading number is parsed;
// strings without one return def, as does any other type.
func ParseDimension(v any, def float64) float64 {
	switch value := v.(type) {
	case nil:
		return def
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case int8:
		return float64(value)
	case int16:
		return float64(value)
	case int32:
		return float64(value)
	case int64:
		return float64(value)
	case uint:
		return float64(value)
	case uint8:
		return float64(value)
	case uint16:
		return float64(value)
	case uint32:
		return float64(value)
	case uint64:
		return float64(value)
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return def
		}
		return f
	case string:
		return parseNumber(value, def)
	default:
		return def
	}
}

// ParseOptional reads an optional numeric attribute the way ParseDimension
// does. ok is false when v is absent or has no numeric value.
func ParseOptional(v any) (f float64, ok bool) {
	f = ParseDimension(v, math.NaN())
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ParseFontSize reads a font size such as "24px" or "1.5". It behaves like
// ParseDimension for strings, and a zero size also yields def.
func ParseFontSize(s string, def float64) float64 {
	size := parseNumber(s, def)
	if size == 0 {
		return def
	}
	return size
}

func parseNumber(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)

	match := leadingNumber.FindString(s)
	if match == "" {
		return def
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return def
	}
	return f
}
