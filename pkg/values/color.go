package values

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/kataras/figma-importer/pkg/scene"
)

var rgbChannels = regexp.MustCompile(`(\d+),\s*(\d+),\s*(\d+)(?:,\s*(\d*\.?\d+))?`)

// namedColors is the small palette of CSS keywords the importer understands.
var namedColors = map[string]scene.Color{
	"transparent": scene.RGBA(0, 0, 0, 0),
	"black":       scene.RGB(0, 0, 0),
	"white":       scene.RGB(1, 1, 1),
	"red":         scene.RGB(1, 0, 0),
	"green":       scene.RGB(0, 1, 0),
	"blue":        scene.RGB(0, 0, 1),
	"yellow":      scene.RGB(1, 1, 0),
	"gray":        scene.RGB(0.5, 0.5, 0.5),
}

// Black is the color every unrecognized input normalizes to.
var Black = scene.RGB(0, 0, 0)

// ParseColor normalizes a color value into a scene.Color.
//
// Accepted inputs are hex strings (#rgb, #rrggbb), rgb()/rgba() strings,
// the named palette, and already normalized colors (scene.Color or a decoded
// JSON object with numeric r, g and b), which are returned unchanged.
// Anything else is opaque black.
func ParseColor(v any) scene.Color {
	switch value := v.(type) {
	case nil:
		return Black
	case scene.Color:
		return value
	case *scene.Color:
		if value == nil {
			return Black
		}
		return *value
	case map[string]any:
		if c, ok := colorFromObject(value); ok {
			return c
		}
		return Black
	case string:
		return parseColorString(value)
	default:
		return Black
	}
}

func parseColorString(s string) scene.Color {
	if s == "" {
		return Black
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	if strings.HasPrefix(s, "rgb") {
		// The alpha group is matched so that rgba() input parses, but only
		// the three color channels are carried over.
		if m := rgbChannels.FindStringSubmatch(s); m != nil {
			return scene.RGB(channel(m[1]), channel(m[2]), channel(m[3]))
		}
	}

	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c
	}
	return Black
}

func channel(s string) float64 {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return float64(n) / 255
}

func parseHex(s string) scene.Color {
	hex := strings.TrimPrefix(s, "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
		hex = hex[:6]
	default:
		return Black
	}

	var rgb [3]float64
	for i := range rgb {
		b, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Black
		}
		rgb[i] = float64(b) / 255
	}

	return scene.RGB(rgb[0], rgb[1], rgb[2])
}

func colorFromObject(obj map[string]any) (scene.Color, bool) {
	r, okR := number(obj["r"])
	g, okG := number(obj["g"])
	b, okB := number(obj["b"])
	if !okR || !okG || !okB {
		return scene.Color{}, false
	}

	if a, ok := number(obj["a"]); ok {
		return scene.RGBA(r, g, b, a), true
	}
	return scene.RGB(r, g, b), true
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
