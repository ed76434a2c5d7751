package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/figma-importer/pkg/scene"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		name  string
		value any
		def   float64
		want  float64
	}{
		{name: "float", value: 42.5, def: DefaultDimension, want: 42.5},
		{name: "int", value: 7, def: DefaultDimension, want: 7},
		{name: "json number", value: json.Number("12"), def: DefaultDimension, want: 12},
		{name: "zero is a value", value: 0.0, def: DefaultDimension, want: 0},
		{name: "nil", value: nil, def: DefaultDimension, want: 100},
		{name: "nil custom default", value: nil, def: 1440, want: 1440},
		{name: "px suffix", value: "42px", def: DefaultDimension, want: 42},
		{name: "surrounding spaces", value: "  17.5  ", def: DefaultDimension, want: 17.5},
		{name: "px then spaces", value: " 8px ", def: DefaultDimension, want: 8},
		{name: "leading number of other unit", value: "12em", def: DefaultDimension, want: 12},
		{name: "negative", value: "-3", def: DefaultDimension, want: -3},
		{name: "unparsable", value: "abc", def: 50, want: 50},
		{name: "empty string", value: "", def: 50, want: 50},
		{name: "bool", value: true, def: 50, want: 50},
		{name: "object", value: map[string]any{"w": 1}, def: 50, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDimension(tt.value, tt.def))
		})
	}
}

func TestParseDimension_NumericIsIdempotent(t *testing.T) {
	for _, v := range []float64{0, 1, 17.5, 1e6, -4} {
		once := ParseDimension(v, DefaultDimension)
		assert.Equal(t, v, once)
		assert.Equal(t, once, ParseDimension(once, DefaultDimension))
	}
}

func TestParseFontSize(t *testing.T) {
	assert.Equal(t, 24.0, ParseFontSize("24px", 16))
	assert.Equal(t, 1.5, ParseFontSize("1.5rem", 16))
	assert.Equal(t, 16.0, ParseFontSize("large", 16))
	assert.Equal(t, 16.0, ParseFontSize("0", 16))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  scene.Color
	}{
		{name: "short hex", value: "#fff", want: scene.RGB(1, 1, 1)},
		{name: "long hex", value: "#FF0000", want: scene.RGB(1, 0, 0)},
		{name: "hex with alpha ignores alpha", value: "#00ff0080", want: scene.RGB(0, 1, 0)},
		{name: "bad hex digits", value: "#zzz", want: scene.RGB(0, 0, 0)},
		{name: "bad hex length", value: "#abcd", want: scene.RGB(0, 0, 0)},
		{name: "rgb", value: "rgb(255,0,0)", want: scene.RGB(1, 0, 0)},
		{name: "rgb with spaces", value: "rgb(0, 255, 0)", want: scene.RGB(0, 1, 0)},
		{name: "rgba drops alpha", value: "rgba(0, 0, 255, 0.5)", want: scene.RGB(0, 0, 1)},
		{name: "rgb garbage", value: "rgb(a,b,c)", want: scene.RGB(0, 0, 0)},
		{name: "named", value: "yellow", want: scene.RGB(1, 1, 0)},
		{name: "named upper case", value: "WHITE", want: scene.RGB(1, 1, 1)},
		{name: "transparent", value: "transparent", want: scene.RGBA(0, 0, 0, 0)},
		{name: "unknown name", value: "notacolor", want: scene.RGB(0, 0, 0)},
		{name: "empty", value: "", want: scene.RGB(0, 0, 0)},
		{name: "nil", value: nil, want: scene.RGB(0, 0, 0)},
		{name: "number", value: 12.0, want: scene.RGB(0, 0, 0)},
		{name: "object", value: map[string]any{"r": 0.1, "g": 0.2, "b": 0.3}, want: scene.RGB(0.1, 0.2, 0.3)},
		{name: "object with alpha", value: map[string]any{"r": 0.1, "g": 0.2, "b": 0.3, "a": 0.4}, want: scene.RGBA(0.1, 0.2, 0.3, 0.4)},
		{name: "object missing channel", value: map[string]any{"r": 0.1, "g": 0.2}, want: scene.RGB(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseColor(tt.value))
		})
	}
}

func TestParseColor_HexRounding(t *testing.T) {
	got := ParseColor("#336699")
	assert.InDelta(t, 0.2, got.R, 1.0/255)
	assert.InDelta(t, 0.4, got.G, 1.0/255)
	assert.InDelta(t, 0.6, got.B, 1.0/255)
	assert.Nil(t, got.A)
}

func TestParseColor_NormalizedIsIdempotent(t *testing.T) {
	inputs := []any{"#336699", "rgb(10, 20, 30)", "gray", "transparent", nil}
	for _, in := range inputs {
		once := ParseColor(in)
		assert.Equal(t, once, ParseColor(once))
		assert.Equal(t, once, ParseColor(&once))
	}
}

func TestParseColor_DecodedJSONObject(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"color":{"r":1,"g":0.5,"b":0}}`), &payload))

	assert.Equal(t, scene.RGB(1, 0.5, 0), ParseColor(payload["color"]))
}

func TestParseOptional(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{in: nil},
		{in: "abc"},
		{in: true},
		{in: 12.0, want: 12, wantOK: true},
		{in: "12px", want: 12, wantOK: true},
		{in: " -3.5 ", want: -3.5, wantOK: true},
	}

	for _, tt := range tests {
		got, ok := ParseOptional(tt.in)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   string
		wantOK bool
	}{
		{name: "string", value: "hero", want: "hero", wantOK: true},
		{name: "empty string", value: "", want: "", wantOK: true},
		{name: "integer", value: 7.0, want: "7", wantOK: true},
		{name: "fraction", value: 1.5, want: "1.5", wantOK: true},
		{name: "negative", value: -3.0, want: "-3", wantOK: true},
		{name: "large", value: 1e6, want: "1000000", wantOK: true},
		{name: "huge", value: 1e21, want: "1e+21", wantOK: true},
		{name: "bool", value: true, want: "true", wantOK: true},
		{name: "nil", value: nil},
		{name: "object", value: map[string]any{"a": 1.0}},
		{name: "array", value: []any{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseText(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, TextOf(tt.value))
		})
	}
}

func TestParseTextList(t *testing.T) {
	assert.Equal(t, []string{"a", "2", "true"}, ParseTextList([]any{"a", 2.0, nil, true, map[string]any{}}))
	assert.Empty(t, ParseTextList([]any{}))
	assert.Nil(t, ParseTextList("a b"))
	assert.Nil(t, ParseTextList(nil))
	assert.Nil(t, ParseTextList(3.0))
}
