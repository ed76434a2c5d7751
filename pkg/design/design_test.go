package design

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/figma-importer/pkg/fonts"
	"github.com/kataras/figma-importer/pkg/options"
	"github.com/kataras/figma-importer/pkg/scene"
)

func newBuilder(opts options.Conversion) *Builder {
	return &Builder{
		Options: opts,
		Fonts:   fonts.NewRegistry(fonts.RegistryConfig{}),
	}
}

func buildPayload(t *testing.T, b *Builder, payload string) (*scene.Node, scene.Stats) {
	t.Helper()

	p, err := Decode([]byte(payload))
	require.NoError(t, err)

	root, stats, err := b.Build(context.Background(), p)
	require.NoError(t, err)
	require.NotNil(t, root)
	return root, stats
}

func TestBuildDocument(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantWidth  float64
		wantHeight float64
		wantFrames int
	}{
		{
			name:       "sized from first frame",
			payload:    `{"frames": [{"type": "FRAME", "width": 375, "height": 812}, {"type": "FRAME", "width": 10, "height": 10}]}`,
			wantWidth:  375,
			wantHeight: 812,
			wantFrames: 2,
		},
		{
			name:       "first frame without size",
			payload:    `{"frames": [{"type": "FRAME"}]}`,
			wantWidth:  1200,
			wantHeight: 800,
			wantFrames: 1,
		},
		{
			name:       "zero size falls back",
			payload:    `{"frames": [{"type": "FRAME", "width": 0, "height": 0}]}`,
			wantWidth:  1200,
			wantHeight: 800,
			wantFrames: 1,
		},
		{
			name:       "no frames",
			payload:    `{"frames": []}`,
			wantWidth:  1200,
			wantHeight: 800,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _ := buildPayload(t, newBuilder(options.Default()), tt.payload)

			assert.Equal(t, DocumentName, root.Name)
			assert.Equal(t, scene.KindFrame, root.Kind)
			assert.Equal(t, tt.wantWidth, root.Width)
			assert.Equal(t, tt.wantHeight, root.Height)
			assert.Empty(t, root.Fills)
			assert.Len(t, root.Children, tt.wantFrames)
		})
	}
}

func TestBuildKinds(t *testing.T) {
	payload := `{
		"type": "FRAME",
		"name": "Page",
		"children": [
			{"type": "RECTANGLE", "name": "Card", "x": 10, "y": 20, "width": 200, "height": 100, "cornerRadius": 8},
			{"type": "IMAGE", "name": "Hero"},
			{"type": "GROUP"},
			{"type": "COMPONENT"},
			{"type": "ELLIPSE"}
		]
	}`

	root, stats := buildPayload(t, newBuilder(options.Default()), payload)

	assert.Equal(t, "Page", root.Name)
	require.Len(t, root.Children, 5)

	card := root.Children[0]
	assert.Equal(t, scene.KindRectangle, card.Kind)
	assert.Equal(t, "Card", card.Name)
	assert.Equal(t, 10.0, card.X)
	assert.Equal(t, 20.0, card.Y)
	assert.Equal(t, 200.0, card.Width)
	assert.Equal(t, 100.0, card.Height)
	assert.Equal(t, 8.0, card.CornerRadius)

	for _, fallback := range root.Children[1:] {
		assert.Equal(t, scene.KindFrame, fallback.Kind)
	}

	assert.Equal(t, 6, stats.Total())
	assert.Equal(t, 6, stats.Nodes[scene.KindFrame]+stats.Nodes[scene.KindRectangle])
}

func TestBuildPartialGeometry(t *testing.T) {
	root, _ := buildPayload(t, newBuilder(options.Default()), `{"type": "RECTANGLE", "x": 5, "width": 40}`)

	assert.Zero(t, root.X)
	assert.Zero(t, root.Y)
	assert.Equal(t, 100.0, root.Width)
	assert.Equal(t, 100.0, root.Height)
}

func TestBuildChildrenOnlyForContainers(t *testing.T) {
	root, stats := buildPayload(t, newBuilder(options.Default()), `{"type": "RECTANGLE", "children": [{"type": "FRAME"}]}`)

	assert.Empty(t, root.Children)
	assert.Equal(t, 1, stats.Total())
}

func TestBuildFills(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
		wantRef string
	}{
		{
			name:    "background string wins over fills",
			payload: `{"type": "FRAME", "backgroundColor": "#ff0000", "fills": [{"type": "SOLID", "color": "#00ff00"}]}`,
			want:    []string{"#FF0000"},
		},
		{
			name:    "background object",
			payload: `{"type": "FRAME", "backgroundColor": {"r": 0, "g": 0, "b": 1}}`,
			want:    []string{"#0000FF"},
		},
		{
			name:    "solid and image fills",
			payload: `{"type": "RECTANGLE", "fills": [{"type": "SOLID", "color": {"r": 1, "g": 1, "b": 0}}, {"type": "IMAGE", "imageHash": "abc"}, {"type": "GRADIENT_LINEAR", "color": "red"}]}`,
			want:    []string{"#FFFF00", "#CCCCCC"},
			wantRef: "abc",
		},
		{
			name:    "empty fills",
			payload: `{"type": "FRAME", "fills": []}`,
			want:    []string{},
		},
		{
			name:    "no fills keeps default",
			payload: `{"type": "FRAME"}`,
			want:    []string{"#FFFFFF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _ := buildPayload(t, newBuilder(options.Default()), tt.payload)

			got := make([]string, 0, len(root.Fills))
			for _, p := range root.Fills {
				got = append(got, p.Color.Hex())
			}
			assert.Equal(t, tt.want, got)

			if tt.wantRef != "" {
				assert.Equal(t, tt.wantRef, root.Fills[len(root.Fills)-1].ImageRef)
			}
		})
	}
}

func TestBuildFillsWithoutPreservedColors(t *testing.T) {
	opts := options.Default()
	opts.PreserveColors = options.Bool(false)

	root, _ := buildPayload(t, newBuilder(opts), `{"type": "FRAME", "backgroundColor": "#ff0000"}`)
	assert.Equal(t, "#FFFFFF", root.Fills[0].Color.Hex())
}

func TestTextWeightToStyle(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  string
	}{
		{name: "bold", style: `{"fontWeight": 700}`, want: "Bold"},
		{name: "black", style: `{"fontWeight": 900}`, want: "Bold"},
		{name: "medium", style: `{"fontWeight": 550}`, want: "Medium"},
		{name: "light", style: `{"fontWeight": 300}`, want: "Regular"},
		{name: "absent", style: `{}`, want: "Regular"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _ := buildPayload(t, newBuilder(options.Default()), `{"type": "TEXT", "text": "Hi", "style": `+tt.style+`}`)

			assert.Equal(t, scene.KindText, root.Kind)
			assert.Equal(t, tt.want, root.Text.FontName.Style)
			assert.Equal(t, "Inter", root.Text.FontName.Family)
		})
	}
}

func TestTextTypography(t *testing.T) {
	payload := `{
		"type": "TEXT",
		"name": "Title",
		"text": "Hello",
		"x": 4, "y": 8,
		"style": {
			"fontFamily": "Roboto",
			"fontSize": 20,
			"lineHeightPx": 30,
			"fills": [{"type": "SOLID", "color": "#336699"}, {"type": "IMAGE", "imageRef": "x"}]
		}
	}`

	root, stats := buildPayload(t, newBuilder(options.Default()), payload)

	assert.Equal(t, "Title", root.Name)
	assert.Equal(t, 4.0, root.X)
	assert.Equal(t, 8.0, root.Y)
	assert.Equal(t, "Hello", root.Text.Characters)
	assert.Equal(t, scene.FontName{Family: "Roboto", Style: "Regular"}, root.Text.FontName)
	assert.Equal(t, 20.0, root.Text.FontSize)
	assert.Equal(t, scene.LineHeight{Value: 30, Unit: scene.UnitPixels}, root.Text.LineHeight)
	require.Len(t, root.Fills, 1)
	assert.Equal(t, "#336699", root.Fills[0].Color.Hex())

	assert.Equal(t, scene.AutoResizeWidthAndHeight, root.Text.AutoResize)
	assert.InDelta(t, 5*20*0.55, root.Width, 1e-9)
	assert.InDelta(t, 30, root.Height, 1e-9)
	assert.Equal(t, 1, stats.FontLoads)
}

func TestTextWithoutContent(t *testing.T) {
	loader := fonts.LoaderFunc(func(context.Context, scene.FontName) error {
		return errors.New("must not load")
	})

	b := &Builder{Options: options.Default(), Fonts: loader}
	root, stats := buildPayload(t, b, `{"type": "TEXT", "width": 100, "height": 40}`)

	assert.Equal(t, "", root.Text.Characters)
	assert.Zero(t, root.Width)
	assert.Zero(t, root.Height)
	assert.Zero(t, stats.FontLoads)
}

func TestTextSizing(t *testing.T) {
	tests := []struct {
		name           string
		geometry       string
		wantWidth      float64
		wantHeight     float64
		wantAutoResize string
	}{
		{
			name:           "content sized",
			geometry:       ``,
			wantWidth:      10 * 10 * 0.55,
			wantHeight:     12,
			wantAutoResize: scene.AutoResizeWidthAndHeight,
		},
		{
			name:           "fixed box",
			geometry:       `, "width": 300, "height": 50`,
			wantWidth:      300,
			wantHeight:     50,
			wantAutoResize: scene.AutoResizeNone,
		},
		{
			name:           "fixed width wide enough",
			geometry:       `, "width": 300`,
			wantWidth:      300,
			wantHeight:     12,
			wantAutoResize: scene.AutoResizeHeight,
		},
		{
			// 55px of content wraps to two lines at 30px.
			name:           "fixed width wraps",
			geometry:       `, "width": 30`,
			wantWidth:      30,
			wantHeight:     24,
			wantAutoResize: scene.AutoResizeHeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := `{"type": "TEXT", "text": "abcdefghij", "style": {"fontSize": 10}` + tt.geometry + `}`
			root, _ := buildPayload(t, newBuilder(options.Default()), payload)

			assert.InDelta(t, tt.wantWidth, root.Width, 1e-9)
			assert.InDelta(t, tt.wantHeight, root.Height, 1e-9)
			assert.Equal(t, tt.wantAutoResize, root.Text.AutoResize)
		})
	}
}

func TestTextWithoutPreservedStyles(t *testing.T) {
	opts := options.Default()
	opts.PreserveTextStyles = options.Bool(false)
	opts.DefaultFontFamily = "Lato"

	root, _ := buildPayload(t, newBuilder(opts), `{"type": "TEXT", "text": "x", "style": {"fontFamily": "Roboto", "fontWeight": 700, "fontSize": 30}}`)

	assert.Equal(t, scene.FontName{Family: "Lato", Style: "Regular"}, root.Text.FontName)
	assert.Equal(t, 12.0, root.Text.FontSize)
}

func TestBuildFontFailureAborts(t *testing.T) {
	b := newBuilder(options.Default())
	p, err := Decode([]byte(`{"frames": [{"type": "FRAME", "children": [{"type": "TEXT", "text": "x", "style": {"fontFamily": "Missing Sans"}}]}]}`))
	require.NoError(t, err)

	root, _, err := b.Build(context.Background(), p)
	require.Error(t, err)
	assert.Nil(t, root)
	assert.ErrorIs(t, err, fonts.ErrUnavailable)
}

func TestDecode(t *testing.T) {
	p, err := Decode([]byte(`{"frames": [{"type": "FRAME"}]}`))
	require.NoError(t, err)
	require.NotNil(t, p.Document)
	assert.Nil(t, p.Root)
	assert.Len(t, p.Document.Frames, 1)

	p, err = Decode([]byte(`{"type": "TEXT", "text": "x"}`))
	require.NoError(t, err)
	assert.Nil(t, p.Document)
	require.NotNil(t, p.Root)
	assert.Equal(t, "TEXT", p.Root.Type)

	_, err = Decode([]byte(`{"frames": "nope"}`))
	assert.Error(t, err)
}

func TestDecodeLenientNumbers(t *testing.T) {
	p, err := Decode([]byte(`{"type": "RECTANGLE", "x": "12px", "y": 3, "width": "wide", "height": null, "cornerRadius": "4", "children": [{"type": "TEXT", "text": "x", "style": {"fontSize": "18px", "fontWeight": "bold"}}]}`))
	require.NoError(t, err)

	root := p.Root
	require.NotNil(t, root.X)
	assert.Equal(t, 12.0, *root.X)
	assert.Equal(t, 3.0, *root.Y)
	assert.Nil(t, root.Width)
	assert.Nil(t, root.Height)
	assert.Equal(t, 4.0, *root.CornerRadius)

	style := root.Children[0].Style
	assert.Equal(t, 18.0, *style.FontSize)
	assert.Nil(t, style.FontWeight)
}

func TestDecodeScalarAttributes(t *testing.T) {
	p, err := Decode([]byte(`{"type": "FRAME", "id": 12, "name": 5, "children": [
		{"type": "TEXT", "text": 42, "style": {"fontFamily": 3, "fills": [{"type": "SOLID", "color": "#00ff00", "imageRef": 9}]}},
		{"type": "TEXT", "text": {"value": "x"}, "style": {"fontFamily": ["Roboto"]}}
	]}`))
	require.NoError(t, err)

	root := p.Root
	assert.Equal(t, "12", root.ID)
	assert.Equal(t, "5", root.Name)
	require.Len(t, root.Children, 2)

	first := root.Children[0]
	require.NotNil(t, first.Text)
	assert.Equal(t, "42", *first.Text)
	assert.Equal(t, "3", first.Style.FontFamily)
	require.Len(t, first.Style.Fills, 1)
	assert.Equal(t, scene.PaintSolid, first.Style.Fills[0].Type)
	assert.Equal(t, "9", first.Style.Fills[0].Ref())

	second := root.Children[1]
	assert.Nil(t, second.Text)
	assert.Empty(t, second.Style.FontFamily)
}

func TestBuildScalarAttributes(t *testing.T) {
	root, stats := buildPayload(t, newBuilder(options.Default()), `{"type": "FRAME", "name": 5, "children": [{"type": "TEXT", "text": 42}]}`)

	assert.Equal(t, "5", root.Name)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "42", root.Children[0].Text.Characters)
	assert.Equal(t, 2, stats.Total())
}
