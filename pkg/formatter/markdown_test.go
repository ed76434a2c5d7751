package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kataras/figma-importer/pkg/options"
	"github.com/kataras/figma-importer/pkg/scene"
)

func sampleTree() *scene.Node {
	root := scene.NewFrame()
	root.Name = "Page"
	root.Resize(800, 600)

	button := scene.NewFrame()
	button.Name = "Primary Button"
	button.X, button.Y = 10, 20
	button.SetFills(scene.Solid(scene.RGB(0, 0, 1)))
	root.AppendChild(button)

	label := scene.NewText()
	label.Name = "Label"
	label.Text.Characters = "Sign up"
	label.Text.FontSize = 16
	button.AppendChild(label)

	logo := scene.NewRectangle()
	logo.Name = "img (logo)"
	root.AppendChild(logo)

	hero := scene.NewRectangle()
	hero.Name = "Hero"
	placeholder := scene.Solid(scene.RGB(0.8, 0.8, 0.8))
	placeholder.ImageRef = "abc123"
	hero.SetFills(placeholder)
	root.AppendChild(hero)

	input := scene.NewFrame()
	input.Name = "input[type=input]"
	input.SetPluginData(scene.DataPlaceholder, "Email")
	root.AppendChild(input)

	return root
}

func TestToMarkdown(t *testing.T) {
	opts := options.Default()
	stats := scene.Stats{DroppedAttachments: 2, FontLoads: 1}
	stats.Created(scene.KindFrame)
	stats.Created(scene.KindText)

	md := ToMarkdown(sampleTree(), Summary{Source: "page.json", Dialect: "markup", Stats: stats, Options: &opts})

	assert.Contains(t, md, "# Import Report - page.json\n")
	assert.Contains(t, md, "- **Dialect**: markup\n")
	assert.Contains(t, md, "- **Nodes**: 2\n")
	assert.Contains(t, md, "  - FRAME: 1\n")
	assert.Contains(t, md, "- **Dropped attachments**: 2\n")
	assert.Contains(t, md, "| defaultFontFamily | Inter |\n")

	assert.Contains(t, md, "--color-page: #FFFFFF;\n")
	assert.Contains(t, md, "--color-primary-button: #0000FF;\n")
	assert.NotContains(t, md, "#CCCCCC")

	assert.Contains(t, md, "- Inter Regular 16px\n")

	assert.Contains(t, md, "- **FRAME** Page (800x600)\n")
	assert.Contains(t, md, "  - **FRAME** Primary Button (100x100 at 10,20)\n")
	assert.Contains(t, md, "    - **TEXT** Label (0x0) \"Sign up\"\n")

	assert.Contains(t, md, "## Image Placeholders")
	assert.Regexp(t, `\|\s*img \(logo\)\s*\|\s*100x100\s*\|\s*-\s*\|`, md)
	assert.Regexp(t, "\\|\\s*Hero\\s*\\|\\s*100x100\\s*\\|\\s*`abc123`\\s*\\|", md)
	assert.Contains(t, md, "## Inputs")
	assert.Regexp(t, `\|\s*input\[type=input\]\s*\|\s*100x100\s*\|\s*Email\s*\|`, md)
}

func TestToMarkdownWithoutTree(t *testing.T) {
	md := ToMarkdown(nil, Summary{Source: "empty"})

	assert.Contains(t, md, "# Import Report - empty\n")
	assert.NotContains(t, md, "## Layers")
	assert.NotContains(t, md, "| Option |")
}

func TestToKebabCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Primary Button", want: "primary-button"},
		{in: "background_color", want: "background-color"},
		{in: "Card/Title", want: "cardtitle"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toKebabCase(tt.in), tt.in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
}
