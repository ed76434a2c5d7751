package markup

import (
	"context"
	"fmt"
	"strings"

	"github.com/kataras/figma-importer/pkg/fonts"
	"github.com/kataras/figma-importer/pkg/options"
	"github.com/kataras/figma-importer/pkg/scene"
	"github.com/kataras/figma-importer/pkg/values"
)

const (
	// RootName is the name of the frame wrapping a converted markup tree.
	RootName = "HTML to Figma"
	// PlaceholderText is used for text nodes without content.
	PlaceholderText = "Placeholder Text"

	rootWidth       = 1440
	rootHeight      = 900
	defaultFontSize = 16
)

var (
	imagePlaceholder = scene.RGB(0.9, 0.9, 0.9)
	inputBackground  = scene.RGB(1, 1, 1)
)

// creator turns one markup node into a scene node, without its children.
type creator func(ctx context.Context, b *build, n *Node) (*scene.Node, error)

// creators is keyed by markup node type. Types without an entry become frames.
var creators = map[string]creator{
	"text":     createText,
	"img":      createImage,
	"input":    createInput,
	"textarea": createInput,
	"select":   createInput,
}

func creatorFor(typ string) creator {
	if c, ok := creators[typ]; ok {
		return c
	}
	return createFrame
}

// Builder converts markup trees into scene trees. A Builder holds no state
// between calls to Build.
type Builder struct {
	Options  options.Conversion
	Fonts    fonts.Loader
	Measurer fonts.Measurer
}

// build carries the state of a single Build call.
type build struct {
	*Builder
	stats scene.Stats
}

// Build converts root and its subtree. The root becomes a frame named
// RootName sized from its position (1440x900 by default) and filled with its
// background color or white; every descendant maps to exactly one scene node.
//
// Only font loading can fail. On failure no tree is returned.
func (b *Builder) Build(ctx context.Context, root *Node) (*scene.Node, scene.Stats, error) {
	if root == nil {
		return nil, scene.Stats{}, fmt.Errorf("markup: nil root")
	}

	bd := &build{Builder: b}

	frame := scene.NewFrame()
	frame.Name = RootName
	width, height := root.Size()
	frame.Resize(values.ParseDimension(width, rootWidth), values.ParseDimension(height, rootHeight))

	background := root.Styles["backgroundColor"]
	if background == "" {
		background = "#FFFFFF"
	}
	frame.SetFills(scene.Solid(values.ParseColor(background)))
	bd.stats.Created(frame.Kind)

	for _, child := range root.Children {
		if err := bd.process(ctx, child, frame); err != nil {
			return nil, scene.Stats{}, err
		}
	}

	return frame, bd.stats, nil
}

// process creates the scene node for n, attaches it under parent and then
// processes the children of n in order.
func (bd *build) process(ctx context.Context, n *Node, parent *scene.Node) error {
	if n == nil {
		return nil
	}

	node, err := creatorFor(n.Type)(ctx, bd, n)
	if err != nil {
		return err
	}
	bd.stats.Created(node.Kind)

	if !parent.AppendChild(node) {
		bd.stats.DroppedAttachments++
	}

	for _, child := range n.Children {
		if err := bd.process(ctx, child, node); err != nil {
			return err
		}
	}
	return nil
}

func (bd *build) measurer() fonts.Measurer {
	if bd.Measurer != nil {
		return bd.Measurer
	}
	return fonts.DefaultMeasurer
}

func createText(ctx context.Context, bd *build, n *Node) (*scene.Node, error) {
	node := scene.NewText()
	node.Name = "text"

	font, err := bd.loadFont(ctx, n.Styles)
	if err != nil {
		return nil, err
	}
	node.Text.FontName = font

	node.Text.Characters = n.Text
	if node.Text.Characters == "" {
		node.Text.Characters = PlaceholderText
	}

	if bd.Options.TextStyles() {
		if size, ok := n.Styles["fontSize"]; ok && size != "" {
			node.Text.FontSize = values.ParseFontSize(size, defaultFontSize)
		}

		if bd.Options.Colors() {
			if color, ok := n.Styles["color"]; ok && color != "" {
				node.SetFills(scene.Solid(values.ParseColor(color)))
			}
		}
	}

	// Content and typography are final, so the intrinsic size is accurate.
	w, h := bd.measurer().Measure(node.Text.Characters, *node.Text, 0)
	node.Resize(w, h)

	return node, nil
}

// loadFont resolves the font of a text node. With text styles preserved the
// CSS font-family list is tried in order before the default family, in the
// style matching the CSS font-weight. The error of the last candidate is
// returned when none loads.
func (bd *build) loadFont(ctx context.Context, styles Styles) (scene.FontName, error) {
	style := "Regular"
	var families []string

	if bd.Options.TextStyles() {
		style = fonts.StyleForWeight(fonts.WeightFromCSS(styles["fontWeight"]))
		families = cssFamilies(styles["fontFamily"])
	}
	families = append(families, bd.Options.FontFamily())

	var lastErr error
	for _, family := range families {
		font := scene.FontName{Family: family, Style: style}
		bd.stats.FontLoads++
		if lastErr = bd.Fonts.Load(ctx, font); lastErr == nil {
			return font, nil
		}
	}

	return scene.FontName{}, fmt.Errorf("load font for text: %w", lastErr)
}

// cssFamilies splits a CSS font-family list, dropping quotes and generic families.
func cssFamilies(list string) []string {
	var families []string
	for _, part := range strings.Split(list, ",") {
		family := strings.Trim(strings.TrimSpace(part), `"'`)
		switch strings.ToLower(family) {
		case "", "serif", "sans-serif", "monospace", "cursive", "fantasy", "system-ui", "inherit", "initial":
			continue
		}
		families = append(families, family)
	}
	return families
}

func createImage(_ context.Context, _ *build, n *Node) (*scene.Node, error) {
	node := scene.NewRectangle()

	node.Name = "img"
	if n.Alt != "" {
		node.Name = fmt.Sprintf("img (%s)", n.Alt)
	}

	width, height := n.Size()
	node.Resize(values.ParseDimension(width, values.DefaultDimension), values.ParseDimension(height, values.DefaultDimension))
	node.SetFills(scene.Solid(imagePlaceholder))

	return node, nil
}

func createInput(_ context.Context, _ *build, n *Node) (*scene.Node, error) {
	node := scene.NewFrame()

	typ := n.Type
	if typ == "" {
		typ = "text"
	}
	node.Name = fmt.Sprintf("input[type=%s]", typ)
	node.SetPluginData(scene.DataPlaceholder, n.Placeholder)

	width, height := n.Size()
	node.Resize(values.ParseDimension(width, values.DefaultDimension), values.ParseDimension(height, values.DefaultDimension))
	node.SetFills(scene.Solid(inputBackground))

	return node, nil
}

func createFrame(_ context.Context, bd *build, n *Node) (*scene.Node, error) {
	node := scene.NewFrame()
	node.Name = FrameName(n)
	node.SetPluginData(scene.DataSourceID, n.ID)

	width, height := n.Size()
	node.Resize(values.ParseDimension(width, values.DefaultDimension), values.ParseDimension(height, values.DefaultDimension))

	if bd.Options.Colors() {
		if bg := n.Styles["backgroundColor"]; bg != "" && bg != "transparent" {
			node.SetFills(scene.Solid(values.ParseColor(bg)))
		}
	}

	return node, nil
}

// FrameName returns the selector-like name of a frame: the tag type (or
// "div"), then "#id" and ".class" parts in their original order.
func FrameName(n *Node) string {
	var sb strings.Builder

	if n.Type == "" {
		sb.WriteString("div")
	} else {
		sb.WriteString(n.Type)
	}

	if n.ID != "" {
		sb.WriteString("#")
		sb.WriteString(n.ID)
	}

	if len(n.Classes) > 0 {
		sb.WriteString(".")
		sb.WriteString(strings.Join(n.Classes, "."))
	}

	return sb.String()
}
