package design

import (
	"context"
	"fmt"

	"github.com/kataras/figma-importer/pkg/fonts"
	"github.com/kataras/figma-importer/pkg/scene"
)

// createText builds a TEXT node. Without text content the node keeps its
// defaults and no font is loaded.
//
// Sizing runs in two steps. placeText sets content and typography and sizes
// the node to its content; settleText then applies the requested geometry
// and corrects the height from the content measured at the final width.
func createText(ctx context.Context, bd *build, n *Node) (*scene.Node, error) {
	node := scene.NewText()
	if n.Text == nil {
		return node, nil
	}

	font := bd.fontFor(n.Style)
	bd.stats.FontLoads++
	if err := bd.Fonts.Load(ctx, font); err != nil {
		return nil, fmt.Errorf("load font for %q: %w", n.Name, err)
	}

	bd.placeText(node, *n.Text, font, n.Style)
	if n.Width != nil {
		bd.settleText(node, *n.Width, n.Height)
	}

	return node, nil
}

// fontFor resolves family and style from the text style. Without preserved
// text styles the default family is used in its Regular style.
func (bd *build) fontFor(style *TextStyle) scene.FontName {
	font := scene.FontName{Family: bd.Options.FontFamily(), Style: "Regular"}
	if style == nil || !bd.Options.TextStyles() {
		return font
	}

	if style.FontFamily != "" {
		font.Family = style.FontFamily
	}
	if style.FontWeight != nil {
		font.Style = fonts.StyleForWeight(*style.FontWeight)
	}
	return font
}

func (bd *build) placeText(node *scene.Node, characters string, font scene.FontName, style *TextStyle) {
	t := node.Text
	t.Characters = characters
	t.FontName = font

	if style != nil {
		if bd.Options.TextStyles() {
			if style.FontSize != nil && *style.FontSize > 0 {
				t.FontSize = *style.FontSize
			}
			if style.LineHeightPx != nil && *style.LineHeightPx > 0 {
				t.LineHeight = scene.LineHeight{Value: *style.LineHeightPx, Unit: scene.UnitPixels}
			}
		}

		if bd.Options.Colors() && style.Fills != nil {
			node.SetFills(paints(style.Fills, false)...)
		}
	}

	t.AutoResize = scene.AutoResizeWidthAndHeight
	node.Resize(bd.measurer().Measure(t.Characters, *t, 0))
}

// settleText fixes the width of a placed text node. With a requested height
// the box is fixed; otherwise the height follows the content wrapped at width.
func (bd *build) settleText(node *scene.Node, width float64, height *float64) {
	t := node.Text

	if height != nil {
		t.AutoResize = scene.AutoResizeNone
		node.Resize(width, *height)
		return
	}

	t.AutoResize = scene.AutoResizeHeight
	node.Resize(width, node.Height)

	_, measured := bd.measurer().Measure(t.Characters, *t, width)
	if measured > node.Height {
		node.Resize(width, measured)
	}
}

func (bd *build) measurer() fonts.Measurer {
	if bd.Measurer != nil {
		return bd.Measurer
	}
	return fonts.DefaultMeasurer
}
