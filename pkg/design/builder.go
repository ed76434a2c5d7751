package design

import (
	"context"
	"fmt"

	"github.com/kataras/figma-importer/pkg/fonts"
	"github.com/kataras/figma-importer/pkg/options"
	"github.com/kataras/figma-importer/pkg/scene"
	"github.com/kataras/figma-importer/pkg/values"
)

const (
	// DocumentName is the name of the frame wrapping the frames of a Document.
	DocumentName = "Imported Design"

	documentWidth  = 1200
	documentHeight = 800
)

var imagePlaceholder = scene.RGB(0.8, 0.8, 0.8)

// creator makes the scene node for one design node, before the common
// post-processing applies.
type creator func(ctx context.Context, bd *build, n *Node) (*scene.Node, error)

var creators = map[string]creator{
	"FRAME":     createFrame,
	"RECTANGLE": createRectangle,
	"TEXT":      createText,
}

func creatorFor(typ string) creator {
	if c, ok := creators[typ]; ok {
		return c
	}
	return createFrame
}

// Builder converts design payloads into scene trees. A Builder holds no
// state between calls to Build.
type Builder struct {
	Options  options.Conversion
	Fonts    fonts.Loader
	Measurer fonts.Measurer
}

type build struct {
	*Builder
	stats scene.Stats
}

// Build converts a decoded payload. A Document becomes a frame named
// DocumentName, sized from its first frame, holding one child per frame.
// Otherwise the root node itself is converted.
//
// Only font loading can fail. On failure no tree is returned.
func (b *Builder) Build(ctx context.Context, p *Payload) (*scene.Node, scene.Stats, error) {
	if p == nil || (p.Document == nil && p.Root == nil) {
		return nil, scene.Stats{}, fmt.Errorf("design: empty payload")
	}

	bd := &build{Builder: b}

	if p.Document != nil {
		root, err := bd.document(ctx, p.Document)
		if err != nil {
			return nil, scene.Stats{}, err
		}
		return root, bd.stats, nil
	}

	root, err := bd.node(ctx, p.Root, nil)
	if err != nil {
		return nil, scene.Stats{}, err
	}
	return root, bd.stats, nil
}

func (bd *build) document(ctx context.Context, doc *Document) (*scene.Node, error) {
	wrapper := scene.NewFrame()
	wrapper.Name = DocumentName

	width, height := float64(documentWidth), float64(documentHeight)
	if len(doc.Frames) > 0 && doc.Frames[0] != nil {
		first := doc.Frames[0]
		if first.Width != nil && *first.Width != 0 {
			width = *first.Width
		}
		if first.Height != nil && *first.Height != 0 {
			height = *first.Height
		}
	}
	wrapper.Resize(width, height)
	wrapper.SetFills()
	bd.stats.Created(wrapper.Kind)

	for _, frame := range doc.Frames {
		if frame == nil {
			continue
		}

		if _, err := bd.node(ctx, frame, wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// node builds n, attaches it under parent when one is given and then, for
// container kinds, builds its subtree.
func (bd *build) node(ctx context.Context, n *Node, parent *scene.Node) (*scene.Node, error) {
	node, err := creatorFor(n.Type)(ctx, bd, n)
	if err != nil {
		return nil, err
	}
	bd.stats.Created(node.Kind)

	bd.apply(n, node)

	if parent != nil && !parent.AppendChild(node) {
		bd.stats.DroppedAttachments++
	}

	if !node.Kind.IsContainer() {
		return node, nil
	}

	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if _, err := bd.node(ctx, child, node); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// apply runs the post-processing shared by every kind: name, position,
// size and fills. Text sizing and fills are handled by createText.
func (bd *build) apply(n *Node, node *scene.Node) {
	if n.Name != "" {
		node.Name = n.Name
	}
	node.SetPluginData(scene.DataSourceID, n.ID)

	if n.X != nil && n.Y != nil {
		node.X, node.Y = *n.X, *n.Y
	}

	if node.Kind == scene.KindText {
		return
	}

	if n.Width != nil && n.Height != nil {
		node.Resize(*n.Width, *n.Height)
	}

	if !bd.Options.Colors() {
		return
	}

	switch {
	case n.BackgroundColor != nil:
		node.SetFills(scene.Solid(values.ParseColor(n.BackgroundColor)))
	case n.Fills != nil:
		node.SetFills(paints(n.Fills, true)...)
	}
}

// paints converts design paints. SOLID paints keep their parsed color.
// IMAGE paints become a gray placeholder carrying the image reference when
// images is set and are skipped otherwise. Other kinds are skipped.
func paints(in []Paint, images bool) []scene.Paint {
	out := make([]scene.Paint, 0, len(in))
	for _, p := range in {
		switch p.Type {
		case scene.PaintSolid:
			out = append(out, scene.Solid(values.ParseColor(p.Color)))
		case scene.PaintImage:
			if !images {
				continue
			}
			placeholder := scene.Solid(imagePlaceholder)
			placeholder.ScaleMode = p.ScaleMode
			placeholder.ImageRef = p.Ref()
			out = append(out, placeholder)
		}
	}
	return out
}

func createFrame(_ context.Context, _ *build, _ *Node) (*scene.Node, error) {
	return scene.NewFrame(), nil
}

func createRectangle(_ context.Context, _ *build, n *Node) (*scene.Node, error) {
	node := scene.NewRectangle()
	if n.CornerRadius != nil {
		node.CornerRadius = *n.CornerRadius
	}
	return node, nil
}
