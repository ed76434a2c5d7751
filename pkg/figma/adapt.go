package figma

import (
	"fmt"
	"math"

	"github.com/kataras/figma-importer/pkg/design"
	"github.com/kataras/figma-importer/pkg/scene"
)

// designTypes maps Figma node types to the node types of the design payload.
// Vector-like shapes become rectangles; types missing here keep their name
// and are converted as frames.
var designTypes = map[string]string{
	"FRAME":             "FRAME",
	"SECTION":           "FRAME",
	"INSTANCE":          "FRAME",
	"COMPONENT_SET":     "FRAME",
	"COMPONENT":         "COMPONENT",
	"GROUP":             "GROUP",
	"BOOLEAN_OPERATION": "GROUP",
	"TEXT":              "TEXT",
	"RECTANGLE":         "RECTANGLE",
	"ELLIPSE":           "RECTANGLE",
	"VECTOR":            "RECTANGLE",
	"LINE":              "RECTANGLE",
	"STAR":              "RECTANGLE",
	"REGULAR_POLYGON":   "RECTANGLE",
}

// DocumentFromFile collects the top-level nodes of every page of a file
// into a design document. Hidden nodes are skipped.
func DocumentFromFile(file *FileResponse) *design.Document {
	var roots []*Node
	for i := range file.Document.Children {
		page := &file.Document.Children[i]
		roots = append(roots, topLevel(page)...)
	}

	return documentFrom(roots)
}

// DocumentFromNodes builds a design document from the requested nodes, in
// the order of nodeIDs. A requested page contributes its top-level nodes.
// Missing IDs are reported as an error.
func DocumentFromNodes(resp *NodesResponse, nodeIDs []string) (*design.Document, error) {
	var roots []*Node
	for _, id := range nodeIDs {
		data, ok := resp.Nodes[id]
		if !ok || data == nil {
			return nil, fmt.Errorf("node %s not found in file", id)
		}

		if data.Document.Type == "CANVAS" {
			roots = append(roots, topLevel(&data.Document)...)
			continue
		}
		roots = append(roots, &data.Document)
	}

	return documentFrom(roots), nil
}

func topLevel(page *Node) []*Node {
	var nodes []*Node
	for i := range page.Children {
		if page.Children[i].IsVisible() {
			nodes = append(nodes, &page.Children[i])
		}
	}
	return nodes
}

// documentFrom converts root nodes, positioning them relative to the top
// left corner of their combined bounds.
func documentFrom(roots []*Node) *design.Document {
	origin := Rectangle{X: math.Inf(1), Y: math.Inf(1)}
	for _, root := range roots {
		if box := root.AbsoluteBoundingBox; box != nil {
			origin.X = math.Min(origin.X, box.X)
			origin.Y = math.Min(origin.Y, box.Y)
		}
	}
	if math.IsInf(origin.X, 1) {
		origin = Rectangle{}
	}

	doc := &design.Document{Frames: make([]*design.Node, 0, len(roots))}
	for _, root := range roots {
		doc.Frames = append(doc.Frames, adaptNode(root, &origin))
	}
	return doc
}

// adaptNode converts n and its visible descendants. Positions are made
// relative to the bounding box of the parent.
func adaptNode(n *Node, parent *Rectangle) *design.Node {
	dn := &design.Node{
		ID:   n.ID,
		Name: n.Name,
		Type: n.Type,
	}
	if t, ok := designTypes[n.Type]; ok {
		dn.Type = t
	}

	if box := n.AbsoluteBoundingBox; box != nil {
		x, y := box.X, box.Y
		if parent != nil {
			x -= parent.X
			y -= parent.Y
		}
		width, height := box.Width, box.Height
		dn.X, dn.Y, dn.Width, dn.Height = &x, &y, &width, &height
	}

	if n.CornerRadius > 0 {
		radius := n.CornerRadius
		dn.CornerRadius = &radius
	}

	fills := adaptPaints(n.Fills)

	if n.Type == "TEXT" {
		characters := n.Characters
		dn.Text = &characters
		dn.Style = adaptTypeStyle(n.Style, fills)
		return dn
	}

	if n.Fills != nil {
		dn.Fills = fills
	}

	for i := range n.Children {
		child := &n.Children[i]
		if !child.IsVisible() {
			continue
		}
		dn.Children = append(dn.Children, adaptNode(child, n.AbsoluteBoundingBox))
	}

	return dn
}

func adaptTypeStyle(s *TypeStyle, fills []design.Paint) *design.TextStyle {
	style := &design.TextStyle{Fills: fills}
	if s == nil {
		return style
	}

	style.FontFamily = s.FontFamily
	if s.FontSize > 0 {
		size := s.FontSize
		style.FontSize = &size
	}
	if s.FontWeight > 0 {
		weight := s.FontWeight
		style.FontWeight = &weight
	}
	if s.LineHeightPx > 0 {
		lineHeight := s.LineHeightPx
		style.LineHeightPx = &lineHeight
	}
	return style
}

// adaptPaints keeps the visible SOLID and IMAGE paints.
func adaptPaints(paints []Paint) []design.Paint {
	out := make([]design.Paint, 0, len(paints))
	for i := range paints {
		p := &paints[i]
		if !p.IsVisible() {
			continue
		}

		switch scene.PaintType(p.Type) {
		case scene.PaintSolid:
			if p.Color == nil {
				continue
			}
			out = append(out, design.Paint{Type: scene.PaintSolid, Color: adaptColor(p)})
		case scene.PaintImage:
			out = append(out, design.Paint{Type: scene.PaintImage, ScaleMode: p.ScaleMode, ImageRef: p.ImageRef})
		}
	}
	return out
}

// adaptColor folds the paint opacity into the alpha channel. A fully
// opaque color carries no alpha.
func adaptColor(p *Paint) scene.Color {
	alpha := p.Color.A
	if p.Opacity != nil {
		alpha *= *p.Opacity
	}
	if alpha >= 1 {
		return scene.RGB(p.Color.R, p.Color.G, p.Color.B)
	}
	return scene.RGBA(p.Color.R, p.Color.G, p.Color.B, alpha)
}
