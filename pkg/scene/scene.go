// Package scene is the output data model of the importer: a strictly owned tree
// of typed visual nodes (frames, rectangles, text, groups and components).
//
// The constructors in this package play the role of the design tool's node
// factory. They return nodes carrying the same defaults a freshly created
// node has in the host (a 100x100 frame with a white fill, and so on), so
// builders only set what their input actually specifies.
package scene

import (
	"fmt"
	"math"
)

// Kind identifies the visual primitive a Node represents.
type Kind string

const (
	KindFrame     Kind = "FRAME"
	KindRectangle Kind = "RECTANGLE"
	KindText      Kind = "TEXT"
	KindGroup     Kind = "GROUP"
	KindComponent Kind = "COMPONENT"
)

// IsContainer reports whether nodes of this kind accept children.
func (k Kind) IsContainer() bool {
	switch k {
	case KindFrame, KindGroup, KindComponent:
		return true
	default:
		return false
	}
}

// Color represents an RGB(A) color with channel values ranging from 0 to 1.
// A is optional; a nil A means fully opaque.
type Color struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a,omitempty"`
}

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA returns a color with an explicit alpha channel.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: &a}
}

// Alpha returns the alpha channel, 1 when it is not set.
func (c Color) Alpha() float64 {
	if c.A == nil {
		return 1
	}
	return *c.A
}

// Hex converts the color to standard hexadecimal format (#RRGGBB).
// Alpha is not part of the result.
func (c Color) Hex() string {
	r := int(math.Round(clamp01(c.R) * 255))
	g := int(math.Round(clamp01(c.G) * 255))
	b := int(math.Round(clamp01(c.B) * 255))

	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PaintType is the kind of a fill.
type PaintType string

const (
	PaintSolid           PaintType = "SOLID"
	PaintGradientLinear  PaintType = "GRADIENT_LINEAR"
	PaintGradientRadial  PaintType = "GRADIENT_RADIAL"
	PaintGradientAngular PaintType = "GRADIENT_ANGULAR"
	PaintGradientDiamond PaintType = "GRADIENT_DIAMOND"
	PaintImage           PaintType = "IMAGE"
	PaintEmoji           PaintType = "EMOJI"
)

// Paint is a single entry of a node's fill list.
type Paint struct {
	Type      PaintType `json:"type"`
	Color     *Color    `json:"color,omitempty"`
	ScaleMode string    `json:"scaleMode,omitempty"`
	ImageRef  string    `json:"imageRef,omitempty"`
}

// Solid returns a SOLID paint of the given color.
func Solid(c Color) Paint {
	return Paint{Type: PaintSolid, Color: &c}
}

// FontName identifies a font resource by family and style ("Inter", "Bold").
type FontName struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

func (f FontName) String() string {
	return f.Family + " " + f.Style
}

// Line height units.
const (
	UnitPixels = "PIXELS"
	UnitAuto   = "AUTO"
)

// LineHeight of a text node. Value is meaningful only for UnitPixels.
type LineHeight struct {
	Value float64 `json:"value,omitempty"`
	Unit  string  `json:"unit"`
}

// Text auto-resize behaviors.
const (
	AutoResizeNone           = "NONE"
	AutoResizeHeight         = "HEIGHT"
	AutoResizeWidthAndHeight = "WIDTH_AND_HEIGHT"
)

// Text holds the typography of a TEXT node.
type Text struct {
	Characters string     `json:"characters"`
	FontName   FontName   `json:"fontName"`
	FontSize   float64    `json:"fontSize"`
	LineHeight LineHeight `json:"lineHeight"`
	AutoResize string     `json:"textAutoResize"`
}

// Node is a single element of the produced scene tree. A node owns its
// Children exclusively; there are no parent back-references.
type Node struct {
	Kind         Kind    `json:"type"`
	Name         string  `json:"name"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Fills        []Paint `json:"fills"`
	CornerRadius float64 `json:"cornerRadius,omitempty"`
	Text         *Text   `json:"text,omitempty"`
	// PluginData holds source attributes with no visual counterpart, such as
	// the placeholder of an input or the id of the source node.
	PluginData map[string]string `json:"pluginData,omitempty"`
	Children   []*Node           `json:"children,omitempty"`
}

// Default font applied to new text nodes.
var DefaultFont = FontName{Family: "Inter", Style: "Regular"}

// NewFrame creates a 100x100 frame with a white fill.
func NewFrame() *Node {
	return &Node{
		Kind:   KindFrame,
		Name:   "Frame",
		Width:  100,
		Height: 100,
		Fills:  []Paint{Solid(RGB(1, 1, 1))},
	}
}

// NewRectangle creates a 100x100 rectangle with a light gray fill.
func NewRectangle() *Node {
	return &Node{
		Kind:   KindRectangle,
		Name:   "Rectangle",
		Width:  100,
		Height: 100,
		Fills:  []Paint{Solid(RGB(0.85, 0.85, 0.85))},
	}
}

// NewText creates an empty text node using DefaultFont at 12px, black fill,
// sized to its (empty) content.
func NewText() *Node {
	return &Node{
		Kind:  KindText,
		Name:  "Text",
		Fills: []Paint{Solid(RGB(0, 0, 0))},
		Text: &Text{
			FontName:   DefaultFont,
			FontSize:   12,
			LineHeight: LineHeight{Unit: UnitAuto},
			AutoResize: AutoResizeWidthAndHeight,
		},
	}
}

// NewGroup creates an empty group.
func NewGroup() *Node {
	return &Node{Kind: KindGroup, Name: "Group"}
}

// NewComponent creates a 100x100 component with a white fill.
func NewComponent() *Node {
	n := NewFrame()
	n.Kind = KindComponent
	n.Name = "Component"
	return n
}

// New creates a node of the given kind. Unknown kinds produce a frame.
func New(kind Kind) *Node {
	switch kind {
	case KindRectangle:
		return NewRectangle()
	case KindText:
		return NewText()
	case KindGroup:
		return NewGroup()
	case KindComponent:
		return NewComponent()
	default:
		return NewFrame()
	}
}

// AppendChild attaches child as the last child of n. It returns false and
// leaves both nodes untouched when n cannot hold children.
func (n *Node) AppendChild(child *Node) bool {
	if n == nil || child == nil || !n.Kind.IsContainer() {
		return false
	}
	n.Children = append(n.Children, child)
	return true
}

// Resize sets the node size. Negative values are clamped to zero.
func (n *Node) Resize(width, height float64) {
	n.Width = math.Max(0, width)
	n.Height = math.Max(0, height)
}

// SetFills replaces the fill list.
func (n *Node) SetFills(fills ...Paint) {
	n.Fills = append([]Paint{}, fills...)
}

// SetPluginData stores value under key. An empty value removes the key.
func (n *Node) SetPluginData(key, value string) {
	if value == "" {
		delete(n.PluginData, key)
		return
	}
	if n.PluginData == nil {
		n.PluginData = make(map[string]string)
	}
	n.PluginData[key] = value
}

// Walk visits n and its descendants depth-first in child order.
// Returning false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int) bool, depth int) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node, int) bool {
		total++
		return true
	})
	return total
}

// PluginData keys written by the builders.
const (
	DataSourceID    = "sourceId"
	DataPlaceholder = "placeholder"
)
