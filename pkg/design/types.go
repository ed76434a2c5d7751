// Package design builds scene trees from design-tool-style JSON: nodes that
// already mirror the scene model with explicit geometry, paints and
// typography, or a document holding several top-level frames.
package design

import (
	"encoding/json"

	"github.com/kataras/figma-importer/pkg/scene"
	"github.com/kataras/figma-importer/pkg/values"
)

// Node is a design-tool-style node. Pointer fields distinguish absent values
// from zero values.
type Node struct {
	ID              string     `json:"id,omitempty"`
	Name            string     `json:"name,omitempty"`
	Type            string     `json:"type"`
	X               *float64   `json:"x,omitempty"`
	Y               *float64   `json:"y,omitempty"`
	Width           *float64   `json:"width,omitempty"`
	Height          *float64   `json:"height,omitempty"`
	BackgroundColor any        `json:"backgroundColor,omitempty"`
	CornerRadius    *float64   `json:"cornerRadius,omitempty"`
	Fills           []Paint    `json:"fills,omitempty"`
	Text            *string    `json:"text,omitempty"`
	Style           *TextStyle `json:"style,omitempty"`
	Children        []*Node    `json:"children,omitempty"`
}

// UnmarshalJSON decodes attributes leniently: numbers and numeric strings
// ("12px") are accepted for numeric attributes, numbers and booleans are
// accepted for text attributes in their text form, anything else is treated
// as absent.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	aux := struct {
		*plain
		ID           any `json:"id"`
		Name         any `json:"name"`
		Type         any `json:"type"`
		Text         any `json:"text"`
		X            any `json:"x"`
		Y            any `json:"y"`
		Width        any `json:"width"`
		Height       any `json:"height"`
		CornerRadius any `json:"cornerRadius"`
	}{plain: (*plain)(n)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	n.ID = values.TextOf(aux.ID)
	n.Name = values.TextOf(aux.Name)
	n.Type = values.TextOf(aux.Type)
	n.Text = nil
	if text, ok := values.ParseText(aux.Text); ok {
		n.Text = &text
	}

	n.X = optional(aux.X)
	n.Y = optional(aux.Y)
	n.Width = optional(aux.Width)
	n.Height = optional(aux.Height)
	n.CornerRadius = optional(aux.CornerRadius)
	return nil
}

func optional(v any) *float64 {
	f, ok := values.ParseOptional(v)
	if !ok {
		return nil
	}
	return &f
}

// TextStyle is the typography of a TEXT node.
type TextStyle struct {
	FontFamily   string   `json:"fontFamily,omitempty"`
	FontSize     *float64 `json:"fontSize,omitempty"`
	FontWeight   *float64 `json:"fontWeight,omitempty"`
	LineHeightPx *float64 `json:"lineHeightPx,omitempty"`
	Fills        []Paint  `json:"fills,omitempty"`
}

// UnmarshalJSON decodes attributes leniently, see Node.UnmarshalJSON.
func (s *TextStyle) UnmarshalJSON(data []byte) error {
	type plain TextStyle
	aux := struct {
		*plain
		FontFamily   any `json:"fontFamily"`
		FontSize     any `json:"fontSize"`
		FontWeight   any `json:"fontWeight"`
		LineHeightPx any `json:"lineHeightPx"`
	}{plain: (*plain)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.FontFamily = values.TextOf(aux.FontFamily)

	s.FontSize = optional(aux.FontSize)
	s.FontWeight = optional(aux.FontWeight)
	s.LineHeightPx = optional(aux.LineHeightPx)
	return nil
}

// Paint is a fill entry. Color is a color object or a CSS-like string.
type Paint struct {
	Type      scene.PaintType `json:"type"`
	Color     any             `json:"color,omitempty"`
	ScaleMode string          `json:"scaleMode,omitempty"`
	ImageRef  string          `json:"imageRef,omitempty"`
	ImageHash string          `json:"imageHash,omitempty"`
}

// UnmarshalJSON decodes the paint type and image fields leniently, see
// Node.UnmarshalJSON.
func (p *Paint) UnmarshalJSON(data []byte) error {
	type plain Paint
	aux := struct {
		*plain
		Type      any `json:"type"`
		ScaleMode any `json:"scaleMode"`
		ImageRef  any `json:"imageRef"`
		ImageHash any `json:"imageHash"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Type = scene.PaintType(values.TextOf(aux.Type))
	p.ScaleMode = values.TextOf(aux.ScaleMode)
	p.ImageRef = values.TextOf(aux.ImageRef)
	p.ImageHash = values.TextOf(aux.ImageHash)
	return nil
}

// Ref returns the image reference of an IMAGE paint, whichever field carries it.
func (p Paint) Ref() string {
	if p.ImageRef != "" {
		return p.ImageRef
	}
	return p.ImageHash
}

// Document is a collection of top-level frames.
type Document struct {
	Frames []*Node `json:"frames"`
}

// Payload is a decoded design-tool-style payload: either a Document or a
// single root node.
type Payload struct {
	Document *Document
	Root     *Node
}

// Decode reads a design payload. A "frames" key makes it a Document.
func Decode(raw []byte) (*Payload, error) {
	var head struct {
		Frames json.RawMessage `json:"frames"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	if head.Frames != nil {
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		return &Payload{Document: &doc}, nil
	}

	var root Node
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	return &Payload{Root: &root}, nil
}
