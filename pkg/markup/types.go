// Package markup builds scene trees from markup-derived JSON: DOM-like nodes
// carrying a tag type, id, classes, computed styles and an absolute size.
package markup

import (
	"encoding/json"

	"github.com/kataras/figma-importer/pkg/values"
)

// Node is one element of a markup-derived tree.
type Node struct {
	Type        string    `json:"type"`
	ID          string    `json:"id,omitempty"`
	Classes     []string  `json:"classes,omitempty"`
	Styles      Styles    `json:"styles,omitempty"`
	Position    *Position `json:"position,omitempty"`
	Text        string    `json:"text,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Alt         string    `json:"alt,omitempty"`
	Children    []*Node   `json:"children,omitempty"`
}

// UnmarshalJSON decodes scalar attributes leniently: numbers and booleans
// become their text form ("id": 7 reads as "7") and other values are treated
// as absent. A classes value that is not a list is ignored.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	aux := struct {
		*plain
		Type        any `json:"type"`
		ID          any `json:"id"`
		Classes     any `json:"classes"`
		Text        any `json:"text"`
		Placeholder any `json:"placeholder"`
		Alt         any `json:"alt"`
	}{plain: (*plain)(n)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	n.Type = values.TextOf(aux.Type)
	n.ID = values.TextOf(aux.ID)
	n.Classes = values.ParseTextList(aux.Classes)
	n.Text = values.TextOf(aux.Text)
	n.Placeholder = values.TextOf(aux.Placeholder)
	n.Alt = values.TextOf(aux.Alt)
	return nil
}

// Position holds the laid-out box of a node. Width and Height are numbers
// or strings such as "120px".
type Position struct {
	Absolute struct {
		Width  any `json:"width"`
		Height any `json:"height"`
	} `json:"absolute"`
}

// Size returns the raw width and height, nil when absent.
func (n *Node) Size() (width, height any) {
	if n == nil || n.Position == nil {
		return nil, nil
	}
	return n.Position.Absolute.Width, n.Position.Absolute.Height
}

// Styles maps style property names ("backgroundColor", "fontSize") to raw values.
type Styles map[string]string

// UnmarshalJSON accepts numbers and booleans as values and stores their text
// form. Null values and nested objects are skipped, and a styles value that
// is not an object decodes to no styles.
func (s *Styles) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	raw, ok := v.(map[string]any)
	if !ok {
		*s = nil
		return nil
	}

	out := make(Styles, len(raw))
	for k, v := range raw {
		if text, ok := values.ParseText(v); ok {
			out[k] = text
		}
	}
	*s = out
	return nil
}
