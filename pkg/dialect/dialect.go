// Package dialect classifies import payloads as markup-derived or design-tool-style JSON.
package dialect

import (
	"bytes"
	"encoding/json"
)

// Dialect is the shape of an import payload.
type Dialect int

const (
	// Markup is a DOM-like tree: tag types, classes, ids, styles.
	Markup Dialect = iota
	// Design mirrors a design tool's node schema, or is a frames collection.
	Design
)

func (d Dialect) String() string {
	switch d {
	case Design:
		return "design"
	default:
		return "markup"
	}
}

// designTypes are the node types that mark a payload as design-tool-style.
var designTypes = map[string]bool{
	"FRAME":     true,
	"RECTANGLE": true,
	"TEXT":      true,
	"IMAGE":     true,
}

type header struct {
	Frames json.RawMessage `json:"frames"`
	Type   any             `json:"type"`
}

// IsDesign reports whether raw is a design-tool-style payload: a JSON object
// with a "frames" field or with a "type" of FRAME, RECTANGLE, TEXT or IMAGE.
//
// The check is literal and case-sensitive. A markup tag that happens to be
// spelled like one of those types is classified as design.
func IsDesign(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return false
	}

	var p header
	if err := json.Unmarshal(raw, &p); err != nil {
		return false
	}

	if p.Frames != nil {
		return true
	}

	typ, ok := p.Type.(string)
	return ok && designTypes[typ]
}

// Detect returns the dialect of raw. Anything not recognized as Design is Markup.
func Detect(raw []byte) Dialect {
	if IsDesign(raw) {
		return Design
	}
	return Markup
}
