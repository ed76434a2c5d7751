package figma

// FileResponse represents the response of the Figma file endpoint: file
// metadata and the complete document tree.
type FileResponse struct {
	Name          string `json:"name"`
	LastModified  string `json:"lastModified"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	Version       string `json:"version"`
	Document      Node   `json:"document"`
	SchemaVersion int    `json:"schemaVersion"`
}

// NodesResponse represents the response of the Figma nodes endpoint when
// fetching specific nodes. Nodes maps each requested node ID to its data;
// IDs that do not exist map to null.
type NodesResponse struct {
	Name         string               `json:"name"`
	LastModified string               `json:"lastModified"`
	Version      string               `json:"version"`
	Nodes        map[string]*NodeData `json:"nodes"`
}

// NodeData wraps the document subtree of one requested node.
type NodeData struct {
	Document Node `json:"document"`
}

// Node is a single element of the Figma document tree: the document itself,
// canvases (pages), frames, groups, text, shapes and so on.
type Node struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	Visible             *bool      `json:"visible,omitempty"`
	Children            []Node     `json:"children,omitempty"`
	Fills               []Paint    `json:"fills,omitempty"`
	CornerRadius        float64    `json:"cornerRadius,omitempty"`
	Characters          string     `json:"characters,omitempty"`
	Style               *TypeStyle `json:"style,omitempty"`
	AbsoluteBoundingBox *Rectangle `json:"absoluteBoundingBox,omitempty"`
}

// IsVisible reports whether the node is rendered. The API omits the field
// for visible nodes.
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// Color represents an RGBA color with float values ranging from 0 to 1.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Paint represents a fill applied to a Figma node.
type Paint struct {
	Type      string   `json:"type"`
	Visible   *bool    `json:"visible,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty"`
	Color     *Color   `json:"color,omitempty"`
	ScaleMode string   `json:"scaleMode,omitempty"`
	ImageRef  string   `json:"imageRef,omitempty"`
}

// IsVisible reports whether the paint is rendered. The API omits the field
// for visible paints.
func (p *Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// TypeStyle represents the text styling of a TEXT node.
type TypeStyle struct {
	FontFamily          string  `json:"fontFamily"`
	FontPostScriptName  string  `json:"fontPostScriptName"`
	FontWeight          float64 `json:"fontWeight"`
	FontSize            float64 `json:"fontSize"`
	LineHeightPx        float64 `json:"lineHeightPx"`
	TextAlignHorizontal string  `json:"textAlignHorizontal"`
}

// Rectangle is the absolute position and size of a node on the canvas.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
