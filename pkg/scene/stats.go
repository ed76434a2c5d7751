package scene

// Stats summarizes a single conversion.
type Stats struct {
	// Nodes counts created nodes per kind, attached or not.
	Nodes map[Kind]int `json:"nodes"`
	// DroppedAttachments counts children that could not be attached because
	// their parent is not a container.
	DroppedAttachments int `json:"droppedAttachments"`
	// FontLoads counts font resolutions requested from the loader.
	FontLoads int `json:"fontLoads"`
}

// Created records a newly created node.
func (s *Stats) Created(kind Kind) {
	if s.Nodes == nil {
		s.Nodes = make(map[Kind]int)
	}
	s.Nodes[kind]++
}

// Total returns the number of created nodes.
func (s Stats) Total() int {
	total := 0
	for _, n := range s.Nodes {
		total += n
	}
	return total
}
