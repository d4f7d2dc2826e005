package page

// Snapshot is a copy of the document state handed to renderers.
type Snapshot struct {
	Layout       Layout                  `json:"layout"`
	Elements     map[string]ElementState `json:"elements"`
	ErrorMessage string                  `json:"errorMessage,omitempty"`
}

// Snapshot captures every element state.
func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := Snapshot{
		Layout:   d.layout,
		Elements: make(map[string]ElementState, len(d.nodes)),
	}
	for id, n := range d.nodes {
		snap.Elements[id] = n.state
	}
	for _, child := range d.children[IDError] {
		if hasClass(child.class, "error-message") {
			snap.ErrorMessage = child.state.Text
			break
		}
	}
	return snap
}

// Element returns the state recorded for id; absent ids yield the zero state.
func (s Snapshot) Element(id string) ElementState {
	return s.Elements[id]
}

// Has reports whether the document carried id.
func (s Snapshot) Has(id string) bool {
	_, ok := s.Elements[id]
	return ok
}

// Visible reports whether id was present and visible.
func (s Snapshot) Visible(id string) bool {
	return s.Elements[id].Visible
}

// FieldValues returns the form control values keyed by id.
func (s Snapshot) FieldValues() map[string]string {
	out := make(map[string]string, len(FormFieldIDs()))
	for _, id := range FormFieldIDs() {
		if state, ok := s.Elements[id]; ok {
			out[id] = state.Value
		}
	}
	return out
}

// IDs returns the recorded ids sorted for deterministic output.
func (s Snapshot) IDs() []string {
	return sortedKeys(s.Elements)
}
