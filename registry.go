package willowxr

// Registry is the ordered collection of placed panels and the single
// selected-panel reference.
type Registry struct {
	panels   []*Panel
	selected *Panel
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends p. Adding a panel that is already registered is a no-op.
func (r *Registry) Add(p *Panel) {
	if p == nil || r.Contains(p) {
		return
	}
	r.panels = append(r.panels, p)
}

// Remove detaches p from the registry. If p was selected, the most recently
// added remaining panel becomes selected, or none if the registry is empty.
// Returns false if p was not registered.
func (r *Registry) Remove(p *Panel) bool {
	for i, q := range r.panels {
		if q != p {
			continue
		}
		copy(r.panels[i:], r.panels[i+1:])
		r.panels[len(r.panels)-1] = nil
		r.panels = r.panels[:len(r.panels)-1]
		if r.selected == p {
			p.setSelected(false)
			r.selected = nil
			if n := len(r.panels); n > 0 {
				r.Select(r.panels[n-1])
			}
		}
		return true
	}
	return false
}

// Selected returns the selected panel, or nil.
func (r *Registry) Selected() *Panel {
	return r.selected
}

// Select makes p the selected panel. The previous selection is deselected
// and its highlight reset first. Selecting an unregistered panel is a no-op.
// Returns true if the selection changed.
func (r *Registry) Select(p *Panel) bool {
	if p == r.selected || !r.Contains(p) {
		return false
	}
	if r.selected != nil {
		r.selected.setSelected(false)
	}
	r.selected = p
	p.setSelected(true)
	return true
}

// Deselect clears the selection.
func (r *Registry) Deselect() {
	if r.selected != nil {
		r.selected.setSelected(false)
		r.selected = nil
	}
}

// Panels returns the registered panels in insertion order. The returned
// slice MUST NOT be mutated by the caller.
func (r *Registry) Panels() []*Panel {
	return r.panels
}

// Len returns the number of registered panels.
func (r *Registry) Len() int {
	return len(r.panels)
}

// Contains reports whether p is registered.
func (r *Registry) Contains(p *Panel) bool {
	if p == nil {
		return false
	}
	for _, q := range r.panels {
		if q == p {
			return true
		}
	}
	return false
}

// Find returns the panel with the given id, or nil.
func (r *Registry) Find(id uint32) *Panel {
	for _, p := range r.panels {
		if p.ID == id {
			return p
		}
	}
	return nil
}
