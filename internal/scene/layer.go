// Package scene groups entities into named, z-ordered layers that are
// updated and rendered once per frame.
package scene

import (
	"slices"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Entity is anything a layer can update and draw.
// Implementations must be comparable (typically pointers); layers store
// entities by identity.
type Entity interface {
	Update(dt float64)
	Render(s *core.Screen)
	// Active reports whether the entity takes part in the frame.
	Active() bool
}

// Layer is an ordered set of entity references.
// Removing an entity from a layer does not destroy it.
type Layer struct {
	name     string
	z        int
	visible  bool
	entities []Entity
}

// NewLayer creates a visible, empty layer.
func NewLayer(name string, z int) *Layer {
	return &Layer{name: name, z: z, visible: true}
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// ZIndex returns the layer's ordering key.
func (l *Layer) ZIndex() int { return l.z }

// Visible reports whether the layer is processed.
func (l *Layer) Visible() bool { return l.visible }

// SetVisible toggles processing of the whole layer.
func (l *Layer) SetVisible(v bool) { l.visible = v }

// Add appends e unless it is already present.
func (l *Layer) Add(e Entity) {
	if e == nil || l.Contains(e) {
		return
	}
	l.entities = append(l.entities, e)
}

// Remove drops e from the layer. Unknown entities are ignored.
func (l *Layer) Remove(e Entity) {
	if i := slices.Index(l.entities, e); i >= 0 {
		l.entities = slices.Delete(l.entities, i, i+1)
	}
}

// Contains reports whether e is in the layer.
func (l *Layer) Contains(e Entity) bool {
	return slices.Contains(l.entities, e)
}

// Len returns the number of entities in the layer.
func (l *Layer) Len() int { return len(l.entities) }

// Entities returns a copy of the entity list in insertion order.
func (l *Layer) Entities() []Entity {
	return slices.Clone(l.entities)
}

// Clear removes every entity.
func (l *Layer) Clear() {
	clear(l.entities)
	l.entities = l.entities[:0]
}

// Update advances every active entity. Entities may add or remove layer
// members during the pass; changes take effect on the next pass.
func (l *Layer) Update(dt float64) {
	if !l.visible {
		return
	}
	for _, e := range l.Entities() {
		if e.Active() {
			e.Update(dt)
		}
	}
}

// Render draws every active entity in insertion order.
func (l *Layer) Render(s *core.Screen) {
	if !l.visible {
		return
	}
	for _, e := range l.Entities() {
		if e.Active() {
			e.Render(s)
		}
	}
}
