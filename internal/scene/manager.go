package scene

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// ErrDuplicateLayer is returned when a layer name is already registered.
var ErrDuplicateLayer = errors.New("scene: duplicate layer")

// Default layer names.
const (
	Background = "background"
	Game       = "game"
	UI         = "ui"
	Overlay    = "overlay"
)

// Manager is a registry of named layers processed in ascending z-index order.
// Layers with equal z-index keep their creation order.
type Manager struct {
	layers map[string]*Layer
	order  []*Layer
}

// NewManager creates a manager with no layers.
func NewManager() *Manager {
	return &Manager{layers: make(map[string]*Layer)}
}

// NewDefaultManager creates a manager holding the Background (0), Game (1),
// UI (2) and Overlay (3) layers.
func NewDefaultManager() *Manager {
	m := NewManager()
	for z, name := range []string{Background, Game, UI, Overlay} {
		m.CreateLayer(name, z)
	}
	return m
}

// CreateLayer registers a new visible layer.
func (m *Manager) CreateLayer(name string, z int) (*Layer, error) {
	if _, ok := m.layers[name]; ok {
		return nil, fmt.Errorf("scene: cannot create layer %q: %w", name, ErrDuplicateLayer)
	}
	l := NewLayer(name, z)
	m.layers[name] = l
	m.order = append(m.order, l)
	m.sort()
	return l, nil
}

// Layer returns the layer registered under name, or nil.
func (m *Manager) Layer(name string) *Layer {
	return m.layers[name]
}

// RemoveLayer unregisters a layer. Its entities are left untouched.
func (m *Manager) RemoveLayer(name string) {
	l, ok := m.layers[name]
	if !ok {
		return
	}
	delete(m.layers, name)
	if i := slices.Index(m.order, l); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

// SetZIndex changes a layer's ordering key. It reports false for unknown names.
func (m *Manager) SetZIndex(name string, z int) bool {
	l, ok := m.layers[name]
	if !ok {
		return false
	}
	l.z = z
	m.sort()
	return true
}

// Layers returns the layers in processing order.
func (m *Manager) Layers() []*Layer {
	return slices.Clone(m.order)
}

// Add places e on the named layer. It reports false when the layer is unknown.
func (m *Manager) Add(name string, e Entity) bool {
	l, ok := m.layers[name]
	if !ok {
		return false
	}
	l.Add(e)
	return true
}

// UpdateAll updates every layer, lowest z-index first.
func (m *Manager) UpdateAll(dt float64) {
	for _, l := range m.Layers() {
		l.Update(dt)
	}
}

// RenderAll renders every layer, lowest z-index first.
func (m *Manager) RenderAll(s *core.Screen) {
	for _, l := range m.Layers() {
		l.Render(s)
	}
}

// Clear empties every layer but keeps the layers registered.
func (m *Manager) Clear() {
	for _, l := range m.order {
		l.Clear()
	}
}

func (m *Manager) sort() {
	slices.SortStableFunc(m.order, func(a, b *Layer) int {
		return cmp.Compare(a.z, b.z)
	})
}
