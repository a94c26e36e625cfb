// Package registry provides a global registry of maze layout factories.
// Layout providers register themselves in init() functions, allowing the
// CLI to discover and load mazes without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

// ErrUnknownLayout is returned by Create for names that were never registered.
var ErrUnknownLayout = errors.New("registry: unknown layout")

// LayoutInfo contains metadata about a registered layout.
type LayoutInfo struct {
	Name  string
	Title string
}

// Factory returns a fresh copy of a layout.
type Factory func() *maze.Layout

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a layout factory to the registry.
// Typically called from an init() function.
// Panics if a layout with the same name is already registered.
func Register(name, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: layout %q already registered", name))
	}

	factories[name] = f
	titles[name] = title
}

// List returns information about all registered layouts, sorted by name.
func List() []LayoutInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LayoutInfo, 0, len(factories))
	for name := range factories {
		result = append(result, LayoutInfo{
			Name:  name,
			Title: titles[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create returns a new copy of the named layout.
func Create(name string) (*maze.Layout, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownLayout, name)
	}

	return f(), nil
}

// Exists checks if a layout with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
