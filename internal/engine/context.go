// Package engine runs the frame loop: it owns the session context shared by
// every subsystem and drives physics, update and render passes once per tick.
package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/event"
	"github.com/vovakirdan/tui-maze/internal/input"
	"github.com/vovakirdan/tui-maze/internal/physics"
	"github.com/vovakirdan/tui-maze/internal/scene"
)

// Context holds the per-session managers. Build one per game session and
// pass it to every component that needs a manager.
type Context struct {
	Bus       *event.Bus
	Colliders *physics.Registry
	Layers    *scene.Manager
	Input     *input.Dispatcher
	Log       *log.Logger
}

// NewContext wires a fresh bus, collider registry, default layers and input
// dispatcher. A nil logger discards output.
func NewContext(logger *log.Logger) *Context {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	bus := event.NewBus(logger.WithPrefix("bus"))
	return &Context{
		Bus:       bus,
		Colliders: physics.NewRegistry(bus, logger.WithPrefix("physics")),
		Layers:    scene.NewDefaultManager(),
		Input:     input.NewDispatcher(bus, logger.WithPrefix("input")),
		Log:       logger,
	}
}

// Close releases input listeners, event subscriptions, colliders and layer
// contents. Safe to call more than once.
func (c *Context) Close() {
	c.Input.Destroy()
	c.Bus.Clear()
	c.Colliders.Clear()
	c.Layers.Clear()
}
