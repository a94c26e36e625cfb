package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/input"
)

// surface is the terminal as seen by the engine: a screen buffer to draw on
// and a source of raw input. Its origin follows the visible viewport so
// pointer coordinates land in screen space.
type surface struct {
	screen    *core.Screen
	originX   int
	originY   int
	listeners []*listenerRef
}

type listenerRef struct {
	l input.Listener
}

func newSurface(w, h int) *surface {
	return &surface{screen: core.NewScreen(w, h)}
}

// Screen implements engine.Surface.
func (s *surface) Screen() *core.Screen { return s.screen }

// Origin implements input.Source.
func (s *surface) Origin() (int, int) { return s.originX, s.originY }

// Listen implements input.Source.
func (s *surface) Listen(l input.Listener) func() {
	ref := &listenerRef{l: l}
	s.listeners = append(s.listeners, ref)
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(r *listenerRef) bool { return r == ref })
	}
}

// setViewport records where the screen's top-left cell sits on the terminal.
func (s *surface) setViewport(x0, y0 int) {
	s.originX, s.originY = -x0, -y0
}

// key delivers a terminal key press. Terminals report presses only, so the
// key goes down and comes back up in the same message.
func (s *surface) key(msg tea.KeyMsg) {
	name := msg.String()
	for _, r := range slices.Clone(s.listeners) {
		r.l.HandleKey(input.RawKey{Key: name, Down: true})
		r.l.HandleKey(input.RawKey{Key: name, Down: false})
	}
}

func (s *surface) mouse(msg tea.MouseMsg) {
	var action input.PointerAction
	switch msg.Action {
	case tea.MouseActionPress:
		action = input.PointerPressed
	case tea.MouseActionRelease:
		action = input.PointerReleased
	default:
		action = input.PointerMoved
	}
	raw := input.RawPointer{Action: action, X: msg.X, Y: msg.Y, Button: int(msg.Button)}
	for _, r := range slices.Clone(s.listeners) {
		r.l.HandlePointer(raw)
	}
}
