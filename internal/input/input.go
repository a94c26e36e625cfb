// Package input turns raw host key and pointer events into semantic events on
// the event bus and keeps a queryable snapshot of the latest input state.
package input

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/event"
)

// ErrNilSource is returned by Attach when no source is given.
var ErrNilSource = errors.New("input: nil source")

// PointerAction distinguishes raw pointer events.
type PointerAction int

const (
	PointerMoved PointerAction = iota
	PointerPressed
	PointerReleased
)

// RawKey is a key transition as reported by the host.
type RawKey struct {
	Key  string // Host key identifier, any case ("ArrowUp", "up", "A")
	Down bool
}

// RawPointer is a pointer event in host coordinates.
type RawPointer struct {
	Action PointerAction
	X, Y   int
	Button int
}

// Listener receives raw events from a Source.
type Listener interface {
	HandleKey(RawKey)
	HandlePointer(RawPointer)
}

// Source is a host surface that produces raw input.
// Implementations must be comparable (typically pointers).
type Source interface {
	// Origin returns the surface's top-left corner in host coordinates.
	Origin() (x, y int)
	// Listen registers l and returns a function that unregisters it.
	Listen(l Listener) (remove func())
}

// aliases maps host-specific key identifiers to canonical names.
var aliases = map[string]string{
	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",
	" ":          "space",
	"escape":     "esc",
	"return":     "enter",
}

// Canonical returns the lowercase canonical name of a host key identifier.
func Canonical(key string) string {
	if key == " " {
		return "space"
	}
	k := strings.ToLower(key)
	if alias, ok := aliases[k]; ok {
		return alias
	}
	return k
}

// Dispatcher republishes raw input as event.KeyDown, event.KeyUp,
// event.PointerMove, event.PointerDown and event.PointerUp.
type Dispatcher struct {
	bus    *event.Bus
	logger *log.Logger

	sources map[Source]sourceBinding
	keys    map[string]bool // true while down
	buttons map[int]bool
	pointer [2]int
}

type sourceBinding struct {
	remove func()
}

// NewDispatcher creates a dispatcher publishing on bus.
func NewDispatcher(bus *event.Bus, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		bus:     bus,
		logger:  logger,
		sources: make(map[Source]sourceBinding),
		keys:    make(map[string]bool),
		buttons: make(map[int]bool),
	}
}

// Attach binds the dispatcher to src. Attaching the same source twice is a no-op.
func (d *Dispatcher) Attach(src Source) error {
	if src == nil {
		return ErrNilSource
	}
	if _, ok := d.sources[src]; ok {
		return nil
	}
	l := &sourceListener{d: d, src: src}
	d.sources[src] = sourceBinding{remove: src.Listen(l)}
	d.logger.Debug("input attached", "sources", len(d.sources))
	return nil
}

// Attached reports whether src is currently bound.
func (d *Dispatcher) Attached(src Source) bool {
	_, ok := d.sources[src]
	return ok
}

// Detach unregisters every listener and clears key state. Safe to call twice.
func (d *Dispatcher) Detach() {
	for src, b := range d.sources {
		if b.remove != nil {
			b.remove()
		}
		delete(d.sources, src)
	}
	clear(d.keys)
}

// Destroy detaches and clears all pointer state as well. Safe to call twice.
func (d *Dispatcher) Destroy() {
	d.Detach()
	clear(d.buttons)
	d.pointer = [2]int{}
}

// IsKeyDown reports whether the most recent transition of key was a press.
func (d *Dispatcher) IsKeyDown(key string) bool {
	down, ok := d.keys[Canonical(key)]
	return ok && down
}

// IsKeyUp reports whether the most recent transition of key was a release.
// Keys never seen are neither down nor up.
func (d *Dispatcher) IsKeyUp(key string) bool {
	down, ok := d.keys[Canonical(key)]
	return ok && !down
}

// Pointer returns the last surface-local pointer position.
func (d *Dispatcher) Pointer() (x, y int) {
	return d.pointer[0], d.pointer[1]
}

// IsButtonDown reports whether a pointer button is held.
func (d *Dispatcher) IsButtonDown(button int) bool {
	return d.buttons[button]
}

func (d *Dispatcher) key(raw RawKey) {
	name := Canonical(raw.Key)
	if name == "" {
		return
	}
	d.keys[name] = raw.Down
	var err error
	if raw.Down {
		err = d.bus.Publish(event.KeyDown{Key: name})
	} else {
		err = d.bus.Publish(event.KeyUp{Key: name})
	}
	if err != nil {
		d.logger.Warn("key event dropped", "key", name, "error", err)
	}
}

func (d *Dispatcher) pointerEvent(raw RawPointer, x, y int) {
	d.pointer = [2]int{x, y}
	var ev event.Event
	switch raw.Action {
	case PointerPressed:
		d.buttons[raw.Button] = true
		ev = event.PointerDown{X: x, Y: y, Button: raw.Button}
	case PointerReleased:
		d.buttons[raw.Button] = false
		ev = event.PointerUp{X: x, Y: y, Button: raw.Button}
	default:
		ev = event.PointerMove{X: x, Y: y}
	}
	if err := d.bus.Publish(ev); err != nil {
		d.logger.Warn("pointer event dropped", "error", err)
	}
}

// sourceListener makes pointer coordinates local to its source. The origin
// is read per event since a scrolling surface moves it.
type sourceListener struct {
	d   *Dispatcher
	src Source
}

func (l *sourceListener) HandleKey(raw RawKey) {
	l.d.key(raw)
}

func (l *sourceListener) HandlePointer(raw RawPointer) {
	ox, oy := l.src.Origin()
	l.d.pointerEvent(raw, raw.X-ox, raw.Y-oy)
}
