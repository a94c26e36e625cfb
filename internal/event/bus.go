package event

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// DefaultMaxDepth bounds nested Publish calls made from inside handlers.
const DefaultMaxDepth = 32

// ErrPublishDepth is returned by Publish when handlers keep publishing
// events past the configured nesting limit. The offending event is dropped.
var ErrPublishDepth = errors.New("event: publish depth exceeded")

// Handler receives a published event. A returned error is logged by the bus
// and does not stop the remaining handlers.
type Handler func(Event) error

// Subscription identifies a registered handler. The zero value is inert.
type Subscription struct {
	kind Kind
	id   uint64
}

// Kind returns the event kind the subscription listens to.
func (s Subscription) Kind() Kind {
	return s.kind
}

type entry struct {
	id      uint64
	fn      Handler
	once    bool
	removed bool
}

// Bus is a synchronous publish/subscribe channel.
//
// Publish runs every handler registered for the event's kind, in registration
// order, before returning. Handlers may publish further events; those are
// dispatched depth-first. The bus is meant to be driven from the single
// simulation goroutine and is not safe for concurrent use.
type Bus struct {
	handlers map[Kind][]*entry
	nextID   uint64
	depth    int
	maxDepth int
	logger   *log.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.maxDepth = n
		}
	}
}

// NewBus creates an empty bus. A nil logger discards output.
func NewBus(logger *log.Logger, opts ...Option) *Bus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &Bus{
		handlers: make(map[Kind][]*entry),
		maxDepth: DefaultMaxDepth,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers fn for events of kind k.
func (b *Bus) Subscribe(k Kind, fn Handler) Subscription {
	return b.add(k, fn, false)
}

// SubscribeOnce registers fn for the next event of kind k only.
func (b *Bus) SubscribeOnce(k Kind, fn Handler) Subscription {
	return b.add(k, fn, true)
}

func (b *Bus) add(k Kind, fn Handler, once bool) Subscription {
	b.nextID++
	b.handlers[k] = append(b.handlers[k], &entry{id: b.nextID, fn: fn, once: once})
	return Subscription{kind: k, id: b.nextID}
}

// Unsubscribe removes a handler. Unknown or already removed subscriptions
// are ignored. A handler removed during a Publish does not run again, even
// later in that same Publish.
func (b *Bus) Unsubscribe(s Subscription) {
	list := b.handlers[s.kind]
	for i, e := range list {
		if e.id != s.id {
			continue
		}
		e.removed = true
		b.handlers[s.kind] = append(list[:i:i], list[i+1:]...)
		break
	}
	if len(b.handlers[s.kind]) == 0 {
		delete(b.handlers, s.kind)
	}
}

// Publish delivers e to every handler currently registered for its kind.
func (b *Bus) Publish(e Event) error {
	if b.depth >= b.maxDepth {
		b.logger.Warn("dropping event, publish depth exceeded",
			"event", e.Kind(), "depth", b.depth)
		return fmt.Errorf("%w: %s at depth %d", ErrPublishDepth, e.Kind(), b.depth)
	}

	b.depth++
	defer func() { b.depth-- }()

	// Snapshot so handlers can (un)subscribe while we iterate.
	list := b.handlers[e.Kind()]
	if len(list) == 0 {
		return nil
	}
	snapshot := make([]*entry, len(list))
	copy(snapshot, list)

	for _, h := range snapshot {
		if h.removed {
			continue
		}
		if h.once {
			b.Unsubscribe(Subscription{kind: e.Kind(), id: h.id})
		}
		if err := b.call(h.fn, e); err != nil {
			b.logger.Error("event handler failed", "event", e.Kind(), "error", err)
		}
	}
	return nil
}

// call runs a handler, converting a panic into an error.
func (b *Bus) call(fn Handler, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(e)
}

// ListenerCount returns the number of handlers registered for k.
func (b *Bus) ListenerCount(k Kind) int {
	return len(b.handlers[k])
}

// HasListeners reports whether any handler is registered for k.
func (b *Bus) HasListeners(k Kind) bool {
	return b.ListenerCount(k) > 0
}

// RemoveAll drops every handler registered for k.
func (b *Bus) RemoveAll(k Kind) {
	for _, e := range b.handlers[k] {
		e.removed = true
	}
	delete(b.handlers, k)
}

// Clear drops every handler.
func (b *Bus) Clear() {
	for k := range b.handlers {
		b.RemoveAll(k)
	}
}

// On subscribes a handler typed to a single event payload.
func On[E Event](b *Bus, fn func(E) error) Subscription {
	var zero E
	return b.Subscribe(zero.Kind(), adapt(fn))
}

// Once subscribes a typed handler for the next matching event only.
func Once[E Event](b *Bus, fn func(E) error) Subscription {
	var zero E
	return b.SubscribeOnce(zero.Kind(), adapt(fn))
}

func adapt[E Event](fn func(E) error) Handler {
	return func(ev Event) error {
		typed, ok := ev.(E)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", ev, ev.Kind())
		}
		return fn(typed)
	}
}
