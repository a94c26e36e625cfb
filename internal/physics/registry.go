package physics

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/event"
)

type pair struct {
	a, b string // a < b
}

func makePair(x, y string) pair {
	if y < x {
		x, y = y, x
	}
	return pair{a: x, b: y}
}

// Registry is a flat, id-keyed collection of colliders.
// Colliders do not own entities; ids are chosen by whoever registers them.
type Registry struct {
	bus    *event.Bus
	logger *log.Logger

	colliders map[string]Shape
	ids       []string // sorted; nil when stale
	watched   map[string]struct{}
	contacts  map[pair]struct{}
}

// NewRegistry creates an empty registry. bus may be nil, in which case Step
// tracks contacts without publishing.
func NewRegistry(bus *event.Bus, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Registry{
		bus:       bus,
		logger:    logger,
		colliders: make(map[string]Shape),
		watched:   make(map[string]struct{}),
		contacts:  make(map[pair]struct{}),
	}
}

// Add inserts or replaces the collider stored under id.
func (r *Registry) Add(id string, s Shape) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("physics: cannot add collider %q: %w", id, err)
	}
	if _, ok := r.colliders[id]; !ok {
		r.ids = nil
	}
	r.colliders[id] = s
	return nil
}

// Remove deletes a collider. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	if _, ok := r.colliders[id]; !ok {
		return
	}
	delete(r.colliders, id)
	delete(r.watched, id)
	for p := range r.contacts {
		if p.a == id || p.b == id {
			delete(r.contacts, p)
		}
	}
	r.ids = nil
}

// Collider returns the shape stored under id.
func (r *Registry) Collider(id string) (Shape, bool) {
	s, ok := r.colliders[id]
	return s, ok
}

// SetPosition moves an existing collider. It reports false for unknown ids.
func (r *Registry) SetPosition(id string, pos core.Vec2) bool {
	s, ok := r.colliders[id]
	if !ok {
		return false
	}
	s.Pos = pos
	r.colliders[id] = s
	return true
}

// Test reports whether the colliders a and b intersect.
// A missing id never collides.
func (r *Registry) Test(a, b string) bool {
	sa, ok := r.colliders[a]
	if !ok {
		return false
	}
	sb, ok := r.colliders[b]
	if !ok {
		return false
	}
	return Intersects(sa, sb)
}

// Len returns the number of registered colliders.
func (r *Registry) Len() int {
	return len(r.colliders)
}

// Clear removes every collider, watch and tracked contact.
func (r *Registry) Clear() {
	clear(r.colliders)
	clear(r.watched)
	clear(r.contacts)
	r.ids = nil
}

// Watch marks id for contact tracking in Step. The collider need not exist yet.
func (r *Registry) Watch(id string) {
	r.watched[id] = struct{}{}
}

// Unwatch stops contact tracking for id and forgets its contacts.
func (r *Registry) Unwatch(id string) {
	delete(r.watched, id)
	for p := range r.contacts {
		if _, ok := r.watched[p.a]; ok {
			continue
		}
		if _, ok := r.watched[p.b]; ok {
			continue
		}
		delete(r.contacts, p)
	}
}

// Contacts returns the ids currently touching id, as recorded by the last Step.
func (r *Registry) Contacts(id string) []string {
	var out []string
	for p := range r.contacts {
		switch id {
		case p.a:
			out = append(out, p.b)
		case p.b:
			out = append(out, p.a)
		}
	}
	slices.Sort(out)
	return out
}

func (r *Registry) sortedIDs() []string {
	if r.ids == nil {
		r.ids = make([]string, 0, len(r.colliders))
		for id := range r.colliders {
			r.ids = append(r.ids, id)
		}
		slices.Sort(r.ids)
	}
	return r.ids
}

// Step tests every watched collider against all others and publishes
// event.CollisionEnter for new contacts and event.CollisionExit for contacts
// that ended since the previous Step. Pairs are visited in id order.
func (r *Registry) Step() {
	if len(r.watched) == 0 {
		return
	}
	ids := r.sortedIDs()
	current := make(map[pair]struct{}, len(r.contacts))
	var entered []pair

	for _, id := range ids {
		if _, ok := r.watched[id]; !ok {
			continue
		}
		s := r.colliders[id]
		for _, other := range ids {
			if other == id {
				continue
			}
			p := makePair(id, other)
			if _, seen := current[p]; seen {
				continue
			}
			if !Intersects(s, r.colliders[other]) {
				continue
			}
			current[p] = struct{}{}
			if _, ok := r.contacts[p]; !ok {
				entered = append(entered, p)
			}
		}
	}

	var exited []pair
	for p := range r.contacts {
		if _, ok := current[p]; !ok {
			exited = append(exited, p)
		}
	}
	slices.SortFunc(exited, func(x, y pair) int {
		if c := cmp.Compare(x.a, y.a); c != 0 {
			return c
		}
		return cmp.Compare(x.b, y.b)
	})

	r.contacts = current
	if r.bus == nil {
		return
	}
	for _, p := range exited {
		r.publish(event.CollisionExit{A: p.a, B: p.b})
	}
	for _, p := range entered {
		r.publish(event.CollisionEnter{A: p.a, B: p.b})
	}
}

func (r *Registry) publish(e event.Event) {
	if err := r.bus.Publish(e); err != nil {
		r.logger.Warn("collision event dropped", "event", e.Kind(), "error", err)
	}
}
