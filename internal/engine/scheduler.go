package engine

// FrameID identifies a scheduled frame callback. The zero value is never issued.
type FrameID uint64

// Scheduler is the host's frame-presentation primitive: it invokes a callback
// once before the next repaint and can cancel a pending request.
type Scheduler interface {
	Request(fn func()) FrameID
	Cancel(id FrameID)
}

// ManualScheduler queues frame requests until Step is called.
// It backs tests and any host that drives frames itself.
type ManualScheduler struct {
	next    FrameID
	pending []scheduled
	batch   []scheduled // being run by Step
}

type scheduled struct {
	id FrameID
	fn func()
}

// NewManualScheduler creates an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Request queues fn for the next Step.
func (s *ManualScheduler) Request(fn func()) FrameID {
	s.next++
	s.pending = append(s.pending, scheduled{id: s.next, fn: fn})
	return s.next
}

// Cancel drops a pending request. Unknown ids are ignored.
func (s *ManualScheduler) Cancel(id FrameID) {
	for i, p := range s.pending {
		if p.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
	for i := range s.batch {
		if s.batch[i].id == id {
			s.batch[i].fn = nil
		}
	}
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	return len(s.pending)
}

// Step runs the callbacks queued before the call. Callbacks requested while
// stepping wait for the next Step. It returns the number of callbacks run.
func (s *ManualScheduler) Step() int {
	s.batch = s.pending
	s.pending = nil
	ran := 0
	for i := range s.batch {
		if fn := s.batch[i].fn; fn != nil {
			fn()
			ran++
		}
	}
	s.batch = nil
	return ran
}
