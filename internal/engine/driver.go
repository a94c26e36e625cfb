package engine

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/event"
	"github.com/vovakirdan/tui-maze/internal/input"
)

// ErrNoSurface is returned when the driver has no usable render surface.
var ErrNoSurface = errors.New("engine: no render surface")

// Surface is a render target supplied by the host. Surfaces that also
// implement input.Source are attached to the input dispatcher.
type Surface interface {
	// Screen returns the drawing context, or nil when none is available.
	Screen() *core.Screen
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(d *Driver) {
		d.clock = c
	}
}

// WithMaxDelta caps the per-frame delta in seconds. Zero disables the cap.
func WithMaxDelta(seconds float64) Option {
	return func(d *Driver) {
		d.maxDelta = seconds
	}
}

// Driver owns the frame clock and advances the session once per tick.
type Driver struct {
	ctx      *Context
	sched    Scheduler
	clock    Clock
	maxDelta float64

	surface Surface
	screen  *core.Screen

	running bool
	paused  bool
	frame   FrameID
	last    time.Time
	frames  uint64
	lastDT  float64
}

// NewDriver creates a stopped driver for ctx, scheduling ticks on sched.
func NewDriver(ctx *Context, sched Scheduler, opts ...Option) *Driver {
	d := &Driver{
		ctx:   ctx,
		sched: sched,
		clock: SystemClock{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetSurface binds the render surface. It fails when the surface has no
// drawing context.
func (d *Driver) SetSurface(s Surface) error {
	if s == nil {
		return ErrNoSurface
	}
	screen := s.Screen()
	if screen == nil {
		return ErrNoSurface
	}
	d.surface = s
	d.screen = screen
	if src, ok := s.(input.Source); ok {
		if err := d.ctx.Input.Attach(src); err != nil {
			return err
		}
	}
	return nil
}

// Start begins the frame loop and publishes event.GameStart.
// Starting a running driver is a no-op.
func (d *Driver) Start() error {
	if d.screen == nil {
		return ErrNoSurface
	}
	if d.running {
		return nil
	}
	d.running = true
	d.paused = false
	d.last = d.clock.Now()
	d.ctx.Log.Info("engine started")
	d.publish(event.GameStart{})
	if d.running {
		d.frame = d.sched.Request(d.tick)
	}
	return nil
}

// Stop cancels the pending tick and publishes event.GameOver.
// Stopping a stopped driver is a no-op.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.running = false
	d.sched.Cancel(d.frame)
	d.frame = 0
	d.ctx.Log.Info("engine stopped", "frames", d.frames)
	d.publish(event.GameOver{})
}

// Pause suspends updates. Ticks keep being scheduled.
func (d *Driver) Pause() {
	if !d.running || d.paused {
		return
	}
	d.paused = true
	d.publish(event.GamePause{})
}

// Resume restarts updates. The delta reference is reset so the paused
// interval is not fed into the next update.
func (d *Driver) Resume() {
	if !d.running || !d.paused {
		return
	}
	d.paused = false
	d.last = d.clock.Now()
	d.publish(event.GameResume{})
}

// TogglePause pauses a running game or resumes a paused one.
func (d *Driver) TogglePause() {
	if d.paused {
		d.Resume()
	} else {
		d.Pause()
	}
}

// Running reports whether the loop is active.
func (d *Driver) Running() bool { return d.running }

// Paused reports whether updates are suspended.
func (d *Driver) Paused() bool { return d.paused }

// Frames returns the number of ticks that ran an update.
func (d *Driver) Frames() uint64 { return d.frames }

// LastDelta returns the dt passed to the most recent update, in seconds.
func (d *Driver) LastDelta() float64 { return d.lastDT }

// Screen returns the bound render surface's screen.
func (d *Driver) Screen() *core.Screen { return d.screen }

// Context returns the session context.
func (d *Driver) Context() *Context { return d.ctx }

func (d *Driver) tick() {
	if !d.running {
		return
	}
	// Schedule first so Stop during the update cancels the next tick.
	d.frame = d.sched.Request(d.tick)
	if d.paused {
		return
	}

	now := d.clock.Now()
	dt := now.Sub(d.last).Seconds()
	d.last = now
	if dt < 0 {
		dt = 0
	}
	if d.maxDelta > 0 && dt > d.maxDelta {
		dt = d.maxDelta
	}
	d.lastDT = dt
	d.frames++

	d.ctx.Colliders.Step()
	d.ctx.Layers.UpdateAll(dt)

	d.screen.Clear()
	d.ctx.Layers.RenderAll(d.screen)
}

// Render redraws the current frame without advancing the simulation.
func (d *Driver) Render() {
	if d.screen == nil {
		return
	}
	d.screen.Clear()
	d.ctx.Layers.RenderAll(d.screen)
}

func (d *Driver) publish(e event.Event) {
	if err := d.ctx.Bus.Publish(e); err != nil {
		d.ctx.Log.Warn("engine event dropped", "event", e.Kind(), "error", err)
	}
}
