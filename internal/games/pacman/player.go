package pacman

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/engine"
	"github.com/vovakirdan/tui-maze/internal/event"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/physics"
)

// PlayerID is the collider id of the player.
const PlayerID = "pacman"

// State is the player's state machine position.
type State int

const (
	Normal State = iota
	Powered
	Dead
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Normal:
		return "Normal"
	case Powered:
		return "Powered"
	case Dead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// PlayerConfig holds the tunables of a player.
type PlayerConfig struct {
	Speed         float64 // world units per second
	PowerDuration float64 // seconds
	RadiusInset   float64 // collider radius is tileSize/2 - RadiusInset
	MouthMaxAngle float64 // degrees
	MouthPeriod   float64 // seconds per open or close
}

// PlayerConfigFrom extracts player tunables from a game config.
func PlayerConfigFrom(cfg config.PacmanConfig) PlayerConfig {
	return PlayerConfig{
		Speed:         cfg.Player.Speed,
		PowerDuration: cfg.Player.PowerDuration,
		RadiusInset:   cfg.Player.RadiusInset,
		MouthMaxAngle: cfg.Animation.MouthMaxAngle,
		MouthPeriod:   cfg.Animation.MouthPeriod,
	}
}

// Player is the maze runner. It reads queued directions from key events and
// moves along grid corridors, eating dots and power pellets.
type Player struct {
	ctx  *engine.Context
	grid *maze.Grid
	cfg  PlayerConfig
	keys KeyMap

	pos   core.Vec2
	dir   Direction
	next  Direction
	state State
	power float64 // seconds of power left

	mouth      *gween.Tween
	mouthAngle float64
	opening    bool

	sub    event.Subscription
	closed bool
}

// NewPlayer places a player at the center of spawn, registers its circle
// collider and starts listening for direction keys.
func NewPlayer(ctx *engine.Context, grid *maze.Grid, spawn maze.Cell, cfg PlayerConfig) (*Player, error) {
	p := &Player{
		ctx:     ctx,
		grid:    grid,
		cfg:     cfg,
		keys:    DefaultKeyMap(),
		pos:     grid.GridToWorld(spawn),
		opening: true,
	}
	shape, err := physics.NewCircle(p.pos, grid.TileSize()/2-cfg.RadiusInset)
	if err != nil {
		return nil, fmt.Errorf("pacman: cannot create player collider: %w", err)
	}
	if err := ctx.Colliders.Add(PlayerID, shape); err != nil {
		return nil, err
	}
	p.sub = event.On(ctx.Bus, p.onKeyDown)
	p.restartMouth()
	return p, nil
}

func (p *Player) onKeyDown(e event.KeyDown) error {
	if a := p.keys.Action(e.Key); a.IsMovement() {
		p.Queue(directionFor(a))
	}
	return nil
}

// Queue requests a turn. It is applied on the first tick where the
// neighbouring cell in that direction is open.
func (p *Player) Queue(d Direction) {
	if p.state == Dead {
		return
	}
	p.next = d
}

// Position returns the world position of the player's center.
func (p *Player) Position() core.Vec2 { return p.pos }

// Cell returns the grid cell the player occupies.
func (p *Player) Cell() maze.Cell { return p.grid.WorldToGrid(p.pos) }

// Direction returns the current heading.
func (p *Player) Direction() Direction { return p.dir }

// Queued returns the pending turn, or None.
func (p *Player) Queued() Direction { return p.next }

// State returns the state machine position.
func (p *Player) State() State { return p.state }

// PowerLeft returns the remaining seconds of power.
func (p *Player) PowerLeft() float64 { return p.power }

// MouthAngle returns the current mouth opening in degrees.
func (p *Player) MouthAngle() float64 { return p.mouthAngle }

// Active implements scene.Entity.
func (p *Player) Active() bool { return !p.closed }

// Update moves the player, resolves the occupied cell, counts down power
// and advances the mouth animation.
func (p *Player) Update(dt float64) {
	if p.state == Dead {
		return
	}
	moved := p.move(dt)
	p.consume()
	p.updatePower(dt)
	if moved {
		p.updateMouth(dt)
	}
}

func (p *Player) canMove(d Direction) bool {
	if d == None {
		return false
	}
	n := d.Step(p.Cell())
	return p.grid.TileAt(n.Col, n.Row) != maze.Wall
}

// move returns whether the position changed. Long frames are walked in
// sub-steps of at most half a tile so walls are never skipped.
func (p *Player) move(dt float64) bool {
	before := p.pos
	dist := p.cfg.Speed * dt
	maxStep := p.grid.TileSize() / 2
	for dist > 0 {
		step := min(dist, maxStep)
		dist -= step
		p.advance(step)
	}
	if p.pos.Equals(before) {
		return false
	}
	p.ctx.Colliders.SetPosition(PlayerID, p.pos)
	return true
}

func (p *Player) advance(dist float64) {
	if p.next != None && p.canMove(p.next) {
		if p.next != p.dir {
			p.snapCrossAxis(p.next)
		}
		p.dir = p.next
		p.next = None
	}
	switch {
	case p.dir == None:
	case p.canMove(p.dir):
		p.pos = p.pos.Add(p.dir.Vec().Scale(dist))
	default:
		p.pos = p.approachCenter(dist)
	}
}

// snapCrossAxis centers the player on the axis perpendicular to d.
func (p *Player) snapCrossAxis(d Direction) {
	center := p.grid.GridToWorld(p.Cell())
	if d.Horizontal() {
		p.pos.Y = center.Y
	} else {
		p.pos.X = center.X
	}
}

// approachCenter moves toward the current cell's center along the heading
// without passing it. A player already at or past the center stays put.
func (p *Player) approachCenter(dist float64) core.Vec2 {
	center := p.grid.GridToWorld(p.Cell())
	v := p.dir.Vec()
	remaining := center.Sub(p.pos).Dot(v)
	if remaining <= 0 {
		return p.pos
	}
	return p.pos.Add(v.Scale(min(dist, remaining)))
}

func (p *Player) consume() {
	c := p.Cell()
	switch p.grid.TileAt(c.Col, c.Row) {
	case maze.Dot:
		p.grid.SetTile(c.Col, c.Row, maze.Path)
		p.publish(event.DotCollected{Col: c.Col, Row: c.Row})
	case maze.Power:
		p.grid.SetTile(c.Col, c.Row, maze.Path)
		p.state = Powered
		p.power = p.cfg.PowerDuration
		p.publish(event.PowerCollected{Col: c.Col, Row: c.Row, Duration: p.cfg.PowerDuration})
	}
}

// SetPowerDuration changes the duration granted by the next power pellet.
func (p *Player) SetPowerDuration(seconds float64) {
	p.cfg.PowerDuration = seconds
}

func (p *Player) updatePower(dt float64) {
	if p.state != Powered {
		return
	}
	p.power -= dt
	if p.power <= 0 {
		p.power = 0
		p.state = Normal
		p.publish(event.PowerExpired{})
	}
}

func (p *Player) restartMouth() {
	from, to := 0.0, p.cfg.MouthMaxAngle
	if !p.opening {
		from, to = to, from
	}
	period := p.cfg.MouthPeriod
	if period <= 0 {
		period = 0.15
	}
	p.mouth = gween.New(float32(from), float32(to), float32(period), ease.Linear)
}

func (p *Player) updateMouth(dt float64) {
	angle, done := p.mouth.Update(float32(dt))
	p.mouthAngle = float64(angle)
	if done {
		p.opening = !p.opening
		p.restartMouth()
	}
}

// Die moves the player to the terminal Dead state and publishes
// event.PacmanDied. Dying twice has no effect.
func (p *Player) Die() {
	if p.state == Dead {
		return
	}
	p.state = Dead
	p.dir = None
	p.next = None
	c := p.Cell()
	p.ctx.Log.Debug("player died", "col", c.Col, "row", c.Row)
	p.publish(event.PacmanDied{Col: c.Col, Row: c.Row})
}

// Close unsubscribes the player and removes its collider.
func (p *Player) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.ctx.Bus.Unsubscribe(p.sub)
	p.ctx.Colliders.Remove(PlayerID)
}

// Render draws the player as a single glyph facing its heading.
func (p *Player) Render(s *core.Screen) {
	x, y := p.grid.ToScreen(p.pos)
	s.Save()
	defer s.Restore()
	s.Translate(x, y)

	switch {
	case p.state == Dead:
		s.Plot(0, 0, 'x', core.ColorRed)
	case p.mouthAngle < p.cfg.MouthMaxAngle/2 || p.dir == None:
		s.Plot(0, 0, '●', p.color())
	default:
		s.Plot(0, 0, mouthGlyph(p.dir), p.color())
	}
}

func (p *Player) color() core.Color {
	if p.state == Powered {
		return core.ColorBrightYellow
	}
	return core.ColorYellow
}

func mouthGlyph(d Direction) rune {
	switch d {
	case Up:
		return 'v'
	case Down:
		return '^'
	case Left:
		return '>'
	default:
		return '<'
	}
}

func (p *Player) publish(e event.Event) {
	if err := p.ctx.Bus.Publish(e); err != nil {
		p.ctx.Log.Warn("player event dropped", "event", e.Kind(), "error", err)
	}
}
