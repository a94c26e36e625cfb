package pacman

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/engine"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/physics"
)

// chaseBias is the chance a roaming ghost picks the exit closest to its
// target instead of a random one.
const chaseBias = 0.6

var ghostColors = [...]core.Color{core.ColorRed, core.ColorPink, core.ColorCyan, core.ColorOrange}

// GhostID returns the collider id of the n-th ghost.
func GhostID(n int) string {
	return fmt.Sprintf("ghost_%d", n)
}

// Ghost steps from tile center to tile center, choosing a new exit at every
// junction. It never reverses unless it reaches a dead end.
type Ghost struct {
	ctx  *engine.Context
	grid *maze.Grid
	rng  *rand.Rand

	id    string
	color core.Color
	home  maze.Cell

	pos    core.Vec2
	dir    Direction
	target maze.Cell // cell whose center the ghost is heading to

	speed      float64
	frightSpd  float64
	frightened bool
	wait       float64 // seconds before leaving home

	chase  func() maze.Cell
	closed bool
}

// GhostConfig holds the tunables of a ghost.
type GhostConfig struct {
	Speed           float64
	FrightenedSpeed float64
	Delay           float64 // seconds before the ghost starts moving
	RadiusInset     float64 // collider radius is tileSize/2 - RadiusInset
}

// NewGhost places the n-th ghost at home and registers its collider.
// chase reports the cell the ghost tends toward; it may be nil.
func NewGhost(ctx *engine.Context, grid *maze.Grid, n int, home maze.Cell, cfg GhostConfig, rng *rand.Rand, chase func() maze.Cell) (*Ghost, error) {
	g := &Ghost{
		ctx:       ctx,
		grid:      grid,
		rng:       rng,
		id:        GhostID(n),
		color:     ghostColors[n%len(ghostColors)],
		home:      home,
		speed:     cfg.Speed,
		frightSpd: cfg.FrightenedSpeed,
		chase:     chase,
	}
	shape, err := physics.NewCircle(grid.GridToWorld(home), grid.TileSize()/2-cfg.RadiusInset)
	if err != nil {
		return nil, fmt.Errorf("pacman: cannot create ghost collider: %w", err)
	}
	if err := ctx.Colliders.Add(g.id, shape); err != nil {
		return nil, err
	}
	g.Reset(cfg.Delay)
	return g, nil
}

// ID returns the ghost's collider id.
func (g *Ghost) ID() string { return g.id }

// Position returns the world position of the ghost's center.
func (g *Ghost) Position() core.Vec2 { return g.pos }

// Cell returns the grid cell the ghost occupies.
func (g *Ghost) Cell() maze.Cell { return g.grid.WorldToGrid(g.pos) }

// Frightened reports whether the ghost can currently be eaten.
func (g *Ghost) Frightened() bool { return g.frightened }

// SetFrightened switches frightened mode. Entering it reverses the ghost.
func (g *Ghost) SetFrightened(v bool) {
	if v == g.frightened {
		return
	}
	g.frightened = v
	if v && g.dir != None {
		// Head back to the cell the ghost came from.
		g.dir = g.dir.Opposite()
		g.target = g.dir.Step(g.target)
	}
}

// SetSpeed changes the normal roaming speed.
func (g *Ghost) SetSpeed(s float64) { g.speed = s }

// Waiting reports whether the ghost is still held at home.
func (g *Ghost) Waiting() bool { return g.wait > 0 }

// Reset returns the ghost to its home cell, holding it for delay seconds.
func (g *Ghost) Reset(delay float64) {
	g.pos = g.grid.GridToWorld(g.home)
	g.dir = None
	g.target = g.home
	g.frightened = false
	g.wait = delay
	g.ctx.Colliders.SetPosition(g.id, g.pos)
}

// Close removes the ghost's collider.
func (g *Ghost) Close() {
	g.closed = true
	g.ctx.Colliders.Remove(g.id)
}

// Active implements scene.Entity.
func (g *Ghost) Active() bool { return !g.closed }

// Update advances the ghost along its path.
func (g *Ghost) Update(dt float64) {
	if g.wait > 0 {
		g.wait -= dt
		if g.wait > 0 {
			return
		}
		dt = -g.wait
		g.wait = 0
	}

	speed := g.speed
	if g.frightened {
		speed = g.frightSpd
	}
	step := speed * dt
	for step > 0 {
		goal := g.grid.GridToWorld(g.target)
		remaining := g.pos.Dist(goal)
		if step < remaining {
			g.pos = g.pos.Add(goal.Sub(g.pos).Normalize().Scale(step))
			break
		}
		g.pos = goal
		step -= remaining
		if !g.chooseExit() {
			break
		}
	}
	g.ctx.Colliders.SetPosition(g.id, g.pos)
}

// chooseExit picks the next target from the current cell. It reports false
// when the ghost is boxed in.
func (g *Ghost) chooseExit() bool {
	here := g.target
	var options []Direction
	for _, d := range directions {
		if d == g.dir.Opposite() && g.dir != None {
			continue
		}
		n := d.Step(here)
		if g.grid.TileAt(n.Col, n.Row) != maze.Wall {
			options = append(options, d)
		}
	}
	if len(options) == 0 {
		back := g.dir.Opposite()
		n := back.Step(here)
		if back == None || g.grid.TileAt(n.Col, n.Row) == maze.Wall {
			return false
		}
		options = append(options, back)
	}

	pick := options[g.rng.Intn(len(options))]
	if g.chase != nil && !g.frightened && len(options) > 1 && g.rng.Float64() < chaseBias {
		pick = closestExit(here, options, g.chase())
	}
	g.dir = pick
	g.target = pick.Step(here)
	return true
}

func closestExit(from maze.Cell, options []Direction, goal maze.Cell) Direction {
	best := options[0]
	bestDist := -1
	for _, d := range options {
		n := d.Step(from)
		dc, dr := n.Col-goal.Col, n.Row-goal.Row
		dist := dc*dc + dr*dr
		if bestDist < 0 || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

// Render draws the ghost.
func (g *Ghost) Render(s *core.Screen) {
	x, y := g.grid.ToScreen(g.pos)
	c := g.color
	if g.frightened {
		c = core.ColorBlue
	}
	s.Plot(x, y, 'Ω', c)
}
