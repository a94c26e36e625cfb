// Package pacman implements the maze chase: the player entity, the ghosts
// and the session rules (score, lives and levels) wired over the engine
// context.
package pacman

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/engine"
	"github.com/vovakirdan/tui-maze/internal/event"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/scene"
)

// respawnDelay is how long the dead player stays on screen.
const respawnDelay = 1.5 // seconds

// Controller is the part of the frame driver the session steers.
type Controller interface {
	Stop()
	Paused() bool
}

// Options configures a session.
type Options struct {
	Config config.PacmanConfig
	Layout *maze.Layout
	Seed   int64 // 0 seeds from the clock
}

// Game is one play session. It owns the grid, the player and the ghosts and
// turns bus events into score, lives and level changes.
type Game struct {
	ctx        *engine.Context
	ctl        Controller
	cfg        config.PacmanConfig
	layout     *maze.Layout
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	seed       int64

	lvl      *maze.Level
	grid     *maze.Grid
	renderer *maze.Renderer
	player   *Player
	ghosts   []*Ghost

	score   int
	lives   int
	level   int
	cleared int
	combo   int

	respawnIn     float64
	levelComplete bool
	over          bool

	subs   []event.Subscription
	placed []placement
}

type placement struct {
	layer  string
	entity scene.Entity
}

// NewGame builds a session on ctx and places its entities on the default
// layers. ctl is stopped when the last life is lost; it may be nil.
func NewGame(ctx *engine.Context, ctl Controller, opts Options) (*Game, error) {
	if opts.Layout == nil {
		return nil, fmt.Errorf("pacman: no layout")
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		ctx:    ctx,
		ctl:    ctl,
		cfg:    opts.Config,
		layout: opts.Layout,
		seed:   seed,
	}
	if g.layout.TileSize <= 0 {
		g.layout.TileSize = opts.Config.Maze.TileSize
	}

	g.subs = []event.Subscription{
		event.On(ctx.Bus, g.onDot),
		event.On(ctx.Bus, g.onPower),
		event.On(ctx.Bus, g.onContact),
		event.On(ctx.Bus, g.onDeath),
		event.On(ctx.Bus, g.onGhostEaten),
	}

	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset starts the session over at level one with full lives.
func (g *Game) Reset() error {
	g.rng = rand.New(rand.NewSource(g.seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.score = 0
	g.lives = max(g.cfg.Player.Lives, 1)
	g.level = 1
	g.cleared = 0
	g.over = false
	g.levelComplete = false
	if err := g.loadLevel(); err != nil {
		return err
	}
	g.publish(event.ScoreChanged{Score: 0, Delta: 0})
	g.ctx.Log.Info("session reset", "layout", g.layout.Name, "seed", g.seed)
	return nil
}

// loadLevel rebuilds the maze and every entity on it.
func (g *Game) loadLevel() error {
	lvl, err := g.layout.Build()
	if err != nil {
		return err
	}
	g.teardown()
	g.respawnIn = 0
	g.combo = 0

	g.lvl = lvl
	g.grid = lvl.Grid
	if _, err := maze.RegisterWalls(g.grid, g.ctx.Colliders); err != nil {
		return err
	}

	if g.renderer == nil {
		g.renderer = maze.NewRenderer(g.grid)
	}
	g.renderer.SetGrid(g.grid)
	g.place(scene.Background, g)
	g.place(scene.Background, g.renderer)
	g.place(scene.UI, &hud{game: g})
	g.place(scene.Overlay, &overlay{game: g})

	if err := g.spawnPlayer(); err != nil {
		return err
	}

	ghostCfg := g.ghostConfig()
	count := min(g.cfg.Ghosts.Count, len(lvl.GhostSpawns))
	for i := range count {
		gc := ghostCfg
		gc.Delay = g.cfg.Ghosts.ReleaseDelay * float64(i)
		ghost, err := NewGhost(g.ctx, g.grid, i, lvl.GhostSpawns[i], gc, g.rng, g.playerCell)
		if err != nil {
			return err
		}
		g.ghosts = append(g.ghosts, ghost)
		g.place(scene.Game, ghost)
	}
	return nil
}

func (g *Game) ghostConfig() GhostConfig {
	return GhostConfig{
		Speed:           g.difficulty.Speed(g.cfg.Ghosts.Speed, g.score, g.cleared),
		FrightenedSpeed: g.cfg.Ghosts.FrightenedSpeed,
		RadiusInset:     g.cfg.Player.RadiusInset,
	}
}

func (g *Game) spawnPlayer() error {
	if g.player != nil {
		g.unplace(g.player)
		g.player.Close()
	}
	pc := PlayerConfigFrom(g.cfg)
	pc.PowerDuration = g.difficulty.PowerDuration(g.cfg.Player.PowerDuration, g.score, g.cleared)
	p, err := NewPlayer(g.ctx, g.grid, g.lvl.PlayerSpawn, pc)
	if err != nil {
		return err
	}
	g.player = p
	g.ctx.Colliders.Watch(PlayerID)
	g.place(scene.Game, p)
	return nil
}

func (g *Game) place(layer string, e scene.Entity) {
	if g.ctx.Layers.Add(layer, e) {
		g.placed = append(g.placed, placement{layer: layer, entity: e})
	}
}

func (g *Game) unplace(e scene.Entity) {
	for i, p := range g.placed {
		if p.entity == e {
			if l := g.ctx.Layers.Layer(p.layer); l != nil {
				l.Remove(e)
			}
			g.placed = append(g.placed[:i], g.placed[i+1:]...)
			return
		}
	}
}

// teardown removes the current level's entities and colliders.
func (g *Game) teardown() {
	if g.player != nil {
		g.player.Close()
		g.player = nil
	}
	for _, gh := range g.ghosts {
		gh.Close()
	}
	g.ghosts = nil
	if g.grid != nil {
		maze.RemoveWalls(g.grid, g.ctx.Colliders)
	}
	for _, p := range g.placed {
		if l := g.ctx.Layers.Layer(p.layer); l != nil {
			l.Remove(p.entity)
		}
	}
	g.placed = nil
}

// Close releases the session's subscriptions and colliders.
func (g *Game) Close() {
	for _, s := range g.subs {
		g.ctx.Bus.Unsubscribe(s)
	}
	g.subs = nil
	g.teardown()
}

func (g *Game) playerCell() maze.Cell {
	if g.player == nil {
		return g.lvl.PlayerSpawn
	}
	return g.player.Cell()
}

// Active implements scene.Entity.
func (g *Game) Active() bool { return true }

// Render implements scene.Entity. The session itself draws nothing.
func (g *Game) Render(*core.Screen) {}

// Update applies deferred transitions: level completion and respawn or game
// over after a death. It runs first in the frame, so changes made by event
// handlers in the previous frame settle before entities move again.
func (g *Game) Update(dt float64) {
	if g.over {
		return
	}
	if g.levelComplete {
		g.levelComplete = false
		if g.respawnIn > 0 && g.lives <= 0 {
			// The last life went on the final dot.
			g.afterDeath()
			return
		}
		g.nextLevel()
		return
	}
	if g.respawnIn > 0 {
		g.respawnIn -= dt
		if g.respawnIn <= 0 {
			g.afterDeath()
		}
		return
	}
	if g.player != nil {
		powered := g.player.State() == Powered
		if !powered {
			g.combo = 0
		}
		for _, gh := range g.ghosts {
			gh.SetFrightened(powered && !gh.Waiting())
		}
	}
}

func (g *Game) nextLevel() {
	g.cleared++
	g.level++
	g.addScore(g.cfg.Scoring.LevelBonus)
	g.ctx.Log.Info("level complete", "level", g.level-1, "score", g.score)
	if err := g.loadLevel(); err != nil {
		g.ctx.Log.Error("cannot load next level", "error", err)
		g.end()
		return
	}
	g.publish(event.LevelComplete{Level: g.level - 1})
}

func (g *Game) afterDeath() {
	if g.lives <= 0 {
		g.ctx.Log.Info("game over", "score", g.score, "level", g.level)
		g.end()
		return
	}
	if err := g.spawnPlayer(); err != nil {
		g.ctx.Log.Error("cannot respawn player", "error", err)
		g.end()
		return
	}
	ghostCfg := g.ghostConfig()
	for i, gh := range g.ghosts {
		gh.SetSpeed(ghostCfg.Speed)
		gh.Reset(g.cfg.Ghosts.ReleaseDelay * float64(i))
	}
}

// end marks the session over and stops the frame loop.
func (g *Game) end() {
	g.over = true
	if g.ctl != nil {
		g.ctl.Stop()
	}
}

func (g *Game) onDot(event.DotCollected) error {
	g.addScore(g.cfg.Scoring.Dot)
	g.checkCleared()
	return nil
}

func (g *Game) onPower(event.PowerCollected) error {
	g.addScore(g.cfg.Scoring.Power)
	g.combo = 0
	for _, gh := range g.ghosts {
		gh.SetFrightened(!gh.Waiting())
	}
	g.checkCleared()
	return nil
}

func (g *Game) checkCleared() {
	if g.grid.DotsRemaining() == 0 {
		g.levelComplete = true
	}
}

func (g *Game) onContact(e event.CollisionEnter) error {
	var other string
	switch PlayerID {
	case e.A:
		other = e.B
	case e.B:
		other = e.A
	default:
		return nil
	}
	if !strings.HasPrefix(other, "ghost_") || g.player == nil || g.player.State() == Dead {
		return nil
	}
	for _, gh := range g.ghosts {
		if gh.ID() != other {
			continue
		}
		if gh.Frightened() {
			gh.Reset(g.cfg.Ghosts.ReleaseDelay)
			g.publish(event.GhostEaten{Ghost: gh.ID()})
		} else {
			g.player.Die()
		}
		return nil
	}
	return nil
}

func (g *Game) onGhostEaten(event.GhostEaten) error {
	g.combo++
	g.addScore(g.cfg.Scoring.Ghost << (min(g.combo, 4) - 1))
	return nil
}

func (g *Game) onDeath(event.PacmanDied) error {
	g.lives--
	g.respawnIn = respawnDelay
	for _, gh := range g.ghosts {
		gh.SetFrightened(false)
	}
	return nil
}

func (g *Game) addScore(delta int) {
	if delta == 0 {
		return
	}
	g.score += delta
	g.publish(event.ScoreChanged{Score: g.score, Delta: delta})
}

func (g *Game) publish(e event.Event) {
	if err := g.ctx.Bus.Publish(e); err != nil {
		g.ctx.Log.Warn("session event dropped", "event", e.Kind(), "error", err)
	}
}

func (g *Game) paused() bool {
	return g.ctl != nil && g.ctl.Paused()
}

// Grid returns the current maze grid.
func (g *Game) Grid() *maze.Grid { return g.grid }

// Player returns the current player entity.
func (g *Game) Player() *Player { return g.player }

// Ghosts returns the ghosts of the current level.
func (g *Game) Ghosts() []*Ghost { return g.ghosts }

// Over reports whether the session has ended.
func (g *Game) Over() bool { return g.over }

// State returns the externally visible session summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		Level:    g.level,
		GameOver: g.over,
		Paused:   g.paused(),
	}
}

// ScreenSize returns the screen size needed to show the maze and HUD.
func (g *Game) ScreenSize() (w, h int) {
	return g.grid.Cols() * maze.CellWidth, g.grid.Rows() + 1
}

// Snapshot is a comparable summary of the world, used to check determinism.
type Snapshot struct {
	Score, Lives, Level int
	Dots                int
	Player              core.Vec2
	PlayerState         State
	Ghosts              string
}

// Snapshot captures the current world state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Score: g.score,
		Lives: g.lives,
		Level: g.level,
		Dots:  g.grid.DotsRemaining(),
	}
	if g.player != nil {
		s.Player = g.player.Position()
		s.PlayerState = g.player.State()
	}
	var sb strings.Builder
	for _, gh := range g.ghosts {
		fmt.Fprintf(&sb, "%s@%v;", gh.ID(), gh.Position())
	}
	s.Ghosts = sb.String()
	return s
}
