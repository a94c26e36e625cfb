package pacman

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/engine"
	"github.com/vovakirdan/tui-maze/internal/event"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/scene"
)

type fakeController struct {
	stopped bool
	paused  bool
}

func (c *fakeController) Stop()        { c.stopped = true }
func (c *fakeController) Paused() bool { return c.paused }

func testConfig() config.PacmanConfig {
	cfg := config.DefaultPacmanConfig()
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestGame(t *testing.T, cfg config.PacmanConfig, rows ...string) (*Game, *engine.Context, *fakeController) {
	t.Helper()
	ctx := engine.NewContext(nil)
	ctl := &fakeController{}
	g, err := NewGame(ctx, ctl, Options{
		Config: cfg,
		Layout: &maze.Layout{Name: "test", Rows: rows},
		Seed:   1,
	})
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	return g, ctx, ctl
}

// frame runs one simulation tick the way the driver does.
func frame(ctx *engine.Context, dt float64) {
	ctx.Colliders.Step()
	ctx.Layers.UpdateAll(dt)
}

func TestNewGameRequiresLayout(t *testing.T) {
	if _, err := NewGame(engine.NewContext(nil), nil, Options{Config: testConfig()}); err == nil {
		t.Error("NewGame() without layout succeeded, expected error")
	}
}

func TestGamePlacesEntities(t *testing.T) {
	g, ctx, _ := newTestGame(t, testConfig(),
		"#######",
		"#P..GG#",
		"#######",
	)
	if n := len(g.Ghosts()); n != 2 {
		t.Errorf("len(Ghosts()) = %d, expected 2", n)
	}
	if n := ctx.Layers.Layer(scene.Game).Len(); n != 3 {
		t.Errorf("game layer holds %d entities, expected 3", n)
	}
	if !ctx.Layers.Layer(scene.Background).Contains(g) {
		t.Error("session missing from background layer")
	}
	// 7 + 7 + 2 walls on the border rows and sides.
	if n := ctx.Colliders.Len(); n != 16+3 {
		t.Errorf("Colliders.Len() = %d, expected 19", n)
	}
	if w, h := g.ScreenSize(); w != 14 || h != 4 {
		t.Errorf("ScreenSize() = (%d, %d), expected (14, 4)", w, h)
	}
}

func TestGameScoresAndCompletesLevel(t *testing.T) {
	g, ctx, _ := newTestGame(t, testConfig(),
		"#####",
		"#P..#",
		"#####",
	)
	var levels []int
	event.On(ctx.Bus, func(e event.LevelComplete) error {
		levels = append(levels, e.Level)
		return nil
	})
	var lastScore event.ScoreChanged
	event.On(ctx.Bus, func(e event.ScoreChanged) error {
		lastScore = e
		return nil
	})

	ctx.Bus.Publish(event.KeyDown{Key: "right"})
	for range 20 {
		frame(ctx, 0.05)
	}

	state := g.State()
	if state.Level != 2 {
		t.Errorf("Level = %d, expected 2", state.Level)
	}
	if state.Score != 2*10+500 {
		t.Errorf("Score = %d, expected %d", state.Score, 2*10+500)
	}
	if lastScore.Score != state.Score || lastScore.Delta != 500 {
		t.Errorf("last ScoreChanged = %+v, expected {Score:%d Delta:500}", lastScore, state.Score)
	}
	if len(levels) != 1 || levels[0] != 1 {
		t.Errorf("LevelComplete levels = %v, expected [1]", levels)
	}
	if g.Grid().DotsRemaining() != 2 {
		t.Errorf("DotsRemaining() = %d, expected a fresh maze with 2", g.Grid().DotsRemaining())
	}
	if g.Player().Cell() != (maze.Cell{Col: 1, Row: 1}) {
		t.Errorf("player at %v, expected respawned at (1,1)", g.Player().Cell())
	}
	if n := ctx.Layers.Layer(scene.Game).Len(); n != 1 {
		t.Errorf("game layer holds %d entities after reload, expected 1", n)
	}
}

func TestGameLosesLivesUntilOver(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Lives = 2
	g, ctx, ctl := newTestGame(t, cfg,
		"#####",
		"#P  #",
		"#####",
	)

	first := g.Player()
	first.Die()
	if g.State().Lives != 1 {
		t.Fatalf("Lives = %d, expected 1", g.State().Lives)
	}
	for range 4 {
		frame(ctx, 0.5)
	}
	if g.Player() == first || g.Player().State() != Normal {
		t.Fatal("player not respawned after delay")
	}
	if g.Over() {
		t.Fatal("Over() = true with a life left")
	}

	g.Player().Die()
	for range 4 {
		frame(ctx, 0.5)
	}
	if !g.Over() || !g.State().GameOver {
		t.Error("session not over after last life")
	}
	if !ctl.stopped {
		t.Error("controller not stopped on game over")
	}
	if g.State().Lives != 0 {
		t.Errorf("Lives = %d, expected 0", g.State().Lives)
	}
}

func TestGhostContact(t *testing.T) {
	cfg := testConfig()
	cfg.Ghosts.ReleaseDelay = 0
	g, ctx, _ := newTestGame(t, cfg,
		"#######",
		"#P   G#",
		"#######",
	)
	var eaten []string
	event.On(ctx.Bus, func(e event.GhostEaten) error {
		eaten = append(eaten, e.Ghost)
		return nil
	})
	ghost := g.Ghosts()[0]
	contact := event.CollisionEnter{A: PlayerID, B: ghost.ID()}

	g.Player().state = Powered
	ghost.SetFrightened(true)
	ctx.Bus.Publish(contact)
	ghost.SetFrightened(true)
	ctx.Bus.Publish(event.CollisionEnter{A: ghost.ID(), B: PlayerID})

	if len(eaten) != 2 {
		t.Fatalf("GhostEaten published %d times, expected 2", len(eaten))
	}
	if s := g.State().Score; s != 200+400 {
		t.Errorf("Score = %d, expected 600 for a two ghost combo", s)
	}
	if ghost.Frightened() {
		t.Error("eaten ghost still frightened")
	}

	g.Player().state = Normal
	ctx.Bus.Publish(contact)
	if g.Player().State() != Dead {
		t.Errorf("player state = %v after touching a roaming ghost, expected Dead", g.Player().State())
	}
	if g.State().Lives != cfg.Player.Lives-1 {
		t.Errorf("Lives = %d, expected %d", g.State().Lives, cfg.Player.Lives-1)
	}

	// Contacts with walls are ignored.
	ctx.Bus.Publish(event.CollisionEnter{A: PlayerID, B: maze.WallID(0, 0)})
	if g.State().Lives != cfg.Player.Lives-1 {
		t.Error("wall contact changed lives")
	}
}

func TestPowerPelletFrightensGhosts(t *testing.T) {
	cfg := testConfig()
	cfg.Ghosts.ReleaseDelay = 0
	g, ctx, _ := newTestGame(t, cfg,
		"#########",
		"#Po     #",
		"#########",
		"#G     .#",
		"#########",
	)
	ctx.Bus.Publish(event.KeyDown{Key: "right"})
	frame(ctx, 0.15)

	if g.Player().State() != Powered {
		t.Fatalf("player state = %v, expected Powered", g.Player().State())
	}
	if !g.Ghosts()[0].Frightened() {
		t.Error("ghost not frightened by power pellet")
	}
	if s := g.State().Score; s != 50 {
		t.Errorf("Score = %d, expected 50", s)
	}

	for range 12 {
		frame(ctx, 1)
	}
	if g.Player().State() == Powered || g.Ghosts()[0].Frightened() {
		t.Error("power did not wear off")
	}
}

func TestResetRestoresSession(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Lives = 1
	g, ctx, _ := newTestGame(t, cfg,
		"#####",
		"#P..#",
		"#####",
	)
	ctx.Bus.Publish(event.KeyDown{Key: "right"})
	frame(ctx, 0.15)
	g.Player().Die()
	for range 4 {
		frame(ctx, 0.5)
	}
	if !g.Over() {
		t.Fatal("session not over")
	}

	if err := g.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	state := g.State()
	if state.Score != 0 || state.Lives != 1 || state.Level != 1 || state.GameOver {
		t.Errorf("State() = %+v after Reset", state)
	}
	if g.Grid().DotsRemaining() != 2 {
		t.Errorf("DotsRemaining() = %d, expected 2", g.Grid().DotsRemaining())
	}
}

func TestDeathOnLastDotDoesNotRespawnTwice(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Lives = 3
	g, ctx, _ := newTestGame(t, cfg,
		"#####",
		"#P..#",
		"#####",
	)
	g.levelComplete = true
	g.Player().Die()
	frame(ctx, 0.05)

	reloaded := g.Player()
	if g.State().Level != 2 {
		t.Fatalf("Level = %d, expected 2", g.State().Level)
	}
	if g.respawnIn != 0 {
		t.Errorf("respawnIn = %g after level load, expected 0", g.respawnIn)
	}
	for range 4 {
		frame(ctx, 0.5)
	}
	if g.Player() != reloaded {
		t.Error("player respawned again after the level reload")
	}
	if g.Player().State() != Normal {
		t.Errorf("player state = %v, expected Normal", g.Player().State())
	}
	if g.State().Lives != 2 {
		t.Errorf("Lives = %d, expected 2", g.State().Lives)
	}
}

func TestDeathOnLastDotWithLastLifeEndsSession(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Lives = 1
	g, ctx, ctl := newTestGame(t, cfg,
		"#####",
		"#P..#",
		"#####",
	)
	g.levelComplete = true
	g.Player().Die()
	frame(ctx, 0.05)

	if !g.Over() || !ctl.stopped {
		t.Error("session not over after losing the last life")
	}
	if g.State().Level != 1 {
		t.Errorf("Level = %d, expected 1", g.State().Level)
	}
}

func TestResetClearsGhostCombo(t *testing.T) {
	cfg := testConfig()
	cfg.Ghosts.ReleaseDelay = 0
	g, ctx, _ := newTestGame(t, cfg,
		"#######",
		"#P   G#",
		"#######",
	)
	g.combo = 3
	if err := g.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if g.combo != 0 {
		t.Errorf("combo = %d after Reset, expected 0", g.combo)
	}

	ghost := g.Ghosts()[0]
	g.Player().state = Powered
	ghost.SetFrightened(true)
	ctx.Bus.Publish(event.CollisionEnter{A: PlayerID, B: ghost.ID()})
	if s := g.State().Score; s != 200 {
		t.Errorf("Score = %d, expected 200 for the first ghost after Reset", s)
	}
}

func TestSessionIsDeterministic(t *testing.T) {
	rows := []string{
		"###########",
		"#P...o...G#",
		"#.###.###.#",
		"#....G....#",
		"###########",
	}
	run := func() Snapshot {
		g, ctx, _ := newTestGame(t, testConfig(), rows...)
		keys := map[int]string{0: "right", 40: "down", 90: "left", 150: "up"}
		for i := range 240 {
			if k, ok := keys[i]; ok {
				ctx.Bus.Publish(event.KeyDown{Key: k})
			}
			frame(ctx, 1.0/60)
		}
		return g.Snapshot()
	}
	a, b := run(), run()
	if a != b {
		t.Errorf("Snapshot() = %+v, expected %+v", b, a)
	}
}

func TestGameCloseReleasesEverything(t *testing.T) {
	g, ctx, _ := newTestGame(t, testConfig(),
		"#####",
		"#P.G#",
		"#####",
	)
	g.Close()
	if n := ctx.Colliders.Len(); n != 0 {
		t.Errorf("Colliders.Len() = %d after Close, expected 0", n)
	}
	for _, l := range ctx.Layers.Layers() {
		if l.Len() != 0 {
			t.Errorf("layer %s holds %d entities after Close", l.Name(), l.Len())
		}
	}
	if ctx.Bus.HasListeners(event.KindDotCollected) {
		t.Error("session still subscribed after Close")
	}
}

func TestHUDAndOverlay(t *testing.T) {
	g, ctx, ctl := newTestGame(t, testConfig(),
		"####################",
		"#P................G#",
		"####################",
	)
	w, h := g.ScreenSize()
	s := core.NewScreen(w, h)

	ctx.Layers.RenderAll(s)
	if row := s.Row(3); !strings.Contains(row, "SCORE 000000") || !strings.Contains(row, "●●●") {
		t.Errorf("HUD row = %q", row)
	}

	ctl.paused = true
	s.Clear()
	ctx.Layers.RenderAll(s)
	if !strings.Contains(s.String(), "PAUSED") {
		t.Errorf("paused screen missing banner:\n%s", s)
	}
	if !g.State().Paused {
		t.Error("State().Paused = false")
	}
}

func TestGameRunsUnderDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Lives = 1
	ctx := engine.NewContext(nil)
	sched := engine.NewManualScheduler()
	clock := engine.NewMockClock(time.Unix(0, 0))
	d := engine.NewDriver(ctx, sched, engine.WithClock(clock))

	g, err := NewGame(ctx, d, Options{
		Config: cfg,
		Layout: &maze.Layout{Name: "test", Rows: []string{"#####", "#P..#", "#####"}},
		Seed:   1,
	})
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	w, h := g.ScreenSize()
	if err := d.SetSurface(screenSurface{core.NewScreen(w, h)}); err != nil {
		t.Fatalf("SetSurface() error = %v", err)
	}
	if err := d.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	g.Player().Die()
	for range 120 {
		clock.Advance(16 * time.Millisecond)
		sched.Step()
	}
	if !g.Over() {
		t.Error("session not over")
	}
	if d.Running() {
		t.Error("driver still running after game over")
	}
}

type screenSurface struct{ s *core.Screen }

func (s screenSurface) Screen() *core.Screen { return s.s }
