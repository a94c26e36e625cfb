package pacman

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/engine"
	"github.com/vovakirdan/tui-maze/internal/event"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

func testPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Speed:         100,
		PowerDuration: 10,
		RadiusInset:   2,
		MouthMaxAngle: 45,
		MouthPeriod:   0.15,
	}
}

func newTestPlayer(t *testing.T, spawn maze.Cell, rows ...string) (*Player, *engine.Context, *maze.Grid) {
	t.Helper()
	lvl, err := maze.ParseRows(rows, maze.DefaultTileSize)
	if err != nil {
		t.Fatalf("ParseRows() error = %v", err)
	}
	ctx := engine.NewContext(nil)
	p, err := NewPlayer(ctx, lvl.Grid, spawn, testPlayerConfig())
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	return p, ctx, lvl.Grid
}

// record counts published events by kind.
func record(bus *event.Bus, kinds ...event.Kind) map[event.Kind]int {
	counts := make(map[event.Kind]int)
	for _, k := range kinds {
		bus.Subscribe(k, func(e event.Event) error {
			counts[e.Kind()]++
			return nil
		})
	}
	return counts
}

func TestPlayerStopsAtWall(t *testing.T) {
	p, ctx, _ := newTestPlayer(t, maze.Cell{Col: 3, Row: 1},
		"#####",
		"#   #",
		"#####",
	)
	p.dir = Right
	before := p.Position()

	p.Update(0.1)

	if !p.Position().Equals(before) {
		t.Errorf("Position() = %v, expected %v", p.Position(), before)
	}
	s, _ := ctx.Colliders.Collider(PlayerID)
	if !s.Pos.Equals(before) {
		t.Errorf("collider at %v, expected %v", s.Pos, before)
	}
}

func TestPlayerApproachesCenterBeforeStopping(t *testing.T) {
	p, _, grid := newTestPlayer(t, maze.Cell{Col: 3, Row: 1},
		"#####",
		"#   #",
		"#####",
	)
	p.dir = Right
	p.pos = core.V(62, 30)

	p.Update(0.1)
	center := grid.GridToWorld(maze.Cell{Col: 3, Row: 1})
	if !p.Position().Equals(center) {
		t.Errorf("Position() = %v, expected to stop at %v", p.Position(), center)
	}
}

func TestPlayerMovesAndUpdatesCollider(t *testing.T) {
	p, ctx, _ := newTestPlayer(t, maze.Cell{Col: 1, Row: 1},
		"######",
		"#    #",
		"######",
	)
	p.Queue(Right)
	p.Update(0.05)

	expected := core.V(35, 30)
	if !p.Position().Equals(expected) {
		t.Errorf("Position() = %v, expected %v", p.Position(), expected)
	}
	if p.Direction() != Right || p.Queued() != None {
		t.Errorf("dir = %v queued = %v, expected Right/None", p.Direction(), p.Queued())
	}
	s, _ := ctx.Colliders.Collider(PlayerID)
	if !s.Pos.Equals(expected) {
		t.Errorf("collider at %v, expected %v", s.Pos, expected)
	}
	if s.Radius != 8 {
		t.Errorf("collider radius = %v, expected 8", s.Radius)
	}
}

func TestPlayerCollectsDot(t *testing.T) {
	p, ctx, grid := newTestPlayer(t, maze.Cell{Col: 1, Row: 1},
		"#####",
		"#P. #",
		"#####",
	)
	counts := record(ctx.Bus, event.KindDotCollected)
	var got event.DotCollected
	event.On(ctx.Bus, func(e event.DotCollected) error {
		got = e
		return nil
	})

	p.Queue(Right)
	p.Update(0.15) // 30 -> 45, into cell 2

	if grid.TileAt(2, 1) != maze.Path {
		t.Errorf("TileAt(2, 1) = %v, expected Path", grid.TileAt(2, 1))
	}
	if counts[event.KindDotCollected] != 1 {
		t.Errorf("DotCollected published %d times, expected 1", counts[event.KindDotCollected])
	}
	if got.Col != 2 || got.Row != 1 {
		t.Errorf("DotCollected = %+v, expected {Col:2 Row:1}", got)
	}

	p.Update(0.01)
	if counts[event.KindDotCollected] != 1 {
		t.Errorf("DotCollected published %d times after second tick, expected 1", counts[event.KindDotCollected])
	}
}

func TestSingleDotGridEndToEnd(t *testing.T) {
	p, ctx, grid := newTestPlayer(t, maze.Cell{Col: 1, Row: 1},
		"   ",
		" . ",
		"   ",
	)
	counts := record(ctx.Bus, event.KindDotCollected)
	if grid.TileAt(1, 1) != maze.Dot {
		t.Fatalf("TileAt(1, 1) = %v, expected Dot", grid.TileAt(1, 1))
	}

	p.Update(0.001)

	if grid.TileAt(1, 1) != maze.Path {
		t.Errorf("TileAt(1, 1) = %v, expected Path", grid.TileAt(1, 1))
	}
	if counts[event.KindDotCollected] != 1 {
		t.Errorf("DotCollected published %d times, expected 1", counts[event.KindDotCollected])
	}
	if grid.DotsRemaining() != 0 {
		t.Errorf("DotsRemaining() = %d, expected 0", grid.DotsRemaining())
	}
}

func TestPowerPelletLifecycle(t *testing.T) {
	p, ctx, grid := newTestPlayer(t, maze.Cell{Col: 1, Row: 1},
		"######",
		"#Po  #",
		"######",
	)
	counts := record(ctx.Bus, event.KindPowerCollected, event.KindPowerExpired)

	p.Queue(Right)
	p.Update(0.15)

	if p.State() != Powered {
		t.Fatalf("State() = %v, expected Powered", p.State())
	}
	if grid.TileAt(2, 1) != maze.Path {
		t.Errorf("TileAt(2, 1) = %v, expected Path", grid.TileAt(2, 1))
	}
	if counts[event.KindPowerCollected] != 1 {
		t.Errorf("PowerCollected published %d times, expected 1", counts[event.KindPowerCollected])
	}

	p.Update(5)
	if p.State() != Powered {
		t.Errorf("State() = %v halfway, expected Powered", p.State())
	}
	p.Update(5.1)
	if p.State() != Normal {
		t.Errorf("State() = %v after duration, expected Normal", p.State())
	}
	if counts[event.KindPowerExpired] != 1 {
		t.Errorf("PowerExpired published %d times, expected 1", counts[event.KindPowerExpired])
	}
	if p.PowerLeft() != 0 {
		t.Errorf("PowerLeft() = %v, expected 0", p.PowerLeft())
	}
}

func TestTurnAcceptedImmediately(t *testing.T) {
	p, _, _ := newTestPlayer(t, maze.Cell{Col: 2, Row: 2},
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)
	p.dir = Right
	p.Queue(Up)
	p.Update(0.05)

	if p.Direction() != Up || p.Queued() != None {
		t.Errorf("dir = %v queued = %v, expected Up/None", p.Direction(), p.Queued())
	}
	if expected := core.V(50, 45); !p.Position().Equals(expected) {
		t.Errorf("Position() = %v, expected %v", p.Position(), expected)
	}
}

func TestTurnDeferredUntilCorridorOpens(t *testing.T) {
	p, _, grid := newTestPlayer(t, maze.Cell{Col: 1, Row: 2},
		"#####",
		"###.#",
		"#P..#",
		"#####",
	)
	p.Queue(Right)
	p.Update(0.001)
	p.Queue(Up)

	opening := grid.GridToWorld(maze.Cell{Col: 3, Row: 2})
	for i := 0; i < 100 && p.Direction() != Up; i++ {
		if p.Cell().Col < 3 && p.Queued() != Up {
			t.Fatalf("turn dropped in cell %v", p.Cell())
		}
		p.Update(0.02)
	}

	if p.Direction() != Up {
		t.Fatalf("Direction() = %v, expected Up once the corridor opened", p.Direction())
	}
	if p.Position().X != opening.X {
		t.Errorf("X = %v after turning, expected snapped to %v", p.Position().X, opening.X)
	}
	if p.Position().Y >= opening.Y {
		t.Errorf("Y = %v, expected to have moved up from %v", p.Position().Y, opening.Y)
	}
}

func TestReverseIsImmediate(t *testing.T) {
	p, _, _ := newTestPlayer(t, maze.Cell{Col: 2, Row: 1},
		"#####",
		"#   #",
		"#####",
	)
	p.dir = Right
	p.Queue(Left)
	p.Update(0.05)
	if p.Direction() != Left || !p.Position().Equals(core.V(45, 30)) {
		t.Errorf("dir = %v pos = %v, expected Left at (45, 30)", p.Direction(), p.Position())
	}
}

func TestKeyEventsQueueDirection(t *testing.T) {
	p, ctx, _ := newTestPlayer(t, maze.Cell{Col: 1, Row: 1},
		"####",
		"#  #",
		"####",
	)
	ctx.Bus.Publish(event.KeyDown{Key: "l"})
	if p.Queued() != Right {
		t.Errorf("Queued() = %v after 'l', expected Right", p.Queued())
	}
	ctx.Bus.Publish(event.KeyDown{Key: "up"})
	if p.Queued() != Up {
		t.Errorf("Queued() = %v after 'up', expected Up", p.Queued())
	}
	ctx.Bus.Publish(event.KeyDown{Key: "p"})
	if p.Queued() != Up {
		t.Errorf("Queued() = %v after 'p', expected Up", p.Queued())
	}

	p.Close()
	ctx.Bus.Publish(event.KeyDown{Key: "left"})
	if p.Queued() != Up {
		t.Error("closed player still receives keys")
	}
	if _, ok := ctx.Colliders.Collider(PlayerID); ok {
		t.Error("collider survived Close")
	}
}

func TestMouthOscillatesWhileMoving(t *testing.T) {
	p, _, _ := newTestPlayer(t, maze.Cell{Col: 1, Row: 1},
		"############################",
		"#                          #",
		"############################",
	)
	p.Queue(Right)
	seenOpen, seenClosed := false, false
	for range 60 {
		p.Update(1.0 / 60)
		a := p.MouthAngle()
		if a < -1e-6 || a > 45+1e-6 {
			t.Fatalf("MouthAngle() = %v, expected within [0, 45]", a)
		}
		if a > 40 {
			seenOpen = true
		}
		if seenOpen && a < 5 {
			seenClosed = true
		}
	}
	if !seenOpen || !seenClosed {
		t.Errorf("mouth did not oscillate (open %v, closed %v)", seenOpen, seenClosed)
	}

	// Standing still freezes the animation.
	p.dir = None
	frozen := p.MouthAngle()
	p.Update(0.05)
	if p.MouthAngle() != frozen {
		t.Errorf("MouthAngle() changed while still: %v -> %v", frozen, p.MouthAngle())
	}
}

func TestDieIsTerminal(t *testing.T) {
	p, ctx, _ := newTestPlayer(t, maze.Cell{Col: 1, Row: 1},
		"#####",
		"#   #",
		"#####",
	)
	counts := record(ctx.Bus, event.KindPacmanDied)

	p.Queue(Right)
	p.Die()
	p.Die()

	if p.State() != Dead {
		t.Errorf("State() = %v, expected Dead", p.State())
	}
	if counts[event.KindPacmanDied] != 1 {
		t.Errorf("PacmanDied published %d times, expected 1", counts[event.KindPacmanDied])
	}

	before := p.Position()
	p.Queue(Right)
	p.Update(1)
	if !p.Position().Equals(before) {
		t.Error("dead player moved")
	}
}

func TestPlayerRender(t *testing.T) {
	p, _, grid := newTestPlayer(t, maze.Cell{Col: 1, Row: 1},
		"#####",
		"#   #",
		"#####",
	)
	s := core.NewScreen(10, 3)
	p.Render(s)
	if s.Get(2, 1) != '●' {
		t.Errorf("idle glyph = %q, expected '●'", s.Get(2, 1))
	}

	p.dir = Left
	p.mouthAngle = 45
	s.Clear()
	p.Render(s)
	if s.Get(2, 1) != '>' {
		t.Errorf("open mouth facing left = %q, expected '>'", s.Get(2, 1))
	}
	if x, _ := grid.ToScreen(p.Position()); math.Floor(x) != 2 {
		t.Errorf("screen x = %v, expected cell 2", x)
	}
}
