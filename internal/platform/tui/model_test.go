package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/pacman"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return newTestModelWith(t,
		"#########",
		"#P.....o#",
		"#########",
	)
}

func newTestModelWith(t *testing.T, rows ...string) Model {
	t.Helper()
	cfg := config.DefaultPacmanConfig()
	m, err := NewModel(Options{
		Config: cfg,
		Layout: &maze.Layout{Name: "test", Rows: rows},
		Seed:   1,
		FPS:    60,
	})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	t.Cleanup(m.Close)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() returned nil command")
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestNewModelRequiresLayout(t *testing.T) {
	if _, err := NewModel(Options{Config: config.DefaultPacmanConfig()}); err == nil {
		t.Error("NewModel() without layout succeeded, expected error")
	}
}

func TestTickRunsFrame(t *testing.T) {
	m := newTestModel(t)
	if !m.driver.Running() {
		t.Fatal("driver not running after Init")
	}
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if m.driver.Frames() != 1 {
		t.Errorf("Frames() = %d, expected 1", m.driver.Frames())
	}
	if !strings.Contains(m.View(), "SCORE") {
		t.Error("View() missing HUD")
	}
}

func TestArrowKeysReachPlayer(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.game.Player().Queued(); got != pacman.Right {
		t.Errorf("Queued() = %v, expected Right", got)
	}
	if m.ctx.Input.IsKeyDown("right") || !m.ctx.Input.IsKeyUp("right") {
		t.Error("terminal key press should leave the key up")
	}
}

func TestPauseKeyTogglesDriver(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, runes("p"))
	if !m.driver.Paused() {
		t.Fatal("driver not paused")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() missing pause banner")
	}
	m, _ = update(t, m, runes("p"))
	if m.driver.Paused() {
		t.Error("driver still paused")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("quit returned nil command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("View() not empty after quit")
	}
	if m.driver.Running() {
		t.Error("driver still running after quit")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	m := newTestModel(t)
	for m.game.State().Lives > 0 {
		m.game.Player().Die()
		m.game.Update(2)
	}
	if !m.game.Over() || m.driver.Running() {
		t.Fatalf("Over() = %v Running() = %v, expected ended session", m.game.Over(), m.driver.Running())
	}

	m, _ = update(t, m, runes("r"))
	if m.game.Over() || !m.driver.Running() {
		t.Errorf("Over() = %v Running() = %v after restart", m.game.Over(), m.driver.Running())
	}
	if m.game.State().Lives != config.DefaultPacmanConfig().Player.Lives {
		t.Errorf("Lives = %d after restart", m.game.State().Lives)
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	m := newTestModel(t)
	m.game.Player().Die()
	lives := m.game.State().Lives
	m, _ = update(t, m, runes("r"))
	if m.game.State().Lives != lives {
		t.Error("restart applied during play")
	}
}

func TestMouseUsesViewportOrigin(t *testing.T) {
	m := newTestModelWith(t,
		"####################",
		"#.................P#",
		"####################",
	)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 8, Height: 10})
	m.View()

	// The 40 column screen scrolls to its right edge to keep the player in view.
	if ox, _ := m.surface.Origin(); ox != -32 {
		t.Fatalf("Origin() x = %d, expected -32", ox)
	}

	m, _ = update(t, m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if x, y := m.ctx.Input.Pointer(); x != 33 || y != 1 {
		t.Errorf("Pointer() = (%d, %d), expected (33, 1)", x, y)
	}
	if !m.ctx.Input.IsButtonDown(int(tea.MouseButtonLeft)) {
		t.Error("button not down after press")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	short := m.View()
	m, _ = update(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Fatal("ShowAll = false after '?'")
	}
	if !strings.Contains(m.View(), "screenshot") || strings.Contains(short, "screenshot") {
		t.Error("full help should list the screenshot binding")
	}
}

func TestViewport(t *testing.T) {
	tests := []struct {
		name           string
		sw, sh, tw, th int
		fx, fy         int
		expected       core.Rect
	}{
		{"unknown terminal", 56, 31, 0, 0, 10, 10, core.NewRect(0, 0, 56, 31)},
		{"terminal larger", 56, 31, 100, 50, 10, 10, core.NewRect(0, 0, 56, 31)},
		{"centered", 56, 31, 20, 11, 30, 15, core.NewRect(20, 10, 20, 11)},
		{"clamped left", 56, 31, 20, 11, 2, 1, core.NewRect(0, 0, 20, 11)},
		{"clamped right", 56, 31, 20, 11, 55, 30, core.NewRect(36, 20, 20, 11)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := viewport(tt.sw, tt.sh, tt.tw, tt.th, tt.fx, tt.fy); got != tt.expected {
				t.Errorf("viewport() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestRenderRegion(t *testing.T) {
	s := core.NewScreen(4, 3)
	s.DrawText(0, 0, "abcd", core.ColorDefault)
	s.DrawText(0, 1, "efgh", core.ColorDefault)
	s.DrawText(0, 2, "ijkl", core.ColorDefault)

	if got := RenderRegion(s, core.NewRect(1, 1, 2, 2)); got != "fg\njk" {
		t.Errorf("RenderRegion() = %q, expected %q", got, "fg\njk")
	}
	if got := RenderRegion(s, core.NewRect(3, 2, 5, 5)); got != "l" {
		t.Errorf("RenderRegion() past the edge = %q, expected %q", got, "l")
	}
	if got := RenderScreen(s); got != "abcd\nefgh\nijkl" {
		t.Errorf("RenderScreen() = %q", got)
	}
}
