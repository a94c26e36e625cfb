package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/engine"
	"github.com/vovakirdan/tui-maze/internal/games/pacman"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

// maxFrameDelta caps the simulated time of one tick, in seconds. A terminal
// that stalls (suspended process, slow SSH link) would otherwise hand the
// engine a huge step.
const maxFrameDelta = 0.1

// Options configures a terminal session.
type Options struct {
	Config config.PacmanConfig
	Layout *maze.Layout
	Seed   int64
	FPS    int
	Logger *log.Logger
}

// Model is the Bubble Tea model hosting one maze session.
type Model struct {
	ctx     *engine.Context
	sched   *engine.ManualScheduler
	driver  *engine.Driver
	game    *pacman.Game
	surface *surface
	keys    *KeyMapper
	help    help.Model
	log     *log.Logger

	fps      int
	width    int
	height   int
	quitting bool
}

// NewModel builds the engine, the session and the terminal surface.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx := engine.NewContext(logger)
	sched := engine.NewManualScheduler()
	driver := engine.NewDriver(ctx, sched, engine.WithMaxDelta(maxFrameDelta))

	game, err := pacman.NewGame(ctx, driver, pacman.Options{
		Config: opts.Config,
		Layout: opts.Layout,
		Seed:   opts.Seed,
	})
	if err != nil {
		ctx.Close()
		return Model{}, fmt.Errorf("cannot start session: %w", err)
	}

	surf := newSurface(game.ScreenSize())
	if err := driver.SetSurface(surf); err != nil {
		game.Close()
		ctx.Close()
		return Model{}, err
	}

	return Model{
		ctx:     ctx,
		sched:   sched,
		driver:  driver,
		game:    game,
		surface: surf,
		keys:    NewKeyMapper(pacman.DefaultKeyMap()),
		help:    help.New(),
		log:     logger,
		fps:     opts.FPS,
	}, nil
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	if err := m.driver.Start(); err != nil {
		m.log.Error("cannot start engine", "error", err)
		return tea.Quit
	}
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.surface.mouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.sched.Step()
		return m, tickCmd(m.fps)
	}

	return m, nil
}

// handleKey forwards the key to the engine, then applies host actions.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.Close()
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.log.Warn("screenshot failed", "error", err)
		} else {
			m.log.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	m.surface.key(msg)

	switch action {
	case core.ActionPause:
		if m.driver.Running() {
			m.driver.TogglePause()
			m.driver.Render()
		}
	case core.ActionRestart:
		if m.game.Over() {
			if err := m.game.Reset(); err != nil {
				m.log.Error("cannot restart session", "error", err)
				m.quitting = true
				return m, tea.Quit
			}
			if err := m.driver.Start(); err != nil {
				m.log.Error("cannot restart engine", "error", err)
			}
		}
	}
	return m, nil
}

// focus returns the screen cell the viewport keeps in view.
func (m Model) focus() (int, int) {
	p := m.game.Player()
	if p == nil {
		return 0, 0
	}
	x, y := m.game.Grid().ToScreen(p.Position())
	return int(x), int(y)
}

// View renders the visible part of the screen followed by the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keys)
	th := 0
	if m.height > 0 {
		th = max(m.height-lipgloss.Height(helpView), 1)
	}

	s := m.surface.Screen()
	fx, fy := m.focus()
	view := viewport(s.Width(), s.Height(), m.width, th, fx, fy)
	m.surface.setViewport(int(view.X), int(view.Y))

	return lipgloss.JoinVertical(lipgloss.Left, RenderRegion(s, view), helpView)
}

// Close stops the engine and releases the session.
func (m Model) Close() {
	m.driver.Stop()
	m.game.Close()
	m.ctx.Close()
}

// saveScreenshot writes the current screen as plain text.
func (m Model) saveScreenshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".tui-maze", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("maze_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.surface.Screen().String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Run starts the Bubble Tea program for one session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	model.Close()
	return err
}
