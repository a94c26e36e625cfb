package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/platform/tui"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLayoutFile string
)

var playCmd = &cobra.Command{
	Use:   "play [layout]",
	Short: "Play a layout",
	Long: `Start a session on the given layout, or on the layout named in the
config when none is given.

Controls:
  Arrows/WASD/HJKL  - Move
  P/Esc             - Pause
  R                 - Restart (after game over)
  ?                 - Toggle full help
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Five lives, slow ghosts, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Two lives, fast ghosts, start at 70% difficulty
  fixed  - No progression, stays at config's initial level

Examples:
  maze play
  maze play practice
  maze play classic --difficulty hard
  maze play --layout-file ./my-maze.yaml
  maze play --config ./my-maze-config.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLayoutFile, "layout-file", "", "Path to a layout YAML file")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal")
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	layout, err := pickLayout(cfg, args)
	if err != nil {
		return err
	}

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		logger.Debug("terminal size", "width", w, "height", h)
		if lvl, err := layout.Clone().Build(); err == nil {
			mw, mh := lvl.Grid.Cols()*maze.CellWidth, lvl.Grid.Rows()+1
			if w < mw || h < mh {
				logger.Warn("terminal smaller than maze, view will scroll", "need", fmt.Sprintf("%dx%d", mw, mh))
			}
		}
	}

	return tui.Run(tui.Options{
		Config: cfg,
		Layout: layout,
		Seed:   flagSeed,
		FPS:    flagFPS,
		Logger: logger,
	})
}

// loadConfig reads the config file and applies the difficulty preset.
func loadConfig() (config.PacmanConfig, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return config.PacmanConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	cfg, err := config.LoadPacman(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPacmanPreset(&cfg, preset)
	return cfg, nil
}

// pickLayout resolves the layout from --layout-file, the argument or the
// config, in that order.
func pickLayout(cfg config.PacmanConfig, args []string) (*maze.Layout, error) {
	if flagLayoutFile != "" {
		return maze.LoadLayoutFile(flagLayoutFile)
	}
	name := cfg.Maze.Layout
	if len(args) > 0 {
		name = args[0]
	}
	layout, err := registry.Create(name)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'maze list' to see available layouts)", err)
	}
	return layout, nil
}
