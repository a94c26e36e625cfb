package config

import (
	_ "embed"
)

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

// DefaultPacmanConfig returns the default maze game configuration.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Player: PacmanPlayer{
			Speed:         100,
			PowerDuration: 10,
			Lives:         3,
			RadiusInset:   2,
		},
		Ghosts: PacmanGhosts{
			Count:           4,
			Speed:           80,
			FrightenedSpeed: 50,
			ReleaseDelay:    2,
		},
		Scoring: PacmanScoring{
			Dot:        10,
			Power:      50,
			Ghost:      200,
			LevelBonus: 500,
		},
		Animation: PacmanAnimation{
			MouthMaxAngle: 45,
			MouthPeriod:   0.15,
		},
		Maze: PacmanMaze{
			Layout:   "classic",
			TileSize: 20,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				PowerReduction:  6,
			},
		},
	}
}

// DefaultPacmanYAML returns the embedded default config document.
func DefaultPacmanYAML() []byte {
	return defaultPacmanYAML
}
