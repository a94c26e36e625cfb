// Package config provides YAML-based game configuration loading and
// difficulty management for the maze game.
package config

// PacmanConfig contains all configuration for a maze session.
type PacmanConfig struct {
	Player     PacmanPlayer     `yaml:"player"`
	Ghosts     PacmanGhosts     `yaml:"ghosts"`
	Scoring    PacmanScoring    `yaml:"scoring"`
	Animation  PacmanAnimation  `yaml:"animation"`
	Maze       PacmanMaze       `yaml:"maze"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PacmanPlayer defines player parameters.
type PacmanPlayer struct {
	Speed         float64 `yaml:"speed"`          // World units per second
	PowerDuration float64 `yaml:"power_duration"` // Seconds
	Lives         int     `yaml:"lives"`
	RadiusInset   float64 `yaml:"radius_inset"` // Collider radius is tile_size/2 minus this
}

// PacmanGhosts defines ghost parameters.
type PacmanGhosts struct {
	Count           int     `yaml:"count"`
	Speed           float64 `yaml:"speed"`
	FrightenedSpeed float64 `yaml:"frightened_speed"`
	ReleaseDelay    float64 `yaml:"release_delay"` // Seconds between ghost releases
}

// PacmanScoring defines point values.
type PacmanScoring struct {
	Dot        int `yaml:"dot"`
	Power      int `yaml:"power"`
	Ghost      int `yaml:"ghost"`
	LevelBonus int `yaml:"level_bonus"`
}

// PacmanAnimation defines cosmetic animation parameters.
type PacmanAnimation struct {
	MouthMaxAngle float64 `yaml:"mouth_max_angle"` // Degrees
	MouthPeriod   float64 `yaml:"mouth_period"`    // Seconds to open or close once
}

// PacmanMaze selects the layout.
type PacmanMaze struct {
	Layout   string  `yaml:"layout"`
	TileSize float64 `yaml:"tile_size"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Levels/score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to ghost speed at max difficulty
	PowerReduction  float64 `yaml:"power_reduction"`  // Seconds removed from power duration at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string yields "".
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
