package core

// GameState is the externally visible summary of a session.
type GameState struct {
	Score    int  // Current score
	Lives    int  // Remaining lives, including the one in play
	Level    int  // 1-based level number
	GameOver bool // Whether the session has ended
	Paused   bool // Whether the frame loop is paused
}
