// Package event provides the synchronous publish/subscribe bus that connects
// input, entities and session logic. Events form a closed set: every Kind has
// exactly one payload struct implementing Event.
package event

// Kind identifies an event. The set of kinds is closed.
type Kind int

const (
	KindKeyDown Kind = iota + 1
	KindKeyUp
	KindPointerMove
	KindPointerDown
	KindPointerUp
	KindGameStart
	KindGamePause
	KindGameResume
	KindGameOver
	KindDotCollected
	KindPowerCollected
	KindPowerExpired
	KindGhostEaten
	KindPacmanDied
	KindLevelComplete
	KindScoreChanged
	KindCollisionEnter
	KindCollisionExit
)

var kindNames = map[Kind]string{
	KindKeyDown:        "KeyDown",
	KindKeyUp:          "KeyUp",
	KindPointerMove:    "PointerMove",
	KindPointerDown:    "PointerDown",
	KindPointerUp:      "PointerUp",
	KindGameStart:      "GameStart",
	KindGamePause:      "GamePause",
	KindGameResume:     "GameResume",
	KindGameOver:       "GameOver",
	KindDotCollected:   "DotCollected",
	KindPowerCollected: "PowerCollected",
	KindPowerExpired:   "PowerExpired",
	KindGhostEaten:     "GhostEaten",
	KindPacmanDied:     "PacmanDied",
	KindLevelComplete:  "LevelComplete",
	KindScoreChanged:   "ScoreChanged",
	KindCollisionEnter: "CollisionEnter",
	KindCollisionExit:  "CollisionExit",
}

// String returns the event name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Event is implemented by every payload struct.
type Event interface {
	Kind() Kind
}

// KeyDown is published when a key transitions to pressed.
// Key is the lowercase canonical key name ("up", "a", "enter").
type KeyDown struct{ Key string }

// KeyUp is published when a key transitions to released.
type KeyUp struct{ Key string }

// PointerMove carries surface-local pointer coordinates.
type PointerMove struct{ X, Y int }

// PointerDown carries surface-local coordinates and the button index.
type PointerDown struct {
	X, Y   int
	Button int
}

// PointerUp carries surface-local coordinates and the button index.
type PointerUp struct {
	X, Y   int
	Button int
}

// GameStart is published when the frame loop starts.
type GameStart struct{}

// GamePause is published when the frame loop is paused.
type GamePause struct{}

// GameResume is published when the frame loop resumes.
type GameResume struct{}

// GameOver is published when the frame loop stops.
type GameOver struct{}

// DotCollected is published when the player clears a dot tile.
type DotCollected struct{ Col, Row int }

// PowerCollected is published when the player clears a power tile.
type PowerCollected struct {
	Col, Row int
	Duration float64 // Seconds of powered state granted
}

// PowerExpired is published when the powered countdown reaches zero.
type PowerExpired struct{}

// GhostEaten is published when a powered player catches a ghost.
type GhostEaten struct{ Ghost string }

// PacmanDied is published when the player enters the Dead state.
type PacmanDied struct{ Col, Row int }

// LevelComplete is published when the last dot of a maze is cleared.
type LevelComplete struct{ Level int }

// ScoreChanged is published whenever the session score changes.
type ScoreChanged struct {
	Score int
	Delta int
}

// CollisionEnter is published when a watched collider starts touching another.
type CollisionEnter struct{ A, B string }

// CollisionExit is published when a watched collider stops touching another.
type CollisionExit struct{ A, B string }

func (KeyDown) Kind() Kind        { return KindKeyDown }
func (KeyUp) Kind() Kind          { return KindKeyUp }
func (PointerMove) Kind() Kind    { return KindPointerMove }
func (PointerDown) Kind() Kind    { return KindPointerDown }
func (PointerUp) Kind() Kind      { return KindPointerUp }
func (GameStart) Kind() Kind      { return KindGameStart }
func (GamePause) Kind() Kind      { return KindGamePause }
func (GameResume) Kind() Kind     { return KindGameResume }
func (GameOver) Kind() Kind       { return KindGameOver }
func (DotCollected) Kind() Kind   { return KindDotCollected }
func (PowerCollected) Kind() Kind { return KindPowerCollected }
func (PowerExpired) Kind() Kind   { return KindPowerExpired }
func (GhostEaten) Kind() Kind     { return KindGhostEaten }
func (PacmanDied) Kind() Kind     { return KindPacmanDied }
func (LevelComplete) Kind() Kind  { return KindLevelComplete }
func (ScoreChanged) Kind() Kind   { return KindScoreChanged }
func (CollisionEnter) Kind() Kind { return KindCollisionEnter }
func (CollisionExit) Kind() Kind  { return KindCollisionExit }
