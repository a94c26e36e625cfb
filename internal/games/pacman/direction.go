package pacman

import (
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

// Direction is a movement heading on the grid.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

var directions = [...]Direction{Up, Left, Down, Right}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "None"
	}
}

// Vec returns the unit vector for d. None is the zero vector.
func (d Direction) Vec() core.Vec2 {
	switch d {
	case Up:
		return core.Up()
	case Down:
		return core.Down()
	case Left:
		return core.Left()
	case Right:
		return core.Right()
	default:
		return core.Zero()
	}
}

// Step returns the neighbouring cell of c in direction d.
func (d Direction) Step(c maze.Cell) maze.Cell {
	v := d.Vec()
	return maze.Cell{Col: c.Col + int(v.X), Row: c.Row + int(v.Y)}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// Horizontal reports whether d moves along the X axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// directionFor maps a movement action to a direction.
func directionFor(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return Up
	case core.ActionDown:
		return Down
	case core.ActionLeft:
		return Left
	case core.ActionRight:
		return Right
	default:
		return None
	}
}
