package maze

import (
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/physics"
)

// WallID returns the collider id used for the wall at (col, row).
func WallID(col, row int) string {
	return fmt.Sprintf("wall_%d_%d", col, row)
}

// RegisterWalls adds a tile-sized rectangle collider for every wall cell.
// It returns the number of colliders added.
func RegisterWalls(g *Grid, reg *physics.Registry) (int, error) {
	n := 0
	ts := g.TileSize()
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.TileAt(c, r) != Wall {
				continue
			}
			s, err := physics.NewRect(core.V(float64(c)*ts, float64(r)*ts), ts, ts)
			if err != nil {
				return n, err
			}
			if err := reg.Add(WallID(c, r), s); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// RemoveWalls drops the colliders added by RegisterWalls.
func RemoveWalls(g *Grid, reg *physics.Registry) {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.TileAt(c, r) == Wall {
				reg.Remove(WallID(c, r))
			}
		}
	}
}
