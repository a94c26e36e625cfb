// Package maze holds the tile grid the player and ghosts move through,
// along with layout parsing, wall colliders and grid rendering.
package maze

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Tile is the content of a single grid cell.
type Tile int

const (
	Path Tile = iota
	Wall
	Dot
	Power
)

// String returns a human-readable name for the tile.
func (t Tile) String() string {
	switch t {
	case Path:
		return "Path"
	case Wall:
		return "Wall"
	case Dot:
		return "Dot"
	case Power:
		return "Power"
	default:
		return "Unknown"
	}
}

// DefaultTileSize is the world-space edge length of a tile.
const DefaultTileSize = 20.0

// CellWidth is how many screen columns one tile occupies. Terminal cells are
// roughly twice as tall as they are wide.
const CellWidth = 2

// ErrBadLayout is returned for empty or ragged grids.
var ErrBadLayout = errors.New("maze: invalid layout")

// Cell is a grid coordinate.
type Cell struct {
	Col, Row int
}

// Grid is the mutable tile store shared by every consumer through a pointer.
type Grid struct {
	tiles    [][]Tile
	cols     int
	rows     int
	tileSize float64
	pellets  int
}

// NewGrid copies tiles into a new grid. All rows must have the same length.
func NewGrid(tiles [][]Tile, tileSize float64) (*Grid, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrBadLayout)
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	g := &Grid{
		rows:     len(tiles),
		cols:     len(tiles[0]),
		tileSize: tileSize,
	}
	g.tiles = make([][]Tile, g.rows)
	for r, row := range tiles {
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrBadLayout, r, len(row), g.cols)
		}
		g.tiles[r] = append([]Tile(nil), row...)
		for _, t := range row {
			if t == Dot || t == Power {
				g.pellets++
			}
		}
	}
	return g, nil
}

// Cols returns the grid width in tiles.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in tiles.
func (g *Grid) Rows() int { return g.rows }

// TileSize returns the world-space edge length of a tile.
func (g *Grid) TileSize() float64 { return g.tileSize }

// Size returns the world-space width and height of the grid.
func (g *Grid) Size() (w, h float64) {
	return float64(g.cols) * g.tileSize, float64(g.rows) * g.tileSize
}

// InBounds reports whether the cell lies on the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// TileAt returns the tile at (col, row). Cells off the grid are walls.
func (g *Grid) TileAt(col, row int) Tile {
	if !g.InBounds(col, row) {
		return Wall
	}
	return g.tiles[row][col]
}

// SetTile replaces the tile at (col, row). Off-grid writes are ignored.
func (g *Grid) SetTile(col, row int, t Tile) {
	if !g.InBounds(col, row) {
		return
	}
	old := g.tiles[row][col]
	if old == Dot || old == Power {
		g.pellets--
	}
	if t == Dot || t == Power {
		g.pellets++
	}
	g.tiles[row][col] = t
}

// DotsRemaining counts the dots and power pellets left on the grid.
func (g *Grid) DotsRemaining() int {
	return g.pellets
}

// WorldToGrid returns the cell containing a world position.
func (g *Grid) WorldToGrid(p core.Vec2) Cell {
	return Cell{
		Col: int(math.Floor(p.X / g.tileSize)),
		Row: int(math.Floor(p.Y / g.tileSize)),
	}
}

// GridToWorld returns the world position of a cell's center.
func (g *Grid) GridToWorld(c Cell) core.Vec2 {
	return core.Vec2{
		X: float64(c.Col)*g.tileSize + g.tileSize/2,
		Y: float64(c.Row)*g.tileSize + g.tileSize/2,
	}
}

// ToScreen maps a world position to screen coordinates. A tile's center
// lands inside the tile's first screen column.
func (g *Grid) ToScreen(p core.Vec2) (x, y float64) {
	return p.X/g.tileSize*CellWidth - 0.5, p.Y / g.tileSize
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c, _ := NewGrid(g.tiles, g.tileSize)
	return c
}
