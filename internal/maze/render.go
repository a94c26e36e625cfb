package maze

import (
	"math"

	"github.com/vovakirdan/tui-maze/internal/core"
)

const blinkPeriod = 0.5 // seconds

// Renderer draws a grid. It is a scene entity with no update logic.
type Renderer struct {
	grid  *Grid
	blink float64

	WallColor  core.Color
	DotColor   core.Color
	PowerColor core.Color
}

// NewRenderer creates a renderer for g with the default palette.
func NewRenderer(g *Grid) *Renderer {
	return &Renderer{
		grid:       g,
		WallColor:  core.ColorBlue,
		DotColor:   core.ColorWhite,
		PowerColor: core.ColorBrightWhite,
	}
}

// SetGrid switches the rendered grid, e.g. after a level reload.
func (r *Renderer) SetGrid(g *Grid) { r.grid = g }

// Active implements scene.Entity.
func (r *Renderer) Active() bool { return r.grid != nil }

// Update advances the power pellet blink.
func (r *Renderer) Update(dt float64) {
	r.blink = math.Mod(r.blink+dt, blinkPeriod)
}

// Render implements scene.Entity.
func (r *Renderer) Render(s *core.Screen) {
	g := r.grid
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			x := float64(col * CellWidth)
			y := float64(row)
			switch g.TileAt(col, row) {
			case Wall:
				s.FillRect(core.NewRect(x, y, CellWidth, 1), '█', r.WallColor)
			case Dot:
				s.Plot(x, y, '·', r.DotColor)
			case Power:
				if r.blink < blinkPeriod/2 {
					s.Plot(x, y, '●', r.PowerColor)
				}
			}
		}
	}
}
