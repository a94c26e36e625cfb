package pacman

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

// hud draws the score line beneath the maze.
type hud struct {
	game *Game
}

func (h *hud) Update(float64) {}

func (h *hud) Active() bool { return true }

func (h *hud) Render(s *core.Screen) {
	g := h.game
	y := float64(g.grid.Rows())
	s.DrawText(0, y, fmt.Sprintf("SCORE %06d", g.score), core.ColorBrightWhite)

	level := fmt.Sprintf("LEVEL %d", g.level)
	s.DrawText(float64(g.grid.Cols()*maze.CellWidth/2-len(level)/2), y, level, core.ColorCyan)

	lives := strings.Repeat("●", max(g.lives, 0))
	x := float64(g.grid.Cols()*maze.CellWidth - g.lives - 1)
	s.DrawText(x, y, lives, core.ColorYellow)
}

// overlay shows the pause and game over banners over the maze.
type overlay struct {
	game *Game
}

func (o *overlay) Update(float64) {}

func (o *overlay) Active() bool {
	return o.game.over || o.game.paused()
}

func (o *overlay) Render(s *core.Screen) {
	g := o.game
	title, hint := "PAUSED", "press p to resume"
	color := core.ColorBrightYellow
	if g.over {
		title, hint = "GAME OVER", "press r to restart"
		color = core.ColorBrightRed
	}

	w := max(len(hint), len(title)) + 4
	cx := g.grid.Cols() * maze.CellWidth / 2
	cy := g.grid.Rows() / 2
	box := core.NewRect(float64(cx-w/2), float64(cy-2), float64(w), 5)
	s.FillRect(box, ' ', core.ColorDefault)
	s.DrawBox(box, color)
	s.DrawText(float64(cx-len(title)/2), float64(cy-1), title, color)
	s.DrawText(float64(cx-len(hint)/2), float64(cy), hint, core.ColorWhite)
}
