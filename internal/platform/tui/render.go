package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorPink:          lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	return RenderRegion(s, core.NewRect(0, 0, float64(s.Width()), float64(s.Height())))
}

// RenderRegion renders the cells of s inside r. Adjacent cells with the same
// color are grouped to minimize ANSI escape sequences.
func RenderRegion(s *core.Screen, r core.Rect) string {
	x0, y0 := int(r.X), int(r.Y)
	x1, y1 := min(x0+int(r.W), s.Width()), min(y0+int(r.H), s.Height())
	x0, y0 = max(x0, 0), max(y0, 0)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(max(x1-x0, 0)*max(y1-y0, 0)*2 + max(y1-y0, 0))

	for y := y0; y < y1; y++ {
		if y > y0 {
			sb.WriteRune('\n')
		}

		x := x0
		for x < x1 {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < x1 {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// viewport picks the part of a screen of size (sw, sh) that fits a terminal
// of size (tw, th), keeping (fx, fy) as close to the middle as the edges
// allow. A zero terminal size shows the whole screen.
func viewport(sw, sh, tw, th, fx, fy int) core.Rect {
	w, h := sw, sh
	if tw > 0 {
		w = min(sw, tw)
	}
	if th > 0 {
		h = min(sh, th)
	}
	x := core.ClampInt(fx-w/2, 0, sw-w)
	y := core.ClampInt(fy-h/2, 0, sh-h)
	return core.NewRect(float64(x), float64(y), float64(w), float64(h))
}
