package core

import (
	"math"
	"strings"
)

// Cell is a single character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

// transform is a rotate-then-translate affine map from drawing space to cells.
type transform struct {
	tx, ty float64
	rot    float64
}

func (t transform) apply(x, y float64) (int, int) {
	if t.rot != 0 {
		sin, cos := math.Sincos(t.rot)
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	return int(math.Floor(x + t.tx)), int(math.Floor(y + t.ty))
}

// Screen is a 2D character buffer used as the render surface.
// Drawing calls go through a transform stack (Save/Restore/Translate/Rotate),
// so entities can draw relative to their own origin the way a canvas would.
type Screen struct {
	width  int
	height int
	cells  [][]Cell

	current transform
	stack   []transform
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	old := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	for y := 0; y < min(oldH, height); y++ {
		copy(s.cells[y][:min(oldW, width)], old[y])
	}
}

// Clear fills the screen with blank cells and resets the transform stack.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' ', Color: ColorDefault}
		}
	}
	s.current = transform{}
	s.stack = s.stack[:0]
}

// Save pushes the current transform onto the stack.
func (s *Screen) Save() {
	s.stack = append(s.stack, s.current)
}

// Restore pops the last saved transform. Unbalanced calls are ignored.
func (s *Screen) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.current = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Translate moves the drawing origin by (dx, dy) cells in the current frame.
func (s *Screen) Translate(dx, dy float64) {
	x, y := dx, dy
	if s.current.rot != 0 {
		sin, cos := math.Sincos(s.current.rot)
		x, y = dx*cos-dy*sin, dx*sin+dy*cos
	}
	s.current.tx += x
	s.current.ty += y
}

// Rotate rotates the drawing frame by rad radians around the current origin.
func (s *Screen) Rotate(rad float64) {
	s.current.rot += rad
}

// Rotation returns the accumulated rotation of the current frame in radians.
func (s *Screen) Rotation() float64 {
	return s.current.rot
}

// Set places a rune at an absolute cell, ignoring the transform.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at an absolute cell, or space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at an absolute position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// Plot draws a rune at (x, y) in the current drawing frame.
func (s *Screen) Plot(x, y float64, r rune, c Color) {
	cx, cy := s.current.apply(x, y)
	s.Set(cx, cy, r, c)
}

// FillRect fills a box in the current drawing frame.
func (s *Screen) FillRect(r Rect, fill rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.Plot(x, y, fill, c)
		}
	}
}

// FillCircle fills every cell whose center lies within radius of center.
// Cells are treated as twice as tall as they are wide, so circles look round.
func (s *Screen) FillCircle(center Vec2, radius float64, fill rune, c Color) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -2 * radius; dx <= 2*radius; dx++ {
			if (dx/2)*(dx/2)+dy*dy <= radius*radius {
				s.Plot(center.X+dx, center.Y+dy, fill, c)
			}
		}
	}
}

// DrawText writes a string horizontally starting at (x, y) in the current frame.
func (s *Screen) DrawText(x, y float64, text string, c Color) {
	i := 0
	for _, r := range text {
		s.Plot(x+float64(i), y, r, c)
		i++
	}
}

// DrawTextCentered draws text centered horizontally on an absolute row.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	n := len([]rune(text))
	x := (s.width - n) / 2
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r, c)
		i++
	}
}

// DrawBox draws a box outline with box-drawing characters in the current frame.
func (s *Screen) DrawBox(r Rect, c Color) {
	right, bottom := r.Right()-1, r.Bottom()-1

	s.Plot(r.X, r.Y, '┌', c)
	s.Plot(right, r.Y, '┐', c)
	s.Plot(r.X, bottom, '└', c)
	s.Plot(right, bottom, '┘', c)

	for x := r.X + 1; x < right; x++ {
		s.Plot(x, r.Y, '─', c)
		s.Plot(x, bottom, '─', c)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.Plot(r.X, y, '│', c)
		s.Plot(right, y, '│', c)
	}
}

// String converts the screen buffer to plain text, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
