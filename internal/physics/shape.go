// Package physics keeps a registry of named colliders and answers
// intersection queries between them. It never resolves collisions.
package physics

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// ErrInvalidShape is returned for shapes with non-positive dimensions.
var ErrInvalidShape = errors.New("physics: invalid shape")

// ShapeKind selects the geometry of a Shape.
type ShapeKind int

const (
	Circle ShapeKind = iota + 1
	Rectangle
)

// String returns a human-readable name for the kind.
func (k ShapeKind) String() string {
	switch k {
	case Circle:
		return "Circle"
	case Rectangle:
		return "Rectangle"
	default:
		return "Unknown"
	}
}

// Shape is a collider. For circles Pos is the center, for rectangles it is
// the top-left corner.
type Shape struct {
	Kind   ShapeKind
	Pos    core.Vec2
	Radius float64
	W, H   float64
}

// NewCircle creates a circle collider centered at pos.
func NewCircle(pos core.Vec2, radius float64) (Shape, error) {
	s := Shape{Kind: Circle, Pos: pos, Radius: radius}
	return s, s.Validate()
}

// NewRect creates an axis-aligned rectangle collider with its top-left at pos.
func NewRect(pos core.Vec2, w, h float64) (Shape, error) {
	s := Shape{Kind: Rectangle, Pos: pos, W: w, H: h}
	return s, s.Validate()
}

// Validate checks the dimensions required by the shape's kind.
func (s Shape) Validate() error {
	switch s.Kind {
	case Circle:
		if s.Radius <= 0 {
			return fmt.Errorf("%w: circle radius %g", ErrInvalidShape, s.Radius)
		}
	case Rectangle:
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("%w: rectangle size %gx%g", ErrInvalidShape, s.W, s.H)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidShape, s.Kind)
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the shape.
func (s Shape) Bounds() core.Rect {
	if s.Kind == Circle {
		return core.NewRect(s.Pos.X-s.Radius, s.Pos.Y-s.Radius, 2*s.Radius, 2*s.Radius)
	}
	return core.NewRect(s.Pos.X, s.Pos.Y, s.W, s.H)
}

// Intersects reports whether a and b overlap. Touching shapes do not.
func Intersects(a, b Shape) bool {
	switch {
	case a.Kind == Circle && b.Kind == Circle:
		return a.Pos.Dist(b.Pos) < a.Radius+b.Radius
	case a.Kind == Rectangle && b.Kind == Rectangle:
		return a.Bounds().Intersects(b.Bounds())
	case a.Kind == Circle && b.Kind == Rectangle:
		return circleRect(a, b)
	case a.Kind == Rectangle && b.Kind == Circle:
		return circleRect(b, a)
	}
	return false
}

func circleRect(c, r Shape) bool {
	nearest := r.Bounds().ClosestPoint(c.Pos)
	return c.Pos.Dist(nearest) < c.Radius
}
