package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivideByZero is the panic value of Vec2.Div when the divisor is zero.
// A zero divisor is a caller bug, not a degenerate geometry case.
var ErrDivideByZero = errors.New("core: division by zero")

// Vec2 is an immutable 2D vector in world units.
// Every arithmetic method returns a new value and leaves the receiver untouched.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Zero returns the zero vector.
func Zero() Vec2 { return Vec2{} }

// One returns (1, 1).
func One() Vec2 { return Vec2{X: 1, Y: 1} }

// Up returns the screen-space up unit vector (y grows downward).
func Up() Vec2 { return Vec2{X: 0, Y: -1} }

// Down returns the screen-space down unit vector.
func Down() Vec2 { return Vec2{X: 0, Y: 1} }

// Left returns the left unit vector.
func Left() Vec2 { return Vec2{X: -1, Y: 0} }

// Right returns the right unit vector.
func Right() Vec2 { return Vec2{X: 1, Y: 0} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Div returns v divided by s. It panics with ErrDivideByZero when s is zero.
func (v Vec2) Div(s float64) Vec2 {
	if s == 0 {
		panic(ErrDivideByZero)
	}
	return Vec2{X: v.X / s, Y: v.Y / s}
}

// SafeDiv is Div that reports division by zero as an error.
func (v Vec2) SafeDiv(s float64) (Vec2, error) {
	if s == 0 {
		return Vec2{}, ErrDivideByZero
	}
	return Vec2{X: v.X / s, Y: v.Y / s}, nil
}

// Len returns the magnitude of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Div(l)
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Dist returns the euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Angle returns the angle of v in radians, measured from the +X axis.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate returns v rotated by rad radians around the origin.
func (v Vec2) Rotate(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Equals reports exact component equality.
func (v Vec2) Equals(o Vec2) bool {
	return v.X == o.X && v.Y == o.Y
}

// String implements fmt.Stringer.
func (v Vec2) String() string {
	return fmt.Sprintf("Vec2(%g, %g)", v.X, v.Y)
}
