package cube

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Point is a lattice point with integer coordinates of any width.
type Point[T constraints.Integer] struct {
	X, Y, Z T
}

// Pos is a block position in world space.
type Pos = Point[int]

// Local is a block position relative to the minimum corner of its chunk.
type Local = Point[uint8]

// P is a shorthand constructor for a world-space Pos.
func P(x, y, z int) Pos {
	return Pos{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of p and o.
func (p Point[T]) Add(o Point[T]) Point[T] {
	return Point[T]{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Sub returns the component-wise difference p - o.
func (p Point[T]) Sub(o Point[T]) Point[T] {
	return Point[T]{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// Neg returns the point mirrored through the origin.
func (p Point[T]) Neg() Point[T] {
	var zero T
	return Point[T]{X: zero - p.X, Y: zero - p.Y, Z: zero - p.Z}
}

// Scale multiplies every component by s.
func (p Point[T]) Scale(s T) Point[T] {
	return Point[T]{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Axis returns the component selected by axis index 0 (X), 1 (Y) or 2 (Z).
func (p Point[T]) Axis(axis int) T {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	}
	panic(fmt.Sprintf("cube: axis %d out of range", axis))
}

// WithAxis returns a copy of p with the given axis replaced by v.
func (p Point[T]) WithAxis(axis int, v T) Point[T] {
	switch axis {
	case 0:
		p.X = v
	case 1:
		p.Y = v
	case 2:
		p.Z = v
	default:
		panic(fmt.Sprintf("cube: axis %d out of range", axis))
	}
	return p
}

func (p Point[T]) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}
