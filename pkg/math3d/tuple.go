// Package math3d provides the tuple and color algebra for the orbs tracer.
package math3d

import "math"

// Epsilon is the tolerance used by ApproxEqual.
const Epsilon = 1e-5

// Tuple is a homogeneous 3D tuple.
// W is 1 for points (locations) and 0 for vectors (directions).
type Tuple struct {
	X, Y, Z, W float64
}

// Point creates a tuple with W = 1.
func Point(x, y, z float64) Tuple {
	return Tuple{x, y, z, 1}
}

// Vector creates a tuple with W = 0.
func Vector(x, y, z float64) Tuple {
	return Tuple{x, y, z, 0}
}

// IsPoint reports whether t is tagged as a point.
func (t Tuple) IsPoint() bool {
	return t.W == 1
}

// IsVector reports whether t is tagged as a vector.
func (t Tuple) IsVector() bool {
	return t.W == 0
}

// Add returns the tuple sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Tuple) Add(b Tuple) Tuple {
	return Tuple{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the tuple difference.
// Point - point yields a vector, point - vector yields a point.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Tuple) Sub(b Tuple) Tuple {
	return Tuple{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Negate returns the negated tuple, W included.
func (t Tuple) Negate() Tuple {
	return Tuple{-t.X, -t.Y, -t.Z, -t.W}
}

// Scale returns the scalar product.
func (t Tuple) Scale(s float64) Tuple {
	return Tuple{t.X * s, t.Y * s, t.Z * s, t.W * s}
}

// Div returns the scalar division.
func (t Tuple) Div(s float64) Tuple {
	return Tuple{t.X / s, t.Y / s, t.Z / s, t.W / s}
}

// Dot returns the dot product over all four components.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Tuple) Dot(b Tuple) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Cross returns the cross product a × b. The result is always a vector.
//
//nolint:st1016 // a×b naming convention is clearer for vector operations
func (a Tuple) Cross(b Tuple) Tuple {
	return Vector(
		a.Y*b.Z-a.Z*b.Y,
		a.Z*b.X-a.X*b.Z,
		a.X*b.Y-a.Y*b.X,
	)
}

// Len returns the magnitude over all four components.
func (t Tuple) Len() float64 {
	return math.Sqrt(t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W)
}

// Normalize returns t divided by its magnitude.
// A zero-length tuple yields NaN components; callers must not pass one.
func (t Tuple) Normalize() Tuple {
	return t.Div(t.Len())
}

// Reflect mirrors t about n: 2n(n·t) - t.
func (t Tuple) Reflect(n Tuple) Tuple {
	return n.Scale(2 * n.Dot(t)).Sub(t)
}

// ApproxEqual reports whether every component of a and b differs by less
// than Epsilon. Intended for tests.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Tuple) ApproxEqual(b Tuple) bool {
	return FloatEqual(a.X, b.X) &&
		FloatEqual(a.Y, b.Y) &&
		FloatEqual(a.Z, b.Z) &&
		FloatEqual(a.W, b.W)
}

// FloatEqual reports whether a and b differ by less than Epsilon.
func FloatEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}
