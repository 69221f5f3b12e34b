// Package scene holds the sphere scene and the recursive ray tracer that
// shades it.
package scene

import (
	"math"

	"github.com/taigrr/orbs/pkg/math3d"
)

// NoSpecular disables the specular highlight of a sphere.
const NoSpecular = -1.0

// Miss is the distance Intersect reports for both roots when a ray misses.
const Miss = math.MaxFloat64

// Sphere is the only primitive the tracer knows about.
type Sphere struct {
	Radius     float64
	Center     math3d.Tuple // Point
	Color      math3d.Color
	Specular   float64 // Phong exponent, NoSpecular to disable
	Reflective float64 // Fraction of the shaded color taken from the mirror ray, in [0, 1]
}

// Intersect solves |origin + t*direction - center|² = radius² for t.
//
// Both roots are returned unordered: t1 = (-b+√disc)/2a, t2 = (-b-√disc)/2a.
// When the ray misses, both are Miss. direction need not be unit length;
// a zero-length direction divides by zero and the roots are not finite.
func (s *Sphere) Intersect(origin, direction math3d.Tuple) (t1, t2 float64) {
	co := origin.Sub(s.Center)

	a := direction.Dot(direction)
	b := 2 * co.Dot(direction)
	c := co.Dot(co) - s.Radius*s.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return Miss, Miss
	}

	sq := math.Sqrt(disc)
	t1 = (-b + sq) / (2 * a)
	t2 = (-b - sq) / (2 * a)
	return t1, t2
}

// NormalAt returns the unit outward normal at a point on the surface.
func (s *Sphere) NormalAt(p math3d.Tuple) math3d.Tuple {
	return p.Sub(s.Center).Normalize()
}
