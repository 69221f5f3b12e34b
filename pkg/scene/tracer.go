package scene

import (
	"math"

	"github.com/taigrr/orbs/pkg/math3d"
)

// DefaultDepth is the number of reflection bounces traced per primary ray.
const DefaultDepth = 3

// TraceRay returns the color seen along a ray.
//
// Only hits with t in [tMin, tMax] count; a miss is black. The shaded
// color of the hit sphere is blended with the color seen along the mirror
// ray, weighted by the sphere's reflective coefficient, until depth runs
// out.
func (s *Scene) TraceRay(origin, direction math3d.Tuple, tMin, tMax float64, depth int) math3d.Color {
	sphere, t := s.ClosestIntersection(origin, direction, tMin, tMax)
	if sphere == nil {
		return math3d.Black()
	}

	p := origin.Add(direction.Scale(t))
	n := sphere.NormalAt(p)
	view := direction.Negate()

	local := sphere.Color.Scale(s.ComputeLighting(p, n, view, sphere.Specular))

	r := sphere.Reflective
	if depth <= 0 || r <= 0 {
		return local
	}

	reflected := s.TraceRay(p, view.Reflect(n), ShadowEpsilon, math.Inf(1), depth-1)
	return local.Scale(1 - r).Add(reflected.Scale(r))
}
