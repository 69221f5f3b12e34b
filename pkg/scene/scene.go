package scene

import (
	"math"

	"github.com/taigrr/orbs/pkg/math3d"
)

// ShadowEpsilon is the t_min of shadow and reflection rays. It keeps a ray
// leaving a surface from hitting that same surface again (shadow acne).
const ShadowEpsilon = 0.001

// PointShadowMax bounds the shadow ray towards a point light. The light
// vector is position - point, so t = 1 lands on the light.
const PointShadowMax = 1.0

// Scene is an ordered list of spheres and lights. It is read only while a
// render is in progress.
type Scene struct {
	Spheres []Sphere
	Lights  []Light
}

// New creates a scene. The slices are used as given, not copied.
func New(spheres []Sphere, lights []Light) *Scene {
	return &Scene{Spheres: spheres, Lights: lights}
}

// ClosestIntersection finds the nearest sphere hit along the ray with t in
// the inclusive interval [tMin, tMax].
//
// Both roots of every sphere are tested against the running minimum, so a
// sphere may win with either root. Ties go to the sphere scanned first.
// The returned pointer aliases s.Spheres; it is nil when nothing is hit.
func (s *Scene) ClosestIntersection(origin, direction math3d.Tuple, tMin, tMax float64) (*Sphere, float64) {
	closestT := math.MaxFloat64
	var closest *Sphere

	for i := range s.Spheres {
		sphere := &s.Spheres[i]
		t1, t2 := sphere.Intersect(origin, direction)
		if t1 >= tMin && t1 <= tMax && t1 < closestT {
			closestT = t1
			closest = sphere
		}
		if t2 >= tMin && t2 <= tMax && t2 < closestT {
			closestT = t2
			closest = sphere
		}
	}

	if closest == nil {
		return nil, 0
	}
	return closest, closestT
}

// ComputeLighting returns the total light intensity reaching point.
//
// normal is the surface normal, view points from the surface back towards
// the viewer and specular is the Phong exponent (NoSpecular disables the
// highlight). The result is the unclamped sum over all lights.
func (s *Scene) ComputeLighting(point, normal, view math3d.Tuple, specular float64) float64 {
	var i float64

	for _, light := range s.Lights {
		switch light.Kind {
		case LightAmbient:
			i += light.Intensity
		case LightPoint:
			l := light.Position.Sub(point)
			i += s.illuminate(point, normal, l, view, light.Intensity, specular, PointShadowMax)
		case LightDirectional:
			i += s.illuminate(point, normal, light.Direction, view, light.Intensity, specular, math.Inf(1))
		}
	}

	return i
}

// illuminate returns the diffuse and specular contribution of a single
// light arriving along l, or zero if something blocks it within tMax.
func (s *Scene) illuminate(p, n, l, v math3d.Tuple, intensity, specular, tMax float64) float64 {
	if blocker, _ := s.ClosestIntersection(p, l, ShadowEpsilon, tMax); blocker != nil {
		return 0
	}

	var i float64

	// Diffuse
	if nDotL := n.Dot(l); nDotL > 0 {
		i += intensity * nDotL / (n.Len() * l.Len())
	}

	// Specular
	if specular != NoSpecular {
		r := l.Reflect(n)
		if rDotV := r.Dot(v); rDotV > 0 {
			i += intensity * math.Pow(rDotV/(r.Len()*v.Len()), specular)
		}
	}

	return i
}
