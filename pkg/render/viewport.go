package render

import (
	"github.com/taigrr/orbs/pkg/math3d"
)

// ProjectionPlaneZ is the distance from the eye to the viewport.
const ProjectionPlaneZ = 1.0

// Viewport is the virtual image plane the eye looks through.
// It sits at ProjectionPlaneZ in front of the eye, centered on the Z axis.
type Viewport struct {
	Width  float64
	Height float64
}

// NewViewport creates a viewport with the given logical size.
func NewViewport(width, height float64) Viewport {
	return Viewport{Width: width, Height: height}
}

// Direction maps the centered canvas pixel (x, y) of a width x height
// canvas to the world-space direction of the ray through it.
// Canvas y grows downwards while viewport y grows upwards.
func (v Viewport) Direction(width, height, x, y int) math3d.Tuple {
	return math3d.Vector(
		float64(x)*v.Width/float64(width),
		float64(-y)*v.Height/float64(height),
		ProjectionPlaneZ,
	)
}

// Zoom returns the viewport scaled by s around its center.
func (v Viewport) Zoom(s float64) Viewport {
	return Viewport{Width: v.Width * s, Height: v.Height * s}
}

// FitAspect widens or narrows the viewport so its aspect ratio matches a
// width x height canvas, keeping the height.
func (v Viewport) FitAspect(width, height int) Viewport {
	if height == 0 {
		return v
	}
	return Viewport{Width: v.Height * float64(width) / float64(height), Height: v.Height}
}
