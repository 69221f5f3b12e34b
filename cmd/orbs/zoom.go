package main

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	minZoom  = 0.125
	maxZoom  = 8.0
	zoomStep = 1.25
)

// ZoomAxis eases the viewport scale toward a target with a spring.
type ZoomAxis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
	fps      int
}

// NewZoomAxis starts at scale 1.
func NewZoomAxis(fps int) *ZoomAxis {
	return &ZoomAxis{
		Position: 1,
		Target:   1,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		fps:    fps,
	}
}

// In narrows the viewport, magnifying the scene.
func (z *ZoomAxis) In() {
	z.Target = math.Max(minZoom, z.Target/zoomStep)
}

// Out widens the viewport.
func (z *ZoomAxis) Out() {
	z.Target = math.Min(maxZoom, z.Target*zoomStep)
}

// Reset snaps back to scale 1 without animating.
func (z *ZoomAxis) Reset() {
	*z = *NewZoomAxis(z.fps)
}

// Update advances the spring one frame and reports whether the scale is
// still moving.
func (z *ZoomAxis) Update() bool {
	if z.Settled() {
		z.Position, z.velocity = z.Target, 0
		return false
	}
	z.Position, z.velocity = z.spring.Update(z.Position, z.velocity, z.Target)
	return true
}

// Settled reports whether the scale has reached its target.
func (z *ZoomAxis) Settled() bool {
	return math.Abs(z.Position-z.Target) < 1e-3 && math.Abs(z.velocity) < 1e-3
}
