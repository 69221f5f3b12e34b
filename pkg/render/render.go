package render

import (
	"math"
	"time"

	"github.com/taigrr/orbs/pkg/math3d"
	"github.com/taigrr/orbs/pkg/scene"
)

// NearPlane is the t_min of primary rays. Anything closer to the eye than
// the viewport is not drawn.
const NearPlane = 1.0

// Stats describes a finished render.
type Stats struct {
	Pixels  int           // Pixels traced
	Lit     int           // Pixels that came out non-black
	Elapsed time.Duration // Wall time of the render loop
}

// Renderer traces a scene into canvases.
type Renderer struct {
	Scene    *scene.Scene
	Viewport Viewport
	Depth    int // Reflection budget per primary ray
}

// NewRenderer creates a renderer with the default reflection depth.
func NewRenderer(s *scene.Scene, vp Viewport) *Renderer {
	return &Renderer{
		Scene:    s,
		Viewport: vp,
		Depth:    scene.DefaultDepth,
	}
}

// Render traces every pixel of c exactly once from the world origin.
// It blocks until the whole canvas is written.
func (r *Renderer) Render(c *Canvas) Stats {
	start := time.Now()
	origin := math3d.Point(0, 0, 0)

	var stats Stats
	minX, minY, maxX, maxY := c.Bounds()
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			d := r.Viewport.Direction(c.Width, c.Height, x, y)
			col := r.Scene.TraceRay(origin, d, NearPlane, math.Inf(1), r.Depth)
			c.PutPixel(x, y, col)

			stats.Pixels++
			if col != math3d.Black() {
				stats.Lit++
			}
		}
	}

	stats.Elapsed = time.Since(start)
	return stats
}

// Render traces s into c through vp with the default reflection depth.
func Render(c *Canvas, vp Viewport, s *scene.Scene) Stats {
	return NewRenderer(s, vp).Render(c)
}
