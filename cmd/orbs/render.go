package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/taigrr/orbs/pkg/models"
	"github.com/taigrr/orbs/pkg/render"
	"github.com/taigrr/orbs/pkg/scene"
)

type renderOptions struct {
	width, height int
	out           string
	raw           bool
	depth         int
	vw, vh        float64
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{
		width:  600,
		height: 600,
		depth:  scene.DefaultDepth,
	}

	cmd := &cobra.Command{
		Use:   "render <scene.json|scene.glb>",
		Short: "Render a scene to a PNG or raw RGBA file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(args[0], cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.width, "width", "W", opts.width, "Canvas width in pixels")
	f.IntVarP(&opts.height, "height", "H", opts.height, "Canvas height in pixels")
	f.StringVarP(&opts.out, "out", "o", "", "Output path, - for stdout (default: scene name with .png or .rgba)")
	f.BoolVar(&opts.raw, "raw", false, "Write raw RGBA bytes instead of PNG")
	f.IntVar(&opts.depth, "depth", opts.depth, "Reflection recursion depth")
	f.Float64Var(&opts.vw, "vw", 0, "Viewport width override")
	f.Float64Var(&opts.vh, "vh", 0, "Viewport height override")

	return cmd
}

func (o *renderOptions) run(scenePath string, stdout io.Writer) error {
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", o.width, o.height)
	}
	if o.depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", o.depth)
	}

	s, vp, err := models.LoadScene(scenePath)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	vp = o.viewport(vp)

	out := o.outputPath(scenePath)
	// Image bytes on stdout leave no room for progress lines.
	logw := stdout
	if out == "-" {
		logw = os.Stderr
	}
	fmt.Fprintf(logw, "Loaded: %s (%d spheres, %d lights)\n", filepath.Base(scenePath), len(s.Spheres), len(s.Lights))

	c := render.NewCanvas(o.width, o.height)
	r := render.NewRenderer(s, vp)
	r.Depth = o.depth
	stats := r.Render(c)

	if err := o.write(c, out, stdout); err != nil {
		return err
	}

	fmt.Fprintf(logw, "Rendered %dx%d in %v (%d pixels, %d lit) -> %s\n",
		o.width, o.height, stats.Elapsed.Round(time.Millisecond), stats.Pixels, stats.Lit, out)
	return nil
}

func (o *renderOptions) viewport(vp render.Viewport) render.Viewport {
	if o.vw > 0 {
		vp.Width = o.vw
	}
	if o.vh > 0 {
		vp.Height = o.vh
	}
	return vp
}

func (o *renderOptions) outputPath(scenePath string) string {
	if o.out != "" {
		return o.out
	}
	ext := ".png"
	if o.raw {
		ext = ".rgba"
	}
	return strings.TrimSuffix(scenePath, filepath.Ext(scenePath)) + ext
}

// write stores the canvas at out, or streams it to stdout when out is "-".
func (o *renderOptions) write(c *render.Canvas, out string, stdout io.Writer) (err error) {
	encode := c.WritePNG
	if o.raw {
		encode = c.WriteRaw
	}

	if out == "-" {
		return encode(stdout)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return encode(f)
}
