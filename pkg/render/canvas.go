// Package render maps pixels to rays, runs the render loop and hands the
// finished pixels to a display surface.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/taigrr/orbs/pkg/math3d"
)

// BytesPerPixel is the stride of one RGBA pixel in a Canvas buffer.
const BytesPerPixel = 4

// Canvas is the output pixel buffer of a render.
// Pixels are stored row-major as RGBA bytes with the top-left pixel first.
// PutPixel addresses pixels relative to the center of the canvas.
type Canvas struct {
	Width  int
	Height int
	pixels []byte
}

// NewCanvas allocates a transparent black canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]byte, width*height*BytesPerPixel),
	}
}

// Bounds returns the centered coordinate range covered by the canvas:
// x in [minX, maxX) and y in [minY, maxY).
func (c *Canvas) Bounds() (minX, minY, maxX, maxY int) {
	minX, minY = -(c.Width / 2), -(c.Height / 2)
	return minX, minY, minX + c.Width, minY + c.Height
}

// PutPixel writes col at centered coordinates (x, y). (0, 0) is the
// middle pixel and y grows downwards.
func (c *Canvas) PutPixel(x, y int, col math3d.Color) {
	c.SetPixel(c.Width/2+x, c.Height/2+y, col.RGBA())
}

// SetPixel writes a pixel at buffer coordinates (px, py), (0, 0) being the
// top-left corner. Out of range writes are ignored.
func (c *Canvas) SetPixel(px, py int, col color.RGBA) {
	if px < 0 || px >= c.Width || py < 0 || py >= c.Height {
		return
	}
	i := (py*c.Width + px) * BytesPerPixel
	c.pixels[i] = col.R
	c.pixels[i+1] = col.G
	c.pixels[i+2] = col.B
	c.pixels[i+3] = col.A
}

// GetPixel returns the pixel at buffer coordinates (px, py).
// Returns transparent black if out of bounds.
func (c *Canvas) GetPixel(px, py int) color.RGBA {
	if px < 0 || px >= c.Width || py < 0 || py >= c.Height {
		return color.RGBA{}
	}
	i := (py*c.Width + px) * BytesPerPixel
	return color.RGBA{c.pixels[i], c.pixels[i+1], c.pixels[i+2], c.pixels[i+3]}
}

// Clear fills the canvas with a solid color.
func (c *Canvas) Clear(col color.RGBA) {
	for i := 0; i < len(c.pixels); i += BytesPerPixel {
		c.pixels[i] = col.R
		c.pixels[i+1] = col.G
		c.pixels[i+2] = col.B
		c.pixels[i+3] = col.A
	}
}

// Bytes returns a copy of the RGBA buffer, width*height*4 bytes long.
func (c *Canvas) Bytes() []byte {
	out := make([]byte, len(c.pixels))
	copy(out, c.pixels)
	return out
}

// Image returns a snapshot of the canvas as a standard Go image.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	copy(img.Pix, c.pixels)
	return img
}

// WriteRaw writes the RGBA buffer to w.
func (c *Canvas) WriteRaw(w io.Writer) error {
	if _, err := w.Write(c.pixels); err != nil {
		return fmt.Errorf("write pixels: %w", err)
	}
	return nil
}

// WritePNG encodes the canvas as a PNG to w.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG saves the canvas as a PNG file.
func (c *Canvas) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return c.WritePNG(f)
}
