package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalCanvasSize returns the canvas size that fills a terminal of
// cols x rows cells. Each cell shows two vertically stacked pixels.
func TerminalCanvasSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Draw blits the canvas onto the screen.
// The canvas height should be 2x the terminal height.
func (c *Canvas) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 canvas rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < c.Width; col++ {
			px := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(c.GetPixel(px, topY)),
					Bg: rgbaToColor(c.GetPixel(px, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
