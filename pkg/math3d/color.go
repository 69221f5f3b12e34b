package math3d

import "image/color"

// Color is a linear color with float channels and an 8-bit opacity.
// Float channels are unclamped; R, G and B are nominally in [0, 1] but
// lighting sums may push them outside that range. A is carried through
// every operation unchanged, taken from the receiver.
type Color struct {
	R, G, B float64
	A       uint8
}

// RGB creates an opaque color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b, 255}
}

// Black returns opaque black.
func Black() Color {
	return RGB(0, 0, 0)
}

// White returns opaque white.
func White() Color {
	return RGB(1, 1, 1)
}

// Add returns the channel-wise sum.
//
//nolint:st1016 // a+b naming convention is clearer for color operations
func (a Color) Add(b Color) Color {
	return Color{a.R + b.R, a.G + b.G, a.B + b.B, a.A}
}

// Sub returns the channel-wise difference.
//
//nolint:st1016 // a-b naming convention is clearer for color operations
func (a Color) Sub(b Color) Color {
	return Color{a.R - b.R, a.G - b.G, a.B - b.B, a.A}
}

// Mul returns the channel-wise (Hadamard) product.
//
//nolint:st1016 // a*b naming convention is clearer for color operations
func (a Color) Mul(b Color) Color {
	return Color{a.R * b.R, a.G * b.G, a.B * b.B, a.A}
}

// Scale multiplies every float channel by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// ApproxEqual compares float channels within Epsilon and alpha exactly.
//
//nolint:st1016 // a,b naming convention is clearer for comparisons
func (a Color) ApproxEqual(b Color) bool {
	return FloatEqual(a.R, b.R) &&
		FloatEqual(a.G, b.G) &&
		FloatEqual(a.B, b.B) &&
		a.A == b.A
}

// RGBA converts to 8-bit channels, clamping each float channel to [0, 1]
// before scaling to [0, 255].
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: ChannelToByte(c.R),
		G: ChannelToByte(c.G),
		B: ChannelToByte(c.B),
		A: c.A,
	}
}

// ChannelToByte clamps v to [0, 1] and scales it to a byte, truncating.
// NaN maps to 0.
func ChannelToByte(v float64) uint8 {
	switch {
	case v > 1:
		v = 1
	case v < 0:
		v = 0
	case v != v:
		v = 0
	}
	return uint8(255 * v)
}
