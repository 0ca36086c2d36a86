package inkframe

import (
	"fmt"
	"image/color"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	r, g, b, a := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// RGBA8 returns the color as straight (non-premultiplied) 8-bit components.
func (c RGBA) RGBA8() (r, g, b, a uint8) {
	return uint8(clamp255(c.R*255 + 0.5)),
		uint8(clamp255(c.G*255 + 0.5)),
		uint8(clamp255(c.B*255 + 0.5)),
		uint8(clamp255(c.A*255 + 0.5))
}

// Hex returns the color as a "#rrggbb" string, ignoring alpha.
func (c RGBA) Hex() string {
	r, g, b, _ := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Luminance returns the Rec. 601 luma of the color in [0, 255],
// matching the weights of image/color.GrayModel.
func (c RGBA) Luminance() uint8 {
	r, g, b, _ := c.RGBA8()
	return luma(r, g, b)
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(nc.R) / 255,
		G: float64(nc.G) / 255,
		B: float64(nc.B) / 255,
		A: float64(nc.A) / 255,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Gray creates an opaque gray with intensity v in [0, 1].
func Gray(v float64) RGBA {
	return RGB(v, v, v)
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// luma is the Rec. 601 reduction used by image/color.GrayModel.
func luma(r, g, b uint8) uint8 {
	y := (19595*uint32(r)*0x101 + 38470*uint32(g)*0x101 + 7471*uint32(b)*0x101 + 1<<15) >> 24
	return uint8(y)
}

// Common colors. E-ink panels only show black and white; the grays are kept
// for grayscale panels.
var (
	Black     = RGB(0, 0, 0)
	White     = RGB(1, 1, 1)
	DarkGray  = Gray(0.25)
	LightGray = Gray(0.75)
)
