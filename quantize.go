package inkframe

import (
	"errors"
	"fmt"
)

// ColorDepth is the number of bits per pixel the target panel can show.
type ColorDepth int

const (
	// Depth1 is a black and white panel.
	Depth1 ColorDepth = 1

	// Depth4 is a grayscale panel. Gray levels are passed through after the
	// luminance reduction; the panel driver maps them to its own levels.
	Depth4 ColorDepth = 4
)

// ErrInvalidDepth is returned for color depths other than 1 and 4.
var ErrInvalidDepth = errors.New("inkframe: unsupported color depth")

// Threshold is the 1-bit cut-off: gray values above it become white.
const Threshold = 128

// String returns the string representation of the depth.
func (d ColorDepth) String() string {
	switch d {
	case Depth1:
		return "1-bit"
	case Depth4:
		return "4-bit"
	default:
		return fmt.Sprintf("ColorDepth(%d)", int(d))
	}
}

// Validate reports whether d is a supported depth.
func (d ColorDepth) Validate() error {
	if d != Depth1 && d != Depth4 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, int(d))
	}
	return nil
}

// Quantize reduces the canvas to the panel's color depth in place.
//
// Every pixel is first reduced to its luminance. For Depth1 the gray value
// is then thresholded: above Threshold is white, everything else black.
// There is no dithering. Quantize is idempotent.
func (c *Canvas) Quantize(depth ColorDepth) error {
	if err := depth.Validate(); err != nil {
		return err
	}
	for i := 0; i < len(c.data); i += 4 {
		gray := luma(c.data[i], c.data[i+1], c.data[i+2])
		if depth == Depth1 {
			if gray > Threshold {
				gray = 255
			} else {
				gray = 0
			}
		}
		c.data[i+0] = gray
		c.data[i+1] = gray
		c.data[i+2] = gray
		c.data[i+3] = 255
	}
	Logger().Debug("canvas quantized", "depth", depth.String(), "width", c.width, "height", c.height)
	return nil
}
