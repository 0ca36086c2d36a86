package inkframe

import (
	"errors"
	"image"
	"image/color"
)

// ErrInvalidSize is returned when a canvas is requested with a non-positive
// width or height.
var ErrInvalidSize = errors.New("inkframe: canvas size must be positive")

// Default panel resolution.
const (
	DefaultWidth  = 800
	DefaultHeight = 480
)

// Canvas is the raster buffer painted by one render pass.
// It is white and fully opaque when created. A Canvas is not safe for
// concurrent use; each render allocates its own.
type Canvas struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewCanvas creates a white canvas with the given dimensions.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	c := &Canvas{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
	c.Clear(White)
	return c, nil
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the height of the canvas.
func (c *Canvas) Height() int {
	return c.height
}

// Data returns the raw pixel data (RGBA format).
func (c *Canvas) Data() []uint8 {
	return c.data
}

// SetPixel sets the color of a single pixel, replacing what was there.
// Coordinates outside the canvas are ignored.
func (c *Canvas) SetPixel(x, y int, col RGBA) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := (y*c.width + x) * 4
	c.data[i+0], c.data[i+1], c.data[i+2], c.data[i+3] = col.RGBA8()
}

// BlendPixel composites col over the pixel at (x, y) with the given coverage
// in [0, 255]. The canvas stays opaque.
func (c *Canvas) BlendPixel(x, y int, col RGBA, coverage uint8) {
	if coverage == 0 || x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	r, g, b, a := col.RGBA8()
	k := uint32(coverage) * uint32(a) / 255
	i := (y*c.width + x) * 4
	c.data[i+0] = blend8(c.data[i+0], r, k)
	c.data[i+1] = blend8(c.data[i+1], g, k)
	c.data[i+2] = blend8(c.data[i+2], b, k)
	c.data[i+3] = 255
}

func blend8(dst, src uint8, k uint32) uint8 {
	return uint8((uint32(dst)*(255-k) + uint32(src)*k + 127) / 255)
}

// GetPixel returns the color of a single pixel.
// Coordinates outside the canvas read as white.
func (c *Canvas) GetPixel(x, y int) RGBA {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return White
	}
	i := (y*c.width + x) * 4
	return RGBA{
		R: float64(c.data[i+0]) / 255,
		G: float64(c.data[i+1]) / 255,
		B: float64(c.data[i+2]) / 255,
		A: float64(c.data[i+3]) / 255,
	}
}

// Clear fills the entire canvas with a color.
func (c *Canvas) Clear(col RGBA) {
	r, g, b, a := col.RGBA8()
	for i := 0; i < len(c.data); i += 4 {
		c.data[i+0] = r
		c.data[i+1] = g
		c.data[i+2] = b
		c.data[i+3] = a
	}
}

// ToImage converts the canvas to an image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	copy(img.Pix, c.data)
	return img
}

// FromImage creates a canvas from an image.
func FromImage(img image.Image) *Canvas {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	c := &Canvas{width: width, height: height, data: make([]uint8, width*height*4)}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c.SetPixel(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}

	return c
}

// At implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return color.NRGBA{}
	}
	i := (y*c.width + x) * 4
	return color.NRGBA{R: c.data[i], G: c.data[i+1], B: c.data[i+2], A: c.data[i+3]}
}

// Set implements the draw.Image interface.
func (c *Canvas) Set(x, y int, col color.Color) {
	c.SetPixel(x, y, FromColor(col))
}

// Bounds implements the image.Image interface.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// ColorModel implements the image.Image interface.
func (c *Canvas) ColorModel() color.Model {
	return color.NRGBAModel
}
