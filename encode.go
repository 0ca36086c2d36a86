package inkframe

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"

	"golang.org/x/image/bmp"
)

// Format is an output image encoding.
type Format string

const (
	// FormatPNG is the default output format.
	FormatPNG Format = "png"

	// FormatBMP is uncompressed BMP, read by some panel firmwares.
	FormatBMP Format = "bmp"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("inkframe: unknown image format")

// ParseFormat parses a format name; the empty string means PNG.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatBMP:
		return FormatBMP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// bilevel is the palette of a 1-bit frame.
var bilevel = color.Palette{color.Gray{Y: 0}, color.Gray{Y: 255}}

// PanelImage converts a quantized canvas to the smallest image type holding
// its depth: a two-color paletted image for Depth1 and image.Gray for Depth4.
// The canvas is expected to have been quantized already.
func (c *Canvas) PanelImage(depth ColorDepth) (image.Image, error) {
	if err := depth.Validate(); err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, c.width, c.height)
	if depth == Depth1 {
		img := image.NewPaletted(rect, bilevel)
		for i, j := 0, 0; i < len(c.data); i, j = i+4, j+1 {
			if c.data[i] > Threshold {
				img.Pix[j] = 1
			}
		}
		return img, nil
	}
	img := image.NewGray(rect)
	for i, j := 0, 0; i < len(c.data); i, j = i+4, j+1 {
		img.Pix[j] = c.data[i]
	}
	return img, nil
}

// Encode writes the canvas to w in the given format at the given depth.
// PNG output of a Depth1 canvas is a 1-bit paletted PNG.
func Encode(w io.Writer, c *Canvas, depth ColorDepth, format Format) error {
	img, err := c.PanelImage(depth)
	if err != nil {
		return err
	}
	switch format {
	case FormatPNG, "":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ToBuffer encodes the canvas and returns the bytes.
func (c *Canvas) ToBuffer(depth ColorDepth, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c, depth, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePNG writes the canvas as a full-color PNG, without depth reduction.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.ToImage())
}

// SaveToFile encodes the canvas to path. The format follows the file
// extension (".bmp" for BMP, PNG otherwise).
func (c *Canvas) SaveToFile(path string, depth ColorDepth) error {
	format := FormatPNG
	if strings.HasSuffix(strings.ToLower(path), ".bmp") {
		format = FormatBMP
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := Encode(f, c, depth, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
