package text

import (
	"math"

	"github.com/inkframe/inkframe"
)

// Target is a pixel buffer text can be composited into.
// *inkframe.Canvas implements Target.
type Target interface {
	BlendPixel(x, y int, c inkframe.RGBA, coverage uint8)
}

// Drawer paints text into a Target. Glyphs come from a FontSet; pen
// advances come from the Measurer, so the drawn width of a string always
// equals its measured width.
//
// Drawer is safe for concurrent use if its Target is not shared.
type Drawer struct {
	fonts    *FontSet
	measurer Measurer
}

// NewDrawer returns a Drawer for the given fonts and measurer.
func NewDrawer(fonts *FontSet, m Measurer) *Drawer {
	return &Drawer{fonts: fonts, measurer: m}
}

// Measurer returns the measurer used for pen advances.
func (d *Drawer) Measurer() Measurer {
	return d.measurer
}

// Baseline returns the distance from the top of a line to its baseline.
func Baseline(m Measurer, size float64, bold bool) int {
	return int(math.Round(m.Metrics(size, bold).Ascent))
}

// DrawString draws s as a single line whose top-left corner is (x, y).
func (d *Drawer) DrawString(dst Target, s string, x, y int, size float64, bold bool, col inkframe.RGBA) error {
	if size <= 0 {
		return ErrInvalidFontSize
	}
	baseY := y + Baseline(d.measurer, size, bold)
	pen := float64(x)
	for _, r := range Normalize(s) {
		g, err := d.fonts.Glyph(r, size, bold)
		if err != nil {
			return err
		}
		ox := int(math.Round(pen)) + g.Offset.X
		oy := baseY + g.Offset.Y
		w, h := g.Mask.Rect.Dx(), g.Mask.Rect.Dy()
		for my := 0; my < h; my++ {
			row := g.Mask.Pix[my*g.Mask.Stride : my*g.Mask.Stride+w]
			for mx, a := range row {
				dst.BlendPixel(ox+mx, oy+my, col, a)
			}
		}
		pen += d.measurer.Measure(string(r), size, bold)
	}
	return nil
}

// DrawText draws s starting with its top-left corner at (x, y). When
// maxWidth is positive the text is wrapped first and each line is drawn
// LineHeight(size) below the previous one. It returns the number of lines
// drawn.
func (d *Drawer) DrawText(dst Target, s string, x, y int, size float64, bold bool, col inkframe.RGBA, maxWidth float64) (int, error) {
	lines := Wrap(s, maxWidth, size, bold, d.measurer)
	step := LineHeight(size)
	for i, line := range lines {
		if err := d.DrawString(dst, line, x, y+i*step, size, bold, col); err != nil {
			return i, err
		}
	}
	return len(lines), nil
}
