package text

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// LineGap is the vertical gap between wrapped lines, in pixels.
const LineGap = 4

// CharWidthFactor is the per-rune width of ApproxMeasurer, in ems.
const CharWidthFactor = 0.6

// LineHeight returns the distance between the tops of two consecutive
// lines at size: the font size plus LineGap.
func LineHeight(size float64) int {
	return int(math.Ceil(size)) + LineGap
}

// Metrics holds the vertical metrics of a face, in pixels.
type Metrics struct {
	// Ascent is the distance from the top of a line to the baseline.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of a line.
	Descent float64

	// Height is the recommended line height of the face.
	Height float64
}

// Measurer computes text widths. The compositor, the wrap algorithm and the
// drawing backends of one renderer must share the same Measurer.
type Measurer interface {
	// Measure returns the width of s in pixels at size.
	Measure(s string, size float64, bold bool) float64

	// Metrics returns the vertical metrics at size.
	Metrics(size float64, bold bool) Metrics
}

// FaceMeasurer measures text with the glyph advances of a FontSet.
type FaceMeasurer struct {
	fonts *FontSet
}

// NewFaceMeasurer returns a measurer backed by fonts.
func NewFaceMeasurer(fonts *FontSet) *FaceMeasurer {
	return &FaceMeasurer{fonts: fonts}
}

// Measure implements Measurer.
func (m *FaceMeasurer) Measure(s string, size float64, bold bool) float64 {
	return m.fonts.Advance(s, size, bold)
}

// Metrics implements Measurer.
func (m *FaceMeasurer) Metrics(size float64, bold bool) Metrics {
	return m.fonts.Metrics(size, bold)
}

// ApproxMeasurer assumes every rune is CharWidthFactor × size wide.
// Bold text is measured the same as regular text.
type ApproxMeasurer struct{}

// Measure implements Measurer.
func (ApproxMeasurer) Measure(s string, size float64, _ bool) float64 {
	return float64(utf8.RuneCountInString(s)) * CharWidth(size)
}

// Metrics implements Measurer.
func (ApproxMeasurer) Metrics(size float64, _ bool) Metrics {
	return Metrics{Ascent: 0.8 * size, Descent: 0.2 * size, Height: size}
}

// CharWidth returns the approximate width of one rune at size.
func CharWidth(size float64) float64 {
	return CharWidthFactor * size
}

// Measurer strategy names accepted by ParseMeasurer.
const (
	MeasureFace   = "face"
	MeasureApprox = "approx"
)

// ParseMeasurer returns the measurer named by strategy. The empty string
// selects face metrics.
func ParseMeasurer(strategy string, fonts *FontSet) (Measurer, error) {
	switch strings.ToLower(strategy) {
	case "", MeasureFace:
		return NewFaceMeasurer(fonts), nil
	case MeasureApprox:
		return ApproxMeasurer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeasurer, strategy)
	}
}

// Normalize returns s in Unicode NFC so that composed characters are
// measured and drawn as single glyphs.
func Normalize(s string) string {
	return norm.NFC.String(s)
}
