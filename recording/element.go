package recording

import (
	"fmt"
	"image"
	"math"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/text"
)

// Kind identifies the type of an Element.
type Kind uint8

const (
	// KindText is a run of text whose top-left corner is (X, Y).
	KindText Kind = iota

	// KindRect is an axis-aligned rectangle, filled or outlined.
	KindRect

	// KindLine is a straight segment from (X1, Y1) to (X2, Y2).
	KindLine
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindRect:
		return "Rect"
	case KindLine:
		return "Line"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Element is one drawing instruction. Only the fields relevant to Kind are
// meaningful. All geometry is in whole pixels.
type Element struct {
	Kind Kind

	// Rect: X, Y, W, H. Text: X, Y is the top-left corner of the first line.
	X, Y, W, H int

	// Line endpoints, both inclusive.
	X1, Y1, X2, Y2 int

	// Text content and style.
	Text     string
	FontSize float64
	Bold     bool

	// MaxWidth wraps the text when positive.
	MaxWidth int

	// Fill is the color of filled rectangles and text.
	Fill inkframe.RGBA

	// Stroke is the color of outlines and lines.
	Stroke      inkframe.RGBA
	StrokeWidth int

	// Filled selects a filled rectangle instead of an outline.
	Filled bool
}

// Bounds returns the pixel area the element may touch. Text bounds are
// computed from m and cover whole line boxes.
func (e Element) Bounds(m text.Measurer) image.Rectangle {
	switch e.Kind {
	case KindRect:
		if e.W <= 0 || e.H <= 0 {
			return image.Rectangle{}
		}
		return image.Rect(e.X, e.Y, e.X+e.W, e.Y+e.H)
	case KindLine:
		w := max(e.StrokeWidth, 1)
		lo, hi := -(w-1)/2, w/2
		r := image.Rect(min(e.X1, e.X2), min(e.Y1, e.Y2), max(e.X1, e.X2)+1, max(e.Y1, e.Y2)+1)
		return image.Rect(r.Min.X+lo, r.Min.Y+lo, r.Max.X+hi, r.Max.Y+hi)
	case KindText:
		lines := text.Wrap(e.Text, float64(e.MaxWidth), e.FontSize, e.Bold, m)
		if len(lines) == 0 {
			return image.Rectangle{}
		}
		var width float64
		for _, l := range lines {
			width = math.Max(width, m.Measure(l, e.FontSize, e.Bold))
		}
		met := m.Metrics(e.FontSize, e.Bold)
		h := (len(lines)-1)*text.LineHeight(e.FontSize) + int(math.Ceil(met.Ascent+met.Descent))
		return image.Rect(e.X, e.Y, e.X+int(math.Ceil(width)), e.Y+h)
	default:
		return image.Rectangle{}
	}
}

// DrawList is an immutable, ordered list of elements for one frame.
// Elements are painted in order, later ones over earlier ones.
type DrawList struct {
	width, height int
	elements      []Element
}

// Width returns the width of the frame.
func (d *DrawList) Width() int {
	return d.width
}

// Height returns the height of the frame.
func (d *DrawList) Height() int {
	return d.height
}

// Len returns the number of elements.
func (d *DrawList) Len() int {
	return len(d.elements)
}

// At returns the i-th element.
func (d *DrawList) At(i int) Element {
	return d.elements[i]
}

// Elements returns a copy of the elements.
func (d *DrawList) Elements() []Element {
	out := make([]Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// Count returns the number of elements of kind k.
func (d *DrawList) Count(k Kind) int {
	n := 0
	for _, e := range d.elements {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Texts returns the text of every KindText element, in order.
func (d *DrawList) Texts() []string {
	var out []string
	for _, e := range d.elements {
		if e.Kind == KindText {
			out = append(out, e.Text)
		}
	}
	return out
}

// Playback replays the list into b: Begin, one call per element, End.
// Playback stops at the first error.
func (d *DrawList) Playback(b Backend) error {
	if err := b.Begin(d.width, d.height); err != nil {
		return fmt.Errorf("recording: begin: %w", err)
	}
	for i, e := range d.elements {
		if err := playElement(b, e); err != nil {
			return fmt.Errorf("recording: element %d (%s): %w", i, e.Kind, err)
		}
	}
	if err := b.End(); err != nil {
		return fmt.Errorf("recording: end: %w", err)
	}
	return nil
}

func playElement(b Backend, e Element) error {
	switch e.Kind {
	case KindRect:
		if e.Filled {
			b.FillRect(e.X, e.Y, e.W, e.H, e.Fill)
		} else {
			b.StrokeRect(e.X, e.Y, e.W, e.H, max(e.StrokeWidth, 1), e.Stroke)
		}
	case KindLine:
		b.DrawLine(e.X1, e.Y1, e.X2, e.Y2, max(e.StrokeWidth, 1), e.Stroke)
	case KindText:
		if e.Text == "" {
			return nil
		}
		return b.DrawText(e.Text, e.X, e.Y, e.FontSize, e.Bold, e.Fill, e.MaxWidth)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, e.Kind)
	}
	return nil
}
