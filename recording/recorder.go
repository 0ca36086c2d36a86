package recording

import (
	"github.com/inkframe/inkframe"
)

// Recorder builds a DrawList. Call Finish to obtain the immutable list.
//
// Example:
//
//	rec := recording.NewRecorder(800, 480)
//	rec.FillRect(0, 0, 800, 50, inkframe.Black)
//	rec.Text(20, 11, "Dashboard", 28, true, inkframe.White)
//	list := rec.Finish()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	elements      []Element
}

// NewRecorder creates a Recorder for a frame of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:    width,
		height:   height,
		elements: make([]Element, 0, 64),
	}
}

// Width returns the frame width.
func (r *Recorder) Width() int {
	return r.width
}

// Height returns the frame height.
func (r *Recorder) Height() int {
	return r.height
}

// Len returns the number of elements recorded so far.
func (r *Recorder) Len() int {
	return len(r.elements)
}

// Add appends an element as is.
func (r *Recorder) Add(e Element) {
	r.elements = append(r.elements, e)
}

// FillRect records a filled rectangle.
func (r *Recorder) FillRect(x, y, w, h int, col inkframe.RGBA) {
	r.Add(Element{Kind: KindRect, X: x, Y: y, W: w, H: h, Fill: col, Filled: true})
}

// StrokeRect records a rectangle outline of the given width.
func (r *Recorder) StrokeRect(x, y, w, h, width int, col inkframe.RGBA) {
	r.Add(Element{Kind: KindRect, X: x, Y: y, W: w, H: h, Stroke: col, StrokeWidth: width})
}

// Line records a line segment.
func (r *Recorder) Line(x1, y1, x2, y2, width int, col inkframe.RGBA) {
	r.Add(Element{Kind: KindLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Stroke: col, StrokeWidth: width})
}

// Text records a single line of text with its top-left corner at (x, y).
func (r *Recorder) Text(x, y int, s string, size float64, bold bool, col inkframe.RGBA) {
	r.Add(Element{Kind: KindText, X: x, Y: y, Text: s, FontSize: size, Bold: bold, Fill: col})
}

// Finish returns the recorded DrawList. The Recorder must not be used
// afterwards.
func (r *Recorder) Finish() *DrawList {
	d := &DrawList{width: r.width, height: r.height, elements: r.elements}
	r.elements = nil
	return d
}
