// Package raster provides the direct pixel backend for the recording system.
// Every element is painted into an inkframe.Canvas as soon as it arrives:
// rectangles with pixel loops, lines with Bresenham, text with cached glyph
// masks.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/inkframe/inkframe/recording/backends/raster"
//
//	// Create via registry
//	backend, _ := recording.NewBackend("raster", recording.Options{})
//
//	// Or create directly
//	backend := raster.NewBackend(recording.Options{})
//
//	// Playback a draw list
//	list.Playback(backend)
//	canvas := backend.Canvas()
package raster

import (
	"io"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/recording"
	"github.com/inkframe/inkframe/text"
)

// Name is the registry name of this backend.
const Name = "raster"

func init() {
	recording.Register(Name, func(opts recording.Options) recording.Backend {
		return NewBackend(opts)
	})
}

// Backend renders draw lists straight into a Canvas.
// It implements recording.Backend and recording.WriterBackend.
type Backend struct {
	canvas *inkframe.Canvas
	drawer *text.Drawer
	done   bool
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
)

// NewBackend creates a new raster backend.
// The backend must be initialized with Begin before use.
func NewBackend(opts recording.Options) *Backend {
	opts = opts.WithDefaults()
	return &Backend{drawer: text.NewDrawer(opts.Fonts, opts.Measurer)}
}

// Begin allocates a white canvas of the given size.
func (b *Backend) Begin(width, height int) error {
	c, err := inkframe.NewCanvas(width, height)
	if err != nil {
		return err
	}
	b.canvas = c
	b.done = false
	return nil
}

// End finishes the frame.
func (b *Backend) End() error {
	if b.canvas == nil {
		return recording.ErrNotStarted
	}
	b.done = true
	return nil
}

// FillRect fills a rectangle.
func (b *Backend) FillRect(x, y, w, h int, col inkframe.RGBA) {
	if b.canvas == nil {
		return
	}
	b.canvas.FillRect(x, y, w, h, col)
}

// StrokeRect outlines a rectangle.
func (b *Backend) StrokeRect(x, y, w, h, width int, col inkframe.RGBA) {
	if b.canvas == nil {
		return
	}
	b.canvas.StrokeRect(x, y, w, h, width, col)
}

// DrawLine draws a Bresenham line. Wider lines repeat it at offsets across
// the minor axis.
func (b *Backend) DrawLine(x1, y1, x2, y2, width int, col inkframe.RGBA) {
	if b.canvas == nil {
		return
	}
	width = max(width, 1)
	lo, hi := -(width-1)/2, width/2
	shallow := abs(x2-x1) >= abs(y2-y1)
	for off := lo; off <= hi; off++ {
		if shallow {
			b.canvas.DrawLine(x1, y1+off, x2, y2+off, col)
		} else {
			b.canvas.DrawLine(x1+off, y1, x2+off, y2, col)
		}
	}
}

// DrawText draws text with glyph masks from the backend's font set.
func (b *Backend) DrawText(s string, x, y int, size float64, bold bool, col inkframe.RGBA, maxWidth int) error {
	if b.canvas == nil {
		return recording.ErrNotStarted
	}
	_, err := b.drawer.DrawText(b.canvas, s, x, y, size, bold, col, float64(maxWidth))
	return err
}

// Canvas returns the rendered frame, or nil before End.
func (b *Backend) Canvas() *inkframe.Canvas {
	if !b.done {
		return nil
	}
	return b.canvas
}

// WriteTo writes the frame as a full-color PNG.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	c := b.Canvas()
	if c == nil {
		return 0, recording.ErrNotStarted
	}
	cw := &countingWriter{w: w}
	err := c.EncodePNG(cw)
	return cw.n, err
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
