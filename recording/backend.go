package recording

import (
	"errors"
	"io"

	"github.com/inkframe/inkframe"
)

// ErrUnknownKind is returned by Playback for an element with an invalid Kind.
var ErrUnknownKind = errors.New("recording: unknown element kind")

// ErrNotStarted is returned when a backend is used before Begin.
var ErrNotStarted = errors.New("recording: backend not started")

// Backend is the interface every rendering backend implements. A backend
// receives the elements of a DrawList and produces a Canvas.
//
// Backends are created via the registry using NewBackend(name, opts) and
// registered via Register() in their init() functions.
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using recording.Register()
//  2. Start from a white canvas in Begin
//  3. Ignore geometry outside the canvas instead of failing
//  4. Measure and place text with the Measurer from its Options
//
// A backend instance renders one frame at a time and is not safe for
// concurrent use.
type Backend interface {
	// Begin starts a frame of the given size.
	Begin(width, height int) error

	// End finishes the frame. After End, Canvas returns the result.
	End() error

	// FillRect fills the rectangle [x, x+w) × [y, y+h).
	FillRect(x, y, w, h int, col inkframe.RGBA)

	// StrokeRect outlines the rectangle with width nested 1px outlines.
	StrokeRect(x, y, w, h, width int, col inkframe.RGBA)

	// DrawLine draws the segment between two pixel centers, endpoints
	// included.
	DrawLine(x1, y1, x2, y2, width int, col inkframe.RGBA)

	// DrawText draws s with its top-left corner at (x, y), wrapped to
	// maxWidth when positive.
	DrawText(s string, x, y int, size float64, bold bool, col inkframe.RGBA, maxWidth int) error

	// Canvas returns the rendered frame, or nil before End.
	Canvas() *inkframe.Canvas
}

// WriterBackend extends Backend with a native serialization of the frame,
// such as SVG for the vector backend.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered frame to w. It must be called after End.
	WriteTo(w io.Writer) (int64, error)
}
