// Package recording holds the draw list produced by the layout compositor
// and the backends that turn it into pixels.
//
// # Architecture
//
// The system follows a Command Pattern with three parts:
//
//   - Recorder: collects drawing elements
//   - DrawList: the immutable, ordered element list for one frame
//   - Backend: renders a DrawList into an inkframe.Canvas
//
// Layout code never draws directly. It records what a frame contains and
// the backend chosen at engine construction decides how to paint it:
//
//	rec := recording.NewRecorder(800, 480)
//	rec.FillRect(0, 0, 800, 50, inkframe.Black)
//	rec.StrokeRect(10, 60, 380, 200, 1, inkframe.Black)
//	rec.Text(25, 75, "Melbourne", 20, true, inkframe.Black)
//	list := rec.Finish()
//
//	b, _ := recording.NewBackend("raster", recording.Options{})
//	if err := list.Playback(b); err != nil {
//	    return err
//	}
//	canvas := b.Canvas()
//
// # Backend Registration
//
// Backends are registered using the database/sql driver pattern. Import a
// backend package with a blank identifier to register it:
//
//	import (
//	    _ "github.com/inkframe/inkframe/recording/backends/raster"
//	    _ "github.com/inkframe/inkframe/recording/backends/vector"
//	)
//
// The two built-in backends produce the same frame after 1-bit
// quantization; they differ in how they get there.
//
// # Thread Safety
//
// Recorder and backend instances are not safe for concurrent use. A
// finished DrawList is immutable and may be played back from several
// goroutines into separate backends.
package recording
