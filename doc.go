// Package inkframe renders dashboard frames for e-ink panels.
//
// # Overview
//
// inkframe turns plugin data (weather, calendar, news, custom feeds) into a
// fixed-resolution bitmap that an e-ink panel can show. This root package
// holds the drawing primitives shared by every rendering backend: the
// [Canvas] pixel buffer, rectangle and Bresenham line rasterization, the
// e-ink quantizer and the PNG/BMP encoders.
//
// # Quick Start
//
//	c, _ := inkframe.NewCanvas(800, 480)
//	c.FillRect(0, 0, 800, 50, inkframe.Black)
//	c.DrawLine(0, 60, 799, 60, inkframe.Black)
//	_ = c.Quantize(inkframe.Depth1)
//	_ = c.SaveToFile("frame.png", inkframe.Depth1)
//
// Most callers never touch a Canvas directly. The layout package builds a
// draw list from plugin data and plays it back into a backend:
//
//	eng, _ := layout.New()
//	png, err := eng.Render(data, "dashboard")
//
// # Architecture
//
// The module is organized into:
//   - inkframe: Canvas, colors, primitives, quantizer, encoders
//   - text: measurement, word wrapping, glyph drawing
//   - recording: draw list elements, backend interface and registry
//   - recording/backends/raster: direct pixel backend
//   - recording/backends/vector: vector scene rasterized in one pass, SVG export
//   - plugin: tagged plugin results and cached data sources
//   - layout: templates, zone compositor and the Engine façade
//   - config: YAML/TOML configuration
//
// # Coordinate System
//
// Origin (0,0) is the top-left pixel, X increases right and Y increases
// down. All primitive geometry is in whole pixels.
package inkframe

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
