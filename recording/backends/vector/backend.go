// Package vector provides a recording backend that builds a vector scene
// and rasterizes it in one go.
//
// Rectangles and lines become polygons, text becomes glyph outlines read
// from the font. Nothing touches pixels until End, which feeds the scene to
// golang.org/x/image/vector, merging runs of same-colored shapes into a
// single rasterizer pass. The same scene can be written as an SVG document.
//
// After 1-bit quantization the output matches the raster backend for
// rectangles and axis-aligned lines pixel for pixel; diagonal lines and
// glyph edges may differ by anti-aliasing at their borders.
package vector

import (
	"image"
	"image/draw"
	"io"
	"math"
	"time"

	"golang.org/x/image/vector"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/recording"
	"github.com/inkframe/inkframe/text"
)

// Name is the registry name of this backend.
const Name = "vector"

func init() {
	recording.Register(Name, func(opts recording.Options) recording.Backend {
		return NewBackend(opts)
	})
}

// Backend records elements as vector shapes and rasterizes them on End.
// It implements recording.Backend and recording.WriterBackend; WriteTo
// produces SVG.
type Backend struct {
	fonts    *text.FontSet
	measurer text.Measurer

	width, height int
	started       bool
	shapes        []shape
	items         []svgItem
	passes        int
	canvas        *inkframe.Canvas
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
)

// NewBackend creates a new vector backend.
// The backend must be initialized with Begin before use.
func NewBackend(opts recording.Options) *Backend {
	opts = opts.WithDefaults()
	return &Backend{fonts: opts.Fonts, measurer: opts.Measurer}
}

// Begin starts an empty scene of the given size.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return inkframe.ErrInvalidSize
	}
	b.width, b.height = width, height
	b.started = true
	b.shapes = b.shapes[:0]
	b.items = b.items[:0]
	b.passes = 0
	b.canvas = nil
	return nil
}

// End rasterizes the scene into a new canvas.
func (b *Backend) End() error {
	if !b.started {
		return recording.ErrNotStarted
	}
	start := time.Now()

	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	z := vector.NewRasterizer(b.width, b.height)
	z.DrawOp = draw.Over
	for i := 0; i < len(b.shapes); {
		head := b.shapes[i]
		z.Reset(b.width, b.height)
		j := i
		for ; j < len(b.shapes) && b.shapes[j].col == head.col && b.shapes[j].glyph == head.glyph; j++ {
			b.shapes[j].path.addTo(z)
		}
		z.Draw(img, img.Bounds(), image.NewUniform(head.col.Color()), image.Point{})
		b.passes++
		i = j
	}

	c, err := inkframe.NewCanvas(b.width, b.height)
	if err != nil {
		return err
	}
	// The frame is opaque, so premultiplied and straight RGBA agree.
	copy(c.Data(), img.Pix)
	b.canvas = c
	b.started = false

	inkframe.Logger().Debug("vector scene rasterized",
		"shapes", len(b.shapes), "passes", b.passes, "duration", time.Since(start))
	return nil
}

// Passes returns the number of rasterizer passes of the last End.
func (b *Backend) Passes() int {
	return b.passes
}

func (b *Backend) add(col inkframe.RGBA, glyph bool, p path) {
	if len(p) == 0 {
		return
	}
	b.shapes = append(b.shapes, shape{col: col, glyph: glyph, path: p})
}

// clip intersects the rectangle with the canvas.
func (b *Backend) clip(x, y, w, h int) (image.Rectangle, bool) {
	r := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, b.width, b.height))
	if w <= 0 || h <= 0 || r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}

func (b *Backend) rectPath(p *path, x, y, w, h int) {
	if r, ok := b.clip(x, y, w, h); ok {
		p.rect(float32(r.Min.X), float32(r.Min.Y), float32(r.Max.X), float32(r.Max.Y))
	}
}

// FillRect adds a filled rectangle.
func (b *Backend) FillRect(x, y, w, h int, col inkframe.RGBA) {
	if !b.started {
		return
	}
	var p path
	b.rectPath(&p, x, y, w, h)
	b.add(col, false, p)
	b.items = append(b.items, svgItem{kind: recording.KindRect, x: x, y: y, w: w, h: h, fill: col, filled: true})
}

// StrokeRect adds an outline as four bands of the given width, which is the
// same set of pixels as width nested 1px outlines.
func (b *Backend) StrokeRect(x, y, w, h, width int, col inkframe.RGBA) {
	if !b.started || w <= 0 || h <= 0 {
		return
	}
	width = max(width, 1)
	bw, bh := min(width, w), min(width, h)
	var p path
	b.rectPath(&p, x, y, w, bh)      // top
	b.rectPath(&p, x, y+h-bh, w, bh) // bottom
	b.rectPath(&p, x, y, bw, h)      // left
	b.rectPath(&p, x+w-bw, y, bw, h) // right
	b.add(col, false, p)
	b.items = append(b.items, svgItem{kind: recording.KindRect, x: x, y: y, w: w, h: h, fill: col, strokeWidth: width})
}

// DrawLine adds a line as a quad.
func (b *Backend) DrawLine(x1, y1, x2, y2, width int, col inkframe.RGBA) {
	if !b.started {
		return
	}
	width = max(width, 1)
	q := lineQuad(x1, y1, x2, y2, width)
	var p path
	p.polygon(q[:]...)
	b.add(col, false, p)
	b.items = append(b.items, svgItem{kind: recording.KindLine, x1: x1, y1: y1, x2: x2, y2: y2, fill: col, strokeWidth: width})
}

// DrawText adds the glyph outlines of s. Pen advances and wrapping use the
// backend's Measurer.
func (b *Backend) DrawText(s string, x, y int, size float64, bold bool, col inkframe.RGBA, maxWidth int) error {
	if !b.started {
		return recording.ErrNotStarted
	}
	if size <= 0 {
		return text.ErrInvalidFontSize
	}
	lines := text.Wrap(s, float64(maxWidth), size, bold, b.measurer)
	baseline := text.Baseline(b.measurer, size, bold)
	var p path
	for i, line := range lines {
		top := y + i*text.LineHeight(size)
		pen := float64(x)
		for _, r := range line {
			segs, err := b.fonts.Outline(r, size, bold)
			if err != nil {
				return err
			}
			p.glyph(segs, float32(math.Round(pen)), float32(top+baseline))
			pen += b.measurer.Measure(string(r), size, bold)
		}
		b.items = append(b.items, svgItem{kind: recording.KindText, x: x, y: top + baseline, text: line, size: size, bold: bold, fill: col})
	}
	b.add(col, true, p)
	return nil
}

// Canvas returns the rendered frame, or nil before End.
func (b *Backend) Canvas() *inkframe.Canvas {
	return b.canvas
}

// WriteTo writes the scene as an SVG document.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.canvas == nil {
		return 0, recording.ErrNotStarted
	}
	n, err := w.Write(b.svg())
	return int64(n), err
}
