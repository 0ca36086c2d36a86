package vector

import (
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/inkframe/inkframe"
)

// pathOp is a path construction verb.
type pathOp uint8

const (
	opMoveTo pathOp = iota
	opLineTo
	opQuadTo
	opCubeTo
	opClose
)

type point struct {
	x, y float32
}

type segment struct {
	op  pathOp
	pts [3]point
}

// path is a list of closed contours in canvas pixel coordinates.
type path []segment

func (p *path) moveTo(a point) { *p = append(*p, segment{op: opMoveTo, pts: [3]point{a}}) }
func (p *path) lineTo(a point) { *p = append(*p, segment{op: opLineTo, pts: [3]point{a}}) }
func (p *path) close()         { *p = append(*p, segment{op: opClose}) }

// polygon appends a closed polygon. Callers keep every polygon in the same
// orientation (clockwise on screen) so overlapping shapes of one pass add
// up instead of cancelling.
func (p *path) polygon(pts ...point) {
	if len(pts) == 0 {
		return
	}
	p.moveTo(pts[0])
	for _, q := range pts[1:] {
		p.lineTo(q)
	}
	p.close()
}

// rect appends the rectangle [x0, x1) × [y0, y1).
func (p *path) rect(x0, y0, x1, y1 float32) {
	p.polygon(point{x0, y0}, point{x1, y0}, point{x1, y1}, point{x0, y1})
}

// glyph appends a glyph outline translated to the pen position (ox, oy).
func (p *path) glyph(segs sfnt.Segments, ox, oy float32) {
	tr := func(v fixed.Point26_6) point {
		return point{ox + float32(v.X)/64, oy + float32(v.Y)/64}
	}
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if len(*p) > 0 && (*p)[len(*p)-1].op != opClose {
				p.close()
			}
			p.moveTo(tr(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			p.lineTo(tr(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			*p = append(*p, segment{op: opQuadTo, pts: [3]point{tr(s.Args[0]), tr(s.Args[1])}})
		case sfnt.SegmentOpCubeTo:
			*p = append(*p, segment{op: opCubeTo, pts: [3]point{tr(s.Args[0]), tr(s.Args[1]), tr(s.Args[2])}})
		}
	}
	if len(*p) > 0 && (*p)[len(*p)-1].op != opClose {
		p.close()
	}
}

// addTo replays the path into a rasterizer.
func (p path) addTo(z *vector.Rasterizer) {
	for _, s := range p {
		switch s.op {
		case opMoveTo:
			z.MoveTo(s.pts[0].x, s.pts[0].y)
		case opLineTo:
			z.LineTo(s.pts[0].x, s.pts[0].y)
		case opQuadTo:
			z.QuadTo(s.pts[0].x, s.pts[0].y, s.pts[1].x, s.pts[1].y)
		case opCubeTo:
			z.CubeTo(s.pts[0].x, s.pts[0].y, s.pts[1].x, s.pts[1].y, s.pts[2].x, s.pts[2].y)
		case opClose:
			z.ClosePath()
		}
	}
}

// shape is one colored path of the scene. Glyph shapes are kept apart from
// geometric ones when batching because font contours may wind either way.
type shape struct {
	col   inkframe.RGBA
	glyph bool
	path  path
}

// lineQuad returns the quad covering a line of the given width drawn
// between the centers of pixels (x1, y1) and (x2, y2), with square ends
// half a pixel past each endpoint. Even widths are shifted the same way
// the raster backend offsets its Bresenham passes.
func lineQuad(x1, y1, x2, y2, width int) [4]point {
	lo, hi := -(width-1)/2, width/2
	shift := float32(lo+hi) / 2

	ax, ay := float32(x1)+0.5, float32(y1)+0.5
	bx, by := float32(x2)+0.5, float32(y2)+0.5
	if abs(x2-x1) >= abs(y2-y1) {
		ay += shift
		by += shift
	} else {
		ax += shift
		bx += shift
	}

	ux, uy := float32(1), float32(0)
	dx, dy := bx-ax, by-ay
	if l := float32(math.Hypot(float64(dx), float64(dy))); l > 0 {
		ux, uy = dx/l, dy/l
	}
	ax, ay = ax-ux/2, ay-uy/2
	bx, by = bx+ux/2, by+uy/2

	hw := float32(width) / 2
	nx, ny := -uy*hw, ux*hw
	return [4]point{
		{ax - nx, ay - ny},
		{bx - nx, by - ny},
		{bx + nx, by + ny},
		{ax + nx, ay + ny},
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
