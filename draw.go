package inkframe

// FillRect paints the rectangle [x, x+w) × [y, y+h) with col.
// The rectangle is clipped to the canvas; empty rectangles draw nothing.
func (c *Canvas) FillRect(x, y, w, h int, col RGBA) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, c.width), min(y+h, c.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	r, g, b, a := col.RGBA8()
	for py := y0; py < y1; py++ {
		row := py * c.width * 4
		for px := x0; px < x1; px++ {
			i := row + px*4
			c.data[i+0] = r
			c.data[i+1] = g
			c.data[i+2] = b
			c.data[i+3] = a
		}
	}
}

// StrokeRect outlines the rectangle [x, x+w) × [y, y+h).
//
// Each outline is four 1px edges: the full top and bottom rows and the full
// left and right columns. A width greater than one draws that many nested
// outlines, each inset by one pixel.
func (c *Canvas) StrokeRect(x, y, w, h, width int, col RGBA) {
	if width < 1 {
		width = 1
	}
	for i := 0; i < width; i++ {
		ix, iy, iw, ih := x+i, y+i, w-2*i, h-2*i
		if iw <= 0 || ih <= 0 {
			return
		}
		c.FillRect(ix, iy, iw, 1, col)      // top
		c.FillRect(ix, iy+ih-1, iw, 1, col) // bottom
		c.FillRect(ix, iy, 1, ih, col)      // left
		c.FillRect(ix+iw-1, iy, 1, ih, col) // right
	}
}

// DrawLine rasterizes the segment from (x1, y1) to (x2, y2) inclusive with
// the integer Bresenham algorithm. Only pixels inside the canvas are
// written.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, col RGBA) {
	LinePoints(x1, y1, x2, y2, func(x, y int) {
		c.SetPixel(x, y, col)
	})
}

// LinePoints calls plot for every pixel of the Bresenham line from
// (x1, y1) to (x2, y2), in order, endpoints included.
func LinePoints(x1, y1, x2, y2 int, plot func(x, y int)) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
