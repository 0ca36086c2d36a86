package vector_test

import (
	"image"
	"testing"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/recording"
	"github.com/inkframe/inkframe/recording/backends/raster"
	"github.com/inkframe/inkframe/recording/backends/vector"
	"github.com/inkframe/inkframe/text"
)

// render plays list into the named backend and returns the 1-bit frame.
func render(t *testing.T, name string, list *recording.DrawList) *inkframe.Canvas {
	t.Helper()
	b, err := recording.NewBackend(name, recording.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := list.Playback(b); err != nil {
		t.Fatalf("%s playback: %v", name, err)
	}
	c := b.Canvas()
	if err := c.Quantize(inkframe.Depth1); err != nil {
		t.Fatal(err)
	}
	return c
}

func blackPixels(c *inkframe.Canvas) map[image.Point]bool {
	out := make(map[image.Point]bool)
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.GetPixel(x, y) == inkframe.Black {
				out[image.Pt(x, y)] = true
			}
		}
	}
	return out
}

func TestBackendsAgreeOnRectsAndAxisLines(t *testing.T) {
	rec := recording.NewRecorder(200, 120)
	rec.FillRect(0, 0, 200, 20, inkframe.Black)
	rec.FillRect(150, 5, 30, 10, inkframe.White)
	rec.StrokeRect(5, 25, 90, 40, 1, inkframe.Black)
	rec.StrokeRect(100, 25, 90, 40, 2, inkframe.Black)
	rec.StrokeRect(10, 70, 7, 5, 4, inkframe.Black)
	rec.FillRect(-10, 110, 30, 30, inkframe.Black)
	rec.Line(20, 80, 180, 80, 1, inkframe.Black)
	rec.Line(20, 90, 180, 90, 3, inkframe.Black)
	rec.Line(190, 70, 190, 115, 2, inkframe.Black)
	rec.Line(30, 100, 30, 100, 1, inkframe.Black)
	rec.FillRect(60, 95, 20, 10, inkframe.DarkGray)
	rec.FillRect(90, 95, 20, 10, inkframe.LightGray)
	list := rec.Finish()

	r := render(t, raster.Name, list)
	v := render(t, vector.Name, list)
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			if r.GetPixel(x, y) != v.GetPixel(x, y) {
				t.Errorf("pixel (%d, %d): raster %v, vector %v", x, y, r.GetPixel(x, y), v.GetPixel(x, y))
			}
		}
	}
}

func TestBackendsAgreeOnDiagonalLines(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	rec.Line(5, 5, 95, 40, 1, inkframe.Black)
	rec.Line(10, 90, 40, 10, 1, inkframe.Black)
	rec.Line(50, 50, 90, 90, 1, inkframe.Black)
	list := rec.Finish()

	r := blackPixels(render(t, raster.Name, list))
	v := blackPixels(render(t, vector.Name, list))
	if len(v) == 0 {
		t.Fatal("vector backend drew no line pixels")
	}

	near := func(set map[image.Point]bool, p image.Point) bool {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if set[p.Add(image.Pt(dx, dy))] {
					return true
				}
			}
		}
		return false
	}
	for p := range v {
		if !near(r, p) {
			t.Errorf("vector pixel %v is not next to the Bresenham line", p)
		}
	}
	for p := range r {
		if !near(v, p) {
			t.Errorf("Bresenham pixel %v has no vector pixel nearby", p)
		}
	}
}

func TestBackendsAgreeOnText(t *testing.T) {
	rec := recording.NewRecorder(300, 80)
	rec.Text(10, 10, "Melbourne 21°C", 20, true, inkframe.Black)
	rec.Add(recording.Element{Kind: recording.KindText, X: 10, Y: 40, Text: "light rain later", FontSize: 14, Fill: inkframe.Black, MaxWidth: 80})
	list := rec.Finish()

	r := blackPixels(render(t, raster.Name, list))
	v := blackPixels(render(t, vector.Name, list))
	if len(r) == 0 || len(v) == 0 {
		t.Fatalf("ink: raster %d, vector %d", len(r), len(v))
	}

	bounds := func(set map[image.Point]bool) image.Rectangle {
		var b image.Rectangle
		for p := range set {
			b = b.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
		}
		return b
	}
	rb, vb := bounds(r), bounds(v)
	if d := rb.Min.Sub(vb.Min); abs(d.X) > 1 || abs(d.Y) > 1 {
		t.Errorf("ink origin differs: raster %v, vector %v", rb, vb)
	}
	if d := rb.Max.Sub(vb.Max); abs(d.X) > 1 || abs(d.Y) > 1 {
		t.Errorf("ink extent differs: raster %v, vector %v", rb, vb)
	}

	var diff int
	for p := range r {
		if !v[p] {
			diff++
		}
	}
	for p := range v {
		if !r[p] {
			diff++
		}
	}
	if limit := len(r) / 10; diff > limit {
		t.Errorf("%d of %d text pixels differ, limit %d", diff, len(r), limit)
	}
}

func TestBackendsWrapText(t *testing.T) {
	const x, y, maxWidth = 10, 10, 80
	rec := recording.NewRecorder(200, 80)
	rec.Add(recording.Element{Kind: recording.KindText, X: x, Y: y, Text: "light rain later", FontSize: 14, Fill: inkframe.Black, MaxWidth: maxWidth})
	list := rec.Finish()

	second := y + text.LineHeight(14)
	for _, name := range []string{raster.Name, vector.Name} {
		ink := blackPixels(render(t, name, list))
		var below int
		for p := range ink {
			if p.X > x+maxWidth+1 {
				t.Errorf("%s: pixel %v right of the wrap width", name, p)
			}
			if p.Y >= second {
				below++
			}
		}
		if below == 0 {
			t.Errorf("%s: no second line drawn", name)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
