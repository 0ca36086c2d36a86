package vector

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/recording"
	"github.com/inkframe/inkframe/text"
)

func TestBackendRegistration(t *testing.T) {
	if !recording.IsRegistered(Name) {
		t.Fatal("vector backend not registered")
	}
	backend, err := recording.NewBackend(Name, recording.Options{})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if _, ok := backend.(*Backend); !ok {
		t.Fatalf("backend is %T, want *vector.Backend", backend)
	}
}

func TestBackendLifecycle(t *testing.T) {
	b := NewBackend(recording.Options{})
	if err := b.End(); !errors.Is(err, recording.ErrNotStarted) {
		t.Errorf("End before Begin error = %v", err)
	}
	if err := b.Begin(-1, 5); !errors.Is(err, inkframe.ErrInvalidSize) {
		t.Errorf("Begin(-1, 5) error = %v", err)
	}
	if err := b.Begin(40, 30); err != nil {
		t.Fatal(err)
	}
	if b.Canvas() != nil {
		t.Error("Canvas() before End should be nil")
	}
	if err := b.End(); err != nil {
		t.Fatal(err)
	}
	c := b.Canvas()
	if c == nil || c.Width() != 40 || c.Height() != 30 {
		t.Fatalf("canvas after End = %v", c)
	}
	if c.GetPixel(20, 15) != inkframe.White {
		t.Error("empty scene should be white")
	}
	if b.Passes() != 0 {
		t.Errorf("empty scene took %d passes", b.Passes())
	}
}

func TestBackendFillRectExact(t *testing.T) {
	b := NewBackend(recording.Options{})
	_ = b.Begin(10, 10)
	b.FillRect(2, 3, 4, 2, inkframe.Black)
	b.FillRect(-5, -5, 6, 6, inkframe.Black)
	b.FillRect(4, 4, 0, 5, inkframe.Black)
	_ = b.End()
	c := b.Canvas()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := (x >= 2 && x < 6 && y >= 3 && y < 5) || (x == 0 && y == 0)
			if (c.GetPixel(x, y) == inkframe.Black) != inside {
				t.Errorf("pixel (%d, %d) = %v, inside=%v", x, y, c.GetPixel(x, y), inside)
			}
		}
	}
}

func TestBackendBatchesSameColor(t *testing.T) {
	b := NewBackend(recording.Options{})
	_ = b.Begin(50, 50)
	b.FillRect(0, 0, 5, 5, inkframe.Black)
	b.StrokeRect(10, 10, 20, 20, 2, inkframe.Black)
	b.DrawLine(0, 40, 49, 40, 1, inkframe.Black)
	b.FillRect(0, 45, 5, 5, inkframe.White)
	b.FillRect(10, 45, 5, 5, inkframe.Black)
	if err := b.DrawText("A", 30, 0, 12, false, inkframe.Black, 0); err != nil {
		t.Fatal(err)
	}
	_ = b.End()

	// black run, white, black, glyphs
	if got := b.Passes(); got != 4 {
		t.Errorf("Passes() = %d, want 4", got)
	}
}

func TestBackendOverlapDoesNotCancel(t *testing.T) {
	b := NewBackend(recording.Options{})
	_ = b.Begin(10, 10)
	b.FillRect(0, 0, 10, 10, inkframe.Black)
	b.DrawLine(0, 5, 9, 5, 1, inkframe.Black)
	b.StrokeRect(0, 0, 10, 10, 1, inkframe.Black)
	_ = b.End()
	c := b.Canvas()
	for _, p := range [][2]int{{0, 0}, {5, 5}, {9, 9}, {3, 5}} {
		if c.GetPixel(p[0], p[1]) != inkframe.Black {
			t.Errorf("pixel %v lost coverage where shapes overlap", p)
		}
	}
}

func TestBackendText(t *testing.T) {
	b := NewBackend(recording.Options{Measurer: text.ApproxMeasurer{}})
	_ = b.Begin(100, 40)
	if err := b.DrawText("Hi", 5, 5, 16, true, inkframe.Black, 0); err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	if err := b.DrawText("x", 5, 5, 0, false, inkframe.Black, 0); !errors.Is(err, text.ErrInvalidFontSize) {
		t.Errorf("DrawText size 0 error = %v", err)
	}
	_ = b.End()
	c := b.Canvas()

	var ink int
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			if c.GetPixel(x, y).Luminance() < 128 {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("text outlines were not rasterized")
	}
}

func TestWriteSVG(t *testing.T) {
	rec := recording.NewRecorder(200, 100)
	rec.FillRect(0, 0, 200, 20, inkframe.Black)
	rec.StrokeRect(5, 25, 190, 70, 2, inkframe.Black)
	rec.Line(5, 60, 195, 60, 1, inkframe.DarkGray)
	rec.Text(10, 2, "A <b> & c", 14, true, inkframe.White)
	list := rec.Finish()

	var buf bytes.Buffer
	if err := WriteSVG(&buf, list, recording.Options{}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	svg := buf.String()
	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100"`,
		`<rect x="0" y="0" width="200" height="20" fill="#000000"/>`,
		`fill="none" stroke="#000000" stroke-width="2"`,
		`<line x1="5.5" y1="60.5" x2="195.5" y2="60.5" stroke="#404040"`,
		`font-weight="bold" fill="#ffffff">A &lt;b&gt; &amp; c</text>`,
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q\n%s", want, svg)
		}
	}
}

func TestWriteToBeforeEnd(t *testing.T) {
	b := NewBackend(recording.Options{})
	if _, err := b.WriteTo(&bytes.Buffer{}); !errors.Is(err, recording.ErrNotStarted) {
		t.Errorf("WriteTo before End error = %v", err)
	}
}

func TestSaveSVG(t *testing.T) {
	rec := recording.NewRecorder(10, 10)
	rec.FillRect(1, 1, 3, 3, inkframe.Black)
	path := filepath.Join(t.TempDir(), "frame.svg")
	if err := SaveSVG(path, rec.Finish(), recording.Options{}); err != nil {
		t.Fatalf("SaveSVG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("file does not start with <svg: %q", data[:min(len(data), 20)])
	}
}
