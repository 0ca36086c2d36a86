package inkframe

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

var _ draw.Image = (*Canvas)(nil)

func TestNewCanvas(t *testing.T) {
	c, err := NewCanvas(DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	if c.Width() != 800 || c.Height() != 480 {
		t.Errorf("size = %dx%d, want 800x480", c.Width(), c.Height())
	}
	if len(c.Data()) != 800*480*4 {
		t.Errorf("len(Data()) = %d", len(c.Data()))
	}
	for i, v := range c.Data() {
		if v != 255 {
			t.Fatalf("new canvas is not white at byte %d: %d", i, v)
		}
	}
}

func TestNewCanvasInvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := NewCanvas(sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewCanvas(%d, %d) error = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
}

func TestSetGetPixel(t *testing.T) {
	c, _ := NewCanvas(10, 10)
	c.SetPixel(3, 4, Black)
	if got := c.GetPixel(3, 4); got != Black {
		t.Errorf("GetPixel(3, 4) = %v, want black", got)
	}
	if got := c.GetPixel(4, 4); got != White {
		t.Errorf("GetPixel(4, 4) = %v, want white", got)
	}
}

func TestPixelOutOfBounds(t *testing.T) {
	c, _ := NewCanvas(10, 10)
	before := append([]uint8(nil), c.Data()...)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}, {1000, 1000}} {
		c.SetPixel(p[0], p[1], Black)
		c.BlendPixel(p[0], p[1], Black, 255)
		if got := c.GetPixel(p[0], p[1]); got != White {
			t.Errorf("GetPixel%v = %v, want white", p, got)
		}
	}
	for i := range before {
		if before[i] != c.Data()[i] {
			t.Fatalf("out-of-bounds writes modified byte %d", i)
		}
	}
}

func TestBlendPixel(t *testing.T) {
	c, _ := NewCanvas(4, 1)
	c.BlendPixel(0, 0, Black, 255)
	c.BlendPixel(1, 0, Black, 0)
	c.BlendPixel(2, 0, Black, 128)

	if r, _, _, a := c.GetPixel(0, 0).RGBA8(); r != 0 || a != 255 {
		t.Errorf("full coverage = (%d, a=%d), want black", r, a)
	}
	if r, _, _, _ := c.GetPixel(1, 0).RGBA8(); r != 255 {
		t.Errorf("zero coverage changed the pixel to %d", r)
	}
	if r, _, _, a := c.GetPixel(2, 0).RGBA8(); r != 127 || a != 255 {
		t.Errorf("half coverage = (%d, a=%d), want (127, 255)", r, a)
	}
}

func TestClear(t *testing.T) {
	c, _ := NewCanvas(3, 3)
	c.Clear(Black)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if c.GetPixel(x, y) != Black {
				t.Fatalf("pixel (%d, %d) not cleared", x, y)
			}
		}
	}
}

func TestImageInterop(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(1, 1, color.Gray{Y: 200})

	c := FromImage(src)
	if c.Width() != 2 || c.Height() != 2 {
		t.Fatalf("FromImage size = %dx%d", c.Width(), c.Height())
	}
	if got := c.At(1, 1); got != (color.NRGBA{R: 200, G: 200, B: 200, A: 255}) {
		t.Errorf("At(1, 1) = %v", got)
	}
	if got := c.At(5, 5); got != (color.NRGBA{}) {
		t.Errorf("At out of bounds = %v, want transparent", got)
	}

	c.Set(0, 0, color.White)
	img := c.ToImage()
	if img.RGBAAt(0, 0) != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("ToImage pixel = %v", img.RGBAAt(0, 0))
	}
	if c.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("Bounds() = %v", c.Bounds())
	}
}
