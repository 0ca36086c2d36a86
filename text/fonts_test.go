package text

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestNewFontSetErrors(t *testing.T) {
	if _, err := NewFontSet(nil, nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewFontSet(nil) error = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewFontSet([]byte("not a font"), nil); err == nil {
		t.Error("NewFontSet with garbage data should fail")
	}
	if _, err := NewFontSet(goregular.TTF, []byte("garbage")); err == nil {
		t.Error("NewFontSet with garbage bold data should fail")
	}
}

func TestNewFontSetRegularOnly(t *testing.T) {
	fs, err := NewFontSet(goregular.TTF, nil)
	if err != nil {
		t.Fatalf("NewFontSet: %v", err)
	}
	if fs.Advance("Hello", 16, true) != fs.Advance("Hello", 16, false) {
		t.Error("without a bold font, bold text should use the regular face")
	}
}

func TestLoadFontSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	fs, err := LoadFontSet(path, "")
	if err != nil {
		t.Fatalf("LoadFontSet: %v", err)
	}
	if fs.Advance("x", 12, false) <= 0 {
		t.Error("loaded font has no advance for x")
	}
	if _, err := LoadFontSet(filepath.Join(dir, "missing.ttf"), ""); err == nil {
		t.Error("LoadFontSet with a missing file should fail")
	}
	if _, err := LoadFontSet(path, filepath.Join(dir, "missing-bold.ttf")); err == nil {
		t.Error("LoadFontSet with a missing bold file should fail")
	}
}

func TestDefaultFontSetShared(t *testing.T) {
	if DefaultFontSet() != DefaultFontSet() {
		t.Error("DefaultFontSet should return the same instance")
	}
}

func TestGlyph(t *testing.T) {
	fs := DefaultFontSet()

	g, err := fs.Glyph('A', 20, false)
	if err != nil {
		t.Fatalf("Glyph(A): %v", err)
	}
	if g.Mask.Bounds().Empty() {
		t.Fatal("glyph A has an empty mask")
	}
	if g.Offset.Y >= 0 {
		t.Errorf("glyph A should sit above the baseline, offset %v", g.Offset)
	}
	if g.Advance != fs.RuneAdvance('A', 20, false) {
		t.Errorf("glyph advance %v != rune advance %v", g.Advance, fs.RuneAdvance('A', 20, false))
	}

	var covered bool
	for _, a := range g.Mask.Pix {
		if a > 0 {
			covered = true
			break
		}
	}
	if !covered {
		t.Error("glyph A mask has no coverage")
	}

	again, err := fs.Glyph('A', 20, false)
	if err != nil {
		t.Fatal(err)
	}
	if again != g {
		t.Error("second Glyph call should hit the cache")
	}

	space, err := fs.Glyph(' ', 20, false)
	if err != nil {
		t.Fatalf("Glyph(space): %v", err)
	}
	if space.Advance <= 0 {
		t.Error("space should advance the pen")
	}

	if _, err := fs.Glyph('A', 0, false); !errors.Is(err, ErrInvalidFontSize) {
		t.Errorf("Glyph at size 0 error = %v, want ErrInvalidFontSize", err)
	}
}

func TestGlyphConcurrent(t *testing.T) {
	fs, err := NewFontSet(goregular.TTF, nil)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for _, r := range "Concurrent glyph access" {
				if _, err := fs.Glyph(r, float64(12+i%3), i%2 == 0); err != nil {
					t.Errorf("Glyph(%q): %v", r, err)
				}
				fs.Advance(string(r), 14, false)
			}
		}(i)
	}
	wg.Wait()
}

func TestOutline(t *testing.T) {
	fs := DefaultFontSet()
	segs, err := fs.Outline('O', 24, false)
	if err != nil {
		t.Fatalf("Outline(O): %v", err)
	}
	if len(segs) == 0 {
		t.Fatal("outline of O has no segments")
	}
	b := segs.Bounds()
	if b.Min.Y >= 0 || b.Max.Y > 1<<6 {
		t.Errorf("outline bounds %v should sit on the baseline", b)
	}
	if _, err := fs.Outline('O', -1, false); !errors.Is(err, ErrInvalidFontSize) {
		t.Errorf("Outline at negative size error = %v", err)
	}
}
