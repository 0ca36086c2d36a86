package text

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// DefaultGlyphCacheSize is the number of glyph masks a FontSet keeps.
const DefaultGlyphCacheSize = 2048

// FontSet holds the regular and bold fonts used for all text, the faces
// created from them at each requested size, and a cache of rasterized
// glyph masks.
//
// FontSet is safe for concurrent use. Sized faces from x/image are not, so
// every face access is serialized by an internal mutex.
type FontSet struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face

	glyphs *lru.Cache[glyphKey, *GlyphMask]
}

type faceKey struct {
	size fixed.Int26_6
	bold bool
}

type glyphKey struct {
	r    rune
	size fixed.Int26_6
	bold bool
}

// GlyphMask is a rasterized glyph ready to be composited.
type GlyphMask struct {
	// Mask holds the glyph coverage. It may be empty for blank glyphs.
	Mask *image.Alpha

	// Offset is the position of the mask's top-left corner relative to the
	// pen position on the baseline.
	Offset image.Point

	// Advance is the hinted horizontal advance in pixels.
	Advance fixed.Int26_6
}

// NewFontSet parses TTF/OTF data for the regular and bold styles.
// If bold is empty the regular font is used for bold text as well.
func NewFontSet(regular, bold []byte) (*FontSet, error) {
	if len(regular) == 0 {
		return nil, ErrEmptyFontData
	}
	reg, err := opentype.Parse(regular)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse regular font: %w", err)
	}
	b := reg
	if len(bold) > 0 {
		b, err = opentype.Parse(bold)
		if err != nil {
			return nil, fmt.Errorf("text: failed to parse bold font: %w", err)
		}
	}

	cache, err := lru.New[glyphKey, *GlyphMask](DefaultGlyphCacheSize)
	if err != nil {
		return nil, fmt.Errorf("text: glyph cache: %w", err)
	}

	return &FontSet{
		regular: reg,
		bold:    b,
		faces:   make(map[faceKey]font.Face),
		glyphs:  cache,
	}, nil
}

// LoadFontSet reads the regular and, if boldPath is not empty, bold font
// files from disk.
func LoadFontSet(regularPath, boldPath string) (*FontSet, error) {
	regular, err := os.ReadFile(regularPath) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	var bold []byte
	if boldPath != "" {
		bold, err = os.ReadFile(boldPath) //nolint:gosec // path comes from configuration
		if err != nil {
			return nil, fmt.Errorf("text: read bold font: %w", err)
		}
	}
	return NewFontSet(regular, bold)
}

var (
	defaultFonts     *FontSet
	defaultFontsOnce sync.Once
)

// DefaultFontSet returns the shared font set built from the embedded Go
// Regular and Go Bold fonts. It is parsed once on first use.
func DefaultFontSet() *FontSet {
	defaultFontsOnce.Do(func() {
		fs, err := NewFontSet(goregular.TTF, gobold.TTF)
		if err != nil {
			panic("text: embedded Go fonts: " + err.Error())
		}
		defaultFonts = fs
	})
	return defaultFonts
}

func toFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size*64 + 0.5)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func (fs *FontSet) font(bold bool) *opentype.Font {
	if bold {
		return fs.bold
	}
	return fs.regular
}

// face returns the sized face for the style. The caller must hold fs.mu.
func (fs *FontSet) face(size float64, bold bool) (font.Face, error) {
	key := faceKey{size: toFixed(size), bold: bold}
	if f, ok := fs.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fs.font(bold), &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // one point per pixel
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: face %.1fpx: %w", size, err)
	}
	fs.faces[key] = f
	return f, nil
}

// Advance returns the width of s in pixels: the sum of the hinted advances
// of its runes, without kerning.
func (fs *FontSet) Advance(s string, size float64, bold bool) float64 {
	if size <= 0 || s == "" {
		return 0
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	f, err := fs.face(size, bold)
	if err != nil {
		return 0
	}
	var total fixed.Int26_6
	for _, r := range s {
		adv, _ := f.GlyphAdvance(r)
		total += adv
	}
	return fromFixed(total)
}

// Metrics returns the vertical metrics of the style at size.
func (fs *FontSet) Metrics(size float64, bold bool) Metrics {
	if size <= 0 {
		return Metrics{}
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	f, err := fs.face(size, bold)
	if err != nil {
		return Metrics{}
	}
	m := f.Metrics()
	return Metrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
		Height:  fromFixed(m.Height),
	}
}

// Glyph returns the rasterized mask of r. Masks are cached by rune, size
// and style; callers must not modify the returned mask.
func (fs *FontSet) Glyph(r rune, size float64, bold bool) (*GlyphMask, error) {
	if size <= 0 {
		return nil, ErrInvalidFontSize
	}
	key := glyphKey{r: r, size: toFixed(size), bold: bold}
	if g, ok := fs.glyphs.Get(key); ok {
		return g, nil
	}

	fs.mu.Lock()
	f, err := fs.face(size, bold)
	if err != nil {
		fs.mu.Unlock()
		return nil, err
	}
	dr, mask, maskp, advance, _ := f.Glyph(fixed.Point26_6{}, r)
	// The face reuses its mask buffer, so copy it before unlocking.
	alpha := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	if mask != nil && !dr.Empty() {
		draw.Draw(alpha, alpha.Bounds(), mask, maskp, draw.Src)
	}
	fs.mu.Unlock()

	g := &GlyphMask{Mask: alpha, Offset: dr.Min, Advance: advance}
	fs.glyphs.Add(key, g)
	return g, nil
}

// Outline returns the unhinted outline of r scaled to size, with the
// origin on the baseline and y increasing downwards.
func (fs *FontSet) Outline(r rune, size float64, bold bool) (sfnt.Segments, error) {
	if size <= 0 {
		return nil, ErrInvalidFontSize
	}
	f := fs.font(bold)
	var buf sfnt.Buffer
	idx, err := f.GlyphIndex(&buf, r)
	if err != nil {
		return nil, fmt.Errorf("text: glyph index %q: %w", r, err)
	}
	segs, err := f.LoadGlyph(&buf, idx, toFixed(size), nil)
	if err != nil {
		return nil, fmt.Errorf("text: load glyph %q: %w", r, err)
	}
	// Segments alias buf, which goes out of scope here.
	out := make(sfnt.Segments, len(segs))
	copy(out, segs)
	return out, nil
}

// RuneAdvance returns the hinted advance of a single rune.
func (fs *FontSet) RuneAdvance(r rune, size float64, bold bool) fixed.Int26_6 {
	if size <= 0 {
		return 0
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	f, err := fs.face(size, bold)
	if err != nil {
		return 0
	}
	adv, _ := f.GlyphAdvance(r)
	return adv
}
