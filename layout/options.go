package layout

import (
	"time"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/text"
)

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Default 800×480 1-bit panel, raster backend
//	e, err := layout.New()
//
//	// Grayscale panel drawn with the vector backend
//	e, err := layout.New(layout.WithDepth(inkframe.Depth4), layout.WithBackend("vector"))
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	width, height int
	depth         inkframe.ColorDepth
	format        inkframe.Format
	backend       string
	fonts         *text.FontSet
	measurer      text.Measurer
	timezone      string
	location      *time.Location
	templates     []Template
	current       string
	clock         func() time.Time
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		width:    inkframe.DefaultWidth,
		height:   inkframe.DefaultHeight,
		depth:    inkframe.Depth1,
		format:   inkframe.FormatPNG,
		backend:  "raster",
		timezone: DefaultTimezone,
		current:  Dashboard,
		clock:    time.Now,
	}
}

// WithSize sets the canvas size.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithDepth sets the color depth of the panel.
func WithDepth(d inkframe.ColorDepth) Option {
	return func(o *options) {
		o.depth = d
	}
}

// WithFormat sets the output image format of Render.
func WithFormat(f inkframe.Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithBackend selects the drawing backend by registry name.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithFonts sets the regular and bold fonts.
func WithFonts(fs *text.FontSet) Option {
	return func(o *options) {
		o.fonts = fs
	}
}

// WithMeasurer sets the text measurer shared by layout and drawing.
// The default measures with the glyph advances of the fonts.
func WithMeasurer(m text.Measurer) Option {
	return func(o *options) {
		o.measurer = m
	}
}

// WithTimezone sets the IANA name of the timezone timestamps are shown in.
func WithTimezone(name string) Option {
	return func(o *options) {
		o.timezone = name
		o.location = nil
	}
}

// WithLocation sets the timezone timestamps are shown in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

// WithTemplates adds templates to the built-in ones, replacing built-ins
// of the same name.
func WithTemplates(ts ...Template) Option {
	return func(o *options) {
		o.templates = append(o.templates, ts...)
	}
}

// WithLayout sets the initial current layout.
func WithLayout(name string) Option {
	return func(o *options) {
		o.current = name
	}
}

// WithClock replaces time.Now for header timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}
