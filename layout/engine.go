package layout

import (
	"fmt"
	"sync/atomic"
	"time"
	_ "time/tzdata" // reference timezone on hosts without zoneinfo

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/plugin"
	"github.com/inkframe/inkframe/recording"
	_ "github.com/inkframe/inkframe/recording/backends/raster" // default backend
	_ "github.com/inkframe/inkframe/recording/backends/vector"
	"github.com/inkframe/inkframe/text"
)

// Engine renders plugin data into encoded panel frames.
//
// The canvas size, color depth, backend and measurer are fixed at
// construction. An Engine is safe for concurrent use; each render owns its
// canvas.
type Engine struct {
	width, height int
	depth         inkframe.ColorDepth
	format        inkframe.Format
	backend       string
	backendOpts   recording.Options

	registry   *Registry
	compositor *Compositor
	clock      func() time.Time

	current atomic.Pointer[string]
}

// New creates an engine.
//
// Example:
//
//	e, err := layout.New(layout.WithBackend("vector"), layout.WithTimezone("UTC"))
//	if err != nil {
//		return err
//	}
//	png, err := e.Render(data, layout.Dashboard)
func New(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("layout: %w: %dx%d", inkframe.ErrInvalidSize, o.width, o.height)
	}
	if err := o.depth.Validate(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if _, err := inkframe.ParseFormat(string(o.format)); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if !recording.IsRegistered(o.backend) {
		return nil, fmt.Errorf("layout: %w: %q", recording.ErrUnknownBackend, o.backend)
	}

	loc := o.location
	if loc == nil {
		var err error
		if loc, err = time.LoadLocation(o.timezone); err != nil {
			return nil, fmt.Errorf("layout: timezone %q: %w", o.timezone, err)
		}
	}

	reg, err := NewRegistry(o.templates...)
	if err != nil {
		return nil, err
	}

	if o.fonts == nil {
		o.fonts = text.DefaultFontSet()
	}
	if o.measurer == nil {
		o.measurer = text.NewFaceMeasurer(o.fonts)
	}

	e := &Engine{
		width:       o.width,
		height:      o.height,
		depth:       o.depth,
		format:      o.format,
		backend:     o.backend,
		backendOpts: recording.Options{Fonts: o.fonts, Measurer: o.measurer},
		registry:    reg,
		compositor:  NewCompositor(o.width, o.height, o.measurer, loc),
		clock:       o.clock,
	}
	e.SetLayout(o.current)
	return e, nil
}

// Width returns the canvas width.
func (e *Engine) Width() int { return e.width }

// Height returns the canvas height.
func (e *Engine) Height() int { return e.height }

// Depth returns the panel color depth.
func (e *Engine) Depth() inkframe.ColorDepth { return e.depth }

// Format returns the output format of Render.
func (e *Engine) Format() inkframe.Format { return e.format }

// Backend returns the name of the drawing backend.
func (e *Engine) Backend() string { return e.backend }

// Registry returns the template registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Layouts returns the names of all templates.
func (e *Engine) Layouts() []string {
	return e.registry.Names()
}

// SetLayout sets the layout RenderCurrent uses. Unknown names are
// accepted and fall back to the dashboard at render time.
func (e *Engine) SetLayout(name string) {
	e.current.Store(&name)
}

// CurrentLayout returns the layout set by SetLayout.
func (e *Engine) CurrentLayout() string {
	return *e.current.Load()
}

// Template returns the template rendered for name, falling back to the
// dashboard for unknown names.
func (e *Engine) Template(name string) Template {
	t, ok := e.registry.Resolve(name)
	if !ok {
		inkframe.Logger().Debug("unknown layout, using dashboard", "layout", name)
	}
	return t
}

// Compose lays out data with the named template and returns the draw list.
func (e *Engine) Compose(data map[string]*plugin.Result, name string) *recording.DrawList {
	return e.compositor.Compose(e.Template(name), data, e.clock())
}

// BackendOptions returns the options backends of this engine are created
// with.
func (e *Engine) BackendOptions() recording.Options {
	return e.backendOpts
}

// RenderImage renders data with the named layout and returns the quantized
// canvas.
func (e *Engine) RenderImage(data map[string]*plugin.Result, name string) (*inkframe.Canvas, error) {
	start := time.Now()
	list := e.Compose(data, name)

	b, err := recording.NewBackend(e.backend, e.backendOpts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if err := list.Playback(b); err != nil {
		return nil, fmt.Errorf("layout: render %s: %w", name, err)
	}
	c := b.Canvas()
	if err := c.Quantize(e.depth); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	inkframe.Logger().Debug("frame rendered",
		"layout", name, "backend", e.backend, "elements", list.Len(),
		"depth", e.depth, "duration", time.Since(start))
	return c, nil
}

// Render renders data with the named layout and returns the encoded frame.
// An unknown layout renders the dashboard.
func (e *Engine) Render(data map[string]*plugin.Result, name string) ([]byte, error) {
	c, err := e.RenderImage(data, name)
	if err != nil {
		return nil, err
	}
	out, err := c.ToBuffer(e.depth, e.format)
	if err != nil {
		return nil, fmt.Errorf("layout: encode: %w", err)
	}
	return out, nil
}

// RenderCurrent renders data with the current layout.
func (e *Engine) RenderCurrent(data map[string]*plugin.Result) ([]byte, error) {
	return e.Render(data, e.CurrentLayout())
}
