// Package refresh keeps the current panel frame up to date.
//
// A Manager fetches plugin data, renders the current layout and stores the
// result as the single last frame. Run repeats this on a fixed interval
// and, when rotation is enabled, cycles the layout through a list.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/layout"
	"github.com/inkframe/inkframe/plugin"
)

// ErrNoFrame is returned when no frame has been rendered yet.
var ErrNoFrame = errors.New("refresh: no frame rendered")

// Defaults of Options.
const (
	DefaultInterval         = 15 * time.Minute
	DefaultRotationInterval = 5 * time.Minute
)

// DefaultRotationLayouts is the rotation list when none is configured.
var DefaultRotationLayouts = []string{
	layout.Dashboard, layout.FocusWeather, layout.FocusCalendar, layout.FocusNews,
}

// Fetcher supplies plugin data for a frame.
type Fetcher interface {
	FetchAll(ctx context.Context) (map[string]*plugin.Result, error)
}

// Renderer turns plugin data into an encoded frame.
type Renderer interface {
	Render(data map[string]*plugin.Result, name string) ([]byte, error)
	SetLayout(name string)
	Format() inkframe.Format
}

// Rotation configures layout rotation.
type Rotation struct {
	Enabled  bool
	Interval time.Duration
	Layouts  []string
}

// Options configures a Manager.
type Options struct {
	// Interval between refreshes in Run.
	Interval time.Duration

	// Layout is the layout shown while rotation is off.
	Layout string

	Rotation Rotation

	// Clock replaces time.Now for frame timestamps.
	Clock func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Layout == "" {
		o.Layout = layout.Dashboard
	}
	if o.Rotation.Interval <= 0 {
		o.Rotation.Interval = DefaultRotationInterval
	}
	if len(o.Rotation.Layouts) == 0 {
		o.Rotation.Layouts = slices.Clone(DefaultRotationLayouts)
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Manager renders frames and owns the authoritative layout state.
// Refreshes are serialized; the state can be read while one runs.
type Manager struct {
	plugins  Fetcher
	renderer Renderer
	clock    func() time.Time

	// refreshMu serializes Refresh.
	refreshMu sync.Mutex

	mu       sync.Mutex
	interval time.Duration
	layout   string
	rotation Rotation
	index    int
	last     *Frame
	running  bool

	// changed wakes Run after a schedule change.
	changed chan struct{}
}

// New returns a manager rendering with r from the data of plugins.
func New(plugins Fetcher, r Renderer, opts Options) *Manager {
	opts = opts.withDefaults()
	r.SetLayout(opts.Layout)
	return &Manager{
		plugins:  plugins,
		renderer: r,
		clock:    opts.Clock,
		interval: opts.Interval,
		layout:   opts.Layout,
		rotation: opts.Rotation,
		changed:  make(chan struct{}, 1),
	}
}

// CurrentLayout returns the layout the next refresh renders: the current
// rotation entry when rotation is enabled, the selected layout otherwise.
func (m *Manager) CurrentLayout() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentLocked()
}

func (m *Manager) currentLocked() string {
	if m.rotation.Enabled && len(m.rotation.Layouts) > 0 {
		return m.rotation.Layouts[m.index%len(m.rotation.Layouts)]
	}
	return m.layout
}

// Refresh fetches all plugin data, renders the current layout and stores
// the frame. A failed render keeps the previous frame.
func (m *Manager) Refresh(ctx context.Context) (*Frame, error) {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	start := time.Now()
	name := m.CurrentLayout()

	data, err := m.plugins.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh: fetch: %w", err)
	}
	img, err := m.renderer.Render(data, name)
	if err != nil {
		return nil, fmt.Errorf("refresh: render %s: %w", name, err)
	}

	f := &Frame{
		Image:      img,
		Format:     m.renderer.Format(),
		ETag:       digest(img),
		Layout:     name,
		RenderedAt: m.clock(),
	}
	m.mu.Lock()
	m.last = f
	m.mu.Unlock()

	inkframe.Logger().Info("refresh complete",
		"layout", name, "bytes", len(img), "etag", f.ETag, "duration", time.Since(start))
	return f, nil
}

// LastFrame returns the last rendered frame.
func (m *Manager) LastFrame() (*Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return nil, ErrNoFrame
	}
	return m.last, nil
}

// Frame returns the last frame, rendering one first if there is none.
func (m *Manager) Frame(ctx context.Context) (*Frame, error) {
	if f, err := m.LastFrame(); err == nil {
		return f, nil
	}
	return m.Refresh(ctx)
}

// SetLayout selects the layout shown while rotation is off. Unknown names
// are accepted; the renderer falls back to the dashboard.
func (m *Manager) SetLayout(name string) {
	m.mu.Lock()
	m.layout = name
	m.mu.Unlock()
	m.renderer.SetLayout(name)
}

// Rotate advances to the next rotation layout and refreshes.
func (m *Manager) Rotate(ctx context.Context) (*Frame, error) {
	m.mu.Lock()
	if n := len(m.rotation.Layouts); n > 0 {
		m.index = (m.index + 1) % n
	}
	next := m.currentLocked()
	m.mu.Unlock()

	inkframe.Logger().Debug("rotating layout", "layout", next)
	return m.Refresh(ctx)
}

// RotationUpdate changes the schedule. Nil fields are left as they are.
type RotationUpdate struct {
	Enabled         *bool
	Interval        *time.Duration
	Layouts         []string
	RefreshInterval *time.Duration
}

// UpdateRotation applies u and reschedules a running Run loop.
func (m *Manager) UpdateRotation(u RotationUpdate) Status {
	m.mu.Lock()
	if u.Enabled != nil {
		m.rotation.Enabled = *u.Enabled
	}
	if u.Interval != nil && *u.Interval > 0 {
		m.rotation.Interval = *u.Interval
	}
	if len(u.Layouts) > 0 {
		m.rotation.Layouts = slices.Clone(u.Layouts)
		if m.index >= len(m.rotation.Layouts) {
			m.index = 0
		}
	}
	if u.RefreshInterval != nil && *u.RefreshInterval > 0 {
		m.interval = *u.RefreshInterval
	}
	m.mu.Unlock()

	select {
	case m.changed <- struct{}{}:
	default:
	}
	return m.Status()
}

// Status describes the schedule and the last frame.
type Status struct {
	RefreshEnabled       bool      `json:"refresh_enabled"`
	RefreshInterval      int64     `json:"refresh_interval_ms"`
	LastRefresh          time.Time `json:"last_refresh,omitzero"`
	ETag                 string    `json:"etag,omitempty"`
	RotationEnabled      bool      `json:"rotation_enabled"`
	RotationInterval     int64     `json:"rotation_interval_ms"`
	RotationLayouts      []string  `json:"rotation_layouts"`
	CurrentLayout        string    `json:"current_layout"`
	SelectedLayout       string    `json:"selected_layout"`
	CurrentRotationIndex int       `json:"current_rotation_index"`
}

// Status reports the current state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Status{
		RefreshEnabled:       m.running,
		RefreshInterval:      m.interval.Milliseconds(),
		RotationEnabled:      m.rotation.Enabled,
		RotationInterval:     m.rotation.Interval.Milliseconds(),
		RotationLayouts:      slices.Clone(m.rotation.Layouts),
		CurrentLayout:        m.currentLocked(),
		SelectedLayout:       m.layout,
		CurrentRotationIndex: m.index,
	}
	if m.last != nil {
		s.LastRefresh = m.last.RenderedAt
		s.ETag = m.last.ETag
	}
	return s
}

func (m *Manager) schedule() (refresh time.Duration, rotate time.Duration, rotating bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval, m.rotation.Interval, m.rotation.Enabled
}

// Run refreshes once, then on every interval and, with rotation enabled,
// rotates on every rotation interval. It returns when ctx is done. Errors
// of individual refreshes are logged.
func (m *Manager) Run(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("refresh: already running")
	}
	m.running = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	log := inkframe.Logger()
	if _, err := m.Refresh(ctx); err != nil {
		log.Warn("refresh failed", "error", err)
	}

	interval, rotInterval, rotating := m.schedule()
	refreshTicker := time.NewTicker(interval)
	defer refreshTicker.Stop()
	rotateTicker := time.NewTicker(rotInterval)
	defer rotateTicker.Stop()
	if !rotating {
		rotateTicker.Stop()
	}
	log.Info("refresh loop started", "interval", interval, "rotation", rotating, "rotation_interval", rotInterval)

	for {
		select {
		case <-ctx.Done():
			log.Info("refresh loop stopped")
			return ctx.Err()
		case <-refreshTicker.C:
			if _, err := m.Refresh(ctx); err != nil {
				log.Warn("refresh failed", "error", err)
			}
		case <-rotateTicker.C:
			if _, err := m.Rotate(ctx); err != nil {
				log.Warn("rotation failed", "error", err)
			}
		case <-m.changed:
			interval, rotInterval, rotating = m.schedule()
			refreshTicker.Reset(interval)
			if rotating {
				rotateTicker.Reset(rotInterval)
			} else {
				rotateTicker.Stop()
			}
			log.Info("refresh schedule updated", "interval", interval, "rotation", rotating, "rotation_interval", rotInterval)
		}
	}
}
