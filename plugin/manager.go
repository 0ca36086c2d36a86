package plugin

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/inkframe/inkframe"
)

// Manager owns the named, cached sources of a display.
type Manager struct {
	mu      sync.RWMutex
	sources map[string]*Cached
	order   []string
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{sources: make(map[string]*Cached)}
}

// Add registers src. Plain sources are wrapped with the default cache
// settings. Adding a name twice replaces the previous source.
func (m *Manager) Add(src Source) *Cached {
	c, ok := src.(*Cached)
	if !ok {
		c = NewCached(src)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sources[c.Name()]; !exists {
		m.order = append(m.order, c.Name())
	}
	m.sources[c.Name()] = c
	return c
}

// Names returns the registered plugin names in registration order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Get returns the source registered under name.
func (m *Manager) Get(name string) (*Cached, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
	}
	return c, nil
}

func (m *Manager) snapshot() []*Cached {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Cached, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.sources[name])
	}
	return out
}

// FetchAll fetches every enabled source concurrently. A source that fails
// with nothing cached maps to a nil result; the error is logged and does
// not fail the call. Only cancellation of ctx is returned.
func (m *Manager) FetchAll(ctx context.Context) (map[string]*Result, error) {
	sources := m.snapshot()
	results := make([]*Result, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range sources {
		if !c.Enabled() {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			res, err := c.Fetch(gctx)
			if err != nil {
				inkframe.Logger().Warn("plugin fetch failed", "plugin", c.Name(), "error", err)
				return nil
			}
			inkframe.Logger().Debug("plugin fetched",
				"plugin", c.Name(), "kind", KindOf(res), "duration", time.Since(start))
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]*Result, len(sources))
	for i, c := range sources {
		if c.Enabled() {
			out[c.Name()] = results[i]
		}
	}
	return out, nil
}

// Fetch fetches one source.
func (m *Manager) Fetch(ctx context.Context, name string) (*Result, error) {
	c, err := m.Get(name)
	if err != nil {
		return nil, err
	}
	return c.Fetch(ctx)
}

// Refresh forces one source to fetch again.
func (m *Manager) Refresh(ctx context.Context, name string) (*Result, error) {
	c, err := m.Get(name)
	if err != nil {
		return nil, err
	}
	return c.Refresh(ctx)
}

// RefreshAll forces every enabled source to fetch again.
func (m *Manager) RefreshAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range m.snapshot() {
		if !c.Enabled() {
			continue
		}
		g.Go(func() error {
			if _, err := c.Refresh(gctx); err != nil {
				inkframe.Logger().Warn("plugin refresh failed", "plugin", c.Name(), "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return ctx.Err()
}

// SetEnabled enables or disables a source.
func (m *Manager) SetEnabled(name string, enabled bool) error {
	c, err := m.Get(name)
	if err != nil {
		return err
	}
	c.SetEnabled(enabled)
	return nil
}

// Cached returns the cached results of all enabled sources without
// fetching.
func (m *Manager) Cached() map[string]*Result {
	out := make(map[string]*Result)
	for _, c := range m.snapshot() {
		if c.Enabled() {
			out[c.Name()] = c.Cache()
		}
	}
	return out
}

// Status reports the state of every source, sorted by name.
func (m *Manager) Status() []Info {
	sources := m.snapshot()
	out := make([]Info, 0, len(sources))
	for _, c := range sources {
		out = append(out, c.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
