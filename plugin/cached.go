package plugin

import (
	"context"
	"sync"
	"time"

	"github.com/inkframe/inkframe"
)

// DefaultRefreshInterval is how long a fetched result stays fresh.
const DefaultRefreshInterval = 15 * time.Minute

// Info describes the state of a cached source.
type Info struct {
	Name            string    `json:"name"`
	Enabled         bool      `json:"enabled"`
	RefreshInterval int64     `json:"refresh_interval_ms"`
	LastFetch       time.Time `json:"last_fetch,omitzero"`
	CacheAge        int64     `json:"cache_age_ms,omitempty"`
	Kind            string    `json:"kind"`
	LastError       string    `json:"last_error,omitempty"`
}

// Cached wraps a Source with a freshness window. Within the window the
// cached result is served; after it the source is fetched again. When a
// fetch fails the previous result, if any, is served instead.
type Cached struct {
	src      Source
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	enabled   bool
	result    *Result
	lastFetch time.Time
	lastErr   error
}

// CachedOption configures a Cached source.
type CachedOption func(*Cached)

// WithRefreshInterval sets the freshness window. Non-positive values keep
// the default.
func WithRefreshInterval(d time.Duration) CachedOption {
	return func(c *Cached) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CachedOption {
	return func(c *Cached) {
		if now != nil {
			c.now = now
		}
	}
}

// WithEnabled sets the initial enabled state.
func WithEnabled(enabled bool) CachedOption {
	return func(c *Cached) { c.enabled = enabled }
}

// NewCached wraps src. The source starts enabled.
func NewCached(src Source, opts ...CachedOption) *Cached {
	c := &Cached{
		src:      src,
		interval: DefaultRefreshInterval,
		now:      time.Now,
		enabled:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the plugin name.
func (c *Cached) Name() string { return c.src.Name() }

// Fetch returns the cached result while it is fresh, fetching otherwise.
// A disabled source returns nil and no error.
func (c *Cached) Fetch(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return nil, nil
	}
	if c.result != nil && c.now().Sub(c.lastFetch) < c.interval {
		return c.result, nil
	}
	return c.fetchLocked(ctx)
}

// Refresh drops the cache and fetches again.
func (c *Cached) Refresh(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.result = nil
	c.lastFetch = time.Time{}
	if !c.enabled {
		return nil, nil
	}
	return c.fetchLocked(ctx)
}

func (c *Cached) fetchLocked(ctx context.Context) (*Result, error) {
	res, err := c.src.Fetch(ctx)
	if err != nil {
		c.lastErr = err
		if c.result != nil {
			inkframe.Logger().Warn("plugin fetch failed, serving cached data",
				"plugin", c.src.Name(), "error", err)
			return c.result, nil
		}
		return nil, err
	}
	c.result = res
	c.lastFetch = c.now()
	c.lastErr = nil
	return res, nil
}

// Cache returns the cached result without fetching.
func (c *Cached) Cache() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Enabled reports whether the source is enabled.
func (c *Cached) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// SetEnabled enables or disables the source. The cache is kept.
func (c *Cached) SetEnabled(enabled bool) {
	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()
}

// Info reports the cache state.
func (c *Cached) Info() Info {
	c.mu.Lock()
	defer c.mu.Unlock()

	info := Info{
		Name:            c.src.Name(),
		Enabled:         c.enabled,
		RefreshInterval: c.interval.Milliseconds(),
		LastFetch:       c.lastFetch,
		Kind:            KindOf(c.result).String(),
	}
	if !c.lastFetch.IsZero() {
		info.CacheAge = c.now().Sub(c.lastFetch).Milliseconds()
	}
	if c.lastErr != nil {
		info.LastError = c.lastErr.Error()
	}
	return info
}
