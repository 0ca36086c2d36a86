package recording

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/inkframe/inkframe/text"
)

// ErrUnknownBackend is returned by NewBackend for a name nobody registered.
var ErrUnknownBackend = errors.New("recording: unknown backend")

// Options configures a backend instance.
type Options struct {
	// Fonts supplies glyphs. Nil means text.DefaultFontSet().
	Fonts *text.FontSet

	// Measurer places glyphs and wraps text. It must be the measurer the
	// draw list was laid out with. Nil means face metrics of Fonts.
	Measurer text.Measurer
}

// WithDefaults returns o with nil fields filled in.
func (o Options) WithDefaults() Options {
	if o.Fonts == nil {
		o.Fonts = text.DefaultFontSet()
	}
	if o.Measurer == nil {
		o.Measurer = text.NewFaceMeasurer(o.Fonts)
	}
	return o
}

// BackendFactory creates a new backend instance.
// Factories are registered via Register() and called by NewBackend().
type BackendFactory func(opts Options) Backend

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register registers a backend factory with the given name.
// It is called from init() in backend packages, following the
// database/sql driver pattern:
//
//	func init() {
//	    recording.Register("raster", func(opts recording.Options) recording.Backend {
//	        return NewBackend(opts)
//	    })
//	}
//
// Register panics if factory is nil or the name is already taken.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("recording: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("recording: Register called twice for " + name)
	}
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// It is a no-op for unknown names.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// NewBackend creates a backend instance by name. Missing options are
// filled in with WithDefaults.
func NewBackend(name string, opts Options) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	return factory(opts.WithDefaults()), nil
}

// Backends returns the registered backend names in alphabetical order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}
