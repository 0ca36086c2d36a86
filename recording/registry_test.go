package recording

import (
	"errors"
	"testing"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/text"
)

// mockBackend records the calls it receives.
type mockBackend struct {
	name       string
	opts       Options
	beginCalls int
	endCalls   int
	width      int
	height     int
	calls      []string
	textErr    error
}

func newMockBackend(name string, opts Options) *mockBackend {
	return &mockBackend{name: name, opts: opts}
}

func (b *mockBackend) Begin(width, height int) error {
	b.beginCalls++
	b.width = width
	b.height = height
	return nil
}

func (b *mockBackend) End() error {
	b.endCalls++
	return nil
}

func (b *mockBackend) FillRect(_, _, _, _ int, _ inkframe.RGBA) {
	b.calls = append(b.calls, "fill")
}

func (b *mockBackend) StrokeRect(_, _, _, _, _ int, _ inkframe.RGBA) {
	b.calls = append(b.calls, "stroke")
}

func (b *mockBackend) DrawLine(_, _, _, _, _ int, _ inkframe.RGBA) {
	b.calls = append(b.calls, "line")
}

func (b *mockBackend) DrawText(s string, _, _ int, _ float64, _ bool, _ inkframe.RGBA, _ int) error {
	b.calls = append(b.calls, "text:"+s)
	return b.textErr
}

func (b *mockBackend) Canvas() *inkframe.Canvas { return nil }

// resetRegistry clears all registered backends for test isolation.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends = make(map[string]BackendFactory)
}

func TestRegisterAndNewBackend(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("test", func(opts Options) Backend {
		return newMockBackend("test", opts)
	})

	backend, err := NewBackend("test", Options{})
	if err != nil {
		t.Fatalf("NewBackend failed: %v", err)
	}
	mock, ok := backend.(*mockBackend)
	if !ok {
		t.Fatal("backend is not a mockBackend")
	}
	if mock.name != "test" {
		t.Errorf("got name %q, want %q", mock.name, "test")
	}
	if mock.opts.Fonts == nil || mock.opts.Measurer == nil {
		t.Error("NewBackend should fill in default options")
	}
}

func TestNewBackendKeepsMeasurer(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("test", func(opts Options) Backend {
		return newMockBackend("test", opts)
	})
	backend, err := NewBackend("test", Options{Measurer: text.ApproxMeasurer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := backend.(*mockBackend).opts.Measurer.(text.ApproxMeasurer); !ok {
		t.Error("explicit measurer was replaced")
	}
}

func TestNewBackendUnknown(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	_, err := NewBackend("unknown", Options{})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("NewBackend(unknown) error = %v, want ErrUnknownBackend", err)
	}
}

func TestRegisterNilFactory(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil factory")
		}
	}()
	Register("nil", nil)
}

func TestRegisterDuplicate(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	factory := func(opts Options) Backend { return newMockBackend("dup", opts) }
	Register("dup", factory)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for duplicate registration")
		}
	}()
	Register("dup", factory)
}

func TestBackendsSortedAndUnregister(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	for _, name := range []string{"vector", "raster", "svg"} {
		n := name
		Register(n, func(opts Options) Backend { return newMockBackend(n, opts) })
	}

	got := Backends()
	want := []string{"raster", "svg", "vector"}
	if len(got) != len(want) {
		t.Fatalf("Backends() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Backends() = %v, want %v", got, want)
		}
	}

	if !IsRegistered("svg") {
		t.Error("svg should be registered")
	}
	Unregister("svg")
	Unregister("never-registered")
	if IsRegistered("svg") {
		t.Error("svg should be unregistered")
	}
}
