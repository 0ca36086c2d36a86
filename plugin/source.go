package plugin

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownPlugin is returned for a name no source was registered under.
var ErrUnknownPlugin = errors.New("plugin: unknown plugin")

// Source produces the data of one plugin.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (*Result, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc struct {
	SourceName string
	Func       func(ctx context.Context) (*Result, error)
}

// Name returns the plugin name.
func (s SourceFunc) Name() string { return s.SourceName }

// Fetch calls the function.
func (s SourceFunc) Fetch(ctx context.Context) (*Result, error) { return s.Func(ctx) }

// StaticSource always returns the same result.
type StaticSource struct {
	name   string
	result *Result
}

// NewStaticSource returns a source that serves r under name.
func NewStaticSource(name string, r *Result) *StaticSource {
	return &StaticSource{name: name, result: r}
}

// Name returns the plugin name.
func (s *StaticSource) Name() string { return s.name }

// Fetch returns the fixed result.
func (s *StaticSource) Fetch(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.result, nil
}

// FileSource reads a provider document from disk on every fetch. The
// format is chosen by extension: .yaml and .yml are YAML, anything else
// JSON.
type FileSource struct {
	name string
	path string
}

// NewFileSource returns a source reading path.
func NewFileSource(name, path string) *FileSource {
	return &FileSource{name: name, path: path}
}

// Name returns the plugin name.
func (s *FileSource) Name() string { return s.name }

// Path returns the document path.
func (s *FileSource) Path() string { return s.path }

// Fetch reads and decodes the document.
func (s *FileSource) Fetch(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", s.name, err)
	}
	return res, nil
}
