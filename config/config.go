// Package config loads inkframe configuration.
//
// Configuration is read from a single YAML or TOML file, chosen by the
// file extension (".toml" for TOML, YAML otherwise), and overlaid on
// Default. Paths may use ${HOME}, ${INKFRAME_CONFIG_DIR} and
// ${VAR:-default} patterns; relative plugin and font paths are resolved
// against the directory of the configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/layout"
	"github.com/inkframe/inkframe/plugin"
	"github.com/inkframe/inkframe/recording"
	"github.com/inkframe/inkframe/text"
)

// Config is the configuration of a display.
type Config struct {
	// Device describes the panel and how frames are drawn for it.
	Device DeviceConfig `yaml:"device" toml:"device"`

	// Layout selects and defines templates.
	Layout LayoutConfig `yaml:"layout" toml:"layout"`

	// Refresh configures the refresh and rotation schedule.
	Refresh RefreshConfig `yaml:"refresh" toml:"refresh"`

	// Server configures the HTTP surface.
	Server ServerConfig `yaml:"server" toml:"server"`

	// Plugins maps plugin names to their data sources.
	Plugins map[string]PluginConfig `yaml:"plugins" toml:"plugins"`

	// dir is the directory of the loaded file.
	dir string
}

// DeviceConfig describes the panel.
type DeviceConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`

	// ColorDepth is 1 (black and white) or 4 (grayscale).
	ColorDepth int `yaml:"color_depth" toml:"color_depth"`

	// Backend is the drawing backend: raster or vector.
	Backend string `yaml:"backend" toml:"backend"`

	// Measure is the text measuring strategy: face or approx.
	Measure string `yaml:"measure" toml:"measure"`

	// Format is the output image format: png or bmp.
	Format string `yaml:"format" toml:"format"`

	// Timezone is the IANA name timestamps are shown in.
	Timezone string `yaml:"timezone" toml:"timezone"`

	// Fonts overrides the embedded Go fonts.
	Fonts FontsConfig `yaml:"fonts" toml:"fonts"`
}

// FontsConfig names TTF/OTF files. Empty means the embedded fonts.
type FontsConfig struct {
	Regular string `yaml:"regular" toml:"regular"`
	Bold    string `yaml:"bold" toml:"bold"`
}

// LayoutConfig selects the initial layout and adds templates.
type LayoutConfig struct {
	Current   string            `yaml:"current" toml:"current"`
	Templates []layout.Template `yaml:"templates" toml:"templates"`
}

// RefreshConfig configures the refresh loop.
type RefreshConfig struct {
	// Interval between full refreshes.
	Interval Duration `yaml:"interval" toml:"interval"`

	Rotation RotationConfig `yaml:"rotation" toml:"rotation"`
}

// RotationConfig cycles the current layout through a list.
type RotationConfig struct {
	Enabled  bool     `yaml:"enabled" toml:"enabled"`
	Interval Duration `yaml:"interval" toml:"interval"`
	Layouts  []string `yaml:"layouts" toml:"layouts"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// PluginConfig configures one plugin data source.
type PluginConfig struct {
	// File is the provider document the plugin reads.
	File string `yaml:"file" toml:"file"`

	// Enabled defaults to true.
	Enabled *bool `yaml:"enabled" toml:"enabled"`

	// RefreshInterval is how long fetched data stays fresh.
	RefreshInterval Duration `yaml:"refresh_interval" toml:"refresh_interval"`
}

// IsEnabled reports whether the plugin is enabled.
func (p PluginConfig) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// Default returns the default configuration: an 800×480 black and white
// panel showing the dashboard, refreshed every 15 minutes.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Width:      inkframe.DefaultWidth,
			Height:     inkframe.DefaultHeight,
			ColorDepth: int(inkframe.Depth1),
			Backend:    "raster",
			Measure:    text.MeasureFace,
			Format:     string(inkframe.FormatPNG),
			Timezone:   layout.DefaultTimezone,
		},
		Layout: LayoutConfig{
			Current: layout.Dashboard,
		},
		Refresh: RefreshConfig{
			Interval: Duration(15 * time.Minute),
			Rotation: RotationConfig{
				Interval: Duration(5 * time.Minute),
			},
		},
		Server: ServerConfig{
			Addr: ":3000",
		},
		Plugins: map[string]PluginConfig{},
	}
}

// LoadFile loads configuration from path, overlaid on Default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	cfg.expandVariables()
	return cfg, nil
}

// loadFile decodes a file into c, choosing the format by extension.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return err
	}
	return c.decode(data, strings.EqualFold(filepath.Ext(path), ".toml"))
}

func (c *Config) decode(data []byte, isTOML bool) error {
	if isTOML {
		_, err := toml.Decode(string(data), c)
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Parse decodes YAML configuration overlaid on Default. Relative paths
// stay relative to the working directory.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data, false); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.expandVariables()
	return cfg, nil
}

// ParseTOML decodes TOML configuration overlaid on Default.
func ParseTOML(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data, true); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} patterns and resolves relative paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":                os.Getenv("HOME"),
		"INKFRAME_CONFIG_DIR": c.dir,
	}

	c.Device.Fonts.Regular = c.path(expandVars(c.Device.Fonts.Regular, vars))
	c.Device.Fonts.Bold = c.path(expandVars(c.Device.Fonts.Bold, vars))
	for name, p := range c.Plugins {
		p.File = c.path(expandVars(p.File, vars))
		c.Plugins[name] = p
	}
}

func (c *Config) path(p string) string {
	if p == "" || c.dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are reported
// together.
func (c *Config) Validate() error {
	var errs []error

	if c.Device.Width <= 0 || c.Device.Height <= 0 {
		errs = append(errs, fmt.Errorf("device: size %dx%d: %w", c.Device.Width, c.Device.Height, inkframe.ErrInvalidSize))
	}
	if err := inkframe.ColorDepth(c.Device.ColorDepth).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("device.color_depth: %w", err))
	}
	if !recording.IsRegistered(c.Device.Backend) {
		errs = append(errs, fmt.Errorf("device.backend: %w: %q (have %v)",
			recording.ErrUnknownBackend, c.Device.Backend, recording.Backends()))
	}
	switch strings.ToLower(c.Device.Measure) {
	case "", text.MeasureFace, text.MeasureApprox:
	default:
		errs = append(errs, fmt.Errorf("device.measure: %w: %q", text.ErrUnknownMeasurer, c.Device.Measure))
	}
	if _, err := inkframe.ParseFormat(c.Device.Format); err != nil {
		errs = append(errs, fmt.Errorf("device.format: %w", err))
	}
	if _, err := time.LoadLocation(c.Device.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("device.timezone: %w", err))
	}
	if c.Device.Fonts.Bold != "" && c.Device.Fonts.Regular == "" {
		errs = append(errs, errors.New("device.fonts: bold font requires a regular font"))
	}

	for _, t := range c.Layout.Templates {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("layout.templates: %w", err))
		}
	}

	if c.Refresh.Interval <= 0 {
		errs = append(errs, errors.New("refresh.interval must be positive"))
	}
	if c.Refresh.Rotation.Enabled {
		if c.Refresh.Rotation.Interval <= 0 {
			errs = append(errs, errors.New("refresh.rotation.interval must be positive"))
		}
		if len(c.Refresh.Rotation.Layouts) == 0 {
			errs = append(errs, errors.New("refresh.rotation.layouts is required when rotation is enabled"))
		}
	}

	for _, name := range c.PluginNames() {
		if c.Plugins[name].File == "" {
			errs = append(errs, fmt.Errorf("plugins.%s.file is required", name))
		}
	}

	return errors.Join(errs...)
}

// PluginNames returns the configured plugin names in sorted order.
func (c *Config) PluginNames() []string {
	names := make([]string, 0, len(c.Plugins))
	for name := range c.Plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fonts returns the configured font set, or the embedded Go fonts.
func (c *Config) Fonts() (*text.FontSet, error) {
	if c.Device.Fonts.Regular == "" {
		return text.DefaultFontSet(), nil
	}
	return text.LoadFontSet(c.Device.Fonts.Regular, c.Device.Fonts.Bold)
}

// EngineOptions converts the device and layout sections into engine
// options.
func (c *Config) EngineOptions() ([]layout.Option, error) {
	fonts, err := c.Fonts()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	m, err := text.ParseMeasurer(c.Device.Measure, fonts)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	format, err := inkframe.ParseFormat(c.Device.Format)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return []layout.Option{
		layout.WithSize(c.Device.Width, c.Device.Height),
		layout.WithDepth(inkframe.ColorDepth(c.Device.ColorDepth)),
		layout.WithBackend(c.Device.Backend),
		layout.WithFonts(fonts),
		layout.WithMeasurer(m),
		layout.WithFormat(format),
		layout.WithTimezone(c.Device.Timezone),
		layout.WithTemplates(c.Templates()...),
		layout.WithLayout(c.Layout.Current),
	}, nil
}

// Templates returns the configured templates.
func (c *Config) Templates() []layout.Template {
	out := make([]layout.Template, len(c.Layout.Templates))
	copy(out, c.Layout.Templates)
	return out
}

// Engine builds a layout engine from the configuration.
func (c *Config) Engine() (*layout.Engine, error) {
	opts, err := c.EngineOptions()
	if err != nil {
		return nil, err
	}
	return layout.New(opts...)
}

// PluginManager builds a manager with one cached file source per
// configured plugin.
func (c *Config) PluginManager() *plugin.Manager {
	m := plugin.NewManager()
	for _, name := range c.PluginNames() {
		p := c.Plugins[name]
		m.Add(plugin.NewCached(plugin.NewFileSource(name, p.File),
			plugin.WithRefreshInterval(p.RefreshInterval.Std()),
			plugin.WithEnabled(p.IsEnabled()),
		))
	}
	return m
}
