package layout

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Default layout names.
const (
	Dashboard     = "dashboard"
	FocusWeather  = "focus-weather"
	FocusCalendar = "focus-calendar"
	FocusNews     = "focus-news"
	FocusCustom   = "focus-custom"
)

var (
	// ErrUnknownLayout is returned by Registry.Lookup for unknown names.
	ErrUnknownLayout = errors.New("layout: unknown layout")

	// ErrInvalidTemplate is returned when a template is unusable.
	ErrInvalidTemplate = errors.New("layout: invalid template")
)

// Zone is a rectangle of the screen that shows one plugin.
type Zone struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Plugin string `yaml:"plugin" toml:"plugin" json:"plugin"`
	X      int    `yaml:"x" toml:"x" json:"x"`
	Y      int    `yaml:"y" toml:"y" json:"y"`
	Width  int    `yaml:"width" toml:"width" json:"width"`
	Height int    `yaml:"height" toml:"height" json:"height"`

	// Large selects the roomier variant of the plugin's block.
	Large bool `yaml:"large" toml:"large" json:"large"`
}

// Rect returns the zone as a rectangle.
func (z Zone) Rect() image.Rectangle {
	return image.Rect(z.X, z.Y, z.X+z.Width, z.Y+z.Height)
}

// Template is a named arrangement of zones under a header title.
type Template struct {
	Name  string `yaml:"name" toml:"name" json:"name"`
	Title string `yaml:"title" toml:"title" json:"title"`
	Zones []Zone `yaml:"zones" toml:"zones" json:"zones"`
}

// Validate checks that the template has a name and that every zone has a
// plugin, a positive height and room for content between its paddings.
func (t Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidTemplate)
	}
	for i, z := range t.Zones {
		if z.Plugin == "" {
			return fmt.Errorf("%w: %s: zone %d has no plugin", ErrInvalidTemplate, t.Name, i)
		}
		if z.Width <= 0 || z.Height <= 0 {
			return fmt.Errorf("%w: %s: zone %d has size %dx%d", ErrInvalidTemplate, t.Name, i, z.Width, z.Height)
		}
		if pad := pick(z, ZonePadding, LargeWeatherPadding); z.Width <= 2*pad {
			return fmt.Errorf("%w: %s: zone %d is %dpx wide, padding needs more than %dpx",
				ErrInvalidTemplate, t.Name, i, z.Width, 2*pad)
		}
	}
	return nil
}

func (t Template) title() string {
	if t.Title != "" {
		return t.Title
	}
	return upper(t.Name)
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// DashboardTemplate returns the default three-zone layout for an 800×480
// panel: weather top left, news top right, calendar along the bottom.
func DashboardTemplate() Template {
	return Template{
		Name:  Dashboard,
		Title: upper(Dashboard),
		Zones: []Zone{
			{Name: "weather", Plugin: "weather", X: 10, Y: 60, Width: 380, Height: 200},
			{Name: "news", Plugin: "news", X: 400, Y: 60, Width: 390, Height: 200},
			{Name: "calendar", Plugin: "calendar", X: 10, Y: 270, Width: 780, Height: 200},
		},
	}
}

// FocusTemplate returns a layout showing plugin alone in one large zone.
func FocusTemplate(plugin string) Template {
	return Template{
		Name:  "focus-" + plugin,
		Title: upper(plugin),
		Zones: []Zone{
			{Name: plugin, Plugin: plugin, X: 20, Y: 60, Width: 760, Height: 400, Large: true},
		},
	}
}

// DefaultTemplates returns the built-in layouts.
func DefaultTemplates() []Template {
	return []Template{
		DashboardTemplate(),
		FocusTemplate("weather"),
		FocusTemplate("calendar"),
		FocusTemplate("news"),
		FocusTemplate("custom"),
	}
}

// Registry is a read-only set of templates keyed by name.
type Registry struct {
	templates map[string]Template
}

// NewRegistry builds a registry from the default templates overlaid with
// extra. A template in extra replaces a default of the same name.
func NewRegistry(extra ...Template) (*Registry, error) {
	r := &Registry{templates: make(map[string]Template)}
	for _, t := range DefaultTemplates() {
		r.templates[t.Name] = t
	}
	for _, t := range extra {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		r.templates[t.Name] = t
	}
	return r, nil
}

// Lookup returns the template named name.
func (r *Registry) Lookup(name string) (Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return t, nil
}

// Resolve returns the template named name, or the dashboard when there is
// none. The second result reports whether name was found.
func (r *Registry) Resolve(name string) (Template, bool) {
	if t, ok := r.templates[name]; ok {
		return t, true
	}
	return r.templates[Dashboard], false
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Names returns the template names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
