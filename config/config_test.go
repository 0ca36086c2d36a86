package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/layout"
	"github.com/inkframe/inkframe/plugin"
	"github.com/inkframe/inkframe/recording"
	"github.com/inkframe/inkframe/text"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 800, cfg.Device.Width)
	assert.Equal(t, 480, cfg.Device.Height)
	assert.Equal(t, 1, cfg.Device.ColorDepth)
	assert.Equal(t, "raster", cfg.Device.Backend)
	assert.Equal(t, "Australia/Melbourne", cfg.Device.Timezone)
	assert.Equal(t, layout.Dashboard, cfg.Layout.Current)
	assert.Equal(t, 15*time.Minute, cfg.Refresh.Interval.Std())
	assert.Equal(t, ":3000", cfg.Server.Addr)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "inkframe.yaml", `
device:
  color_depth: 4
  backend: vector
  measure: approx
  timezone: UTC
layout:
  current: kitchen
  templates:
    - name: kitchen
      title: Kitchen
      zones:
        - {plugin: weather, x: 0, y: 50, width: 800, height: 430, large: true}
refresh:
  interval: 10m
  rotation:
    enabled: true
    interval: 90
    layouts: [dashboard, kitchen]
plugins:
  weather:
    file: data/weather.json
    refresh_interval: 5m
  news:
    file: /var/lib/inkframe/news.yaml
    enabled: false
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 4, cfg.Device.ColorDepth)
	assert.Equal(t, 800, cfg.Device.Width, "unset fields keep their defaults")
	assert.Equal(t, "vector", cfg.Device.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Refresh.Interval.Std())
	assert.Equal(t, 90*time.Second, cfg.Refresh.Rotation.Interval.Std())
	assert.Equal(t, []string{"dashboard", "kitchen"}, cfg.Refresh.Rotation.Layouts)

	require.Len(t, cfg.Layout.Templates, 1)
	assert.True(t, cfg.Layout.Templates[0].Zones[0].Large)

	assert.Equal(t, filepath.Join(dir, "data", "weather.json"), cfg.Plugins["weather"].File)
	assert.Equal(t, "/var/lib/inkframe/news.yaml", cfg.Plugins["news"].File)
	assert.True(t, cfg.Plugins["weather"].IsEnabled())
	assert.False(t, cfg.Plugins["news"].IsEnabled())
	assert.Equal(t, []string{"news", "weather"}, cfg.PluginNames())
}

func TestLoadFileTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "inkframe.toml", `
[device]
width = 640
height = 384
format = "bmp"
timezone = "UTC"

[refresh]
interval = "1h"

[plugins.calendar]
file = "${INKFRAME_CONFIG_DIR}/calendar.json"
refresh_interval = 300
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 640, cfg.Device.Width)
	assert.Equal(t, 384, cfg.Device.Height)
	assert.Equal(t, "bmp", cfg.Device.Format)
	assert.Equal(t, time.Hour, cfg.Refresh.Interval.Std())
	assert.Equal(t, filepath.Join(dir, "calendar.json"), cfg.Plugins["calendar"].File)
	assert.Equal(t, 5*time.Minute, cfg.Plugins["calendar"].RefreshInterval.Std())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := writeFile(t, t.TempDir(), "bad.yaml", "refresh:\n  interval: soon\n")
	_, err = LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Device.Width = 0
	cfg.Device.ColorDepth = 2
	cfg.Device.Backend = "cairo"
	cfg.Device.Measure = "ruler"
	cfg.Device.Format = "gif"
	cfg.Device.Timezone = "Nowhere/Special"
	cfg.Refresh.Rotation.Enabled = true
	cfg.Plugins["weather"] = PluginConfig{}
	cfg.Layout.Templates = []layout.Template{{Name: "broken", Zones: []layout.Zone{{}}}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, inkframe.ErrInvalidSize)
	assert.ErrorIs(t, err, inkframe.ErrInvalidDepth)
	assert.ErrorIs(t, err, recording.ErrUnknownBackend)
	assert.ErrorIs(t, err, text.ErrUnknownMeasurer)
	assert.ErrorIs(t, err, inkframe.ErrUnknownFormat)
	assert.ErrorIs(t, err, layout.ErrInvalidTemplate)
	for _, want := range []string{"device.timezone", "refresh.rotation.layouts", "plugins.weather.file"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestEngine(t *testing.T) {
	cfg, err := Parse([]byte(`
device:
  width: 400
  height: 300
  measure: approx
  timezone: UTC
layout:
  current: focus-news
`))
	require.NoError(t, err)

	e, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, 400, e.Width())
	assert.Equal(t, 300, e.Height())
	assert.Equal(t, layout.FocusNews, e.CurrentLayout())

	_, ok := e.BackendOptions().Measurer.(text.ApproxMeasurer)
	assert.True(t, ok, "measurer should be approx")
}

func TestEngineBadFonts(t *testing.T) {
	cfg := Default()
	cfg.Device.Fonts.Regular = filepath.Join(t.TempDir(), "missing.ttf")
	_, err := cfg.EngineOptions()
	require.Error(t, err)
}

func TestPluginManager(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "weather.json", `{"temp": 12.5, "location": "Ballarat"}`)
	path := writeFile(t, dir, "inkframe.yaml", `
plugins:
  weather:
    file: weather.json
  news:
    file: news.json
    enabled: false
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	m := cfg.PluginManager()
	assert.Equal(t, []string{"news", "weather"}, m.Names())

	data, err := m.FetchAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, plugin.KindWeather, plugin.KindOf(data["weather"]))
	assert.Equal(t, "Ballarat", data["weather"].Weather.Location)
	assert.NotContains(t, data, "news")

	for _, info := range m.Status() {
		if info.Name == "weather" {
			assert.Equal(t, plugin.DefaultRefreshInterval.Milliseconds(), info.RefreshInterval)
		}
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1h30m")))
	assert.Equal(t, 90*time.Minute, d.Std())
	require.NoError(t, d.UnmarshalText([]byte("2.5")))
	assert.Equal(t, 2500*time.Millisecond, d.Std())

	out, err := Duration(time.Minute).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m0s", string(out))
}
