// Package plugin holds the data a display renders: the Result tagged union
// and the sources that produce it.
//
// A Result carries exactly one of four payloads, selected by Kind. Provider
// documents in JSON or YAML are turned into Results by Decode, which looks
// at which signature field is present:
//
//	temp     weather
//	events   calendar
//	items    news
//	results  custom
//
// Sources are wrapped in a Cached freshness window and grouped in a
// Manager, which fetches them concurrently:
//
//	m := plugin.NewManager()
//	m.Add(plugin.NewCached(plugin.NewFileSource("weather", "weather.json"),
//		plugin.WithRefreshInterval(10*time.Minute)))
//	data, err := m.FetchAll(ctx)
package plugin
