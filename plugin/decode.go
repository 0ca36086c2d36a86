package plugin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/inkframe/inkframe"
)

// ErrMalformed is returned when a document cannot be parsed at all.
var ErrMalformed = errors.New("plugin: malformed document")

// signatures are probed in order; the first field present decides the kind.
var signatures = []struct {
	field string
	kind  Kind
}{
	{"temp", KindWeather},
	{"events", KindCalendar},
	{"items", KindNews},
	{"results", KindCustom},
}

// Decode parses a JSON provider document into a Result. The kind is taken
// from the first signature field present, in the order temp, events, items,
// results; a field set to null still counts as present. Documents with
// none of them, and the JSON value null, decode to a KindNone result.
//
// Comments and trailing commas are accepted.
func Decode(data []byte) (*Result, error) {
	data = bytes.TrimSpace(jsonc.ToJSON(data))
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return &Result{Kind: KindNone}, nil
	}
	if data[0] != '{' {
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
		}
		return &Result{Kind: KindNone}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	kind := KindNone
	for _, sig := range signatures {
		if _, ok := fields[sig.field]; ok {
			kind = sig.kind
			break
		}
	}
	return decodeKind(data, kind)
}

func decodeKind(data []byte, kind Kind) (*Result, error) {
	res := &Result{Kind: kind}
	var err error
	switch kind {
	case KindWeather:
		var w weatherDoc
		err = json.Unmarshal(data, &w)
		res.Weather = w.weather()
	case KindCalendar:
		res.Calendar = &Calendar{}
		err = json.Unmarshal(data, res.Calendar)
		res.Calendar.dropUndated()
	case KindNews:
		res.News = &News{}
		err = json.Unmarshal(data, res.News)
		if res.News.Items == nil {
			res.News.Items = []NewsItem{}
		}
	case KindCustom:
		res.Custom = &Custom{}
		err = json.Unmarshal(data, res.Custom)
		if res.Custom.Results == nil {
			res.Custom.Results = []CustomResult{}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("plugin: decode %s: %w", kind, err)
	}
	return res, nil
}

// weatherDoc tolerates a null temperature, which still selects the
// weather kind.
type weatherDoc struct {
	Weather
	Temp *float64 `json:"temp"`
}

func (d weatherDoc) weather() *Weather {
	w := d.Weather
	if d.Temp != nil {
		w.Temp = *d.Temp
	}
	return &w
}

// dropUndated removes events without a usable start time. Count follows
// the events that remain when any were removed.
func (c *Calendar) dropUndated() {
	kept := make([]Event, 0, len(c.Events))
	for _, ev := range c.Events {
		if !ev.Start.IsZero() {
			kept = append(kept, ev)
		}
	}
	if n := len(c.Events) - len(kept); n > 0 {
		inkframe.Logger().Debug("calendar events dropped", "reason", "no start time", "count", n)
		c.Count = len(kept)
	}
	c.Events = kept
}

// timeLayouts are tried in order for event times. Times without a zone
// are UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(raw json.RawMessage) (time.Time, bool) {
	s := strings.TrimSpace(str(raw))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// str returns raw as a string, or "" when it holds anything but a JSON
// string.
func str(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// eventDoc is an event as providers send it, before its fields are
// checked.
type eventDoc struct {
	Start       json.RawMessage `json:"start"`
	End         json.RawMessage `json:"end"`
	Title       json.RawMessage `json:"title"`
	Location    json.RawMessage `json:"location"`
	Description json.RawMessage `json:"description"`
}

// UnmarshalJSON decodes an event field by field. Text fields of the wrong
// type become empty and times that do not parse are left zero, so one bad
// entry never fails its document. An entry that is not an object decodes
// to the zero Event.
func (e *Event) UnmarshalJSON(data []byte) error {
	var d eventDoc
	if err := json.Unmarshal(data, &d); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			*e = Event{}
			return nil
		}
		return err
	}
	*e = Event{
		Title:       str(d.Title),
		Location:    str(d.Location),
		Description: str(d.Description),
	}
	e.Start, _ = parseTime(d.Start)
	if end, ok := parseTime(d.End); ok {
		e.End = &end
	}
	return nil
}

type newsDoc struct {
	Title       json.RawMessage `json:"title"`
	Link        json.RawMessage `json:"link"`
	PubDate     json.RawMessage `json:"pubDate"`
	Source      json.RawMessage `json:"source"`
	Description json.RawMessage `json:"description"`
}

// UnmarshalJSON decodes a news item leniently, like Event.UnmarshalJSON.
func (n *NewsItem) UnmarshalJSON(data []byte) error {
	var d newsDoc
	if err := json.Unmarshal(data, &d); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			*n = NewsItem{}
			return nil
		}
		return err
	}
	*n = NewsItem{
		Title:       str(d.Title),
		Link:        str(d.Link),
		PubDate:     str(d.PubDate),
		Source:      str(d.Source),
		Description: str(d.Description),
	}
	return nil
}

// DecodeYAML parses a YAML provider document. It is converted to JSON
// first so both formats follow the same rules.
func DecodeYAML(data []byte) (*Result, error) {
	j, err := yamlToJSON(data)
	if err != nil {
		return nil, err
	}
	return Decode(j)
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	j, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return j, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ReadFile reads one provider document, choosing YAML or JSON by
// extension.
func ReadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("plugin: reading %s: %w", path, err)
	}
	var res *Result
	if isYAML(path) {
		res, err = DecodeYAML(data)
	} else {
		res, err = Decode(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// LoadDocument reads a combined document mapping plugin names to provider
// documents, as JSON or YAML by extension.
func LoadDocument(path string) (map[string]*Result, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("plugin: reading %s: %w", path, err)
	}
	if isYAML(path) {
		if data, err = yamlToJSON(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return ParseDocument(data)
}

// ParseDocument decodes a combined JSON document mapping plugin names to
// provider documents.
func ParseDocument(data []byte) (map[string]*Result, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	out := make(map[string]*Result, len(raw))
	for name, doc := range raw {
		res, err := Decode(doc)
		if err != nil {
			return nil, fmt.Errorf("plugin %q: %w", name, err)
		}
		out[name] = res
	}
	return out, nil
}
