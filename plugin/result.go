package plugin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Kind identifies which variant a Result holds.
type Kind uint8

const (
	// KindNone means no usable data; zones show a placeholder.
	KindNone Kind = iota

	// KindWeather holds current conditions.
	KindWeather

	// KindCalendar holds upcoming events.
	KindCalendar

	// KindNews holds headlines.
	KindNews

	// KindCustom holds results of user-defined endpoints.
	KindCustom
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindWeather:
		return "weather"
	case KindCalendar:
		return "calendar"
	case KindNews:
		return "news"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Weather is the payload of a weather source. Optional readings are nil
// when the provider did not report them.
type Weather struct {
	Location    string   `json:"location"`
	Temp        float64  `json:"temp"`
	FeelsLike   *float64 `json:"feels_like,omitempty"`
	TempMin     *float64 `json:"temp_min,omitempty"`
	TempMax     *float64 `json:"temp_max,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Pressure    *float64 `json:"pressure,omitempty"`
	Description string   `json:"description"`
	Icon        string   `json:"icon,omitempty"`
	WindSpeed   *float64 `json:"wind_speed,omitempty"`
	Clouds      *float64 `json:"clouds,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`
}

// Event is one calendar entry. Providers deliver events already filtered
// to upcoming ones and sorted by start time.
type Event struct {
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	Title       string     `json:"title"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
}

// Calendar is the payload of a calendar source.
type Calendar struct {
	Events []Event `json:"events"`
	Count  int     `json:"count"`
}

// NewsItem is one headline.
type NewsItem struct {
	Title       string `json:"title"`
	Link        string `json:"link,omitempty"`
	PubDate     string `json:"pubDate,omitempty"`
	Source      string `json:"source,omitempty"`
	Description string `json:"description,omitempty"`
}

// News is the payload of a news source.
type News struct {
	Items []NewsItem `json:"items"`
	Count int        `json:"count"`
}

// Status values of a CustomResult.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// CustomResult is the outcome of one user-defined endpoint.
type CustomResult struct {
	Name   string          `json:"name"`
	Data   json.RawMessage `json:"data"`
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
}

// OK reports whether the endpoint succeeded and returned a payload.
func (c CustomResult) OK() bool {
	d := bytes.TrimSpace(c.Data)
	return c.Status == StatusSuccess && len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// Payload returns the data as display text: JSON strings verbatim,
// anything else as compact JSON.
func (c CustomResult) Payload() string {
	d := bytes.TrimSpace(c.Data)
	if len(d) > 0 && d[0] == '"' {
		var s string
		if err := json.Unmarshal(d, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, d); err != nil {
		return string(d)
	}
	return buf.String()
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// Custom is the payload of a custom source.
type Custom struct {
	Results   []CustomResult `json:"results"`
	Timestamp string         `json:"timestamp,omitempty"`
}

// Result is the data one source produced for a frame. Exactly the field
// matching Kind is set. A nil *Result behaves like KindNone.
type Result struct {
	Kind     Kind
	Weather  *Weather
	Calendar *Calendar
	News     *News
	Custom   *Custom
}

// NewWeather returns a weather result.
func NewWeather(w Weather) *Result {
	return &Result{Kind: KindWeather, Weather: &w}
}

// NewCalendar returns a calendar result.
func NewCalendar(events ...Event) *Result {
	if events == nil {
		events = []Event{}
	}
	return &Result{Kind: KindCalendar, Calendar: &Calendar{Events: events, Count: len(events)}}
}

// NewNews returns a news result.
func NewNews(items ...NewsItem) *Result {
	if items == nil {
		items = []NewsItem{}
	}
	return &Result{Kind: KindNews, News: &News{Items: items, Count: len(items)}}
}

// NewCustom returns a custom result.
func NewCustom(results ...CustomResult) *Result {
	if results == nil {
		results = []CustomResult{}
	}
	return &Result{Kind: KindCustom, Custom: &Custom{Results: results}}
}

// KindOf returns the kind of r, treating nil as KindNone.
func KindOf(r *Result) Kind {
	if r == nil {
		return KindNone
	}
	return r.Kind
}

// MarshalJSON encodes the payload in the provider's document shape.
func (r *Result) MarshalJSON() ([]byte, error) {
	switch KindOf(r) {
	case KindWeather:
		return json.Marshal(r.Weather)
	case KindCalendar:
		return json.Marshal(r.Calendar)
	case KindNews:
		return json.Marshal(r.News)
	case KindCustom:
		return json.Marshal(r.Custom)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a provider document, see Decode.
func (r *Result) UnmarshalJSON(data []byte) error {
	res, err := Decode(data)
	if err != nil {
		return err
	}
	if res == nil {
		*r = Result{}
		return nil
	}
	*r = *res
	return nil
}
