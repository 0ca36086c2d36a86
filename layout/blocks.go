package layout

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/plugin"
	"github.com/inkframe/inkframe/text"
)

// Block limits.
const (
	MaxEvents      = 4
	MaxEventsLarge = 8
	MaxNews        = 3
	MaxNewsLarge   = 6

	// MaxPayloadRunes caps the text of one custom result.
	MaxPayloadRunes = 100

	eventTitleLines  = 2
	newsTitleLines   = 3
	payloadLines     = 2
	newsIndent       = 10
	bulletSize       = 4
	eventTimeSize    = 14
	eventTimeAdvance = 18
	bodySize         = 16
)

// Fallback texts.
const (
	UntitledEvent = "Untitled Event"
	UntitledNews  = "Untitled"
	missing       = "--"
)

func (b *block) weather(w *plugin.Weather) {
	b.border(pick(b.zone, ZonePadding, LargeWeatherPadding))

	loc := w.Location
	if loc == "" {
		loc = "Unknown"
	}
	temp := fmt.Sprintf("%d°C", int(math.Round(w.Temp)))
	desc := capitalize(w.Description)

	if !b.zone.Large {
		b.at(0, loc, 16, true, 1)
		b.at(40, temp, 24, true, 1)
		b.at(90, desc, 16, false, 2)
		return
	}

	b.at(0, loc, 24, true, 1)
	b.at(60, temp, 48, true, 1)
	b.at(140, desc, 20, false, 1)
	b.at(180, "Feels like: "+degrees(w.FeelsLike), bodySize, false, 1)
	b.at(210, "High: "+degrees(w.TempMax)+" / Low: "+degrees(w.TempMin), bodySize, false, 1)
	b.at(240, "Humidity: "+reading(w.Humidity, "%")+" / Wind: "+reading(w.WindSpeed, " m/s"), bodySize, false, 1)
}

func (b *block) calendar(c *plugin.Calendar) {
	b.border(ZonePadding)
	b.title("Upcoming Events")

	if len(c.Events) == 0 {
		b.lines("No upcoming events", bodySize, false, 0, 1)
		return
	}

	lh := text.LineHeight(bodySize)
	for i, ev := range c.Events {
		if i == pick(b.zone, MaxEvents, MaxEventsLarge) {
			break
		}
		title := ev.Title
		if strings.TrimSpace(title) == "" {
			title = UntitledEvent
		}
		lines := b.wrap(title, bodySize, true, b.inner(), eventTitleLines)
		when := ev.Start.In(b.loc).Format(EventTimeFormat)
		if len(lines) == 0 || b.m.Measure(when, eventTimeSize, false) > float64(b.inner()) {
			break
		}

		ok := b.row(eventTimeAdvance+len(lines)*lh, func(top int) {
			b.rec.Text(b.left(), top, when, eventTimeSize, false, inkframe.Black)
			for j, line := range lines {
				b.rec.Text(b.left(), top+eventTimeAdvance+j*lh, line, bodySize, true, inkframe.Black)
			}
		})
		if !ok {
			break
		}
	}
}

func (b *block) news(n *plugin.News) {
	b.border(ZonePadding)
	b.title("Latest News")

	if len(n.Items) == 0 {
		b.lines("No news items", bodySize, false, 0, 1)
		return
	}

	size := pick(b.zone, 14.0, 16.0)
	lh := text.LineHeight(size)
	for i, item := range n.Items {
		if i == pick(b.zone, MaxNews, MaxNewsLarge) {
			break
		}
		title := item.Title
		if strings.TrimSpace(title) == "" {
			title = UntitledNews
		}
		lines := b.wrap(title, size, false, b.inner()-newsIndent, newsTitleLines)

		ok := b.row(len(lines)*lh, func(top int) {
			b.rec.FillRect(b.left(), top+(lh-bulletSize)/2, bulletSize, bulletSize, inkframe.Black)
			for j, line := range lines {
				b.rec.Text(b.left()+newsIndent, top+j*lh, line, size, false, inkframe.Black)
			}
		})
		if !ok {
			break
		}
	}
}

func (b *block) custom(c *plugin.Custom) {
	b.border(ZonePadding)
	b.title("Custom Data")

	var results []plugin.CustomResult
	for _, r := range c.Results {
		if r.OK() {
			results = append(results, r)
		}
	}
	if len(results) == 0 {
		b.lines("No custom data", bodySize, false, 0, 1)
		return
	}

	nameLH := text.LineHeight(bodySize)
	lh := text.LineHeight(eventTimeSize)
	for _, r := range results {
		name := b.wrap(r.Name, bodySize, true, b.inner(), 1)
		payload := b.wrap(plugin.Truncate(r.Payload(), MaxPayloadRunes), eventTimeSize, false, b.inner(), payloadLines)

		ok := b.row(len(name)*nameLH+len(payload)*lh, func(top int) {
			for _, line := range name {
				b.rec.Text(b.left(), top, line, bodySize, true, inkframe.Black)
				top += nameLH
			}
			for _, line := range payload {
				b.rec.Text(b.left(), top, line, eventTimeSize, false, inkframe.Black)
				top += lh
			}
		})
		if !ok {
			break
		}
	}
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func degrees(v *float64) string {
	if v == nil {
		return missing
	}
	return fmt.Sprintf("%d°C", int(math.Round(*v)))
}

func reading(v *float64, unit string) string {
	if v == nil {
		return missing
	}
	return fmt.Sprintf("%g%s", *v, unit)
}
