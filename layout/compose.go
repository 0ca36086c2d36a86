package layout

import (
	"strings"
	"time"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/plugin"
	"github.com/inkframe/inkframe/recording"
	"github.com/inkframe/inkframe/text"
)

// Header and zone geometry, in pixels.
const (
	HeaderHeight = 50
	HeaderInset  = 20
	BottomMargin = 10

	// ZonePadding is the inset of block content from the zone border.
	// Large weather blocks use LargeWeatherPadding, and Validate holds
	// every large zone to it.
	ZonePadding         = 15
	LargeWeatherPadding = 40

	headerTitleSize = 28
	headerTimeSize  = 16
	borderWidth     = 2
)

// Timestamp layouts of the header and of calendar events.
const (
	HeaderTimeFormat = "02 Jan, 15:04"
	EventTimeFormat  = "2 Jan, 15:04"
)

// DefaultTimezone is the reference timezone of timestamps.
const DefaultTimezone = "Australia/Melbourne"

// Compositor turns a template and plugin data into a draw list. It holds
// no per-call state and is safe for concurrent use.
type Compositor struct {
	width, height int
	measurer      text.Measurer
	loc           *time.Location
}

// NewCompositor returns a compositor for a width × height canvas. A nil
// location means UTC.
func NewCompositor(width, height int, m text.Measurer, loc *time.Location) *Compositor {
	if m == nil {
		m = text.ApproxMeasurer{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Compositor{width: width, height: height, measurer: m, loc: loc}
}

// Measurer returns the measurer used for wrapping.
func (c *Compositor) Measurer() text.Measurer {
	return c.measurer
}

// Compose records the header and every zone of t. Zones whose plugin has
// no usable data show a placeholder. List blocks stop adding rows once the
// next row would cross the bottom margin of the zone.
func (c *Compositor) Compose(t Template, data map[string]*plugin.Result, now time.Time) *recording.DrawList {
	rec := recording.NewRecorder(c.width, c.height)
	c.header(rec, t.title(), now)

	for _, z := range t.Zones {
		res := data[z.Plugin]
		b := c.block(rec, z)
		switch plugin.KindOf(res) {
		case plugin.KindWeather:
			b.weather(res.Weather)
		case plugin.KindCalendar:
			b.calendar(res.Calendar)
		case plugin.KindNews:
			b.news(res.News)
		case plugin.KindCustom:
			b.custom(res.Custom)
		default:
			b.placeholder()
		}
	}

	list := rec.Finish()
	inkframe.Logger().Debug("layout composed",
		"layout", t.Name, "zones", len(t.Zones), "elements", list.Len())
	return list
}

// header draws the bar, the title and the timestamp. The title keeps the
// first line that fits left of the timestamp, HeaderInset away from it.
func (c *Compositor) header(rec *recording.Recorder, title string, now time.Time) {
	rec.FillRect(0, 0, c.width, HeaderHeight, inkframe.Black)

	stamp := now.In(c.loc).Format(HeaderTimeFormat)
	w := int(c.measurer.Measure(stamp, headerTimeSize, false) + 0.5)

	title = firstLine(c.measurer, title, headerTitleSize, true, c.width-w-3*HeaderInset)
	rec.Text(HeaderInset, (HeaderHeight-text.LineHeight(headerTitleSize))/2,
		title, headerTitleSize, true, inkframe.White)
	rec.Text(c.width-HeaderInset-w, (HeaderHeight-text.LineHeight(headerTimeSize))/2,
		stamp, headerTimeSize, false, inkframe.White)
}

// firstLine returns the first line of s wrapped to width, or "" when not
// even that fits.
func firstLine(m text.Measurer, s string, size float64, bold bool, width int) string {
	if width <= 0 {
		return ""
	}
	lines := text.Wrap(s, float64(width), size, bold, m)
	if len(lines) == 0 || m.Measure(lines[0], size, bold) > float64(width) {
		return ""
	}
	return lines[0]
}

func (c *Compositor) block(rec *recording.Recorder, z Zone) *block {
	return &block{
		rec:   rec,
		m:     c.measurer,
		loc:   c.loc,
		zone:  z,
		y:     z.Y,
		limit: z.Y + z.Height - BottomMargin,
	}
}

// block writes one zone top to bottom.
type block struct {
	rec  *recording.Recorder
	m    text.Measurer
	loc  *time.Location
	zone Zone

	pad   int
	y     int
	limit int
}

// pick returns large when the zone is large, normal otherwise.
func pick[T any](z Zone, normal, large T) T {
	if z.Large {
		return large
	}
	return normal
}

func (b *block) border(pad int) {
	z := b.zone
	b.rec.StrokeRect(z.X, z.Y, z.Width, z.Height, borderWidth, inkframe.Black)
	b.pad = pad
	b.y = z.Y + pad
}

func (b *block) left() int  { return b.zone.X + b.pad }
func (b *block) inner() int { return b.zone.Width - 2*b.pad }

func (b *block) fits(h int) bool {
	return b.y+h <= b.limit
}

// wrap returns at most n lines of s broken to width. It stops before the
// first line that is still wider than width, which happens when a single
// rune does not fit.
func (b *block) wrap(s string, size float64, bold bool, width, n int) []string {
	if strings.TrimSpace(s) == "" || n <= 0 || width <= 0 {
		return nil
	}
	lines := text.Wrap(s, float64(width), size, bold, b.m)
	if len(lines) > n {
		lines = lines[:n]
	}
	for i, line := range lines {
		if b.m.Measure(line, size, bold) > float64(width) {
			return lines[:i]
		}
	}
	return lines
}

// lines draws at most n wrapped lines of s at the cursor, indented by
// indent, and advances past them. It stops at the first line that does not
// fit.
func (b *block) lines(s string, size float64, bold bool, indent, n int) int {
	lh := text.LineHeight(size)
	drawn := 0
	for _, line := range b.wrap(s, size, bold, b.inner()-indent, n) {
		if !b.fits(lh) {
			break
		}
		b.rec.Text(b.left()+indent, b.y, line, size, bold, inkframe.Black)
		b.y += lh
		drawn++
	}
	return drawn
}

// at moves the cursor to off below the padded top and draws s there.
func (b *block) at(off int, s string, size float64, bold bool, n int) {
	b.y = b.zone.Y + b.pad + off
	b.lines(s, size, bold, 0, n)
}

func (b *block) placeholder() {
	z := b.zone
	size := pick(z, 16.0, 24.0)
	b.pad = 10
	b.y = z.Y + b.pad
	b.lines("No data", size, false, 0, 1)
}

// title draws the bold block title and steps to the first row.
func (b *block) title(s string) {
	top := b.y
	b.lines(s, pick(b.zone, 18.0, 24.0), true, 0, 1)
	b.y = top + pick(b.zone, 28, 35)
}

func (b *block) gap() int {
	return pick(b.zone, 8, 12)
}

// row draws one list row if all of its lines fit. The row is drawn by
// emit, which receives the top of the row.
func (b *block) row(height int, emit func(top int)) bool {
	if height <= 0 {
		return true
	}
	if !b.fits(height) {
		return false
	}
	emit(b.y)
	b.y += height + b.gap()
	return true
}
