package vector

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/recording"
)

// svgItem is one element of the scene as it was requested, kept for SVG
// output where the document renderer does its own rasterization.
type svgItem struct {
	kind recording.Kind

	x, y, w, h     int
	x1, y1, x2, y2 int

	text string
	size float64
	bold bool

	fill        inkframe.RGBA
	filled      bool
	strokeWidth int
}

func (b *Backend) svg() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		b.width, b.height, b.width, b.height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="#ffffff"/>`+"\n", b.width, b.height)

	for _, it := range b.items {
		switch it.kind {
		case recording.KindRect:
			if it.filled {
				fmt.Fprintf(&buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
					it.x, it.y, it.w, it.h, it.fill.Hex())
				continue
			}
			// SVG strokes are centered on the path; inset by half the width
			// so the outline stays inside the rectangle.
			half := float64(it.strokeWidth) / 2
			fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="%d"/>`+"\n",
				float64(it.x)+half, float64(it.y)+half,
				float64(it.w)-2*half, float64(it.h)-2*half,
				it.fill.Hex(), it.strokeWidth)
		case recording.KindLine:
			fmt.Fprintf(&buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%d" stroke-linecap="square"/>`+"\n",
				float64(it.x1)+0.5, float64(it.y1)+0.5, float64(it.x2)+0.5, float64(it.y2)+0.5,
				it.fill.Hex(), it.strokeWidth)
		case recording.KindText:
			weight := "normal"
			if it.bold {
				weight = "bold"
			}
			fmt.Fprintf(&buf, `  <text x="%d" y="%d" font-family="Go, sans-serif" font-size="%g" font-weight="%s" fill="%s">`,
				it.x, it.y, it.size, weight, it.fill.Hex())
			_ = xml.EscapeText(&buf, []byte(it.text))
			buf.WriteString("</text>\n")
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteSVG plays list back into a new vector backend and writes the scene
// to w as SVG.
func WriteSVG(w io.Writer, list *recording.DrawList, opts recording.Options) error {
	b := NewBackend(opts)
	if err := list.Playback(b); err != nil {
		return err
	}
	_, err := b.WriteTo(w)
	return err
}

// SaveSVG writes the SVG rendition of list to path.
func SaveSVG(path string, list *recording.DrawList, opts recording.Options) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := WriteSVG(f, list, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
