package recording

import (
	"errors"
	"image"
	"testing"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/text"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindText, "Text"},
		{KindRect, "Rect"},
		{KindLine, "Line"},
		{Kind(9), "Kind(9)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestRecorderFinish(t *testing.T) {
	rec := NewRecorder(800, 480)
	rec.FillRect(0, 0, 800, 50, inkframe.Black)
	rec.StrokeRect(10, 60, 380, 200, 2, inkframe.Black)
	rec.Line(0, 55, 799, 55, 1, inkframe.Black)
	rec.Text(20, 11, "Dashboard", 28, true, inkframe.White)
	rec.Add(Element{Kind: KindText, X: 20, Y: 100, Text: "wrapped text", FontSize: 16, Fill: inkframe.Black, MaxWidth: 120})

	if rec.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", rec.Len())
	}
	list := rec.Finish()
	if list.Width() != 800 || list.Height() != 480 {
		t.Errorf("list size = %dx%d", list.Width(), list.Height())
	}
	if list.Len() != 5 {
		t.Fatalf("list.Len() = %d, want 5", list.Len())
	}
	if list.Count(KindText) != 2 || list.Count(KindRect) != 2 || list.Count(KindLine) != 1 {
		t.Errorf("counts text=%d rect=%d line=%d", list.Count(KindText), list.Count(KindRect), list.Count(KindLine))
	}

	hdr := list.At(0)
	if !hdr.Filled || hdr.Fill != inkframe.Black || hdr.W != 800 {
		t.Errorf("header element = %+v", hdr)
	}
	border := list.At(1)
	if border.Filled || border.StrokeWidth != 2 {
		t.Errorf("border element = %+v", border)
	}
	if got := list.Texts(); len(got) != 2 || got[0] != "Dashboard" || got[1] != "wrapped text" {
		t.Errorf("Texts() = %q", got)
	}
	if list.At(4).MaxWidth != 120 {
		t.Errorf("MaxWidth = %d, want 120", list.At(4).MaxWidth)
	}
}

func TestDrawListElementsIsCopy(t *testing.T) {
	rec := NewRecorder(10, 10)
	rec.FillRect(0, 0, 1, 1, inkframe.Black)
	list := rec.Finish()

	els := list.Elements()
	els[0].W = 99
	if list.At(0).W != 1 {
		t.Error("modifying Elements() changed the draw list")
	}
}

func TestPlayback(t *testing.T) {
	rec := NewRecorder(100, 50)
	rec.FillRect(0, 0, 10, 10, inkframe.Black)
	rec.StrokeRect(0, 0, 10, 10, 1, inkframe.Black)
	rec.Line(0, 0, 5, 5, 1, inkframe.Black)
	rec.Text(0, 0, "", 16, false, inkframe.Black)
	rec.Text(0, 0, "hi", 16, false, inkframe.Black)
	list := rec.Finish()

	b := newMockBackend("mock", Options{})
	if err := list.Playback(b); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if b.beginCalls != 1 || b.endCalls != 1 {
		t.Errorf("begin=%d end=%d, want 1 each", b.beginCalls, b.endCalls)
	}
	if b.width != 100 || b.height != 50 {
		t.Errorf("Begin(%d, %d), want (100, 50)", b.width, b.height)
	}
	want := []string{"fill", "stroke", "line", "text:hi"}
	if len(b.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", b.calls, want)
	}
	for i := range want {
		if b.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", b.calls, want)
		}
	}
}

func TestPlaybackErrors(t *testing.T) {
	rec := NewRecorder(10, 10)
	rec.Add(Element{Kind: Kind(42)})
	b := newMockBackend("mock", Options{})
	if err := rec.Finish().Playback(b); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Playback error = %v, want ErrUnknownKind", err)
	}
	if b.endCalls != 0 {
		t.Error("End should not run after a failed element")
	}

	boom := errors.New("boom")
	rec = NewRecorder(10, 10)
	rec.Text(0, 0, "x", 12, false, inkframe.Black)
	b = newMockBackend("mock", Options{})
	b.textErr = boom
	if err := rec.Finish().Playback(b); !errors.Is(err, boom) {
		t.Errorf("Playback error = %v, want wrapped backend error", err)
	}
}

func TestElementBounds(t *testing.T) {
	m := text.ApproxMeasurer{}
	tests := []struct {
		name string
		e    Element
		want image.Rectangle
	}{
		{
			name: "rect",
			e:    Element{Kind: KindRect, X: 10, Y: 20, W: 30, H: 40},
			want: image.Rect(10, 20, 40, 60),
		},
		{
			name: "empty rect",
			e:    Element{Kind: KindRect, X: 10, Y: 20, W: 0, H: 40},
			want: image.Rectangle{},
		},
		{
			name: "line",
			e:    Element{Kind: KindLine, X1: 5, Y1: 8, X2: 1, Y2: 2},
			want: image.Rect(1, 2, 6, 9),
		},
		{
			name: "single line text",
			e:    Element{Kind: KindText, X: 0, Y: 0, Text: "hello", FontSize: 10},
			want: image.Rect(0, 0, 30, 10),
		},
		{
			name: "wrapped text",
			e:    Element{Kind: KindText, X: 0, Y: 0, Text: "hello world", FontSize: 10, MaxWidth: 30},
			want: image.Rect(0, 0, 30, 24),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Bounds(m); got != tt.want {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}
