package geometry

import (
	"strings"
	"testing"
)

func TestParse_ValidArguments(t *testing.T) {
	r, err := Parse([]string{"100", "-20", "640", "480"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Rect{X: 100, Y: -20, Width: 640, Height: 480}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantSub string
	}{
		{name: "too few", args: []string{"1", "2", "3"}, wantSub: "expected 4 arguments"},
		{name: "too many", args: []string{"1", "2", "3", "4", "5"}, wantSub: "expected 4 arguments"},
		{name: "non integer", args: []string{"1", "two", "3", "4"}, wantSub: "y:"},
		{name: "float", args: []string{"1", "2", "3.5", "4"}, wantSub: "w:"},
		{name: "zero width", args: []string{"0", "0", "0", "10"}, wantSub: "w must be between 1"},
		{name: "negative height", args: []string{"0", "0", "10", "-1"}, wantSub: "h must be between 1"},
		{name: "width beyond int16", args: []string{"0", "0", "40000", "100"}, wantSub: "w must be between 1"},
		{name: "width wraps uint16", args: []string{"0", "0", "70000", "100"}, wantSub: "w must be between 1"},
		{name: "height beyond int16", args: []string{"0", "0", "10", "32768"}, wantSub: "h must be between 1"},
		{name: "x beyond int16", args: []string{"40000", "0", "10", "10"}, wantSub: "x must be between"},
		{name: "y below int16", args: []string{"0", "-40000", "10", "10"}, wantSub: "y must be between"},
		{name: "right edge overflows", args: []string{"30000", "0", "5000", "10"}, wantSub: "x+w must be <="},
		{name: "bottom edge overflows", args: []string{"0", "32767", "10", "1"}, wantSub: "y+h must be <="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			if err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("expected error containing %q, got %v", tt.wantSub, err)
			}
		})
	}
}

func TestParse_CoordinateLimits(t *testing.T) {
	tests := [][]string{
		{"-32768", "-32768", "32767", "32767"},
		{"32766", "0", "1", "1"},
		{"0", "0", "32767", "32767"},
	}
	for _, args := range tests {
		r, err := Parse(args)
		if err != nil {
			t.Fatalf("Parse(%v): unexpected error: %v", args, err)
		}
		for i, bar := range r.Outline(5) {
			if bar.X < MinCoord || bar.X+bar.Width > MaxCoord || bar.Y < MinCoord || bar.Y+bar.Height > MaxCoord {
				t.Fatalf("Parse(%v): bar %d outside X coordinate range: %+v", args, i, bar)
			}
		}
	}
}

func TestRectString_XGeometry(t *testing.T) {
	if got := (Rect{X: 10, Y: 20, Width: 300, Height: 200}).String(); got != "300x200+10+20" {
		t.Fatalf("unexpected geometry string %q", got)
	}
	if got := (Rect{X: -5, Y: 0, Width: 1, Height: 2}).String(); got != "1x2-5+0" {
		t.Fatalf("unexpected geometry string %q", got)
	}
}

func TestOutline_FourBarsCoverEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	bars := r.Outline(5)
	if len(bars) != 4 {
		t.Fatalf("expected 4 bars, got %d", len(bars))
	}

	want := []Rect{
		{X: 10, Y: 20, Width: 100, Height: 5},
		{X: 10, Y: 65, Width: 100, Height: 5},
		{X: 10, Y: 25, Width: 5, Height: 40},
		{X: 105, Y: 25, Width: 5, Height: 40},
	}
	for i := range want {
		if bars[i] != want[i] {
			t.Fatalf("bar %d: expected %+v, got %+v", i, want[i], bars[i])
		}
	}

	for i := range bars {
		if !r.Contains(bars[i]) {
			t.Fatalf("bar %d escapes rect: %+v", i, bars[i])
		}
		for j := i + 1; j < len(bars); j++ {
			if bars[i].Intersects(bars[j]) {
				t.Fatalf("bars %d and %d overlap: %+v %+v", i, j, bars[i], bars[j])
			}
		}
	}
}

func TestOutline_ThickOutlineIsClamped(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 6}
	bars := r.Outline(100)
	if len(bars) != 2 {
		t.Fatalf("expected top and bottom only, got %+v", bars)
	}
	if bars[0].Height != 3 || bars[1].Y != 3 {
		t.Fatalf("unexpected clamped bars: %+v", bars)
	}
}

func TestOutline_OnePixelRegions(t *testing.T) {
	tall := Rect{X: 0, Y: 0, Width: 1, Height: 10}
	bars := tall.Outline(5)
	for i := range bars {
		for j := i + 1; j < len(bars); j++ {
			if bars[i].Intersects(bars[j]) {
				t.Fatalf("bars %d and %d overlap: %+v", i, j, bars)
			}
		}
	}

	flat := Rect{X: 0, Y: 0, Width: 10, Height: 1}
	if got := flat.Outline(5); len(got) != 1 || got[0] != flat {
		t.Fatalf("expected single bar equal to rect, got %+v", got)
	}
}

func TestClampThickness(t *testing.T) {
	tests := []struct {
		thickness, w, h, want int
	}{
		{5, 100, 100, 5},
		{0, 100, 100, 1},
		{-3, 100, 100, 1},
		{60, 100, 100, 50},
		{4, 7, 100, 3},
		{4, 1, 1, 1},
	}
	for _, tt := range tests {
		if got := ClampThickness(tt.thickness, tt.w, tt.h); got != tt.want {
			t.Fatalf("ClampThickness(%d, %d, %d) = %d, want %d", tt.thickness, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestIntersectsAndTranslate(t *testing.T) {
	screen := Rect{X: 0, Y: 0, Width: 1920, Height: 1080}
	if (Rect{X: 1920, Y: 0, Width: 10, Height: 10}).Intersects(screen) {
		t.Fatalf("edge-adjacent rect must not intersect")
	}
	if !(Rect{X: -5, Y: -5, Width: 10, Height: 10}).Intersects(screen) {
		t.Fatalf("partially visible rect must intersect")
	}

	got := Rect{X: 15, Y: 25, Width: 3, Height: 4}.Translate(10, 20)
	if got != (Rect{X: 5, Y: 5, Width: 3, Height: 4}) {
		t.Fatalf("unexpected translate result %+v", got)
	}
}
