package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Parse reads a region from exactly four integer arguments: x, y, width, height.
func Parse(args []string) (Rect, error) {
	if len(args) != 4 {
		return Rect{}, fmt.Errorf("expected 4 arguments (x y w h), got %d", len(args))
	}

	names := [4]string{"x", "y", "w", "h"}
	var vals [4]int
	for i, arg := range args {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return Rect{}, fmt.Errorf("%s: %q is not an integer", names[i], arg)
		}
		vals[i] = n
	}

	r := Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
	if err := r.Validate(); err != nil {
		return Rect{}, err
	}
	return r, nil
}

// X protocol coordinates are INT16 on the wire.
const (
	MinCoord = math.MinInt16
	MaxCoord = math.MaxInt16
)

// Validate checks that the rect has a drawable size and that every edge
// fits in X protocol coordinates.
func (r Rect) Validate() error {
	if r.Width <= 0 || r.Width > MaxCoord {
		return fmt.Errorf("w must be between 1 and %d, got %d", MaxCoord, r.Width)
	}
	if r.Height <= 0 || r.Height > MaxCoord {
		return fmt.Errorf("h must be between 1 and %d, got %d", MaxCoord, r.Height)
	}
	if r.X < MinCoord || r.X > MaxCoord {
		return fmt.Errorf("x must be between %d and %d, got %d", MinCoord, MaxCoord, r.X)
	}
	if r.Y < MinCoord || r.Y > MaxCoord {
		return fmt.Errorf("y must be between %d and %d, got %d", MinCoord, MaxCoord, r.Y)
	}
	if r.X+r.Width > MaxCoord {
		return fmt.Errorf("x+w must be <= %d, got %d", MaxCoord, r.X+r.Width)
	}
	if r.Y+r.Height > MaxCoord {
		return fmt.Errorf("y+h must be <= %d, got %d", MaxCoord, r.Y+r.Height)
	}
	return nil
}

// String formats the rect as an X geometry string (WxH+X+Y).
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Width, r.Height, r.X, r.Y)
}

// Outline splits the rect into the bars of an outline drawn inside it:
// top, bottom, left, right. Side bars are omitted when top and bottom
// already cover the full height.
func (r Rect) Outline(thickness int) []Rect {
	t := ClampThickness(thickness, r.Width, r.Height)

	bars := []Rect{
		{X: r.X, Y: r.Y, Width: r.Width, Height: t},
	}
	if r.Height > t {
		bars = append(bars, Rect{X: r.X, Y: r.Y + r.Height - t, Width: r.Width, Height: t})
	}

	inner := r.Height - 2*t
	if inner <= 0 {
		return bars
	}
	bars = append(bars, Rect{X: r.X, Y: r.Y + t, Width: t, Height: inner})
	if r.Width > t {
		bars = append(bars, Rect{X: r.X + r.Width - t, Y: r.Y + t, Width: t, Height: inner})
	}
	return bars
}

// ClampThickness bounds an outline thickness to [1, min(w,h)/2] so opposing
// bars never overlap. Regions one pixel wide or tall still get thickness 1.
func ClampThickness(thickness, width, height int) int {
	limit := width
	if height < limit {
		limit = height
	}
	limit /= 2
	if thickness > limit {
		thickness = limit
	}
	if thickness < 1 {
		thickness = 1
	}
	return thickness
}

// Translate returns the rect moved so its origin is relative to (ox, oy).
func (r Rect) Translate(ox, oy int) Rect {
	return Rect{X: r.X - ox, Y: r.Y - oy, Width: r.Width, Height: r.Height}
}

// Intersects reports whether the two rects share any area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width &&
		r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height &&
		r.Y+r.Height > o.Y
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X &&
		o.Y >= r.Y &&
		o.X+o.Width <= r.X+r.Width &&
		o.Y+o.Height <= r.Y+r.Height
}
