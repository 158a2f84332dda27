package overlay

import (
	"time"

	"github.com/1broseidon/regionmark/internal/config"
	"github.com/1broseidon/regionmark/internal/geometry"
	"github.com/BurntSushi/xgb/xproto"
)

// windowSpec describes one overlay window before it is created.
type windowSpec struct {
	Bounds     geometry.Rect   // Screen coordinates.
	Background uint32          // Background pixel.
	Paint      []geometry.Rect // Window-relative rects filled with the outline color on Expose.
}

// planWindows decides which windows draw the outline for rect.
//
// The outline style uses one window per bar so the interior has no window at
// all. The filled style uses a single window whose background is the fill
// color and paints the bars itself.
func planWindows(rect geometry.Rect, cfg *config.Config) []windowSpec {
	bars := rect.Outline(cfg.Thickness)

	if cfg.Style == config.StyleFilled {
		paint := make([]geometry.Rect, len(bars))
		for i, bar := range bars {
			paint[i] = bar.Translate(rect.X, rect.Y)
		}
		return []windowSpec{{
			Bounds:     rect,
			Background: cfg.FillPixel(),
			Paint:      paint,
		}}
	}

	specs := make([]windowSpec, len(bars))
	for i, bar := range bars {
		specs[i] = windowSpec{
			Bounds:     bar,
			Background: cfg.OutlinePixel(),
		}
	}
	return specs
}

const overlayEventMask = xproto.EventMaskExposure |
	xproto.EventMaskVisibilityChange |
	xproto.EventMaskStructureNotify

// createWindowValues returns the CreateWindow value mask and list. Values
// must follow the bit order of the mask (low to high).
func createWindowValues(background uint32) (uint32, []uint32) {
	mask := uint32(xproto.CwBackPixel | xproto.CwOverrideRedirect | xproto.CwEventMask)
	return mask, []uint32{
		background,       // back_pixel
		1,                // override_redirect=true
		overlayEventMask, // event_mask
	}
}

func toXRectangles(rects []geometry.Rect) []xproto.Rectangle {
	out := make([]xproto.Rectangle, 0, len(rects))
	for _, r := range rects {
		if r.Width <= 0 || r.Height <= 0 {
			continue
		}
		out = append(out, xproto.Rectangle{
			X:      int16(r.X),
			Y:      int16(r.Y),
			Width:  uint16(r.Width),
			Height: uint16(r.Height),
		})
	}
	return out
}

// minRaiseInterval limits restacking when another always-on-top window
// keeps raising itself over the overlay.
const minRaiseInterval = 250 * time.Millisecond

// shouldRaise reports whether a VisibilityNotify state warrants a restack.
func shouldRaise(state byte, now, lastRaise time.Time) bool {
	if state == xproto.VisibilityUnobscured {
		return false
	}
	return now.Sub(lastRaise) >= minRaiseInterval
}
