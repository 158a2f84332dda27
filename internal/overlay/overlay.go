package overlay

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/regionmark/internal/config"
	"github.com/1broseidon/regionmark/internal/geometry"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
)

// overlayWindow is a single override-redirect window belonging to the overlay.
type overlayWindow struct {
	ID   xproto.Window
	Spec windowSpec
}

// Overlay is a translucent, always-on-top outline around a screen region.
type Overlay struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	cfg    *config.Config
	rect   geometry.Rect
	logger *slog.Logger

	windows []*overlayWindow
	gc      xproto.Gcontext

	mu        sync.Mutex
	lastRaise time.Time
	mapped    bool
	closed    bool

	// OnClosed runs when an overlay window is destroyed by someone else,
	// e.g. xkill. It is not called for Close.
	OnClosed func()
}

// New creates the overlay windows for rect without mapping them.
func New(xu *xgbutil.XUtil, root xproto.Window, rect geometry.Rect, cfg *config.Config, logger *slog.Logger) (*Overlay, error) {
	if err := rect.Validate(); err != nil {
		return nil, fmt.Errorf("invalid region: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	o := &Overlay{
		xu:     xu,
		root:   root,
		cfg:    cfg,
		rect:   rect,
		logger: logger,
	}

	specs := planWindows(rect, cfg)
	for _, spec := range specs {
		wid, err := o.createOverrideRedirectWindow(spec)
		if err != nil {
			o.Close()
			return nil, err
		}
		o.windows = append(o.windows, &overlayWindow{ID: wid, Spec: spec})
	}

	if cfg.Style == config.StyleFilled {
		if err := o.createGC(o.windows[0].ID); err != nil {
			o.Close()
			return nil, err
		}
	}

	for _, win := range o.windows {
		o.setHints(win.ID)
	}
	if cfg.ClickThrough {
		o.makeClickThrough()
	}
	o.connectHandlers()

	logger.Debug("overlay created", "geometry", rect.String(), "windows", len(o.windows), "style", cfg.Style)
	return o, nil
}

// Rect returns the overlay's outer geometry.
func (o *Overlay) Rect() geometry.Rect {
	return o.rect
}

// Show maps the overlay windows and raises them above everything else.
func (o *Overlay) Show() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	for _, win := range o.windows {
		xproto.MapWindow(o.xu.Conn(), win.ID)
	}
	o.mapped = true
	o.raiseLocked(time.Now())
}

// Raise restacks every overlay window above its siblings.
func (o *Overlay) Raise() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.raiseLocked(time.Now())
}

func (o *Overlay) raiseLocked(now time.Time) {
	for _, win := range o.windows {
		xproto.ConfigureWindow(
			o.xu.Conn(),
			win.ID,
			xproto.ConfigWindowStackMode,
			[]uint32{xproto.StackModeAbove},
		)
	}
	o.lastRaise = now
}

// Close destroys all overlay windows. Calling it again is a no-op.
func (o *Overlay) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true

	conn := o.xu.Conn()
	for _, win := range o.windows {
		xevent.Detach(o.xu, win.ID)
		if win.ID != 0 {
			xproto.DestroyWindow(conn, win.ID)
		}
	}
	if o.gc != 0 {
		xproto.FreeGC(conn, o.gc)
		o.gc = 0
	}
	o.windows = nil
	o.mapped = false
	o.xu.Sync()
}

// createOverrideRedirectWindow creates a window that bypasses the window
// manager, so it gets no decorations and is never moved or focused.
func (o *Overlay) createOverrideRedirectWindow(spec windowSpec) (xproto.Window, error) {
	conn := o.xu.Conn()
	screen := o.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}

	mask, values := createWindowValues(spec.Background)
	b := spec.Bounds
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		o.root,
		int16(b.X), int16(b.Y),
		uint16(b.Width), uint16(b.Height),
		0, // border_width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		mask,
		values,
	).Check()
	if err != nil {
		return 0, fmt.Errorf("failed to create overlay window %s: %w", b, err)
	}
	return wid, nil
}

func (o *Overlay) createGC(wid xproto.Window) error {
	conn := o.xu.Conn()

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return fmt.Errorf("failed to allocate gc id: %w", err)
	}
	err = xproto.CreateGCChecked(
		conn,
		gc,
		xproto.Drawable(wid),
		xproto.GcForeground|xproto.GcGraphicsExposures,
		[]uint32{
			o.cfg.OutlinePixel(), // foreground
			0,                    // graphics_exposures=false
		},
	).Check()
	if err != nil {
		return fmt.Errorf("failed to create gc: %w", err)
	}
	o.gc = gc
	return nil
}

// setHints labels the window for compositors and tools like xprop. Failures
// only affect cosmetics, so they are logged and otherwise ignored.
func (o *Overlay) setHints(wid xproto.Window) {
	title := o.cfg.Title

	if err := icccm.WmNameSet(o.xu, wid, title); err != nil {
		o.logger.Debug("failed to set WM_NAME", "window", wid, "error", err)
	}
	if err := ewmh.WmNameSet(o.xu, wid, title); err != nil {
		o.logger.Debug("failed to set _NET_WM_NAME", "window", wid, "error", err)
	}
	if err := icccm.WmClassSet(o.xu, wid, &icccm.WmClass{Instance: title, Class: title}); err != nil {
		o.logger.Debug("failed to set WM_CLASS", "window", wid, "error", err)
	}
	if err := ewmh.WmWindowTypeSet(o.xu, wid, []string{"_NET_WM_WINDOW_TYPE_NOTIFICATION"}); err != nil {
		o.logger.Debug("failed to set window type", "window", wid, "error", err)
	}
	if err := ewmh.WmStateSet(o.xu, wid, overlayStates); err != nil {
		o.logger.Debug("failed to set window state", "window", wid, "error", err)
	}
	if err := ewmh.WmWindowOpacitySet(o.xu, wid, o.cfg.Opacity); err != nil {
		o.logger.Warn("failed to set window opacity", "window", wid, "error", err)
	}
}

var overlayStates = []string{
	"_NET_WM_STATE_ABOVE",
	"_NET_WM_STATE_STICKY",
	"_NET_WM_STATE_SKIP_TASKBAR",
	"_NET_WM_STATE_SKIP_PAGER",
}

// makeClickThrough sets an empty input shape on every window so pointer
// events go to whatever is underneath.
func (o *Overlay) makeClickThrough() {
	conn := o.xu.Conn()
	if err := shape.Init(conn); err != nil {
		o.logger.Warn("SHAPE extension unavailable; overlay will intercept clicks", "error", err)
		return
	}
	for _, win := range o.windows {
		err := shape.RectanglesChecked(
			conn,
			shape.SoSet,
			shape.SkInput,
			xproto.ClipOrderingUnsorted,
			win.ID,
			0, 0,
			nil,
		).Check()
		if err != nil {
			o.logger.Warn("failed to clear input shape", "window", win.ID, "error", err)
		}
	}
}

func (o *Overlay) connectHandlers() {
	for _, win := range o.windows {
		win := win

		if len(win.Spec.Paint) > 0 {
			xevent.ExposeFun(func(xu *xgbutil.XUtil, ev xevent.ExposeEvent) {
				if ev.Count != 0 {
					return
				}
				o.paint(win)
			}).Connect(o.xu, win.ID)
		}

		if o.cfg.KeepAbove {
			xevent.VisibilityNotifyFun(func(xu *xgbutil.XUtil, ev xevent.VisibilityNotifyEvent) {
				o.mu.Lock()
				defer o.mu.Unlock()
				if o.closed || !o.mapped {
					return
				}
				now := time.Now()
				if shouldRaise(ev.State, now, o.lastRaise) {
					o.logger.Debug("overlay obscured, raising", "window", win.ID, "state", ev.State)
					o.raiseLocked(now)
				}
			}).Connect(o.xu, win.ID)
		}

		xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
			o.mu.Lock()
			closed := o.closed
			o.mu.Unlock()
			if closed {
				return
			}
			o.logger.Info("overlay window destroyed externally", "window", ev.Window)
			if o.OnClosed != nil {
				o.OnClosed()
			}
		}).Connect(o.xu, win.ID)
	}
}

func (o *Overlay) paint(win *overlayWindow) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || o.gc == 0 {
		return
	}
	xproto.PolyFillRectangle(o.xu.Conn(), xproto.Drawable(win.ID), o.gc, toXRectangles(win.Spec.Paint))
}
