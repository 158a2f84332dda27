package x11

import (
	"fmt"

	"github.com/1broseidon/regionmark/internal/geometry"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	quitAtom xproto.Atom
}

const quitAtomName = "_REGIONMARK_QUIT"

// NewConnection connects to the named X display. An empty name uses $DISPLAY.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		if display == "" {
			return nil, fmt.Errorf("failed to connect to X11: %w", err)
		}
		return nil, fmt.Errorf("failed to connect to X11 display %q: %w", display, err)
	}

	atomReply, err := xproto.InternAtom(xu.Conn(), false, uint16(len(quitAtomName)), quitAtomName).Reply()
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("failed to intern %s: %w", quitAtomName, err)
	}

	c := &Connection{
		XUtil:    xu,
		Root:     xu.RootWin(),
		quitAtom: atomReply.Atom,
	}

	// The quit flag is only ever set from inside the event loop.
	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		if isQuitMessage(ev.ClientMessageEvent, c.quitAtom) {
			xevent.Quit(xu)
		}
	}).Connect(xu, xu.Dummy())

	return c, nil
}

// EventLoop starts the main X11 event loop (blocking)
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit asks a running EventLoop to return. It only sends a request to the
// server, so it is safe to call from any goroutine.
func (c *Connection) Quit() {
	ev := quitMessage(c.XUtil.Dummy(), c.quitAtom)
	xproto.SendEvent(c.XUtil.Conn(), false, c.XUtil.Dummy(), xproto.EventMaskNoEvent, string(ev.Bytes()))
}

func quitMessage(win xproto.Window, atom xproto.Atom) xproto.ClientMessageEvent {
	return xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
}

func isQuitMessage(ev *xproto.ClientMessageEvent, atom xproto.Atom) bool {
	return ev != nil && atom != 0 && ev.Format == 32 && ev.Type == atom
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// ScreenBounds returns the size of the default screen's root window.
func (c *Connection) ScreenBounds() geometry.Rect {
	screen := c.XUtil.Screen()
	return geometry.Rect{
		X:      0,
		Y:      0,
		Width:  int(screen.WidthInPixels),
		Height: int(screen.HeightInPixels),
	}
}

// WindowManagerName returns the EWMH name of the running window manager, or
// an empty string when none advertises itself.
func (c *Connection) WindowManagerName() string {
	name, err := ewmh.GetEwmhWM(c.XUtil)
	if err != nil {
		return ""
	}
	return name
}

// CompositorRunning reports whether a compositing manager owns the
// _NET_WM_CM_Sn selection. Without one, window opacity has no effect.
func (c *Connection) CompositorRunning() (bool, error) {
	name := compositorSelection(c.XUtil.Conn().DefaultScreen)
	atom, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return false, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	owner, err := xproto.GetSelectionOwner(c.XUtil.Conn(), atom.Atom).Reply()
	if err != nil {
		return false, fmt.Errorf("failed to query %s owner: %w", name, err)
	}
	return owner.Owner != 0, nil
}

func compositorSelection(screen int) string {
	return fmt.Sprintf("_NET_WM_CM_S%d", screen)
}
