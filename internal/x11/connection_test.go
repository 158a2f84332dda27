package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestCompositorSelection(t *testing.T) {
	if got := compositorSelection(0); got != "_NET_WM_CM_S0" {
		t.Fatalf("unexpected selection name %q", got)
	}
	if got := compositorSelection(2); got != "_NET_WM_CM_S2" {
		t.Fatalf("unexpected selection name %q", got)
	}
}

func TestIsQuitMessage(t *testing.T) {
	const atom = xproto.Atom(321)

	ev := quitMessage(xproto.Window(7), atom)
	if !isQuitMessage(&ev, atom) {
		t.Fatalf("expected quit message to be recognized: %+v", ev)
	}
	if ev.Window != 7 {
		t.Fatalf("expected message addressed to window 7, got %d", ev.Window)
	}

	other := quitMessage(xproto.Window(7), xproto.Atom(99))
	if isQuitMessage(&other, atom) {
		t.Fatalf("message with a different type must not quit")
	}
	if isQuitMessage(nil, atom) {
		t.Fatalf("nil event must not quit")
	}
	if isQuitMessage(&ev, 0) {
		t.Fatalf("unset quit atom must never match")
	}
}
