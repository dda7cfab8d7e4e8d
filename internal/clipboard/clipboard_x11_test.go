//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"sync"
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

func TestReadImageWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	initOnce = sync.Once{}
	initErr = nil
	t.Cleanup(func() { initOnce = sync.Once{}; initErr = nil })

	if _, err := ReadImage(); !errors.Is(err, errNoDisplay) {
		t.Fatalf("expected errNoDisplay, got %v", err)
	}
	if owner != nil {
		t.Fatal("selection owner created without a display")
	}
}

func TestTargetList(t *testing.T) {
	a := atoms{targets: xproto.Atom(7), png: xproto.Atom(9)}

	empty := a.targetList(false)
	if len(empty) != 4 || xgb.Get32(empty) != 7 {
		t.Fatalf("empty clipboard targets = %v", empty)
	}
	full := a.targetList(true)
	if len(full) != 8 || xgb.Get32(full) != 7 || xgb.Get32(full[4:]) != 9 {
		t.Fatalf("targets with data = %v", full)
	}
}
