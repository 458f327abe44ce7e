// Package x11 reads and moves top-level windows through EWMH and RandR.
package x11

import (
	"fmt"
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// allDesktops is the _NET_WM_DESKTOP value of sticky windows.
const allDesktops = 0xFFFFFFFF

// Connection holds an X connection and its root window.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to the X server named by $DISPLAY.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("open display %q: %w", os.Getenv("DISPLAY"), err)
	}
	return &Connection{XUtil: xu, Root: xu.RootWin()}, nil
}

func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// CurrentDesktop returns the visible virtual desktop. ok is false when the
// window manager does not publish _NET_CURRENT_DESKTOP.
func (c *Connection) CurrentDesktop() (desktop uint, ok bool) {
	d, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, false
	}
	return d, true
}

// OnDesktop reports whether win is shown on desktop. Sticky windows and
// windows without _NET_WM_DESKTOP count as shown everywhere.
func (c *Connection) OnDesktop(win xproto.Window, desktop uint) bool {
	d, err := ewmh.WmDesktopGet(c.XUtil, win)
	if err != nil || d == allDesktops {
		return true
	}
	return d == desktop
}
