package platform

import (
	"errors"

	"github.com/1broseidon/relayout/internal/layout"
)

var (
	// ErrNoScreens is returned when the window system reports no displays.
	ErrNoScreens = errors.New("unable to enumerate screens; check that DISPLAY and XAUTHORITY point at a running X session")
	// ErrNoWindows is returned when no restorable windows are visible.
	ErrNoWindows = errors.New("unable to enumerate windows; check that DISPLAY and XAUTHORITY point at a running X session and the window manager supports EWMH")
)

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Layout converts r to the layout package's rectangle.
func (r Rect) Layout() layout.Rect {
	return layout.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height}
}

// FromLayoutRect converts a layout rectangle to a platform rectangle.
func FromLayoutRect(r layout.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

// Display describes a physical display.
type Display struct {
	ID     uint32
	Name   string
	Bounds Rect
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	PID    int
	AppID  string
	Title  string
	Bounds Rect
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Displays() ([]Display, error)
	ListWindows() ([]Window, error)
	MoveResize(windowID WindowID, bounds Rect) error
}
