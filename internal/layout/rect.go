package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// CloseTolerance is the per-component pixel difference below which two
// rectangles are considered the same window geometry. Window managers rarely
// apply a requested geometry to the exact pixel.
const CloseTolerance = 4

// Rect is a rectangle in desktop pixel coordinates (top-left origin, Y down).
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Origin returns the top-left corner.
func (r Rect) Origin() (x, y int) {
	return r.X, r.Y
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// ContainsOrigin reports whether the top-left corner of other lies inside r.
// A window straddling two screens belongs to the one holding its corner.
func (r Rect) ContainsOrigin(other Rect) bool {
	return other.X >= r.X && other.X < r.X+r.W && other.Y >= r.Y && other.Y < r.Y+r.H
}

// IsClose reports whether every component of r and other differs by less
// than CloseTolerance.
func (r Rect) IsClose(other Rect) bool {
	return r.IsWithin(other, CloseTolerance)
}

// IsWithin reports whether every component differs by less than tol.
func (r Rect) IsWithin(other Rect, tol int) bool {
	return abs(r.X-other.X) < tol &&
		abs(r.Y-other.Y) < tol &&
		abs(r.W-other.W) < tol &&
		abs(r.H-other.H) < tol
}

// String renders the rectangle as "x,y,w,h", the persisted form.
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.W, r.H)
}

// ParseRect parses the "x,y,w,h" form produced by String.
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("invalid rect %q: expected x,y,w,h", s)
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[2] < 0 || vals[3] < 0 {
		return Rect{}, fmt.Errorf("invalid rect %q: negative size", s)
	}
	return Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
