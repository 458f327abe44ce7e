package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// PositionKind enumerates the declarative window positions.
type PositionKind int

const (
	// PosRect is an explicit screen-relative rectangle. Negative X or Y is
	// measured from the right or bottom edge of the screen.
	PosRect PositionKind = iota
	// PosMax fills the whole screen frame.
	PosMax
	// PosLeft, PosRight, PosTop and PosBottom dock the window to an edge,
	// taking Fraction of the screen width or height.
	PosLeft
	PosRight
	PosTop
	PosBottom
)

var dockNames = map[PositionKind]string{
	PosLeft:   "left",
	PosRight:  "right",
	PosTop:    "top",
	PosBottom: "bottom",
}

// Position describes where a window should sit on its screen.
type Position struct {
	Kind     PositionKind
	Rect     Rect
	Fraction float64
}

// At positions a window at an explicit screen-relative rectangle.
func At(r Rect) Position { return Position{Kind: PosRect, Rect: r} }

// Max fills the screen.
func Max() Position { return Position{Kind: PosMax} }

// LeftDock fills the left fraction f of the screen width.
func LeftDock(f float64) Position { return Position{Kind: PosLeft, Fraction: f} }

// RightDock fills the right fraction f of the screen width.
func RightDock(f float64) Position { return Position{Kind: PosRight, Fraction: f} }

// TopDock fills the top fraction f of the screen height.
func TopDock(f float64) Position { return Position{Kind: PosTop, Fraction: f} }

// BottomDock fills the bottom fraction f of the screen height.
func BottomDock(f float64) Position { return Position{Kind: PosBottom, Fraction: f} }

// ToAbsolute resolves p against screen and returns desktop coordinates.
func (p Position) ToAbsolute(screen Screen) Rect {
	f := screen.Frame
	switch p.Kind {
	case PosMax:
		return f
	case PosLeft:
		return Rect{X: f.X, Y: f.Y, W: scale(f.W, p.Fraction), H: f.H}
	case PosRight:
		w := scale(f.W, p.Fraction)
		return Rect{X: f.X + f.W - w, Y: f.Y, W: w, H: f.H}
	case PosTop:
		return Rect{X: f.X, Y: f.Y, W: f.W, H: scale(f.H, p.Fraction)}
	case PosBottom:
		h := scale(f.H, p.Fraction)
		return Rect{X: f.X, Y: f.Y + f.H - h, W: f.W, H: h}
	default:
		r := p.Rect
		x, y := r.X, r.Y
		if x < 0 {
			x = f.W + x
		}
		if y < 0 {
			y = f.H + y
		}
		return Rect{X: f.X + x, Y: f.Y + y, W: r.W, H: r.H}
	}
}

// ToRelative finds the first screen containing the origin of abs and returns
// its 1-based index together with abs relative to that screen. When no screen
// holds the origin it falls back to screen 1 with a zero origin and ok=false.
func ToRelative(abs Rect, screens []Screen) (screenNum int, rel Rect, ok bool) {
	for i, s := range screens {
		if s.Frame.ContainsOrigin(abs) {
			return i + 1, abs.Offset(-s.Frame.X, -s.Frame.Y), true
		}
	}
	return 1, Rect{W: abs.W, H: abs.H}, false
}

// String renders the persisted text form: "max", "x,y,w,h" or "<edge> <fraction>".
func (p Position) String() string {
	switch p.Kind {
	case PosMax:
		return "max"
	case PosLeft, PosRight, PosTop, PosBottom:
		return dockNames[p.Kind] + " " + strconv.FormatFloat(p.Fraction, 'g', -1, 64)
	default:
		return p.Rect.String()
	}
}

// ParsePosition parses the form produced by String.
func ParsePosition(s string) (Position, error) {
	text := strings.TrimSpace(s)
	switch strings.ToLower(text) {
	case "max", "maxed", "maximized":
		return Max(), nil
	}

	fields := strings.Fields(text)
	if len(fields) == 2 {
		kind, ok := dockKind(fields[0])
		if !ok {
			return Position{}, fmt.Errorf("invalid position %q: unknown edge %q", s, fields[0])
		}
		frac, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Position{}, fmt.Errorf("invalid position %q: %w", s, err)
		}
		if frac <= 0 || frac > 1 {
			return Position{}, fmt.Errorf("invalid position %q: fraction must be in (0, 1]", s)
		}
		return Position{Kind: kind, Fraction: frac}, nil
	}

	r, err := ParseRect(text)
	if err != nil {
		return Position{}, fmt.Errorf("invalid position %q: expected max, x,y,w,h or <edge> <fraction>", s)
	}
	return At(r), nil
}

func dockKind(name string) (PositionKind, bool) {
	for kind, n := range dockNames {
		if strings.EqualFold(n, name) {
			return kind, true
		}
	}
	return 0, false
}

// scale truncates toward zero, matching how fractional docks were captured.
func scale(size int, fraction float64) int {
	return int(float64(size) * fraction)
}
