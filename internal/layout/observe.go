package layout

import (
	"log/slog"
	"sort"

	"github.com/1broseidon/relayout/internal/logging"
)

// Windows no larger than this in both dimensions are left out of layouts.
const (
	DefaultMinWidth  = 64
	DefaultMinHeight = 64
)

// LiveWindow is a window reported by the window system, in absolute
// desktop coordinates.
type LiveWindow struct {
	OwnerName string
	Name      string
	PID       int
	WindowID  uint32
	Bounds    Rect
}

// Collector turns enumerated screens and windows into an observed Layout.
type Collector struct {
	// Windows no larger than MinWidth x MinHeight in both dimensions are
	// treated as decorations and dropped.
	MinWidth     int
	MinHeight    int
	IgnoreOwners map[string]struct{}
	Logger       *slog.Logger
}

// Build groups live windows by owner and name, converts their bounds to
// screen-relative coordinates and returns them sorted by owner, then name.
func (c Collector) Build(screens []Screen, live []LiveWindow) Layout {
	logger := c.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	sorted := make([]Screen, len(screens))
	copy(sorted, screens)
	SortScreens(sorted)

	type key struct{ owner, name string }
	index := make(map[key]int)
	var windows []Window

	for _, lw := range live {
		if lw.OwnerName == "" || lw.Name == "" {
			continue
		}
		if _, ignored := c.IgnoreOwners[lw.OwnerName]; ignored {
			continue
		}
		if lw.Bounds.W <= c.MinWidth && lw.Bounds.H <= c.MinHeight {
			continue
		}

		screenNum, rel, ok := ToRelative(lw.Bounds, sorted)
		if !ok {
			logger.Debug("window origin outside every screen; assuming screen 1",
				"owner", lw.OwnerName, "name", lw.Name, "bounds", lw.Bounds.String())
		}

		inst := Instance{
			PID:       lw.PID,
			WindowID:  lw.WindowID,
			ScreenNum: screenNum,
			Bounds:    rel,
		}

		k := key{lw.OwnerName, lw.Name}
		if i, seen := index[k]; seen {
			windows[i].Instances = append(windows[i].Instances, inst)
			continue
		}
		index[k] = len(windows)
		windows = append(windows, Window{
			OwnerName: ExactPattern(lw.OwnerName),
			Name:      ExactPattern(lw.Name),
			ScreenNum: screenNum,
			Pos:       At(rel),
			Instances: []Instance{inst},
		})
	}

	sort.SliceStable(windows, func(i, j int) bool {
		oi, oj := windows[i].OwnerName.String(), windows[j].OwnerName.String()
		if oi != oj {
			return oi < oj
		}
		return windows[i].Name.String() < windows[j].Name.String()
	})

	return Layout{Screens: sorted, Windows: windows}
}

// Saved strips live identity from l, leaving what is persisted.
func (l Layout) Saved() Layout {
	out := Layout{
		Screens: append([]Screen(nil), l.Screens...),
		Windows: make([]Window, len(l.Windows)),
	}
	for i, w := range l.Windows {
		w.Instances = nil
		out.Windows[i] = w
	}
	return out
}
