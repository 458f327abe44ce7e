package layout

import "sort"

// Resolution records how a saved screen was mapped onto a live one.
type Resolution int

const (
	ResolvedByID Resolution = iota
	ResolvedBySize
	ResolvedByDistance
)

func (r Resolution) String() string {
	switch r {
	case ResolvedByID:
		return "id"
	case ResolvedBySize:
		return "size"
	case ResolvedByDistance:
		return "distance"
	default:
		return "unknown"
	}
}

// ResolveScreen picks the live screen standing in for saved. Screen ids may
// not survive a reboot or a display change, so after an exact id lookup it
// prefers a screen of the same size nearest to the saved origin, then the
// nearest screen of any size. Distance is Manhattan distance between frame
// origins; ties keep the first screen found.
func ResolveScreen(saved Screen, live []Screen) (Screen, Resolution, bool) {
	if len(live) == 0 {
		return Screen{}, 0, false
	}
	for _, s := range live {
		if s.ID == saved.ID {
			return s, ResolvedByID, true
		}
	}

	best, found := -1, false
	for i, s := range live {
		if s.Frame.W != saved.Frame.W || s.Frame.H != saved.Frame.H {
			continue
		}
		if !found || originDistance(saved.Frame, s.Frame) < originDistance(saved.Frame, live[best].Frame) {
			best, found = i, true
		}
	}
	if found {
		return live[best], ResolvedBySize, true
	}

	best = 0
	for i := 1; i < len(live); i++ {
		if originDistance(saved.Frame, live[i].Frame) < originDistance(saved.Frame, live[best].Frame) {
			best = i
		}
	}
	return live[best], ResolvedByDistance, true
}

// ScreenAt returns the screen for a 1-based screen number, clamping numbers
// outside the list to the nearest end.
func ScreenAt(screens []Screen, num int) (Screen, bool) {
	if len(screens) == 0 {
		return Screen{}, false
	}
	idx := num - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(screens) {
		idx = len(screens) - 1
	}
	return screens[idx], true
}

// SortScreens orders screens left to right, then top to bottom.
func SortScreens(screens []Screen) {
	sort.SliceStable(screens, func(i, j int) bool {
		if screens[i].Frame.X != screens[j].Frame.X {
			return screens[i].Frame.X < screens[j].Frame.X
		}
		return screens[i].Frame.Y < screens[j].Frame.Y
	})
}

func originDistance(a, b Rect) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}
