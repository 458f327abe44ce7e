package layout

import "testing"

func TestPositionToAbsolute(t *testing.T) {
	screen := Screen{ID: 7, Frame: Rect{X: 1920, Y: 0, W: 1000, H: 800}}

	tests := []struct {
		name string
		pos  Position
		want Rect
	}{
		{"max", Max(), Rect{X: 1920, Y: 0, W: 1000, H: 800}},
		{"rect", At(Rect{X: 10, Y: 20, W: 300, H: 200}), Rect{X: 1930, Y: 20, W: 300, H: 200}},
		{"negative x from right edge", At(Rect{X: -300, Y: 20, W: 300, H: 200}), Rect{X: 2620, Y: 20, W: 300, H: 200}},
		{"negative y from bottom edge", At(Rect{X: 0, Y: -200, W: 300, H: 200}), Rect{X: 1920, Y: 600, W: 300, H: 200}},
		{"left", LeftDock(0.5), Rect{X: 1920, Y: 0, W: 500, H: 800}},
		{"right", RightDock(0.25), Rect{X: 2670, Y: 0, W: 250, H: 800}},
		{"top", TopDock(0.5), Rect{X: 1920, Y: 0, W: 1000, H: 400}},
		{"bottom", BottomDock(0.25), Rect{X: 1920, Y: 600, W: 1000, H: 200}},
		// 1000 * 0.333 = 333.0 and 800 * 0.3337 = 266.96; both truncate.
		{"left truncates", LeftDock(0.333), Rect{X: 1920, Y: 0, W: 333, H: 800}},
		{"bottom truncates", BottomDock(0.3337), Rect{X: 1920, Y: 534, W: 1000, H: 266}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.ToAbsolute(screen); got != tt.want {
				t.Errorf("ToAbsolute(%s) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestLeftRightHalvesAreAdjacent(t *testing.T) {
	screen := Screen{Frame: Rect{X: 0, Y: 0, W: 1000, H: 700}}
	left := LeftDock(0.5).ToAbsolute(screen)
	right := RightDock(0.5).ToAbsolute(screen)

	if left.W+right.W != 1000 {
		t.Fatalf("expected widths to sum to 1000, got %d + %d", left.W, right.W)
	}
	if left.X+left.W != right.X {
		t.Fatalf("expected right half to start where left ends: left=%v right=%v", left, right)
	}
}

func TestToRelative(t *testing.T) {
	screens := []Screen{
		{ID: 1, Frame: Rect{X: 0, Y: 0, W: 1920, H: 1080}},
		{ID: 2, Frame: Rect{X: 1920, Y: 0, W: 2560, H: 1440}},
	}

	num, rel, ok := ToRelative(Rect{X: 2000, Y: 50, W: 800, H: 600}, screens)
	if !ok || num != 2 {
		t.Fatalf("expected screen 2, got %d (ok=%v)", num, ok)
	}
	if rel != (Rect{X: 80, Y: 50, W: 800, H: 600}) {
		t.Fatalf("unexpected relative rect %v", rel)
	}

	// Straddling the boundary: the origin decides.
	num, _, _ = ToRelative(Rect{X: 1800, Y: 0, W: 800, H: 600}, screens)
	if num != 1 {
		t.Fatalf("expected straddling window on screen 1, got %d", num)
	}

	num, rel, ok = ToRelative(Rect{X: -500, Y: -500, W: 400, H: 300}, screens)
	if ok {
		t.Fatalf("expected fallback for origin outside every screen")
	}
	if num != 1 || rel != (Rect{W: 400, H: 300}) {
		t.Fatalf("unexpected fallback result %d %v", num, rel)
	}
}

func TestToAbsoluteToRelative_RoundTrip(t *testing.T) {
	screens := []Screen{
		{ID: 1, Frame: Rect{X: 0, Y: 0, W: 1440, H: 900}},
		{ID: 2, Frame: Rect{X: 1440, Y: -200, W: 3840, H: 2160}},
	}
	rects := []Rect{
		{X: 0, Y: 0, W: 800, H: 600},
		{X: 100, Y: 50, W: 1200, H: 800},
		{X: 1439, Y: 899, W: 1, H: 1},
		{X: 2000, Y: 1000, W: 1840, H: 1160},
	}
	for i, s := range screens {
		for _, r := range rects {
			if r.X+r.W > s.Frame.W || r.Y+r.H > s.Frame.H {
				continue
			}
			abs := At(r).ToAbsolute(s)
			num, rel, ok := ToRelative(abs, screens)
			if !ok || num != i+1 {
				t.Fatalf("rect %v on screen %d resolved to screen %d (ok=%v)", r, i+1, num, ok)
			}
			if rel != r {
				t.Fatalf("round trip of %v on screen %d gave %v", r, i+1, rel)
			}
		}
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
	}{
		{"max", Max()},
		{"Maximized", Max()},
		{"10,20,300,400", At(Rect{X: 10, Y: 20, W: 300, H: 400})},
		{"-300,0,300,400", At(Rect{X: -300, Y: 0, W: 300, H: 400})},
		{"left 0.5", LeftDock(0.5)},
		{"Right 0.25", RightDock(0.25)},
		{"top 1", TopDock(1)},
		{"bottom 0.3", BottomDock(0.3)},
	}
	for _, tt := range tests {
		got, err := ParsePosition(tt.in)
		if err != nil {
			t.Errorf("ParsePosition(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePosition(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		again, err := ParsePosition(got.String())
		if err != nil || again != got {
			t.Errorf("String round trip of %q gave %+v (%v)", tt.in, again, err)
		}
	}

	for _, bad := range []string{"", "middle 0.5", "left", "left 0", "left 1.5", "left half", "1,2,3"} {
		if _, err := ParsePosition(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
