package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/1broseidon/relayout/internal/config"
	"github.com/1broseidon/relayout/internal/layout"
	"github.com/1broseidon/relayout/internal/platform"
	"github.com/1broseidon/relayout/internal/runtimepath"
)

type fakeBackend struct {
	displays []platform.Display
	windows  []platform.Window
	moves    []platform.Rect
}

func (f *fakeBackend) Displays() ([]platform.Display, error) { return f.displays, nil }

func (f *fakeBackend) ListWindows() ([]platform.Window, error) { return f.windows, nil }

func (f *fakeBackend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	f.moves = append(f.moves, bounds)
	for i := range f.windows {
		if f.windows[i].ID == id {
			f.windows[i].Bounds = bounds
		}
	}
	return nil
}

func newTestApp(t *testing.T, b *fakeBackend) (*App, *int) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.SettleInterval = time.Millisecond
	cfg.LayoutsDir = filepath.Join(t.TempDir(), "layouts")
	cfg.LayoutPath = filepath.Join(t.TempDir(), "layout.yaml")

	releases := 0
	a := New(cfg, nil)
	a.Connect = func() (platform.Backend, func(), error) {
		return b, func() { releases++ }, nil
	}
	return a, &releases
}

func twoScreens() []platform.Display {
	return []platform.Display{
		{ID: 1, Name: "eDP-1", Bounds: platform.Rect{Width: 1920, Height: 1080}},
		{ID: 2, Name: "HDMI-1", Bounds: platform.Rect{X: 1920, Width: 2560, Height: 1440}},
	}
}

func TestCaptureAndRestoreRoundTrip(t *testing.T) {
	b := &fakeBackend{
		displays: twoScreens(),
		windows: []platform.Window{
			{ID: 10, PID: 1, AppID: "kitty", Title: "vim", Bounds: platform.Rect{X: 2020, Y: 100, Width: 1200, Height: 900}},
			{ID: 11, PID: 2, AppID: "firefox", Title: "docs", Bounds: platform.Rect{X: 0, Y: 0, Width: 960, Height: 1080}},
		},
	}
	a, releases := newTestApp(t, b)

	saved, err := a.Capture(context.Background())
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if len(saved.Windows) != 2 || saved.Windows[0].Instances != nil {
		t.Fatalf("expected two saved windows without instances, got %+v", saved.Windows)
	}

	// Drift one window and restore it.
	b.windows[0].Bounds = platform.Rect{X: 100, Y: 100, Width: 400, Height: 300}
	report, err := a.Restore(context.Background(), saved, RestoreOptions{})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(report.Passes) != 2 {
		t.Fatalf("expected 2 passes, got %d", len(report.Passes))
	}
	want := []platform.Rect{{X: 2020, Y: 100, Width: 1200, Height: 900}}
	if diff := cmp.Diff(want, b.moves); diff != "" {
		t.Fatalf("moves mismatch (-want +got):\n%s", diff)
	}
	if *releases != 2 {
		t.Fatalf("expected backend released after each operation, got %d", *releases)
	}
}

func TestRestore_DryRunAndPassOverride(t *testing.T) {
	b := &fakeBackend{
		displays: twoScreens(),
		windows:  []platform.Window{{ID: 10, AppID: "kitty", Title: "vim", Bounds: platform.Rect{X: 10, Y: 10, Width: 400, Height: 300}}},
	}
	a, _ := newTestApp(t, b)

	desired := layout.Layout{
		Screens: []layout.Screen{{ID: 1, Frame: layout.Rect{W: 1920, H: 1080}}},
		Windows: []layout.Window{{
			OwnerName: layout.ExactPattern("kitty"),
			Name:      layout.ParsePattern("^vi"),
			ScreenNum: 1,
			Pos:       layout.Max(),
		}},
	}
	report, err := a.Restore(context.Background(), desired, RestoreOptions{DryRun: true, Passes: 1})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(report.Passes) != 1 || len(report.Moves()) != 1 {
		t.Fatalf("expected one planned move in one pass, got %+v", report)
	}
	if got := report.Moves()[0].Target; got != (layout.Rect{W: 1920, H: 1080}) {
		t.Fatalf("unexpected target %v", got)
	}
	if len(b.moves) != 0 {
		t.Fatalf("dry run moved windows: %v", b.moves)
	}
}

func TestResolvePathAndLoad(t *testing.T) {
	a, _ := newTestApp(t, &fakeBackend{})

	if _, err := a.ResolvePath(Source{Name: "a", Path: "/tmp/b.yaml"}); err == nil {
		t.Fatalf("expected error for name and path together")
	}
	got, err := a.ResolvePath(Source{})
	if err != nil || got != a.Config.LayoutPath {
		t.Fatalf("expected default layout path, got %q, %v", got, err)
	}
	got, err = a.ResolvePath(Source{Name: "work"})
	if err != nil || got != filepath.Join(a.Config.LayoutsDir, "work.yaml") {
		t.Fatalf("unexpected named path %q, %v", got, err)
	}

	l := layout.Layout{
		Screens: []layout.Screen{{ID: 1, Frame: layout.Rect{W: 1920, H: 1080}}},
		Windows: []layout.Window{{OwnerName: layout.ExactPattern("kitty"), Name: layout.ExactPattern("vim"), ScreenNum: 1, Pos: layout.Max()}},
	}
	if err := a.Store.Write("work", l); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := a.Load(Source{Name: "work"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Windows) != 1 || loaded.Windows[0].Pos != layout.Max() {
		t.Fatalf("unexpected loaded layout %+v", loaded)
	}
	if _, err := a.Load(Source{}); err == nil {
		t.Fatalf("expected error loading missing default layout")
	}
}

func TestConnectFailureIsReturned(t *testing.T) {
	a, _ := newTestApp(t, &fakeBackend{})
	a.Connect = func() (platform.Backend, func(), error) {
		return nil, nil, errors.New("cannot open display")
	}
	if _, err := a.Capture(context.Background()); err == nil {
		t.Fatalf("expected connect error")
	}
	if _, err := a.Screens(); err == nil {
		t.Fatalf("expected connect error")
	}
}

func TestSourceString(t *testing.T) {
	if got := (Source{Name: "work"}).String(); got != `layout "work"` {
		t.Fatalf("unexpected %q", got)
	}
	if got := (Source{Path: "/tmp/x.yaml"}).String(); got != "/tmp/x.yaml" {
		t.Fatalf("unexpected %q", got)
	}
	if got := (Source{}).String(); got != "default layout" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestRestoreWaitsForLock(t *testing.T) {
	b := &fakeBackend{
		displays: twoScreens(),
		windows:  []platform.Window{{ID: 10, PID: 1, AppID: "kitty", Title: "vim", Bounds: platform.Rect{X: 10, Y: 10, Width: 800, Height: 600}}},
	}
	a, _ := newTestApp(t, b)
	a.LockPath = filepath.Join(t.TempDir(), "relayout.lock")

	held, err := runtimepath.Acquire(context.Background(), a.LockPath)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	desired := layout.Layout{
		Screens: []layout.Screen{{ID: 1, Frame: layout.Rect{W: 1920, H: 1080}}},
		Windows: []layout.Window{{OwnerName: layout.ExactPattern("kitty"), Name: layout.ExactPattern("vim"), ScreenNum: 1, Pos: layout.Max()}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := a.Restore(ctx, desired, RestoreOptions{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected restore to wait for the held lock, got %v", err)
	}
	if len(b.moves) != 0 {
		t.Fatalf("no window should move while the lock is held, got %v", b.moves)
	}

	if _, err := a.Restore(context.Background(), desired, RestoreOptions{DryRun: true}); err != nil {
		t.Fatalf("dry run should not need the lock: %v", err)
	}

	held.Release()
	if _, err := a.Restore(context.Background(), desired, RestoreOptions{}); err != nil {
		t.Fatalf("restore after release: %v", err)
	}
	if len(b.moves) == 0 {
		t.Fatalf("expected the window to move once the lock was free")
	}
}
