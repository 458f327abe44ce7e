// Package reconcile moves live windows back to the positions recorded in a
// saved layout.
package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/relayout/internal/layout"
	"github.com/1broseidon/relayout/internal/logging"
)

// Defaults applied by New for zero Config values.
const (
	DefaultPasses         = 2
	DefaultSettleInterval = 500 * time.Millisecond
)

// Observer enumerates the live screens and windows.
type Observer interface {
	Observe(ctx context.Context) (layout.Layout, error)
}

// Actuator asks the window system to place a window at an absolute
// desktop rectangle.
type Actuator interface {
	MoveWindow(ctx context.Context, req MoveRequest) error
}

// MoveRequest identifies one live window and where it should go.
type MoveRequest struct {
	OwnerName string
	Name      string
	PID       int
	WindowID  uint32
	Target    layout.Rect
}

// Config holds configuration for the reconciler.
type Config struct {
	// Passes is the number of observe/move rounds. Window managers do not
	// always apply a resize together with a move (notably across displays of
	// very different size), so a second pass catches what the first missed.
	Passes         int
	SettleInterval time.Duration
	Tolerance      int
	DryRun         bool
	Logger         *slog.Logger

	// Sleep waits between passes; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Reconciler drives observed windows towards a desired layout.
type Reconciler struct {
	passes    int
	settle    time.Duration
	tolerance int
	dryRun    bool
	logger    *slog.Logger
	sleep     func(ctx context.Context, d time.Duration) error
	observer  Observer
	actuator  Actuator
}

// New creates a reconciler. Zero values in cfg take the defaults.
func New(cfg Config, observer Observer, actuator Actuator) *Reconciler {
	passes := cfg.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}
	settle := cfg.SettleInterval
	if settle < 0 {
		settle = 0
	}
	tolerance := cfg.Tolerance
	if tolerance <= 0 {
		tolerance = layout.CloseTolerance
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	return &Reconciler{
		passes:    passes,
		settle:    settle,
		tolerance: tolerance,
		dryRun:    cfg.DryRun,
		logger:    logger,
		sleep:     sleep,
		observer:  observer,
		actuator:  actuator,
	}
}

// Run performs every pass against desired. It stops early only when
// observation fails or ctx is cancelled during the settle interval. A dry
// run moves nothing, so later passes would see the same windows again; it
// runs a single pass.
func (r *Reconciler) Run(ctx context.Context, desired layout.Layout) (Report, error) {
	var report Report

	passes := r.passes
	if r.dryRun {
		passes = 1
	}
	for pass := 1; pass <= passes; pass++ {
		observed, err := r.observer.Observe(ctx)
		if err != nil {
			return report, err
		}

		pr := r.reconcile(ctx, pass, desired, observed)
		report.Passes = append(report.Passes, pr)
		r.logger.Debug("pass complete",
			"pass", pass,
			"observed", pr.Observed,
			"matched", pr.Matched,
			"moved", len(pr.Moves),
			"failed", pr.Failed)

		if pass < passes {
			if err := r.sleep(ctx, r.settle); err != nil {
				return report, err
			}
		}
	}

	return report, nil
}

// reconcile compares one observation against desired and issues moves.
func (r *Reconciler) reconcile(ctx context.Context, pass int, desired, observed layout.Layout) PassReport {
	pr := PassReport{Pass: pass, Observed: len(observed.Windows)}

	for _, win := range observed.Windows {
		target, ok := findDesired(desired, win)
		if !ok {
			pr.Unmatched++
			logging.Trace(r.logger, "no match", "window", win.String())
			continue
		}
		pr.Matched++
		r.logger.Debug("found match", "window", win.String(), "desired", target.String())

		targetScreen, ok := r.targetScreen(desired, target, observed.Screens)
		if !ok {
			r.logger.Warn("no live screen for desired window", "window", win.String())
			continue
		}
		want := target.Pos.ToAbsolute(targetScreen)

		for _, inst := range win.Instances {
			pr.Checked++
			current, ok := layout.ScreenAt(observed.Screens, inst.ScreenNum)
			if !ok {
				continue
			}
			have := layout.At(inst.Bounds).ToAbsolute(current)

			if have.IsWithin(want, r.tolerance) {
				logging.Trace(r.logger, "already in place", "window", win.String(), "window_id", inst.WindowID)
				continue
			}

			req := MoveRequest{
				OwnerName: win.OwnerName.String(),
				Name:      win.Name.String(),
				PID:       inst.PID,
				WindowID:  inst.WindowID,
				Target:    want,
			}
			r.logger.Debug("needs to be moved",
				"window", win.String(),
				"window_id", inst.WindowID,
				"from", have.String(),
				"to", want.String())

			if r.dryRun {
				pr.Moves = append(pr.Moves, req)
				continue
			}
			if err := r.actuator.MoveWindow(ctx, req); err != nil {
				pr.Failed++
				r.logger.Error("failed to move window",
					"window", win.String(),
					"pid", inst.PID,
					"window_id", inst.WindowID,
					"error", err)
				continue
			}
			pr.Moves = append(pr.Moves, req)
		}
	}

	return pr
}

// targetScreen maps the desired window's screen onto the live screens. The
// saved screen list may describe a display arrangement that no longer
// exists, so the saved screen is resolved rather than indexed directly.
func (r *Reconciler) targetScreen(desired layout.Layout, target layout.Window, live []layout.Screen) (layout.Screen, bool) {
	idx := target.ScreenNum - 1
	if idx < 0 || idx >= len(desired.Screens) {
		return layout.ScreenAt(live, target.ScreenNum)
	}

	saved := desired.Screens[idx]
	screen, how, ok := layout.ResolveScreen(saved, live)
	if ok && how != layout.ResolvedByID {
		r.logger.Debug("saved screen not present; substituting",
			"saved_id", saved.ID,
			"saved_frame", saved.Frame.String(),
			"live_id", screen.ID,
			"by", how.String())
	}
	return screen, ok
}

func findDesired(desired layout.Layout, observed layout.Window) (layout.Window, bool) {
	for _, d := range desired.Windows {
		if d.Matches(observed) {
			return d, true
		}
	}
	return layout.Window{}, false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
