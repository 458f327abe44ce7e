package platform

import (
	"context"
	"fmt"

	"github.com/1broseidon/relayout/internal/layout"
	"github.com/1broseidon/relayout/internal/reconcile"
)

// Observer enumerates a Backend into an observed layout.
type Observer struct {
	backend   Backend
	collector layout.Collector
}

var _ reconcile.Observer = (*Observer)(nil)

// NewObserver creates an observer applying collector's filters.
func NewObserver(backend Backend, collector layout.Collector) *Observer {
	return &Observer{backend: backend, collector: collector}
}

// Screens returns the live screens ordered left to right.
func (o *Observer) Screens() ([]layout.Screen, error) {
	displays, err := o.backend.Displays()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate screens: %w", err)
	}
	if len(displays) == 0 {
		return nil, ErrNoScreens
	}

	screens := make([]layout.Screen, 0, len(displays))
	for _, d := range displays {
		screens = append(screens, layout.Screen{
			ID:    d.ID,
			Name:  d.Name,
			Frame: d.Bounds.Layout(),
		})
	}
	layout.SortScreens(screens)
	return screens, nil
}

// Observe captures the current screens and windows. An empty result is an
// error: nothing can be reconciled or saved without a live topology.
func (o *Observer) Observe(context.Context) (layout.Layout, error) {
	screens, err := o.Screens()
	if err != nil {
		return layout.Layout{}, err
	}

	windows, err := o.backend.ListWindows()
	if err != nil {
		return layout.Layout{}, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	live := make([]layout.LiveWindow, 0, len(windows))
	for _, w := range windows {
		live = append(live, layout.LiveWindow{
			OwnerName: w.AppID,
			Name:      w.Title,
			PID:       w.PID,
			WindowID:  uint32(w.ID),
			Bounds:    w.Bounds.Layout(),
		})
	}

	observed := o.collector.Build(screens, live)
	if len(observed.Windows) == 0 {
		return layout.Layout{}, ErrNoWindows
	}
	return observed, nil
}

// Actuator moves windows through a Backend.
type Actuator struct {
	backend Backend
}

var _ reconcile.Actuator = (*Actuator)(nil)

// NewActuator creates an actuator moving windows through backend.
func NewActuator(backend Backend) *Actuator {
	return &Actuator{backend: backend}
}

// MoveWindow sets the absolute position and size of the requested window.
func (a *Actuator) MoveWindow(_ context.Context, req reconcile.MoveRequest) error {
	if err := a.backend.MoveResize(WindowID(req.WindowID), FromLayoutRect(req.Target)); err != nil {
		return fmt.Errorf("move %s/%s (window %d): %w", req.OwnerName, req.Name, req.WindowID, err)
	}
	return nil
}
