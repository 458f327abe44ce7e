// Package app wires configuration, the window-system backend, layout storage
// and the reconciler into the operations relayout exposes.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/1broseidon/relayout/internal/config"
	"github.com/1broseidon/relayout/internal/layout"
	"github.com/1broseidon/relayout/internal/logging"
	"github.com/1broseidon/relayout/internal/platform"
	"github.com/1broseidon/relayout/internal/reconcile"
	"github.com/1broseidon/relayout/internal/runtimepath"
	"github.com/1broseidon/relayout/internal/store"
)

// ConnectFunc opens a window-system backend and returns its release function.
type ConnectFunc func() (platform.Backend, func(), error)

// App runs captures and restores against one configuration.
type App struct {
	Config  *config.Config
	Store   store.Store
	Connect ConnectFunc
	Logger  *slog.Logger

	// LockPath, when set, serializes restores across processes.
	LockPath string
}

// New creates an App using the native backend.
func New(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{
		Config:  cfg,
		Store:   store.Store{Dir: cfg.LayoutsDir},
		Connect: platform.Connect,
		Logger:  logger,
	}
}

// RestoreOptions adjusts a single restore.
type RestoreOptions struct {
	// Passes overrides the configured pass count when positive.
	Passes int
	DryRun bool
}

// Source names where a layout comes from: a stored name, a path, or
// neither for the configured default path.
type Source struct {
	Name string
	Path string
}

func (s Source) String() string {
	switch {
	case s.Name != "":
		return fmt.Sprintf("layout %q", s.Name)
	case s.Path != "":
		return s.Path
	default:
		return "default layout"
	}
}

// ResolvePath returns the file backing src.
func (a *App) ResolvePath(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	path := strings.TrimSpace(src.Path)
	switch {
	case name != "" && path != "":
		return "", fmt.Errorf("specify a layout name or a path, not both")
	case name != "":
		return a.Store.Path(name)
	case path != "":
		return store.ExpandHome(path)
	default:
		return store.ExpandHome(a.Config.LayoutPath)
	}
}

// Load reads the layout described by src.
func (a *App) Load(src Source) (layout.Layout, error) {
	if name := strings.TrimSpace(src.Name); name != "" && strings.TrimSpace(src.Path) == "" {
		return a.Store.Read(name)
	}
	path, err := a.ResolvePath(src)
	if err != nil {
		return layout.Layout{}, err
	}
	return store.Load(path)
}

// Capture observes the current screens and windows.
func (a *App) Capture(ctx context.Context) (layout.Layout, error) {
	var captured layout.Layout
	err := a.withBackend(func(b platform.Backend) error {
		l, err := a.observer(b).Observe(ctx)
		captured = l
		return err
	})
	if err != nil {
		return layout.Layout{}, err
	}
	a.Logger.Debug("captured layout", "screens", len(captured.Screens), "windows", len(captured.Windows))
	return captured.Saved(), nil
}

// Screens lists the live screens in layout order.
func (a *App) Screens() ([]layout.Screen, error) {
	var screens []layout.Screen
	err := a.withBackend(func(b platform.Backend) error {
		s, err := a.observer(b).Screens()
		screens = s
		return err
	})
	return screens, err
}

// Restore reconciles the live windows towards desired.
func (a *App) Restore(ctx context.Context, desired layout.Layout, opts RestoreOptions) (reconcile.Report, error) {
	passes := a.Config.Passes
	if opts.Passes > 0 {
		passes = opts.Passes
	}

	if a.LockPath != "" && !opts.DryRun {
		lock, err := runtimepath.Acquire(ctx, a.LockPath)
		if err != nil {
			return reconcile.Report{}, err
		}
		defer lock.Release()
	}

	var report reconcile.Report
	err := a.withBackend(func(b platform.Backend) error {
		r := reconcile.New(reconcile.Config{
			Passes:         passes,
			SettleInterval: a.Config.SettleInterval,
			Tolerance:      a.Config.Tolerance,
			DryRun:         opts.DryRun,
			Logger:         a.Logger,
		}, a.observer(b), platform.NewActuator(b))

		var err error
		report, err = r.Run(ctx, desired)
		return err
	})
	if err != nil {
		return report, err
	}

	a.Logger.Info("restore finished",
		"passes", len(report.Passes),
		"moves", len(report.Moves()),
		"failures", report.Failures(),
		"dry_run", opts.DryRun)
	return report, nil
}

func (a *App) observer(b platform.Backend) *platform.Observer {
	c := a.Config.Collector()
	c.Logger = a.Logger
	return platform.NewObserver(b, c)
}

func (a *App) withBackend(fn func(platform.Backend) error) error {
	backend, release, err := a.Connect()
	if err != nil {
		return err
	}
	if release != nil {
		defer release()
	}
	return fn(backend)
}
