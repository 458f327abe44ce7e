package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/1broseidon/relayout/internal/app"
	"github.com/1broseidon/relayout/internal/store"
	"github.com/1broseidon/relayout/internal/watch"
)

func runSave(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	name := fs.String("name", "", "Store the layout under this name")
	output := fs.String("output", "", "Write the layout to this file instead of stdout")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: relayout save [--name NAME | --output FILE]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Capture the current screens and windows. The layout is printed to")
		fmt.Fprintln(stderr, "stdout unless --name or --output is given.")
		fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(stderr, "save takes no arguments")
		fs.Usage()
		return 2
	}
	if *name != "" && *output != "" {
		fmt.Fprintln(stderr, "--name and --output are mutually exclusive")
		return 2
	}
	if *name != "" {
		if err := store.ValidateName(*name); err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	a, err := common.newApp(stderr)
	if err != nil {
		return fail(stderr, err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	captured, err := a.Capture(ctx)
	if err != nil {
		return fail(stderr, err)
	}

	switch {
	case *name != "":
		if err := a.Store.Write(*name, captured); err != nil {
			return fail(stderr, err)
		}
		a.Logger.Info("saved layout", "name", *name, "windows", len(captured.Windows))
	case *output != "":
		if err := store.WriteFile(*output, captured); err != nil {
			return fail(stderr, err)
		}
		a.Logger.Info("saved layout", "path", *output, "windows", len(captured.Windows))
	default:
		data, err := store.Encode(captured)
		if err != nil {
			return fail(stderr, err)
		}
		stdout.Write(data)
	}
	return 0
}

func runRestore(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	name := fs.String("name", "", "Restore a stored layout by name")
	dryRun := fs.Bool("dry-run", false, "Report the moves without moving any window")
	watchFile := fs.Bool("watch", false, "Restore again whenever the layout file changes")
	passes := fs.Int("passes", 0, "Number of observe/move passes (default: from config)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: relayout restore [--name NAME | PATH] [--dry-run] [--watch] [--passes N]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Move windows back to a saved layout. Without NAME or PATH the")
		fmt.Fprintln(stderr, "configured layout_path (default ~/.layout.yaml) is used.")
		fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "restore takes at most one PATH")
		fs.Usage()
		return 2
	}
	if *passes < 0 {
		fmt.Fprintln(stderr, "--passes must be >= 0")
		return 2
	}
	src := app.Source{Name: *name, Path: fs.Arg(0)}
	if src.Name != "" && src.Path != "" {
		fmt.Fprintln(stderr, "--name and PATH are mutually exclusive")
		return 2
	}

	a, err := common.newApp(stderr)
	if err != nil {
		return fail(stderr, err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.RestoreOptions{Passes: *passes, DryRun: *dryRun}
	if err := restoreOnce(ctx, a, src, opts, stdout); err != nil {
		return fail(stderr, err)
	}
	if !*watchFile {
		return 0
	}

	path, err := a.ResolvePath(src)
	if err != nil {
		return fail(stderr, err)
	}
	a.Logger.Info("watching layout for changes", "path", path)
	err = watch.Watch(ctx, path, watch.DefaultDebounce, func() {
		if err := restoreOnce(ctx, a, src, opts, stdout); err != nil {
			a.Logger.Error("restore failed", "path", path, "error", err)
		}
	})
	if err != nil {
		return fail(stderr, err)
	}
	return 0
}

// restoreOnce loads src and reconciles against it. Dry runs print the plan.
func restoreOnce(ctx context.Context, a *app.App, src app.Source, opts app.RestoreOptions, stdout io.Writer) error {
	desired, err := a.Load(src)
	if err != nil {
		return err
	}
	report, err := a.Restore(ctx, desired, opts)
	if err != nil {
		return fmt.Errorf("restore %s: %w", src, err)
	}
	if opts.DryRun {
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WINDOW\tID\tTARGET")
		for _, m := range report.Moves() {
			fmt.Fprintf(tw, "%s/%s\t%d\t%s\n", m.OwnerName, m.Name, m.WindowID, m.Target)
		}
		tw.Flush()
	}
	return nil
}

func runList(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: relayout list")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "List layouts stored in layouts_dir.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(stderr, "list takes no arguments")
		fs.Usage()
		return 2
	}

	a, err := common.newApp(stderr)
	if err != nil {
		return fail(stderr, err)
	}
	names, err := a.Store.List()
	if err != nil {
		return fail(stderr, err)
	}
	for _, n := range names {
		fmt.Fprintln(stdout, n)
	}
	return 0
}

func runDelete(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: relayout delete NAME")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "delete requires exactly one NAME")
		fs.Usage()
		return 2
	}

	a, err := common.newApp(stderr)
	if err != nil {
		return fail(stderr, err)
	}
	if err := a.Store.Delete(fs.Arg(0)); err != nil {
		return fail(stderr, err)
	}
	fmt.Fprintf(stdout, "deleted %s\n", fs.Arg(0))
	return 0
}

func runScreens(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("screens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: relayout screens")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Show live screens in the order screen_num refers to them.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(stderr, "screens takes no arguments")
		fs.Usage()
		return 2
	}

	a, err := common.newApp(stderr)
	if err != nil {
		return fail(stderr, err)
	}
	screens, err := a.Screens()
	if err != nil {
		return fail(stderr, err)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUM\tID\tNAME\tFRAME")
	for i, s := range screens {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", i+1, s.ID, s.Name, s.Frame)
	}
	tw.Flush()
	return 0
}
