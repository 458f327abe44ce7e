package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/1broseidon/relayout/internal/app"
	"github.com/1broseidon/relayout/internal/config"
	"github.com/1broseidon/relayout/internal/logging"
	"github.com/1broseidon/relayout/internal/platform"
	"github.com/1broseidon/relayout/internal/runtimepath"
	"github.com/1broseidon/relayout/internal/xsession"
)

func main() {
	// DISPLAY/XAUTHORITY may come from a .env next to the invocation.
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printMainUsage(stdout)
		return 0
	}

	switch args[0] {
	case "save":
		return runSave(args[1:], stdout, stderr)
	case "restore":
		return runRestore(args[1:], stdout, stderr)
	case "list":
		return runList(args[1:], stdout, stderr)
	case "delete":
		return runDelete(args[1:], stdout, stderr)
	case "screens":
		return runScreens(args[1:], stdout, stderr)
	case "config":
		return runConfig(args[1:], stdout, stderr)
	case "mcp":
		return runMCP(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printMainUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(stderr)
		return 2
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: relayout <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  save                Capture the current window layout")
	fmt.Fprintln(w, "  restore             Move windows back to a saved layout")
	fmt.Fprintln(w, "  list                List stored layouts")
	fmt.Fprintln(w, "  delete              Delete a stored layout")
	fmt.Fprintln(w, "  screens             Show the live screens")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'relayout <command> --help' for command-specific options.")
}

// commonFlags are accepted by every command that touches the window system.
type commonFlags struct {
	configPath string
	logLevel   string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Config file path (default: ~/.config/relayout/config.yaml)")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level: off, error, warn, info, debug, trace (default: from config)")
}

// loadConfig reads the config selected by --config.
func (c *commonFlags) loadConfig() (*config.LoadResult, error) {
	if c.configPath == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(c.configPath)
}

// newApp loads configuration, installs the logger and prepares the app.
func (c *commonFlags) newApp(stderr io.Writer) (*app.App, error) {
	res, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg := res.Config

	levelName := cfg.LogLevel
	if c.logLevel != "" {
		levelName = c.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	logger := logging.New(stderr, level, isTerminal(stderr))
	slog.SetDefault(logger)

	if err := cfg.ApplyEnvironment(); err != nil {
		return nil, err
	}

	a := app.New(cfg, logger)
	if lockPath, err := runtimepath.LockPath(); err == nil {
		a.LockPath = lockPath
	} else {
		logger.Warn("restores will not be serialized", "error", err)
	}
	a.Connect = func() (platform.Backend, func(), error) {
		if os.Getenv("DISPLAY") == "" {
			env, err := xsession.Ensure()
			if err != nil {
				return nil, nil, err
			}
			logger.Debug("using detected X session", "display", env.Display, "xauthority", env.XAuthority)
		}
		return platform.Connect()
	}
	return a, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// parseFlags handles --help and reports usage errors with exit code 2.
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintln(stderr, err)
	return 1
}
