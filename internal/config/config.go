package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/relayout/internal/layout"
	"github.com/1broseidon/relayout/internal/logging"
	"github.com/1broseidon/relayout/internal/reconcile"
)

const (
	DefaultLayoutPath = "~/.layout.yaml"
	DefaultLayoutsDir = "~/.config/relayout/layouts"
)

// Config holds the settings shared by every relayout command.
type Config struct {
	LayoutPath      string        `yaml:"layout_path"`
	LayoutsDir      string        `yaml:"layouts_dir"`
	Passes          int           `yaml:"passes"`
	SettleInterval  time.Duration `yaml:"settle_interval"`
	Tolerance       int           `yaml:"tolerance"`
	MinWindowWidth  int           `yaml:"min_window_width"`
	MinWindowHeight int           `yaml:"min_window_height"`
	IgnoreOwners    []string      `yaml:"ignore_owners"`
	LogLevel        string        `yaml:"log_level"`
	Display         string        `yaml:"display,omitempty"`
	XAuthority      string        `yaml:"xauthority,omitempty"`
}

// DefaultIgnoreOwners are window-system components that are never part of a
// layout. The names cover common X11 panels and desktops.
var DefaultIgnoreOwners = []string{
	"Plank",
	"Polybar",
	"Xfce4-panel",
	"Xfdesktop",
	"Conky",
}

func DefaultConfig() *Config {
	return &Config{
		LayoutPath:      DefaultLayoutPath,
		LayoutsDir:      DefaultLayoutsDir,
		Passes:          reconcile.DefaultPasses,
		SettleInterval:  reconcile.DefaultSettleInterval,
		Tolerance:       layout.CloseTolerance,
		MinWindowWidth:  layout.DefaultMinWidth,
		MinWindowHeight: layout.DefaultMinHeight,
		IgnoreOwners:    append([]string(nil), DefaultIgnoreOwners...),
		LogLevel:        "info",
	}
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "relayout", "config.yaml"), nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.LayoutPath) == "" {
		return &ValidationError{Path: "layout_path", Err: fmt.Errorf("layout_path is required")}
	}
	if strings.TrimSpace(c.LayoutsDir) == "" {
		return &ValidationError{Path: "layouts_dir", Err: fmt.Errorf("layouts_dir is required")}
	}
	if c.Passes < 1 {
		return &ValidationError{Path: "passes", Err: fmt.Errorf("passes must be >= 1")}
	}
	if c.SettleInterval < 0 {
		return &ValidationError{Path: "settle_interval", Err: fmt.Errorf("settle_interval must be >= 0")}
	}
	if c.Tolerance < 1 {
		return &ValidationError{Path: "tolerance", Err: fmt.Errorf("tolerance must be >= 1")}
	}
	if c.MinWindowWidth < 0 {
		return &ValidationError{Path: "min_window_width", Err: fmt.Errorf("min_window_width must be >= 0")}
	}
	if c.MinWindowHeight < 0 {
		return &ValidationError{Path: "min_window_height", Err: fmt.Errorf("min_window_height must be >= 0")}
	}
	for _, owner := range c.IgnoreOwners {
		if strings.TrimSpace(owner) == "" {
			return &ValidationError{Path: "ignore_owners", Err: fmt.Errorf("ignore_owners contains an empty name")}
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	return nil
}

// IgnoreOwnerSet returns IgnoreOwners as a lookup set.
func (c *Config) IgnoreOwnerSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.IgnoreOwners))
	for _, owner := range c.IgnoreOwners {
		set[owner] = struct{}{}
	}
	return set
}

// Collector builds the observation filter described by the config.
func (c *Config) Collector() layout.Collector {
	return layout.Collector{
		MinWidth:     c.MinWindowWidth,
		MinHeight:    c.MinWindowHeight,
		IgnoreOwners: c.IgnoreOwnerSet(),
	}
}

// ApplyEnvironment exports configured X11 connection settings so the
// window-system backend connects to the intended session.
func (c *Config) ApplyEnvironment() error {
	if c.Display != "" {
		if err := os.Setenv("DISPLAY", c.Display); err != nil {
			return fmt.Errorf("failed to set DISPLAY: %w", err)
		}
	}
	if c.XAuthority != "" {
		if err := os.Setenv("XAUTHORITY", c.XAuthority); err != nil {
			return fmt.Errorf("failed to set XAUTHORITY: %w", err)
		}
	}
	return nil
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
