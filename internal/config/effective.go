package config

import (
	"fmt"
	"strings"
	"time"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig overlays raw onto the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.LayoutPath != nil {
		cfg.LayoutPath = strings.TrimSpace(*raw.LayoutPath)
	}
	if raw.LayoutsDir != nil {
		cfg.LayoutsDir = strings.TrimSpace(*raw.LayoutsDir)
	}
	if raw.Passes != nil {
		cfg.Passes = *raw.Passes
	}
	if raw.SettleInterval != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*raw.SettleInterval))
		if err != nil {
			return nil, &ValidationError{Path: "settle_interval", Err: fmt.Errorf("invalid duration %q", *raw.SettleInterval)}
		}
		cfg.SettleInterval = d
	}
	if raw.Tolerance != nil {
		cfg.Tolerance = *raw.Tolerance
	}
	if raw.MinWindowWidth != nil {
		cfg.MinWindowWidth = *raw.MinWindowWidth
	}
	if raw.MinWindowHeight != nil {
		cfg.MinWindowHeight = *raw.MinWindowHeight
	}
	if raw.IgnoreOwners != nil {
		cfg.IgnoreOwners = append([]string(nil), raw.IgnoreOwners...)
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}
	if raw.Display != nil {
		cfg.Display = strings.TrimSpace(*raw.Display)
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = strings.TrimSpace(*raw.XAuthority)
	}

	return cfg, nil
}
