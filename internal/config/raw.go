package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawConfig mirrors a config file. Nil fields were not set by the file.
type RawConfig struct {
	Include         IncludeList `yaml:"include"`
	LayoutPath      *string     `yaml:"layout_path"`
	LayoutsDir      *string     `yaml:"layouts_dir"`
	Passes          *int        `yaml:"passes"`
	SettleInterval  *string     `yaml:"settle_interval"`
	Tolerance       *int        `yaml:"tolerance"`
	MinWindowWidth  *int        `yaml:"min_window_width"`
	MinWindowHeight *int        `yaml:"min_window_height"`
	IgnoreOwners    []string    `yaml:"ignore_owners"`
	LogLevel        *string     `yaml:"log_level"`
	Display         *string     `yaml:"display"`
	XAuthority      *string     `yaml:"xauthority"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.LayoutPath != nil {
		out.LayoutPath = overlay.LayoutPath
	}
	if overlay.LayoutsDir != nil {
		out.LayoutsDir = overlay.LayoutsDir
	}
	if overlay.Passes != nil {
		out.Passes = overlay.Passes
	}
	if overlay.SettleInterval != nil {
		out.SettleInterval = overlay.SettleInterval
	}
	if overlay.Tolerance != nil {
		out.Tolerance = overlay.Tolerance
	}
	if overlay.MinWindowWidth != nil {
		out.MinWindowWidth = overlay.MinWindowWidth
	}
	if overlay.MinWindowHeight != nil {
		out.MinWindowHeight = overlay.MinWindowHeight
	}
	if overlay.IgnoreOwners != nil {
		out.IgnoreOwners = overlay.IgnoreOwners
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}

	return out
}
