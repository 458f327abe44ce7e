package config

import (
	"fmt"
)

// Explain returns the effective value of a top-level config key and where it
// came from.
func Explain(res *LoadResult, key string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if key == "" {
		return nil, Source{}, fmt.Errorf("key is empty")
	}

	value, err := lookupValue(res.Config, key)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[key]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, key string) (any, error) {
	switch key {
	case "layout_path":
		return cfg.LayoutPath, nil
	case "layouts_dir":
		return cfg.LayoutsDir, nil
	case "passes":
		return cfg.Passes, nil
	case "settle_interval":
		return cfg.SettleInterval.String(), nil
	case "tolerance":
		return cfg.Tolerance, nil
	case "min_window_width":
		return cfg.MinWindowWidth, nil
	case "min_window_height":
		return cfg.MinWindowHeight, nil
	case "ignore_owners":
		return cfg.IgnoreOwners, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "display":
		return cfg.Display, nil
	case "xauthority":
		return cfg.XAuthority, nil
	default:
		return nil, fmt.Errorf("unknown key: %s", key)
	}
}
