// Package layout models saved and observed window layouts and the geometry
// needed to compare them: rectangles, name patterns, declarative positions
// and screen resolution.
package layout

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Layout is an ordered set of screens and the windows placed on them.
type Layout struct {
	Screens []Screen `yaml:"screens"`
	Windows []Window `yaml:"windows"`
}

// Screen is a display as seen by the window system.
type Screen struct {
	ID    uint32 `yaml:"id"`
	Name  string `yaml:"name,omitempty"`
	Frame Rect   `yaml:"frame"`
}

// Window describes one owner/name pair. ScreenNum is 1-based and indexes the
// Screens of the layout the window belongs to.
//
// Observed windows carry one Instance per live window sharing the pair;
// several windows of an application can have the same title.
type Window struct {
	OwnerName Pattern    `yaml:"owner_name"`
	Name      Pattern    `yaml:"name"`
	ScreenNum int        `yaml:"screen_num"`
	Pos       Position   `yaml:"pos"`
	Instances []Instance `yaml:"-"`
}

// Instance is a live window matching an observed Window.
type Instance struct {
	PID       int
	WindowID  uint32
	ScreenNum int
	Bounds    Rect
}

// Matches reports whether either window's patterns match the other's
// literals. Both owner and name must match on the same side.
func (w Window) Matches(other Window) bool {
	return (w.OwnerName.Match(other.OwnerName.String()) && w.Name.Match(other.Name.String())) ||
		(other.OwnerName.Match(w.OwnerName.String()) && other.Name.Match(w.Name.String()))
}

func (w Window) String() string {
	return fmt.Sprintf("%s/%s", w.OwnerName, w.Name)
}

func (r Rect) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

func (r *Rect) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseRect(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*r = parsed
		return nil
	case yaml.SequenceNode:
		var vals []int
		if err := value.Decode(&vals); err != nil {
			return err
		}
		if len(vals) != 4 {
			return fmt.Errorf("line %d: rect must have 4 values, got %d", value.Line, len(vals))
		}
		*r = Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}
		return nil
	default:
		return fmt.Errorf("line %d: rect must be a string \"x,y,w,h\"", value.Line)
	}
}

func (p Pattern) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func (p *Pattern) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: pattern must be a string", value.Line)
	}
	*p = ParsePattern(value.Value)
	return nil
}

func (p Position) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func (p *Position) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: position must be a string", value.Line)
	}
	parsed, err := ParsePosition(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = parsed
	return nil
}

var windowKeys = map[string]bool{
	"owner_name": true,
	"name":       true,
	"screen_num": true,
	"pos":        true,
	"bounds":     true,
}

// UnmarshalYAML accepts either "pos" or the older "bounds" key. Decoding a
// node does not inherit the document decoder's KnownFields setting, so keys
// are checked here.
func (w *Window) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: window must be a mapping", value.Line)
	}
	seen := make(map[string]bool, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if !windowKeys[key.Value] {
			return fmt.Errorf("line %d: unknown window field %q", key.Line, key.Value)
		}
		seen[key.Value] = true
	}
	for _, required := range []string{"owner_name", "name"} {
		if !seen[required] {
			return fmt.Errorf("line %d: window is missing %s", value.Line, required)
		}
	}

	var raw struct {
		OwnerName Pattern   `yaml:"owner_name"`
		Name      Pattern   `yaml:"name"`
		ScreenNum int       `yaml:"screen_num"`
		Pos       *Position `yaml:"pos"`
		Bounds    *Rect     `yaml:"bounds"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	out := Window{
		OwnerName: raw.OwnerName,
		Name:      raw.Name,
		ScreenNum: raw.ScreenNum,
	}
	switch {
	case raw.Pos != nil:
		out.Pos = *raw.Pos
	case raw.Bounds != nil:
		out.Pos = At(*raw.Bounds)
	default:
		return fmt.Errorf("line %d: window %s has no pos", value.Line, out)
	}
	*w = out
	return nil
}
