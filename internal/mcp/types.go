package mcp

// SaveLayoutInput is the input for the save_layout tool.
type SaveLayoutInput struct {
	Name string `json:"name,omitempty" jsonschema:"Store the layout under this name in the layouts directory. When omitted the layout is written to the default layout path unless dry_run is set."`
	// DryRun returns the captured document without writing it.
	DryRun bool `json:"dry_run,omitempty" jsonschema:"When true, capture and return the layout without saving it"`
}

// SaveLayoutOutput is the output for the save_layout tool.
type SaveLayoutOutput struct {
	Path     string `json:"path,omitempty"`
	Screens  int    `json:"screens"`
	Windows  int    `json:"windows"`
	Document string `json:"document"`
}

// RestoreLayoutInput is the input for the restore_layout tool.
type RestoreLayoutInput struct {
	Name   string `json:"name,omitempty" jsonschema:"Name of a stored layout (see list_layouts)"`
	Path   string `json:"path,omitempty" jsonschema:"Path to a layout file; ~ is expanded. Defaults to the configured layout path when neither name nor path is given."`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"When true, report the moves that would be made without moving any window"`
	Passes int    `json:"passes,omitempty" jsonschema:"Number of observe/move passes (default: configured passes, usually 2)"`
}

// PassSummary describes one reconciliation pass.
type PassSummary struct {
	Pass      int `json:"pass"`
	Observed  int `json:"observed"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
	Moved     int `json:"moved"`
	Failed    int `json:"failed"`
}

// MoveInfo describes one window move.
type MoveInfo struct {
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	WindowID uint32 `json:"window_id"`
	Target   string `json:"target"`
}

// RestoreLayoutOutput is the output for the restore_layout tool.
type RestoreLayoutOutput struct {
	Source   string        `json:"source"`
	DryRun   bool          `json:"dry_run"`
	Passes   []PassSummary `json:"passes"`
	Moves    []MoveInfo    `json:"moves"`
	Failures int           `json:"failures"`
}

// ListLayoutsInput is the input for the list_layouts tool.
type ListLayoutsInput struct{}

// LayoutInfo describes a stored layout.
type LayoutInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ListLayoutsOutput is the output for the list_layouts tool.
type ListLayoutsOutput struct {
	Layouts []LayoutInfo `json:"layouts"`
}
