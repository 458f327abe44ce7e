package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/relayout/internal/app"
	"github.com/1broseidon/relayout/internal/store"
)

func (s *Server) handleSaveLayout(ctx context.Context, _ *mcpsdk.CallToolRequest, args SaveLayoutInput) (*mcpsdk.CallToolResult, SaveLayoutOutput, error) {
	captured, err := s.app.Capture(ctx)
	if err != nil {
		return nil, SaveLayoutOutput{}, fmt.Errorf("capture layout: %w", err)
	}
	doc, err := store.Encode(captured)
	if err != nil {
		return nil, SaveLayoutOutput{}, err
	}

	out := SaveLayoutOutput{
		Screens:  len(captured.Screens),
		Windows:  len(captured.Windows),
		Document: string(doc),
	}
	if args.DryRun {
		return nil, out, nil
	}

	path, err := s.app.ResolvePath(app.Source{Name: strings.TrimSpace(args.Name)})
	if err != nil {
		return nil, SaveLayoutOutput{}, err
	}
	if err := store.WriteFile(path, captured); err != nil {
		return nil, SaveLayoutOutput{}, err
	}
	out.Path = path
	s.app.Logger.Info("saved layout", "path", path, "windows", out.Windows)
	return nil, out, nil
}

func (s *Server) handleRestoreLayout(ctx context.Context, _ *mcpsdk.CallToolRequest, args RestoreLayoutInput) (*mcpsdk.CallToolResult, RestoreLayoutOutput, error) {
	src := app.Source{Name: args.Name, Path: args.Path}
	desired, err := s.app.Load(src)
	if err != nil {
		return nil, RestoreLayoutOutput{}, err
	}

	report, err := s.app.Restore(ctx, desired, app.RestoreOptions{Passes: args.Passes, DryRun: args.DryRun})
	if err != nil {
		return nil, RestoreLayoutOutput{}, fmt.Errorf("restore %s: %w", src, err)
	}

	out := RestoreLayoutOutput{
		Source:   src.String(),
		DryRun:   args.DryRun,
		Passes:   make([]PassSummary, 0, len(report.Passes)),
		Moves:    make([]MoveInfo, 0),
		Failures: report.Failures(),
	}
	for _, p := range report.Passes {
		out.Passes = append(out.Passes, PassSummary{
			Pass:      p.Pass,
			Observed:  p.Observed,
			Matched:   p.Matched,
			Unmatched: p.Unmatched,
			Moved:     len(p.Moves),
			Failed:    p.Failed,
		})
	}
	for _, m := range report.Moves() {
		out.Moves = append(out.Moves, MoveInfo{
			Owner:    m.OwnerName,
			Name:     m.Name,
			WindowID: m.WindowID,
			Target:   m.Target.String(),
		})
	}
	return nil, out, nil
}

func (s *Server) handleListLayouts(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListLayoutsInput) (*mcpsdk.CallToolResult, ListLayoutsOutput, error) {
	names, err := s.app.Store.List()
	if err != nil {
		return nil, ListLayoutsOutput{}, err
	}
	out := ListLayoutsOutput{Layouts: make([]LayoutInfo, 0, len(names))}
	for _, name := range names {
		path, err := s.app.Store.Path(name)
		if err != nil {
			continue
		}
		out.Layouts = append(out.Layouts, LayoutInfo{Name: name, Path: path})
	}
	return nil, out, nil
}
