package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/relayout/internal/app"
)

const (
	ServerName    = "relayout"
	ServerVersion = "0.1.0"
)

// Server exposes layout capture and restore as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	app       *app.App
}

// NewServer creates an MCP server backed by a.
func NewServer(a *app.App) *Server {
	s := &Server{app: a}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "save_layout",
		Description: "Capture the current screens and window positions. Windows are recorded relative to their screen so the layout can be restored after displays are rearranged. Pass name to store it for later restore_layout calls.",
	}, s.handleSaveLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_layout",
		Description: "Move open windows back to the positions in a saved layout. Windows are matched by application and title; unmatched windows are left alone. Use dry_run to preview the moves.",
	}, s.handleRestoreLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_layouts",
		Description: "List the layouts stored by name.",
	}, s.handleListLayouts)
}
