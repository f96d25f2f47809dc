package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
)

// ArchitectureTool handles the get_architecture MCP tool.
type ArchitectureTool struct {
	snap Snapshotter
}

// NewArchitectureTool creates an ArchitectureTool.
func NewArchitectureTool(snap Snapshotter) *ArchitectureTool {
	return &ArchitectureTool{snap: snap}
}

// Definition returns the MCP tool definition for registration.
func (t *ArchitectureTool) Definition() mcp.Tool {
	return mcp.NewTool("get_architecture",
		mcp.WithDescription(
			"Returns architectural info for a specific concept/area of a project, "+
				"including relevant files and a summary. Concept names must match exactly; "+
				"on a miss the error lists the available concepts.",
		),
		projectParam(),
		mcp.WithString("concept",
			mcp.Required(),
			mcp.Description("The architectural concept to look up (e.g., 'auth', 'routing', 'database')"),
		),
	)
}

// Handle processes the get_architecture tool call.
func (t *ArchitectureTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(query.Architecture(t.snap.Current(), stringArg(req, "project"), stringArg(req, "concept")))
}
