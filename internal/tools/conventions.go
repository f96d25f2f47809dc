package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
)

// ConventionsTool handles the get_conventions MCP tool.
type ConventionsTool struct {
	snap Snapshotter
}

// NewConventionsTool creates a ConventionsTool.
func NewConventionsTool(snap Snapshotter) *ConventionsTool {
	return &ConventionsTool{snap: snap}
}

// Definition returns the MCP tool definition for registration.
func (t *ConventionsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_conventions",
		mcp.WithDescription(
			"Returns project-specific coding conventions and gotchas. "+
				"Conventions are architectural patterns and standards; "+
				"gotchas are common mistakes to avoid.",
		),
		projectParam(),
		categoryParam(),
	)
}

// Handle processes the get_conventions tool call.
func (t *ConventionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(query.Conventions(t.snap.Current(), stringArg(req, "project"), stringArg(req, "category")))
}
