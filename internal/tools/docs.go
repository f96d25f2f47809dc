package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
)

// DocsTool handles the get_docs MCP tool.
type DocsTool struct {
	snap Snapshotter
}

// NewDocsTool creates a DocsTool.
func NewDocsTool(snap Snapshotter) *DocsTool {
	return &DocsTool{snap: snap}
}

// Definition returns the MCP tool definition for registration.
func (t *DocsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_docs",
		mcp.WithDescription(
			"Returns a documentation index for a project, listing available docs with summaries. "+
				"Optionally retrieves the path to a specific doc.",
		),
		projectParam(),
		mcp.WithString("topic",
			mcp.Description("Optional: specific doc topic to get the path for"),
		),
	)
}

// Handle processes the get_docs tool call.
func (t *DocsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(query.Docs(t.snap.Current(), stringArg(req, "project"), stringArg(req, "topic")))
}
