package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
)

// CommandsTool handles the get_commands MCP tool.
type CommandsTool struct {
	snap Snapshotter
}

// NewCommandsTool creates a CommandsTool.
func NewCommandsTool(snap Snapshotter) *CommandsTool {
	return &CommandsTool{snap: snap}
}

// Definition returns the MCP tool definition for registration.
func (t *CommandsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_commands",
		mcp.WithDescription(
			"Returns executable commands for a project (build, test, lint, run, dev, etc.). "+
				"With command_type, returns just that command line.",
		),
		projectParam(),
		mcp.WithString("command_type",
			mcp.Description("Optional specific command type: 'build', 'test', 'lint', 'run', 'dev'"),
		),
	)
}

// Handle processes the get_commands tool call.
func (t *CommandsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(query.Commands(t.snap.Current(), stringArg(req, "project"), stringArg(req, "command_type")))
}
