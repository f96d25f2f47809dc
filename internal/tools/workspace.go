package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
)

// WorkspaceOverviewTool handles the get_workspace_overview MCP tool.
type WorkspaceOverviewTool struct {
	snap Snapshotter
}

// NewWorkspaceOverviewTool creates a WorkspaceOverviewTool.
func NewWorkspaceOverviewTool(snap Snapshotter) *WorkspaceOverviewTool {
	return &WorkspaceOverviewTool{snap: snap}
}

// Definition returns the MCP tool definition for registration.
func (t *WorkspaceOverviewTool) Definition() mcp.Tool {
	return mcp.NewTool("get_workspace_overview",
		mcp.WithDescription(
			"Returns a high-level overview of the entire workspace: workspace info, "+
				"all projects with descriptions, their dependency relationships and any "+
				"descriptor files that failed to load. Call this first to understand "+
				"the workspace structure.",
		),
	)
}

// Handle processes the get_workspace_overview tool call.
func (t *WorkspaceOverviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(query.WorkspaceOverview(t.snap.Current()))
}

// WorkspaceConventionsTool handles the get_workspace_conventions MCP tool.
type WorkspaceConventionsTool struct {
	snap Snapshotter
}

// NewWorkspaceConventionsTool creates a WorkspaceConventionsTool.
func NewWorkspaceConventionsTool(snap Snapshotter) *WorkspaceConventionsTool {
	return &WorkspaceConventionsTool{snap: snap}
}

// Definition returns the MCP tool definition for registration.
func (t *WorkspaceConventionsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_workspace_conventions",
		mcp.WithDescription(
			"Returns workspace-level conventions and gotchas that apply across all "+
				"projects in the workspace.",
		),
		categoryParam(),
	)
}

// Handle processes the get_workspace_conventions tool call.
func (t *WorkspaceConventionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(query.WorkspaceConventions(t.snap.Current(), stringArg(req, "category")))
}
