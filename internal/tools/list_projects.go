package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
)

// ListProjectsTool handles the list_projects MCP tool.
type ListProjectsTool struct {
	snap Snapshotter
}

// NewListProjectsTool creates a ListProjectsTool.
func NewListProjectsTool(snap Snapshotter) *ListProjectsTool {
	return &ListProjectsTool{snap: snap}
}

// Definition returns the MCP tool definition for registration.
func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription(
			"Lists all projects with their descriptions. "+
				"Use this to discover what projects exist in the workspace.",
		),
	)
}

// Handle processes the list_projects tool call.
func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects := query.ListProjects(t.snap.Current())
	if len(projects) == 0 {
		return mcp.NewToolResultText(
			"No projects found. Make sure .jumble/project.toml files exist in your workspace, " +
				"or call get_jumble_authoring_prompt to create one.",
		), nil
	}
	return jsonResult(projects)
}
