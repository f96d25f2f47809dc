package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
)

// ProjectInfoTool handles the get_project_info MCP tool.
type ProjectInfoTool struct {
	snap Snapshotter
}

// NewProjectInfoTool creates a ProjectInfoTool.
func NewProjectInfoTool(snap Snapshotter) *ProjectInfoTool {
	return &ProjectInfoTool{snap: snap}
}

// Definition returns the MCP tool definition for registration.
func (t *ProjectInfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project_info",
		mcp.WithDescription(
			"Returns metadata about a specific project including description, language, "+
				"version, entry points, concepts and any extra sections the descriptor declares. "+
				"Pass 'field' to fetch a single value instead of the whole descriptor.",
		),
		projectParam(),
		mcp.WithString("field",
			mcp.Description(
				"Optional dotted path of a single value, e.g. 'commands.test', "+
					"'entry_points', 'dependencies.external', 'concepts.auth.files[0]'",
			),
		),
	)
}

// Handle processes the get_project_info tool call.
func (t *ProjectInfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(query.ProjectInfo(t.snap.Current(), stringArg(req, "project"), stringArg(req, "field")))
}
