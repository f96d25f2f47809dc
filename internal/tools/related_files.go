package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
)

// RelatedFilesTool handles the get_related_files MCP tool.
type RelatedFilesTool struct {
	snap Snapshotter
}

// NewRelatedFilesTool creates a RelatedFilesTool.
func NewRelatedFilesTool(snap Snapshotter) *RelatedFilesTool {
	return &RelatedFilesTool{snap: snap}
}

// Definition returns the MCP tool definition for registration.
func (t *RelatedFilesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_related_files",
		mcp.WithDescription(
			"Finds files related to a concept or feature by searching through all defined concepts. "+
				"Matches concept names, summaries and file paths, ignoring case.",
		),
		projectParam(),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text to match against concept names, summaries and file paths"),
		),
	)
}

// Handle processes the get_related_files tool call.
func (t *RelatedFilesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := stringArg(req, "query")
	matches, err := query.RelatedFilesFor(t.snap.Current(), stringArg(req, "project"), q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No concepts match %q.", q)), nil
	}
	return jsonResult(matches)
}
