package tools

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/search"
)

// SearchTool handles the search_context MCP tool.
type SearchTool struct {
	searcher Searcher
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(searcher Searcher) *SearchTool {
	return &SearchTool{searcher: searcher}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_context",
		mcp.WithDescription(
			"Full-text search across every project's commands, concepts, conventions, "+
				"gotchas, docs and skills. Results are ranked by relevance. "+
				"Use it when you do not know which project or concept holds the answer.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Words to search for"),
		),
		mcp.WithString("project",
			mcp.Description("Optional: restrict results to one project"),
		),
		mcp.WithString("kind",
			mcp.Description("Optional: restrict results to one kind of entry"),
			mcp.Enum(search.Kinds...),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default: 10, max: 50)"),
		),
	)
}

// Handle processes the search_context tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := stringArg(req, "query")
	if q == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	kind := strings.ToLower(stringArg(req, "kind"))
	if kind != "" && !slices.Contains(search.Kinds, kind) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"invalid kind %q: must be one of %s", kind, strings.Join(search.Kinds, ", "),
		)), nil
	}

	hits, err := t.searcher.Search(ctx, q, search.Options{
		Project: stringArg(req, "project"),
		Kind:    kind,
		Limit:   req.GetInt("limit", 0),
	})
	switch {
	case errors.Is(err, search.ErrEmptyQuery), errors.Is(err, search.ErrNotReady):
		return mcp.NewToolResultError(err.Error()), nil
	case err != nil:
		return nil, errors.Wrap(err, "searching workspace")
	}

	if len(hits) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No results for %q.", q)), nil
	}
	return jsonResult(hits)
}
