// Package tools implements the MCP tool handlers that expose workspace
// queries to agents.
//
// Each tool is a struct holding its dependencies, with a Definition for
// registration and a Handle compatible with mcp-go's CallToolRequest
// signature. One file per tool.
//
// Handlers read the snapshot once per call. Lookup misses and bad
// arguments become tool error results the agent can react to; a Go error
// is returned only when the server itself failed.
package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/search"
	"github.com/HendryAvila/jumble/internal/workspace"
)

// Snapshotter supplies the current workspace snapshot.
type Snapshotter interface {
	Current() *workspace.Workspace
}

// Reloader rebuilds and publishes a new snapshot.
type Reloader interface {
	Snapshotter
	Rebuild(ctx context.Context) (*workspace.Workspace, error)
}

// Searcher runs full-text queries over the current snapshot.
type Searcher interface {
	Search(ctx context.Context, query string, opts search.Options) ([]search.Hit, error)
}

// projectParam is the required project argument shared by most tools.
func projectParam() mcp.ToolOption {
	return mcp.WithString("project",
		mcp.Required(),
		mcp.Description("The project name, as returned by list_projects"),
	)
}

// categoryParam is the optional conventions/gotchas filter.
func categoryParam() mcp.ToolOption {
	return mcp.WithString("category",
		mcp.Description("Optional: 'conventions' or 'gotchas' to filter results"),
		mcp.Enum("conventions", "gotchas"),
	)
}

// stringArg reads a string argument, trimmed.
func stringArg(req mcp.CallToolRequest, key string) string {
	return strings.TrimSpace(req.GetString(key, ""))
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding tool result")
	}
	return mcp.NewToolResultText(string(data)), nil
}

// respond turns a query outcome into a tool result. Query errors are
// always the caller's to fix, so they never surface as Go errors.
func respond(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s, ok := v.(string); ok {
		return mcp.NewToolResultText(s), nil
	}
	return jsonResult(v)
}
