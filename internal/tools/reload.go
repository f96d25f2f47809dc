package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReloadTool handles the reload_workspace MCP tool.
type ReloadTool struct {
	store Reloader
}

// NewReloadTool creates a ReloadTool.
func NewReloadTool(store Reloader) *ReloadTool {
	return &ReloadTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *ReloadTool) Definition() mcp.Tool {
	return mcp.NewTool("reload_workspace",
		mcp.WithDescription(
			"Re-scans the workspace for .jumble/project.toml files. "+
				"Call this after creating or editing a descriptor.",
		),
	)
}

// Handle processes the reload_workspace tool call.
func (t *ReloadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, err := t.store.Rebuild(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to reload workspace: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Reloaded workspace %s: %d project(s)", ws.Root, len(ws.Projects))
	if names := ws.Names(); len(names) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(names, ", "))
	}
	b.WriteString(".")
	if n := len(ws.LoadErrors); n > 0 {
		fmt.Fprintf(&b, "\n\n%d load error(s):", n)
		for _, d := range ws.LoadErrors {
			fmt.Fprintf(&b, "\n- %s: %s", d.Path, d.Message)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
