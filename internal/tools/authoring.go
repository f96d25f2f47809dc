package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
)

// AuthoringPromptTool handles the get_jumble_authoring_prompt MCP tool.
type AuthoringPromptTool struct{}

// NewAuthoringPromptTool creates an AuthoringPromptTool.
func NewAuthoringPromptTool() *AuthoringPromptTool {
	return &AuthoringPromptTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *AuthoringPromptTool) Definition() mcp.Tool {
	return mcp.NewTool("get_jumble_authoring_prompt",
		mcp.WithDescription(
			"Returns instructions for writing a .jumble/project.toml descriptor. "+
				"Use it when a project has no descriptor yet.",
		),
	)
}

// Handle processes the get_jumble_authoring_prompt tool call.
func (t *AuthoringPromptTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(query.AuthoringPrompt()), nil
}
