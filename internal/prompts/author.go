package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
)

// AuthorPrompt handles the jumble-author MCP prompt.
// It asks the AI to write a descriptor for a project that lacks one.
type AuthorPrompt struct{}

// NewAuthorPrompt creates an AuthorPrompt.
func NewAuthorPrompt() *AuthorPrompt {
	return &AuthorPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *AuthorPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("jumble-author",
		mcp.WithPromptDescription(
			"Write a .jumble/project.toml descriptor for a project, "+
				"then reload the workspace and check it loaded cleanly.",
		),
		mcp.WithArgument("project_dir",
			mcp.ArgumentDescription("Directory of the project to describe. Default: the current directory"),
		),
	)
}

// Handle processes the jumble-author prompt request.
func (p *AuthorPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	dir := "."
	if args := req.Params.Arguments; args != nil {
		if d := strings.TrimSpace(args["project_dir"]); d != "" {
			dir = d
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Write a jumble descriptor for %s", dir),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Write a jumble descriptor for the project in `%s`.\n\n"+
						"Explore the project first, then create `%s/.jumble/project.toml` "+
						"following this guide:\n\n%s",
					dir, strings.TrimSuffix(dir, "/"), query.AuthoringPrompt(),
				)),
			},
		},
	}, nil
}
