// Package prompts implements the MCP prompts that start a jumble workflow.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the jumble-start MCP prompt.
// It tells the AI to orient itself in the workspace before touching code.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("jumble-start",
		mcp.WithPromptDescription(
			"Load workspace context before starting a task: overview, "+
				"project metadata, commands and conventions.",
		),
		mcp.WithArgument("project",
			mcp.ArgumentDescription("Optional project you are about to work on"),
		),
	)
}

// Handle processes the jumble-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	project := ""
	if args := req.Params.Arguments; args != nil {
		project = strings.TrimSpace(args["project"])
	}

	desc := "Load jumble workspace context"
	var b strings.Builder
	b.WriteString("Before we start, load the project context from jumble.\n\n")
	b.WriteString("1. Call `get_workspace_overview` to see every project and how they depend on each other\n")
	if project == "" {
		b.WriteString("2. Ask me which project we are working on, then call `get_project_info` for it\n")
		project = "<project>"
	} else {
		desc = fmt.Sprintf("Load jumble context for %s", project)
		fmt.Fprintf(&b, "2. Call `get_project_info` with project='%s'\n", project)
	}
	fmt.Fprintf(&b, "3. Call `get_commands` with project='%s' and use those exact commands; never guess them\n", project)
	fmt.Fprintf(&b, "4. Call `get_conventions` with project='%s' and `get_workspace_conventions`, "+
		"and keep the gotchas in mind\n", project)
	fmt.Fprintf(&b, "5. Call `list_skills` with project='%s' and tell me if one fits the task\n\n", project)
	b.WriteString("If the overview lists load errors, show them to me first. " +
		"If no projects are found, call `get_jumble_authoring_prompt` and offer to write a descriptor.")

	return &mcp.GetPromptResult{
		Description: desc,
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(b.String()),
			},
		},
	}, nil
}
