package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jumble/internal/query"
)

// ListSkillsTool handles the list_skills MCP tool.
type ListSkillsTool struct {
	snap Snapshotter
}

// NewListSkillsTool creates a ListSkillsTool.
func NewListSkillsTool(snap Snapshotter) *ListSkillsTool {
	return &ListSkillsTool{snap: snap}
}

// Definition returns the MCP tool definition for registration.
func (t *ListSkillsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_skills",
		mcp.WithDescription(
			"Lists available task-specific skills for a project. Skills provide focused "+
				"context for specific tasks like adding endpoints, debugging, etc.",
		),
		projectParam(),
	)
}

// Handle processes the list_skills tool call.
func (t *ListSkillsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(query.ListSkills(t.snap.Current(), stringArg(req, "project")))
}

// SkillTool handles the get_skill MCP tool.
type SkillTool struct {
	snap Snapshotter
}

// NewSkillTool creates a SkillTool.
func NewSkillTool(snap Snapshotter) *SkillTool {
	return &SkillTool{snap: snap}
}

// Definition returns the MCP tool definition for registration.
func (t *SkillTool) Definition() mcp.Tool {
	return mcp.NewTool("get_skill",
		mcp.WithDescription(
			"Retrieves a task-specific skill: inline instructions, or the path of the "+
				"markdown file that holds them.",
		),
		projectParam(),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("The skill topic (e.g., 'add-endpoint', 'debug-auth')"),
		),
	)
}

// Handle processes the get_skill tool call.
func (t *SkillTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return respond(query.Skill(t.snap.Current(), stringArg(req, "project"), stringArg(req, "topic")))
}
