// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it takes the workspace store and the search
// index and injects them into the tools, prompts and resources that depend
// on them. No business logic lives here, only wiring.
package server

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/HendryAvila/jumble/internal/prompts"
	"github.com/HendryAvila/jumble/internal/resources"
	"github.com/HendryAvila/jumble/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Name is the server name reported to MCP clients.
const Name = "jumble"

// New creates and configures the MCP server with all tools, prompts and
// resources registered. store and searcher must outlive the server.
func New(store tools.Reloader, searcher tools.Searcher, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register query tools ---

	listProjects := tools.NewListProjectsTool(store)
	s.AddTool(listProjects.Definition(), listProjects.Handle)

	projectInfo := tools.NewProjectInfoTool(store)
	s.AddTool(projectInfo.Definition(), projectInfo.Handle)

	commands := tools.NewCommandsTool(store)
	s.AddTool(commands.Definition(), commands.Handle)

	architecture := tools.NewArchitectureTool(store)
	s.AddTool(architecture.Definition(), architecture.Handle)

	relatedFiles := tools.NewRelatedFilesTool(store)
	s.AddTool(relatedFiles.Definition(), relatedFiles.Handle)

	conventions := tools.NewConventionsTool(store)
	s.AddTool(conventions.Definition(), conventions.Handle)

	docs := tools.NewDocsTool(store)
	s.AddTool(docs.Definition(), docs.Handle)

	listSkills := tools.NewListSkillsTool(store)
	s.AddTool(listSkills.Definition(), listSkills.Handle)

	skill := tools.NewSkillTool(store)
	s.AddTool(skill.Definition(), skill.Handle)

	// --- Register workspace tools ---

	overview := tools.NewWorkspaceOverviewTool(store)
	s.AddTool(overview.Definition(), overview.Handle)

	wsConventions := tools.NewWorkspaceConventionsTool(store)
	s.AddTool(wsConventions.Definition(), wsConventions.Handle)

	authoring := tools.NewAuthoringPromptTool()
	s.AddTool(authoring.Definition(), authoring.Handle)

	reload := tools.NewReloadTool(store)
	s.AddTool(reload.Definition(), reload.Handle)

	searchTool := tools.NewSearchTool(searcher)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	authorPrompt := prompts.NewAuthorPrompt()
	s.AddPrompt(authorPrompt.Definition(), authorPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store)
	s.AddResource(resourceHandler.OverviewResource(), resourceHandler.HandleOverview)
	s.AddResource(resourceHandler.DiagnosticsResource(), resourceHandler.HandleDiagnostics)

	logger.Debug("mcp server configured", "name", Name, "version", Version)
	return s
}

// serverInstructions returns the system instructions that tell the AI
// how to use jumble effectively.
func serverInstructions() string {
	return `You have access to jumble, which serves structured context about the
projects in this workspace: what each one is, how to build and test it,
where its architectural concepts live, and which conventions it follows.

## When to use jumble

Before suggesting commands:
- Call get_commands(project, command_type) for the exact build/test/lint/run command.
- Never guess commands when jumble can provide them.

Before making architectural changes:
- Call get_architecture(project, concept) to understand existing patterns.
- Use get_related_files(project, query) to find related code.
- Use search_context(query) when you do not know which project or concept applies.

Before writing new code:
- Call get_conventions(project) for project-specific patterns and gotchas.
- Call get_workspace_conventions() for workspace-wide standards.

Before searching for documentation:
- Call get_docs(project) to see the documentation index.

For specific tasks:
- Call list_skills(project) and get_skill(project, topic) for focused instructions.

## Missing context

If list_projects finds nothing, or a project has no descriptor:
1. Call get_jumble_authoring_prompt() for the authoring guide.
2. Offer to write .jumble/project.toml for the project.
3. Call reload_workspace() and check get_workspace_overview() for load errors.

## Workflow

1. Entering the workspace: get_workspace_overview()
2. Working on a project: get_project_info(project)
3. Making changes: check conventions, architecture and skills first.`
}
