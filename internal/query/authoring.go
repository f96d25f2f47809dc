package query

import "strings"

// AuthoringPrompt returns the guide an agent follows to write a descriptor
// for a project that has none.
func AuthoringPrompt() string {
	return strings.TrimSpace(authoringGuide)
}

const authoringGuide = `
# Writing a .jumble/project.toml

Create ` + "`.jumble/project.toml`" + ` at the root of the project. Read the
build files (Cargo.toml, package.json, go.mod, Makefile, pyproject.toml) and
the main source directories first; write down only facts you verified.

## Required

[project]
name = "my-service"          # unique across the workspace
description = "One sentence on what this project does"

## Recommended

Under [project]:

language = "go"
version = "0.3.0"
repository = "https://example.com/org/my-service"

Then the sections:

[commands]
build = "go build ./..."
test = "go test ./..."
lint = "golangci-lint run"
run = "go run ./cmd/my-service"

[entry_points]
main = "cmd/my-service/main.go"

[concepts.auth]
files = ["internal/auth/jwt.go", "internal/auth/middleware.go"]
summary = "JWT validation middleware for every HTTP route"

[docs]
architecture = { path = "docs/architecture.md", summary = "Component overview" }

[skills.add-endpoint]
description = "Adding a new HTTP endpoint"
content = "Register the handler in internal/http/routes.go, then add a test."

[related_projects]
upstream = ["shared-types"]
downstream = ["web"]

Conventions and gotchas go in .jumble/conventions.toml:

conventions = [
  "Errors are wrapped with context before being returned",
]
gotchas = [
  "Integration tests need a running Postgres on port 5432",
]

## Rules

- Top-level arrays such as conventions and gotchas may also sit in
  project.toml, but only before the first [table] header.
- Every concept needs a non-empty files list. Paths are relative to the
  project root.
- A skill sets exactly one of content or file. Longer skills can live in
  .jumble/skills/<topic>.md; the first line becomes the description.
- Any other section you add (dependencies, api, owners) is kept and can be
  read back with get_project_info and a field path.
- Name concepts after the areas people ask about: auth, routing, storage,
  config. Keep summaries to one line.

After writing the file, call reload_workspace and check get_workspace_overview
for load errors.
`
