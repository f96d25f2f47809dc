package descriptor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWithCompanions(t *testing.T, dir string) (*Descriptor, []error) {
	t.Helper()
	d, err := Load(filepath.Join(dir, DefaultMarkerDir, ProjectFile))
	require.NoError(t, err)
	return d, LoadCompanions(filepath.Join(dir, DefaultMarkerDir), d)
}

func TestLoadCompanions_MergesConventionsAndDocs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".jumble/project.toml", `
conventions = ["inline first"]

[project]
name = "api"
description = "d"

[docs]
api = "docs/api.md"
`)
	writeFile(t, dir, ".jumble/conventions.toml", `
conventions = ["from companion"]

[gotchas]
startup = "Migrations run on startup"
`)
	writeFile(t, dir, ".jumble/docs.toml", `
[docs]
api = "docs/other.md"
guide = { path = "docs/guide.md", summary = "Getting started" }
`)

	d, errs := loadWithCompanions(t, dir)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"inline first", "from companion"}, d.Conventions)
	assert.Equal(t, []string{"startup: Migrations run on startup"}, d.Gotchas)
	assert.Equal(t, "docs/api.md", d.Docs["api"].Path, "project.toml wins")
	assert.Equal(t, Doc{Path: "docs/guide.md", Summary: "Getting started"}, d.Docs["guide"])
}

func TestLoadCompanions_DiscoversSkillFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".jumble/project.toml", `
[project]
name = "api"
description = "d"

[skills.deploy]
description = "Inline deploy"
content = "run make deploy"
`)
	writeFile(t, dir, ".jumble/skills/add-endpoint.md", "\n# Adding an endpoint\n\nSteps...\n")
	writeFile(t, dir, ".jumble/skills/deploy.md", "# Overridden\n")
	writeFile(t, dir, ".jumble/skills/notes.txt", "ignored")

	d, errs := loadWithCompanions(t, dir)
	assert.Empty(t, errs)
	require.Len(t, d.Skills, 2)
	assert.Equal(t, Skill{
		Description: "Adding an endpoint",
		File:        ".jumble/skills/add-endpoint.md",
	}, d.Skills["add-endpoint"])
	assert.Equal(t, "Inline deploy", d.Skills["deploy"].Description)
}

func TestLoadCompanions_BadCompanionDoesNotBlockOthers(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".jumble/project.toml", "[project]\nname = \"api\"\ndescription = \"d\"\n")
	writeFile(t, dir, ".jumble/conventions.toml", "conventions = [\n")
	writeFile(t, dir, ".jumble/docs.toml", "[docs]\nguide = \"docs/guide.md\"\n")

	d, errs := loadWithCompanions(t, dir)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrParse)
	assert.Contains(t, d.Docs, "guide")
}

func TestLoadCompanions_NonePresent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".jumble/project.toml", "[project]\nname = \"api\"\ndescription = \"d\"\n")

	d, errs := loadWithCompanions(t, dir)
	assert.Empty(t, errs)
	assert.Empty(t, d.Conventions)
	assert.Empty(t, d.Skills)
}

func TestLoadWorkspaceInfo(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".jumble/workspace.toml", `
conventions = ["Every project has a README"]
gotchas = ["CI runs on main only"]

[workspace]
name = "platform"
description = "All services"
owner = "infra"

[ci]
provider = "github"
`)

	info, err := LoadWorkspaceInfo(path)
	require.NoError(t, err)
	assert.Equal(t, "platform", info.Name)
	assert.Equal(t, "All services", info.Description)
	assert.Equal(t, []string{"Every project has a README"}, info.Conventions)
	assert.Equal(t, []string{"CI runs on main only"}, info.Gotchas)
	assert.Equal(t, path, info.Source)
	assert.Equal(t, map[string]any{
		"workspace": map[string]any{"owner": "infra"},
		"ci":        map[string]any{"provider": "github"},
	}, info.Extra)
}

func TestLoadWorkspaceInfo_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "workspace.toml", "conventions = 3\n")

	_, err := LoadWorkspaceInfo(path)
	assert.ErrorIs(t, err, ErrValidation)
}
