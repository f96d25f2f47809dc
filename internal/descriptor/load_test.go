package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullDescriptor = `
conventions = ["Use thiserror for library errors"]
gotchas = ["Migrations run on startup"]

[project]
name = "api"
description = "HTTP API service"
language = "rust"
version = "1.2.0"
repository = "https://example.com/api"
homepage = "https://api.example.com"

[commands]
build = "cargo build"
test = "cargo test"

[entry_points]
main = "src/main.rs"

[concepts.auth]
files = ["src/auth.rs", "src/middleware/jwt.rs"]
summary = "JWT middleware"
owner = "platform-team"

[concepts.routing]
files = ["src/routes.rs"]
summary = "Axum router setup"

[docs]
architecture = "docs/architecture.md"
api = { path = "docs/api.md", summary = "Endpoint reference" }

[skills.add-endpoint]
description = "Adding a new endpoint"
content = "Create a handler in src/routes.rs"

[skills.debug-auth]
description = "Debugging auth"
file = ".jumble/skills/debug-auth.md"

[dependencies]
internal = ["shared-types"]
external = ["axum", "tokio"]

[related_projects]
upstream = ["shared-types"]
downstream = ["web"]
`

func TestParse_FullDescriptor(t *testing.T) {
	d, err := Parse([]byte(fullDescriptor), "project.toml")
	require.NoError(t, err)

	assert.Equal(t, "api", d.Name)
	assert.Equal(t, "HTTP API service", d.Description)
	assert.Equal(t, "rust", d.Language)
	assert.Equal(t, "1.2.0", d.Version)
	assert.Equal(t, "https://example.com/api", d.Repository)

	assert.Equal(t, map[string]string{"build": "cargo build", "test": "cargo test"}, d.Commands)
	assert.Equal(t, map[string]string{"main": "src/main.rs"}, d.EntryPoints)

	require.Contains(t, d.Concepts, "auth")
	assert.Equal(t, []string{"src/auth.rs", "src/middleware/jwt.rs"}, d.Concepts["auth"].Files)
	assert.Equal(t, "JWT middleware", d.Concepts["auth"].Summary)

	assert.Equal(t, []string{"Use thiserror for library errors"}, d.Conventions)
	assert.Equal(t, []string{"Migrations run on startup"}, d.Gotchas)

	assert.Equal(t, Doc{Path: "docs/architecture.md"}, d.Docs["architecture"])
	assert.Equal(t, Doc{Path: "docs/api.md", Summary: "Endpoint reference"}, d.Docs["api"])

	assert.Equal(t, "Create a handler in src/routes.rs", d.Skills["add-endpoint"].Content)
	assert.Equal(t, ".jumble/skills/debug-auth.md", d.Skills["debug-auth"].File)
}

func TestParse_UnknownFieldsLandInExtra(t *testing.T) {
	d, err := Parse([]byte(fullDescriptor), "project.toml")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"internal": []any{"shared-types"},
		"external": []any{"axum", "tokio"},
	}, d.Extra["dependencies"])
	assert.Equal(t, map[string]any{"homepage": "https://api.example.com"}, d.Extra["project"])
	assert.Equal(t, map[string]any{
		"auth": map[string]any{"owner": "platform-team"},
	}, d.Extra["concepts"])

	assert.NotContains(t, d.Extra, "commands")
	assert.NotContains(t, d.Extra, "docs")
	assert.NotContains(t, d.Extra, "skills")
}

func TestParse_MinimalDescriptorHasEmptyCollections(t *testing.T) {
	d, err := Parse([]byte("[project]\nname = \"x\"\ndescription = \"\"\n"), "p.toml")
	require.NoError(t, err)

	assert.NotNil(t, d.Commands)
	assert.NotNil(t, d.Concepts)
	assert.NotNil(t, d.Conventions)
	assert.Empty(t, d.Gotchas)
	assert.Nil(t, d.Extra)
}

func TestEncode_RoundTrip(t *testing.T) {
	want, err := Parse([]byte(fullDescriptor), "project.toml")
	require.NoError(t, err)

	data, err := Encode(want)
	require.NoError(t, err)

	got, err := Parse(data, "encoded.toml")
	require.NoError(t, err, "encoded text:\n%s", data)
	assert.Equal(t, want, got)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
		msg   string
	}{
		{
			name:  "no project section",
			input: "[commands]\nbuild = \"make\"\n",
			field: "project.name",
			msg:   "missing project.name",
		},
		{
			name:  "empty name",
			input: "[project]\nname = \"  \"\ndescription = \"d\"\n",
			field: "project.name",
			msg:   "missing project.name",
		},
		{
			name:  "missing description",
			input: "[project]\nname = \"x\"\n",
			field: "project.description",
			msg:   "missing project.description",
		},
		{
			name:  "concept without files",
			input: "[project]\nname = \"x\"\ndescription = \"d\"\n[concepts.auth]\nsummary = \"s\"\n",
			field: "concepts.auth.files",
			msg:   "non-empty array of strings",
		},
		{
			name:  "concept with empty files",
			input: "[project]\nname = \"x\"\ndescription = \"d\"\n[concepts.auth]\nfiles = []\n",
			field: "concepts.auth.files",
			msg:   "non-empty array of strings",
		},
		{
			name:  "concept with non-string file",
			input: "[project]\nname = \"x\"\ndescription = \"d\"\n[concepts.auth]\nfiles = [1]\n",
			field: "concepts.auth.files",
			msg:   "non-empty array of strings",
		},
		{
			name:  "skill with neither content nor file",
			input: "[project]\nname = \"x\"\ndescription = \"d\"\n[skills.s]\ndescription = \"d\"\n",
			field: "skills.s",
			msg:   "exactly one of content or file",
		},
		{
			name:  "skill with both content and file",
			input: "[project]\nname = \"x\"\ndescription = \"d\"\n[skills.s]\ncontent = \"c\"\nfile = \"f.md\"\n",
			field: "skills.s",
			msg:   "exactly one of content or file",
		},
		{
			name:  "concept with an empty path",
			input: "[project]\nname = \"x\"\ndescription = \"d\"\n[concepts.auth]\nfiles = [\"src/a.rs\", \"\"]\n",
			field: "concepts.auth.files",
			msg:   "files[1] must be a non-empty path",
		},
		{
			name:  "skill with an empty file",
			input: "[project]\nname = \"x\"\ndescription = \"d\"\n[skills.s]\ndescription = \"no body\"\nfile = \"\"\n",
			field: "skills.s",
			msg:   "exactly one of content or file",
		},
		{
			name:  "skill with blank content",
			input: "[project]\nname = \"x\"\ndescription = \"d\"\n[skills.s]\ncontent = \"  \"\n",
			field: "skills.s",
			msg:   "exactly one of content or file",
		},
		{
			name:  "skill with empty content and empty file",
			input: "[project]\nname = \"x\"\ndescription = \"d\"\n[skills.s]\ncontent = \"\"\nfile = \"\"\n",
			field: "skills.s",
			msg:   "exactly one of content or file",
		},
		{
			name:  "command that is not a string",
			input: "[project]\nname = \"x\"\ndescription = \"d\"\n[commands]\nbuild = 3\n",
			field: "commands.build",
			msg:   "must be a string",
		},
		{
			name:  "conventions with mixed types",
			input: "conventions = [\"a\", 1]\n[project]\nname = \"x\"\ndescription = \"d\"\n",
			field: "conventions",
			msg:   "array of strings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), "p.toml")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.True(t, verr.HasField(tt.field), "problems: %v", verr.Problems)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParse_ReportsEveryProblem(t *testing.T) {
	input := "[concepts.a]\nfiles = []\n[skills.b]\ndescription = \"x\"\n"
	_, err := Parse([]byte(input), "p.toml")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.HasField("project.name"))
	assert.True(t, verr.HasField("project.description"))
	assert.True(t, verr.HasField("concepts.a.files"))
	assert.True(t, verr.HasField("skills.b"))
}

func TestParse_SyntaxError(t *testing.T) {
	input := "[project]\nname = \"x\"\ndescription = \n"
	_, err := Parse([]byte(input), "broken.toml")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "broken.toml", perr.Path)
	assert.Positive(t, perr.Line)
	assert.Contains(t, err.Error(), "broken.toml")
}

func TestParse_InvalidUTF8IsReadError(t *testing.T) {
	_, err := Parse([]byte{0xff, 0xfe, 0x00}, "bin.toml")
	assert.ErrorIs(t, err, ErrRead)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".jumble", "project.toml"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_SetsDirAndSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".jumble/project.toml", "[project]\nname = \"x\"\ndescription = \"d\"\n")

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, d.Dir)
	assert.Equal(t, path, d.Source)
	assert.Equal(t, filepath.Join(dir, "src", "main.go"), d.ResolvePath("src/main.go"))
	assert.Equal(t, "/abs/file", d.ResolvePath("/abs/file"))
}

func TestTree_ExposesProjectAliases(t *testing.T) {
	d, err := Parse([]byte(fullDescriptor), "project.toml")
	require.NoError(t, err)

	tr := d.Tree()
	assert.Equal(t, "rust", tr["language"])
	assert.Equal(t, "rust", tr["project"].(map[string]any)["language"])
	assert.Equal(t, "cargo test", tr["commands"].(map[string]any)["test"])
	assert.NotContains(t, tr, "dependencies", "extra is resolved separately")
}

// writeFile creates dir/rel with content, making parent directories.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
