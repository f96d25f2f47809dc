package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/jumble/internal/server"
	"github.com/HendryAvila/jumble/internal/workspace"
)

func init() {
	color.NoColor = true
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// execute runs the root command with an isolated config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JUMBLE_ROOT", "")
	require.NoError(t, os.Unsetenv("JUMBLE_ROOT"))

	cfgFile := filepath.Join(t.TempDir(), "jumble.yaml")
	writeFile(t, cfgFile, "log-level: error\n")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck_CleanWorkspace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "api", ".jumble", "project.toml"),
		"[project]\nname = \"api\"\ndescription = \"HTTP API\"\n")

	out, err := execute(t, "check", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "1 project(s)")
	assert.Contains(t, out, "✓ api  HTTP API (api)")
	assert.NotContains(t, out, "load error")
}

func TestCheck_ReportsLoadErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "api", ".jumble", "project.toml"),
		"[project]\nname = \"api\"\ndescription = \"HTTP API\"\n")
	writeFile(t, filepath.Join(root, "broken", ".jumble", "project.toml"), "[project\n")

	out, err := execute(t, "check", "--root", root)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, out, "1 load error(s)")
	assert.Contains(t, out, filepath.Join("broken", ".jumble", "project.toml"))
}

func TestCheck_PrintDescriptors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".jumble", "project.toml"),
		"[project]\nname = \"solo\"\ndescription = \"Single project\"\n\n[commands]\ntest = \"make test\"\n")

	out, err := execute(t, "check", "--print", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "# solo")
	assert.Contains(t, out, "make test")
}

func TestCheck_InvalidRoot(t *testing.T) {
	_, err := execute(t, "check", "--root", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, workspace.ErrInvalidRoot)
}

func TestCheck_InvalidLogLevel(t *testing.T) {
	_, err := execute(t, "check", "--root", t.TempDir(), "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log-level")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "jumble v"+server.Version+"\n", out)
}

func TestReport_WorkspaceName(t *testing.T) {
	ws := workspace.Empty("/ws")
	ws.Info = nil

	var out bytes.Buffer
	require.NoError(t, report(&out, ws, false))
	assert.True(t, strings.HasPrefix(out.String(), "Workspace /ws\n"))
	assert.Contains(t, out.String(), "0 project(s)")
}
