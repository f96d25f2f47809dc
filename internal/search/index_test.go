package search

import (
	"context"
	"database/sql"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/jumble/internal/descriptor"
	"github.com/HendryAvila/jumble/internal/logging"
	"github.com/HendryAvila/jumble/internal/workspace"
)

func testWorkspace() *workspace.Workspace {
	api := descriptor.New("api", "HTTP API service")
	api.Language = "rust"
	api.Commands["test"] = "cargo test"
	api.Concepts["auth"] = descriptor.Concept{
		Files:   []string{"src/auth.rs", "src/middleware/jwt.rs"},
		Summary: "Token validation middleware",
	}
	api.Concepts["routing"] = descriptor.Concept{
		Files:   []string{"src/routes.rs"},
		Summary: "Axum router setup",
	}
	api.Conventions = []string{"Use thiserror for library errors"}
	api.Gotchas = []string{"Migrations run on startup"}
	api.Docs["architecture"] = descriptor.Doc{Path: "docs/architecture.md", Summary: "System overview"}
	api.Skills["add-endpoint"] = descriptor.Skill{Description: "Adding a new endpoint", Content: "Create a handler"}

	web := descriptor.New("web", "Frontend")
	web.Concepts["session"] = descriptor.Concept{Files: []string{"src/jwt.ts"}, Summary: "Stores the token"}

	ws := workspace.Empty("/ws")
	ws.Projects["api"] = api
	ws.Projects["web"] = web
	return ws
}

func buildIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := Build(context.Background(), testWorkspace())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ix.Close() })
	return ix
}

func TestIndex_FindsConceptByFilePath(t *testing.T) {
	ix := buildIndex(t)

	hits, err := ix.Search(context.Background(), "jwt", Options{})
	require.NoError(t, err)
	require.Len(t, hits, 2)

	keys := []string{hits[0].Key, hits[1].Key}
	assert.ElementsMatch(t, []string{"auth", "session"}, keys)
	for _, h := range hits {
		assert.Equal(t, KindConcept, h.Kind)
	}
}

func TestIndex_FiltersByProjectAndKind(t *testing.T) {
	ix := buildIndex(t)

	hits, err := ix.Search(context.Background(), "jwt", Options{Project: "web"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "session", hits[0].Key)

	hits, err = ix.Search(context.Background(), "startup", Options{Kind: KindGotcha})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "gotchas[0]", hits[0].Key)

	hits, err = ix.Search(context.Background(), "startup", Options{Kind: KindConvention})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_RanksBetterMatchesFirst(t *testing.T) {
	ix := buildIndex(t)

	hits, err := ix.Search(context.Background(), "cargo test", Options{})
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, KindCommand, hits[0].Kind)
	assert.Equal(t, "test", hits[0].Key)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestIndex_LimitIsApplied(t *testing.T) {
	ix := buildIndex(t)

	hits, err := ix.Search(context.Background(), "src", Options{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestIndex_OperatorsAreLiteral(t *testing.T) {
	ix := buildIndex(t)

	_, err := ix.Search(context.Background(), `auth OR "jwt* NEAR(`, Options{})
	require.NoError(t, err)
}

func TestIndex_EmptyQuery(t *testing.T) {
	ix := buildIndex(t)

	_, err := ix.Search(context.Background(), `  "" `, Options{})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestIndex_OpenFailure(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }

	_, err := Build(context.Background(), testWorkspace())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestEntries(t *testing.T) {
	d := descriptor.New("p", "desc")
	d.Commands["build"] = "make"
	d.Skills["s"] = descriptor.Skill{Description: "d", File: ".jumble/skills/s.md"}

	got := Entries(d)
	require.Len(t, got, 3)
	assert.Equal(t, Entry{Project: "p", Kind: KindProject, Key: "p", Body: "p\ndesc"}, got[0])
	assert.Equal(t, Entry{Project: "p", Kind: KindCommand, Key: "build", Body: "build\nmake"}, got[1])
	assert.Equal(t, KindSkill, got[2].Kind)
}

func TestSanitizeFTS(t *testing.T) {
	assert.Equal(t, `"fix" "auth" "bug"`, sanitizeFTS("fix auth bug"))
	assert.Equal(t, `"jwt"`, sanitizeFTS(`"jwt"`))
	assert.Equal(t, "", sanitizeFTS(`  "" `))
}

func TestSearcher_PublishSwapsIndex(t *testing.T) {
	s := NewSearcher(logging.ForTest(t))
	t.Cleanup(func() { _ = s.Close() })

	_, err := s.Search(context.Background(), "jwt", Options{})
	require.ErrorIs(t, err, ErrNotReady)

	s.Publish(testWorkspace())
	hits, err := s.Search(context.Background(), "jwt", Options{})
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	s.Publish(workspace.Empty("/ws"))
	hits, err = s.Search(context.Background(), "jwt", Options{})
	require.NoError(t, err)
	assert.Empty(t, hits)
}
