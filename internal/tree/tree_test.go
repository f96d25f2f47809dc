package tree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"commands", []string{"commands"}},
		{"commands.test", []string{"commands", "test"}},
		{"concepts.auth.files[0]", []string{"concepts", "auth", "files", "0"}},
		{"concepts.auth.files.0", []string{"concepts", "auth", "files", "0"}},
		{"matrix[1][2]", []string{"matrix", "1", "2"}},
		{"  api.base_url ", []string{"api", "base_url"}},
		{`commands."test.unit"`, []string{"commands", "test.unit"}},
		{`commands["test.unit"]`, []string{"commands", "test.unit"}},
		{`"a.b"[0].c`, []string{"a.b", "0", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SplitPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitPath_Malformed(t *testing.T) {
	for _, in := range []string{"", "   ", "a..b", "a.", "files[", "files[]", "files[0]x", `a."open`, `a.""`, `"a"b`} {
		t.Run(in, func(t *testing.T) {
			_, err := SplitPath(in)
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	doc := map[string]any{
		"commands": map[string]any{"test": "cargo test"},
		"concepts": map[string]any{
			"auth": map[string]any{
				"files": []any{"src/auth.rs", "src/jwt.rs"},
			},
		},
	}

	got, ok := Resolve(doc, []string{"commands", "test"})
	require.True(t, ok)
	assert.Equal(t, "cargo test", got)

	got, ok = Resolve(doc, []string{"concepts", "auth", "files", "1"})
	require.True(t, ok)
	assert.Equal(t, "src/jwt.rs", got)

	_, ok = Resolve(doc, []string{"concepts", "auth", "files", "2"})
	assert.False(t, ok, "index out of range")

	_, ok = Resolve(doc, []string{"concepts", "auth", "files", "-1"})
	assert.False(t, ok, "negative index")

	_, ok = Resolve(doc, []string{"commands", "test", "deeper"})
	assert.False(t, ok, "cannot descend into a string")

	_, ok = Resolve(doc, []string{"nonexistent", "path"})
	assert.False(t, ok)
}

func TestResolve_KeysContainingDots(t *testing.T) {
	doc := map[string]any{
		"commands": map[string]any{
			"test":      "go test ./...",
			"test.unit": "go test ./unit",
		},
	}

	got, ok := Resolve(doc, []string{"commands", "test.unit"})
	require.True(t, ok)
	assert.Equal(t, "go test ./unit", got)

	got, ok = Resolve(doc, []string{"commands", "test", "unit"})
	require.True(t, ok, "unquoted segments fall back to the dotted key")
	assert.Equal(t, "go test ./unit", got)

	_, ok = Resolve(doc, []string{"commands", "test", "integration"})
	assert.False(t, ok)
}

func TestMerge(t *testing.T) {
	dst := map[string]any{
		"name": "api",
		"auth": map[string]any{"summary": "JWT"},
	}
	Merge(dst, map[string]any{
		"name":     "ignored",
		"homepage": "https://example.com",
		"auth":     map[string]any{"summary": "ignored", "owner": "platform"},
	})

	assert.Equal(t, map[string]any{
		"name":     "api",
		"homepage": "https://example.com",
		"auth":     map[string]any{"summary": "JWT", "owner": "platform"},
	}, dst)
}

func TestNormalize(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	in := map[string]any{
		"n":     int(3),
		"f":     float32(1.5),
		"when":  ts,
		"list":  []map[string]any{{"a": int32(1)}},
		"plain": "x",
	}

	out := Normalize(in).(map[string]any)
	assert.Equal(t, int64(3), out["n"])
	assert.Equal(t, float64(1.5), out["f"])
	assert.Equal(t, "2024-03-01T12:00:00Z", out["when"])
	assert.Equal(t, []any{map[string]any{"a": int64(1)}}, out["list"])
	assert.Equal(t, "x", out["plain"])
}

func TestNormalize_DeepCopies(t *testing.T) {
	inner := map[string]any{"k": "v"}
	in := map[string]any{"inner": inner}

	out := Normalize(in).(map[string]any)
	inner["k"] = "changed"

	assert.Equal(t, "v", out["inner"].(map[string]any)["k"])
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Null, KindOf(nil))
	assert.Equal(t, Bool, KindOf(true))
	assert.Equal(t, Number, KindOf(int64(1)))
	assert.Equal(t, Number, KindOf(2.5))
	assert.Equal(t, String, KindOf("s"))
	assert.Equal(t, Sequence, KindOf([]any{}))
	assert.Equal(t, Mapping, KindOf(map[string]any{}))
	assert.Equal(t, "table", Mapping.String())
}

func TestStringsAndKeys(t *testing.T) {
	got, ok := Strings([]any{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	_, ok = Strings([]any{"a", int64(1)})
	assert.False(t, ok)

	_, ok = Strings("a")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b", "c"}, Keys(map[string]any{"c": 1, "a": 2, "b": 3}))
	assert.Nil(t, Keys("nope"))
	assert.Equal(t, []string{"a", "b"}, SortedKeys(map[string]int{"b": 1, "a": 2}))
}
