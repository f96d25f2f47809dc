// Package tree holds the generic value tree used for descriptor fields that
// have no typed home, and resolves dotted field paths into it.
//
// A tree value is one of: nil, bool, int64, float64, string, []any or
// map[string]any. Parsers may produce richer scalar types (TOML dates, for
// instance); Normalize folds those into the set above.
package tree

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Kind classifies a tree value.
type Kind int

// Tree value kinds.
const (
	Null Kind = iota
	Bool
	Number
	String
	Sequence
	Mapping
)

// String returns the lowercase kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Sequence:
		return "array"
	case Mapping:
		return "table"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindOf reports the kind of a normalized value.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case int64, float64, int:
		return Number
	case string:
		return String
	case []any:
		return Sequence
	case map[string]any:
		return Mapping
	default:
		return String
	}
}

// Normalize returns a deep copy of v restricted to the tree value set.
// Integers of any width become int64, floats become float64 and anything
// else that is not a container is rendered with its String form.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil, bool, string, int64, float64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return float64(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Normalize(val)
		}
		return out
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// SplitPath breaks a field path into segments. Segments are separated by
// dots; an index may also be written in brackets, so "a.b[0].c" and
// "a.b.0.c" are equivalent. A key that itself contains dots is written in
// double quotes: commands."test.unit" or commands["test.unit"].
func SplitPath(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("empty field path")
	}

	var (
		segments []string
		cur      strings.Builder
		// closed is set right after an index or a quoted key, where only a
		// separator or the end of the path may follow.
		closed bool
	)
	flush := func() {
		if cur.Len() > 0 {
			segments = append(segments, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(path); i++ {
		switch ch := path[i]; {
		case ch == '.':
			if cur.Len() == 0 && !closed {
				return nil, errors.Newf("empty segment in field path %q", path)
			}
			flush()
			closed = false
		case ch == '[':
			flush()
			end := strings.IndexByte(path[i+1:], ']')
			if end <= 0 {
				return nil, errors.Newf("malformed index in field path %q", path)
			}
			idx := path[i+1 : i+1+end]
			if len(idx) >= 2 && idx[0] == '"' && idx[len(idx)-1] == '"' {
				idx = idx[1 : len(idx)-1]
			}
			if idx == "" {
				return nil, errors.Newf("malformed index in field path %q", path)
			}
			segments = append(segments, idx)
			i += end + 1
			closed = true
		case ch == '"' && cur.Len() == 0 && !closed:
			end := strings.IndexByte(path[i+1:], '"')
			if end <= 0 {
				return nil, errors.Newf("malformed quoted key in field path %q", path)
			}
			segments = append(segments, path[i+1:i+1+end])
			i += end + 1
			closed = true
		case closed:
			return nil, errors.Newf("unexpected %q in field path %q", path[i:], path)
		default:
			cur.WriteByte(ch)
		}
	}
	if cur.Len() == 0 && !closed {
		return nil, errors.Newf("empty segment in field path %q", path)
	}
	flush()
	return segments, nil
}

// Resolve walks segments into v. Mapping segments match keys exactly;
// sequence segments must be non-negative integers in range. When a mapping
// has no key for a segment, the segment joined with the ones after it is
// tried as well, so unquoted paths still reach keys containing dots.
func Resolve(v any, segments []string) (any, bool) {
	if len(segments) == 0 {
		return v, true
	}
	switch x := v.(type) {
	case map[string]any:
		for n := 1; n <= len(segments); n++ {
			next, ok := x[strings.Join(segments[:n], ".")]
			if !ok {
				continue
			}
			if got, ok := Resolve(next, segments[n:]); ok {
				return got, true
			}
		}
		return nil, false
	case []any:
		i, err := strconv.Atoi(segments[0])
		if err != nil || i < 0 || i >= len(x) {
			return nil, false
		}
		return Resolve(x[i], segments[1:])
	default:
		return nil, false
	}
}

// Merge copies into dst every key of src that dst lacks, descending into
// mappings present on both sides. Keys already in dst win.
func Merge(dst, src map[string]any) {
	for k, v := range src {
		existing, ok := dst[k]
		if !ok {
			dst[k] = v
			continue
		}
		dm, dOK := existing.(map[string]any)
		sm, sOK := v.(map[string]any)
		if dOK && sOK {
			Merge(dm, sm)
		}
	}
}

// Keys returns the sorted keys of a mapping value, or nil for any other kind.
func Keys(v any) []string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return SortedKeys(m)
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Strings converts a sequence of strings. ok is false when v is not a
// sequence or any element is not a string.
func Strings(v any) (out []string, ok bool) {
	seq, isSeq := v.([]any)
	if !isSeq {
		return nil, false
	}
	out = make([]string, 0, len(seq))
	for _, item := range seq {
		s, isStr := item.(string)
		if !isStr {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
