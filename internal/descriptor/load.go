package descriptor

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/HendryAvila/jumble/internal/tree"
)

// projectFields are the [project] keys with a typed home in Descriptor.
var projectFields = []string{"name", "description", "language", "version", "repository"}

// Load reads, parses and validates the descriptor at path. The returned
// error is a *ReadError, *ParseError or *ValidationError.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	d, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	d.Source = path
	d.Dir = filepath.Dir(filepath.Dir(path))
	return d, nil
}

// Parse converts descriptor text into a Descriptor. source only labels
// errors; Dir and Source are left for the caller to fill in.
func Parse(data []byte, source string) (*Descriptor, error) {
	doc, err := decode(data, source)
	if err != nil {
		return nil, err
	}
	return fromTree(doc, source)
}

// decode parses TOML text into a normalized generic tree.
func decode(data []byte, source string) (map[string]any, error) {
	if !utf8.Valid(data) {
		return nil, &ReadError{Path: source, Err: errors.New("file is not valid UTF-8 text")}
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, newParseError(source, err)
	}

	doc, _ := tree.Normalize(raw).(map[string]any)
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func newParseError(source string, err error) *ParseError {
	// go-toml/v2 reports line and column through DecodeError.Position.
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return &ParseError{Path: source, Line: row, Column: col, Message: decodeErr.Error()}
	}
	return &ParseError{Path: source, Message: err.Error()}
}

// checker accumulates schema problems while converting the tree.
type checker struct {
	problems []Problem
}

func (c *checker) addf(field, format string, args ...any) {
	c.problems = append(c.problems, Problem{Field: field, Message: fmt.Sprintf(format, args...)})
}

func fromTree(doc map[string]any, source string) (*Descriptor, error) {
	c := &checker{}
	d := New("", "")

	c.project(doc, d)
	d.Commands = c.stringTable(doc, "commands")
	d.EntryPoints = c.stringTable(doc, "entry_points")
	d.Concepts = c.concepts(doc)
	d.Conventions = c.entries(doc, "conventions")
	d.Gotchas = c.entries(doc, "gotchas")
	d.Docs = c.docs(doc)
	d.Skills = c.skills(doc)

	if len(c.problems) > 0 {
		return nil, &ValidationError{Path: source, Problems: c.problems}
	}

	d.Extra = extractExtra(tree.Normalize(doc).(map[string]any))
	return d, nil
}

func (c *checker) project(doc map[string]any, d *Descriptor) {
	raw, ok := doc["project"]
	if !ok {
		c.addf("project.name", "missing project.name")
		c.addf("project.description", "missing project.description")
		return
	}
	project, ok := raw.(map[string]any)
	if !ok {
		c.addf("project", "project must be a table, got %s", tree.KindOf(raw))
		return
	}

	name, present := project["name"]
	s, isStr := name.(string)
	switch {
	case !present:
		c.addf("project.name", "missing project.name")
	case !isStr:
		c.addf("project.name", "project.name must be a string, got %s", tree.KindOf(name))
	case strings.TrimSpace(s) == "":
		c.addf("project.name", "missing project.name (empty string)")
	default:
		d.Name = strings.TrimSpace(s)
	}

	if desc, present := project["description"]; !present {
		c.addf("project.description", "missing project.description")
	} else if s, isStr := desc.(string); !isStr {
		c.addf("project.description", "project.description must be a string, got %s", tree.KindOf(desc))
	} else {
		d.Description = s
	}

	d.Language = c.optionalString(project, "project", "language")
	d.Version = c.optionalString(project, "project", "version")
	d.Repository = c.optionalString(project, "project", "repository")
}

func (c *checker) optionalString(table map[string]any, prefix, key string) string {
	v, ok := table[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		c.addf(prefix+"."+key, "%s.%s must be a string, got %s", prefix, key, tree.KindOf(v))
	}
	return s
}

// section returns doc[field] as a table. ok is false when the section is
// absent or has the wrong shape (the latter is recorded as a problem).
func (c *checker) section(doc map[string]any, field string) (map[string]any, bool) {
	raw, present := doc[field]
	if !present {
		return nil, false
	}
	m, ok := raw.(map[string]any)
	if !ok {
		c.addf(field, "%s must be a table, got %s", field, tree.KindOf(raw))
		return nil, false
	}
	return m, true
}

func (c *checker) stringTable(doc map[string]any, field string) map[string]string {
	out := map[string]string{}
	m, ok := c.section(doc, field)
	if !ok {
		return out
	}
	for _, k := range tree.Keys(m) {
		s, isStr := m[k].(string)
		if !isStr {
			c.addf(field+"."+k, "%s.%s must be a string, got %s", field, k, tree.KindOf(m[k]))
			continue
		}
		out[k] = s
	}
	return out
}

func (c *checker) concepts(doc map[string]any) map[string]Concept {
	out := map[string]Concept{}
	m, ok := c.section(doc, "concepts")
	if !ok {
		return out
	}
	for _, name := range tree.Keys(m) {
		field := "concepts." + name
		entry, isTable := m[name].(map[string]any)
		if !isTable {
			c.addf(field, "%s must be a table, got %s", field, tree.KindOf(m[name]))
			continue
		}

		files, isList := tree.Strings(entry["files"])
		if !isList || len(files) == 0 {
			c.addf(field+".files", "%s.files must be a non-empty array of strings", field)
			continue
		}
		if i := slices.IndexFunc(files, isBlank); i >= 0 {
			c.addf(field+".files", "%s.files[%d] must be a non-empty path", field, i)
			continue
		}
		summary := c.optionalString(entry, field, "summary")
		out[name] = Concept{Files: files, Summary: summary}
	}
	return out
}

func (c *checker) entries(doc map[string]any, field string) []string {
	raw, present := doc[field]
	if !present {
		return []string{}
	}
	list, ok := entryList(raw)
	if !ok {
		c.addf(field, "%s must be an array of strings or a table of strings", field)
		return []string{}
	}
	return list
}

// entryList accepts conventions and gotchas in either of the two shapes
// authors use: an ordered array of strings, or a table of name = "text"
// pairs. Tables render as "name: text" in key order.
func entryList(raw any) ([]string, bool) {
	if list, ok := tree.Strings(raw); ok {
		return list, true
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(m))
	for _, k := range tree.Keys(m) {
		s, isStr := m[k].(string)
		if !isStr {
			return nil, false
		}
		out = append(out, k+": "+s)
	}
	return out, true
}

func (c *checker) docs(doc map[string]any) map[string]Doc {
	out := map[string]Doc{}
	m, ok := c.section(doc, "docs")
	if !ok {
		return out
	}
	for _, topic := range tree.Keys(m) {
		entry, ok := docEntry(m[topic])
		if !ok {
			c.addf("docs."+topic, "docs.%s must be a path string or a table with a path", topic)
			continue
		}
		out[topic] = entry
	}
	return out
}

func docEntry(raw any) (Doc, bool) {
	switch v := raw.(type) {
	case string:
		return Doc{Path: v}, v != ""
	case map[string]any:
		path, ok := v["path"].(string)
		if !ok || path == "" {
			return Doc{}, false
		}
		summary, ok := v["summary"].(string)
		if _, present := v["summary"]; present && !ok {
			return Doc{}, false
		}
		return Doc{Path: path, Summary: summary}, true
	default:
		return Doc{}, false
	}
}

func (c *checker) skills(doc map[string]any) map[string]Skill {
	out := map[string]Skill{}
	m, ok := c.section(doc, "skills")
	if !ok {
		return out
	}
	for _, topic := range tree.Keys(m) {
		field := "skills." + topic
		entry, isTable := m[topic].(map[string]any)
		if !isTable {
			c.addf(field, "%s must be a table, got %s", field, tree.KindOf(m[topic]))
			continue
		}

		before := len(c.problems)
		skill := Skill{
			Description: c.optionalString(entry, field, "description"),
			Content:     c.optionalString(entry, field, "content"),
			File:        c.optionalString(entry, field, "file"),
		}
		hasContent := !isBlank(skill.Content)
		hasFile := !isBlank(skill.File)
		if hasContent == hasFile {
			c.addf(field, "%s must set exactly one of content or file", field)
		}
		if len(c.problems) == before {
			out[topic] = skill
		}
	}
	return out
}

// extractExtra strips every modeled value from a copy of the document,
// leaving only what the author wrote beyond the schema.
func extractExtra(doc map[string]any) map[string]any {
	if project, ok := doc["project"].(map[string]any); ok {
		for _, k := range projectFields {
			delete(project, k)
		}
		if len(project) == 0 {
			delete(doc, "project")
		}
	}

	for _, k := range []string{"commands", "entry_points", "conventions", "gotchas"} {
		delete(doc, k)
	}

	stripEntries(doc, "concepts", "files", "summary")
	stripEntries(doc, "skills", "description", "content", "file")
	stripEntries(doc, "docs", "path", "summary")

	if len(doc) == 0 {
		return nil
	}
	return doc
}

// stripEntries deletes the modeled keys of every entry in doc[section] and
// drops entries (and the section) left empty. String entries are fully
// modeled and are dropped outright.
func stripEntries(doc map[string]any, section string, keys ...string) {
	m, ok := doc[section].(map[string]any)
	if !ok {
		return
	}
	for name, v := range m {
		entry, ok := v.(map[string]any)
		if !ok {
			delete(m, name)
			continue
		}
		for _, k := range keys {
			delete(entry, k)
		}
		if len(entry) == 0 {
			delete(m, name)
		}
	}
	if len(m) == 0 {
		delete(doc, section)
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
