package descriptor

import (
	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/HendryAvila/jumble/internal/tree"
)

// Tree returns the modeled attributes as a generic tree shaped like the
// TOML document. The [project] fields are also exposed at the top level, so
// "language" and "project.language" resolve to the same value. Extra is not
// included; projection falls back to it separately.
func (d *Descriptor) Tree() map[string]any {
	project := d.projectTable()
	t := d.sections(false)
	t["project"] = project
	for k, v := range project {
		t[k] = v
	}
	if d.Dir != "" {
		t["dir"] = d.Dir
	}
	return t
}

// Document returns the descriptor as it would be written to project.toml:
// modeled sections (empty ones omitted) merged with Extra.
func (d *Descriptor) Document() map[string]any {
	doc := d.sections(true)
	doc["project"] = d.projectTable()
	if d.Extra != nil {
		tree.Merge(doc, tree.Normalize(d.Extra).(map[string]any))
	}
	return doc
}

// Encode serializes the descriptor back to TOML. Parse(Encode(d)) yields a
// descriptor equal to d in every modeled field and in Extra.
func Encode(d *Descriptor) ([]byte, error) {
	out, err := toml.Marshal(d.Document())
	if err != nil {
		return nil, errors.Wrapf(err, "encoding descriptor %q", d.Name)
	}
	return out, nil
}

func (d *Descriptor) projectTable() map[string]any {
	project := map[string]any{
		"name":        d.Name,
		"description": d.Description,
	}
	setNonEmpty(project, "language", d.Language)
	setNonEmpty(project, "version", d.Version)
	setNonEmpty(project, "repository", d.Repository)
	return project
}

func (d *Descriptor) sections(omitEmpty bool) map[string]any {
	out := map[string]any{}
	put := func(key string, v any, n int) {
		if omitEmpty && n == 0 {
			return
		}
		out[key] = v
	}

	put("commands", stringMap(d.Commands), len(d.Commands))
	put("entry_points", stringMap(d.EntryPoints), len(d.EntryPoints))
	put("conventions", stringList(d.Conventions), len(d.Conventions))
	put("gotchas", stringList(d.Gotchas), len(d.Gotchas))

	concepts := make(map[string]any, len(d.Concepts))
	for name, c := range d.Concepts {
		concepts[name] = map[string]any{
			"files":   stringList(c.Files),
			"summary": c.Summary,
		}
	}
	put("concepts", concepts, len(concepts))

	docs := make(map[string]any, len(d.Docs))
	for topic, doc := range d.Docs {
		entry := map[string]any{"path": doc.Path}
		setNonEmpty(entry, "summary", doc.Summary)
		docs[topic] = entry
	}
	put("docs", docs, len(docs))

	skills := make(map[string]any, len(d.Skills))
	for topic, s := range d.Skills {
		entry := map[string]any{"description": s.Description}
		if s.File != "" {
			entry["file"] = s.File
		} else {
			entry["content"] = s.Content
		}
		skills[topic] = entry
	}
	put("skills", skills, len(skills))

	return out
}

func setNonEmpty(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func stringMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func stringList(list []string) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}
