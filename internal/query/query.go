// Package query answers lookups over a workspace snapshot.
//
// Every function is a pure read of its *workspace.Workspace argument. A miss
// is reported as *NotFoundError and a bad argument as *InvalidArgumentError;
// neither is ever a panic, and "nothing matched" is an ordinary empty
// result.
package query

import (
	"slices"
	"strings"

	"github.com/HendryAvila/jumble/internal/descriptor"
	"github.com/HendryAvila/jumble/internal/tree"
	"github.com/HendryAvila/jumble/internal/workspace"
)

// ProjectSummary is the short form of a project used in listings.
type ProjectSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language,omitempty"`
	Path        string `json:"path"`
}

// RelatedFiles is one concept matched by RelatedFilesFor.
type RelatedFiles struct {
	Concept string   `json:"concept"`
	Summary string   `json:"summary,omitempty"`
	Files   []string `json:"files"`
}

// SkillSummary is one entry of ListSkills.
type SkillSummary struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

// SkillDetail is the result of Skill. For file-backed skills Path is the
// absolute location of the file.
type SkillDetail struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	File        string `json:"file,omitempty"`
	Path        string `json:"path,omitempty"`
}

// Convention categories accepted by Conventions and WorkspaceConventions.
const (
	CategoryConventions = "conventions"
	CategoryGotchas     = "gotchas"
)

// ListProjects returns every project sorted by name.
func ListProjects(ws *workspace.Workspace) []ProjectSummary {
	out := make([]ProjectSummary, 0, len(ws.Projects))
	for _, name := range ws.Names() {
		out = append(out, summarize(ws.Projects[name]))
	}
	return out
}

func summarize(d *descriptor.Descriptor) ProjectSummary {
	return ProjectSummary{
		Name:        d.Name,
		Description: d.Description,
		Language:    d.Language,
		Path:        d.Dir,
	}
}

// lookup resolves a project argument.
func lookup(ws *workspace.Workspace, project string) (*descriptor.Descriptor, error) {
	project = strings.TrimSpace(project)
	if project == "" {
		return nil, invalid("project", "project name is required")
	}
	d, ok := ws.Project(project)
	if !ok {
		return nil, &NotFoundError{Kind: "project", Name: project, Available: ws.Names()}
	}
	return d, nil
}

// ProjectInfo returns the whole descriptor when field is empty. Otherwise
// field is a dotted path ("commands.test", "concepts.auth.files[0]")
// resolved against the modeled attributes first and then against the
// descriptor's extra fields.
func ProjectInfo(ws *workspace.Workspace, project, field string) (any, error) {
	d, err := lookup(ws, project)
	if err != nil {
		return nil, err
	}

	field = strings.TrimSpace(field)
	if field == "" {
		return d, nil
	}

	segments, err := tree.SplitPath(field)
	if err != nil {
		return nil, invalid("field", "%v", err)
	}

	named := d.Tree()
	extra, inExtra := tree.Resolve(d.Extra, segments)
	if v, ok := tree.Resolve(named, segments); ok {
		// Keys the author added to a modeled table live in Extra.
		m, isMap := v.(map[string]any)
		em, extraMap := extra.(map[string]any)
		if isMap && inExtra && extraMap {
			tree.Merge(m, tree.Normalize(em).(map[string]any))
		}
		return v, nil
	}
	if inExtra {
		return extra, nil
	}

	available := tree.Keys(named)
	for _, k := range tree.Keys(d.Extra) {
		if !slices.Contains(available, k) {
			available = append(available, k)
		}
	}
	slices.Sort(available)
	return nil, &NotFoundError{Kind: "field", Name: field, Project: d.Name, Available: available}
}

// Commands returns the whole command table, or the single command named by
// commandType.
func Commands(ws *workspace.Workspace, project, commandType string) (any, error) {
	d, err := lookup(ws, project)
	if err != nil {
		return nil, err
	}

	commandType = strings.TrimSpace(commandType)
	if commandType == "" {
		return d.Commands, nil
	}
	cmd, ok := d.Commands[commandType]
	if !ok {
		return nil, &NotFoundError{
			Kind:      "command_type",
			Name:      commandType,
			Project:   d.Name,
			Available: suggest(tree.SortedKeys(d.Commands), commandType),
		}
	}
	return cmd, nil
}

// Architecture returns one concept by exact name.
func Architecture(ws *workspace.Workspace, project, concept string) (descriptor.Concept, error) {
	d, err := lookup(ws, project)
	if err != nil {
		return descriptor.Concept{}, err
	}

	concept = strings.TrimSpace(concept)
	if concept == "" {
		return descriptor.Concept{}, invalid("concept", "concept name is required")
	}
	c, ok := d.Concepts[concept]
	if !ok {
		return descriptor.Concept{}, &NotFoundError{
			Kind:      "concept",
			Name:      concept,
			Project:   d.Name,
			Available: suggest(conceptNames(d), concept),
		}
	}
	return c, nil
}

// RelatedFilesFor finds the concepts whose name, summary or file paths
// contain q, ignoring case. A concept matched by name or summary carries all
// its files; one matched only through paths carries just the matching
// files. Results are sorted by concept name.
func RelatedFilesFor(ws *workspace.Workspace, project, q string) ([]RelatedFiles, error) {
	d, err := lookup(ws, project)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return nil, invalid("query", "search text is required")
	}

	out := []RelatedFiles{}
	for _, name := range conceptNames(d) {
		c := d.Concepts[name]
		if strings.Contains(strings.ToLower(name), needle) || strings.Contains(strings.ToLower(c.Summary), needle) {
			out = append(out, RelatedFiles{Concept: name, Summary: c.Summary, Files: slices.Clone(c.Files)})
			continue
		}
		var files []string
		for _, f := range c.Files {
			if strings.Contains(strings.ToLower(f), needle) {
				files = append(files, f)
			}
		}
		if len(files) > 0 {
			out = append(out, RelatedFiles{Concept: name, Summary: c.Summary, Files: files})
		}
	}
	return out, nil
}

// Conventions returns the project's conventions and gotchas. category
// narrows the result to one of the two lists.
func Conventions(ws *workspace.Workspace, project, category string) (map[string][]string, error) {
	d, err := lookup(ws, project)
	if err != nil {
		return nil, err
	}
	return pickCategory(d.Conventions, d.Gotchas, category)
}

func pickCategory(conventions, gotchas []string, category string) (map[string][]string, error) {
	if conventions == nil {
		conventions = []string{}
	}
	if gotchas == nil {
		gotchas = []string{}
	}

	switch strings.ToLower(strings.TrimSpace(category)) {
	case "":
		return map[string][]string{CategoryConventions: conventions, CategoryGotchas: gotchas}, nil
	case CategoryConventions, "convention":
		return map[string][]string{CategoryConventions: conventions}, nil
	case CategoryGotchas, "gotcha":
		return map[string][]string{CategoryGotchas: gotchas}, nil
	default:
		return nil, invalid("category", "%q is not one of %s, %s", category, CategoryConventions, CategoryGotchas)
	}
}

// Docs returns the documentation index, or the single entry for topic.
func Docs(ws *workspace.Workspace, project, topic string) (any, error) {
	d, err := lookup(ws, project)
	if err != nil {
		return nil, err
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return d.Docs, nil
	}
	doc, ok := d.Docs[topic]
	if !ok {
		return nil, &NotFoundError{
			Kind:      "doc",
			Name:      topic,
			Project:   d.Name,
			Available: suggest(tree.SortedKeys(d.Docs), topic),
		}
	}
	return doc, nil
}

// ListSkills returns the project's skills sorted by topic.
func ListSkills(ws *workspace.Workspace, project string) ([]SkillSummary, error) {
	d, err := lookup(ws, project)
	if err != nil {
		return nil, err
	}
	out := make([]SkillSummary, 0, len(d.Skills))
	for _, topic := range tree.SortedKeys(d.Skills) {
		out = append(out, SkillSummary{Topic: topic, Description: d.Skills[topic].Description})
	}
	return out, nil
}

// Skill returns one skill. File-backed skills are not read; the caller gets
// the resolved path.
func Skill(ws *workspace.Workspace, project, topic string) (SkillDetail, error) {
	d, err := lookup(ws, project)
	if err != nil {
		return SkillDetail{}, err
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return SkillDetail{}, invalid("topic", "skill topic is required")
	}
	s, ok := d.Skills[topic]
	if !ok {
		return SkillDetail{}, &NotFoundError{
			Kind:      "skill",
			Name:      topic,
			Project:   d.Name,
			Available: suggest(tree.SortedKeys(d.Skills), topic),
		}
	}

	detail := SkillDetail{Topic: topic, Description: s.Description, Content: s.Content, File: s.File}
	if s.File != "" {
		detail.Path = d.ResolvePath(s.File)
	}
	return detail, nil
}

// suggest orders names for a NotFound listing: names containing the missed
// key (ignoring case) first, each group in lexical order.
func suggest(names []string, missed string) []string {
	needle := strings.ToLower(missed)
	var near, rest []string
	for _, n := range names {
		if needle != "" && strings.Contains(strings.ToLower(n), needle) {
			near = append(near, n)
		} else {
			rest = append(rest, n)
		}
	}
	slices.Sort(near)
	slices.Sort(rest)
	return append(near, rest...)
}

func conceptNames(d *descriptor.Descriptor) []string {
	return tree.SortedKeys(d.Concepts)
}
