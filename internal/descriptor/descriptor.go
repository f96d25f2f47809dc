// Package descriptor models one project's declarative context file
// (.jumble/project.toml) and loads it from disk.
//
// Loading is a pure function of the file contents: read, parse into a
// generic tree, validate, convert. Fields the model does not name are kept
// verbatim in Descriptor.Extra so that field-path projection can reach any
// value the author wrote.
package descriptor

import (
	"path/filepath"
)

// Well-known file names inside a project's marker directory.
const (
	DefaultMarkerDir = ".jumble"
	ProjectFile      = "project.toml"
	WorkspaceFile    = "workspace.toml"
	ConventionsFile  = "conventions.toml"
	DocsFile         = "docs.toml"
	SkillsDir        = "skills"
)

// Descriptor is one project's declarative context.
type Descriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Language    string             `json:"language,omitempty"`
	Version     string             `json:"version,omitempty"`
	Repository  string             `json:"repository,omitempty"`
	Commands    map[string]string  `json:"commands"`
	EntryPoints map[string]string  `json:"entry_points"`
	Concepts    map[string]Concept `json:"concepts"`
	Conventions []string           `json:"conventions"`
	Gotchas     []string           `json:"gotchas"`
	Docs        map[string]Doc     `json:"docs"`
	Skills      map[string]Skill   `json:"skills"`

	// Extra holds every field not modeled above, keyed by its original
	// path in the document. Unmodeled keys of [project] live under
	// Extra["project"].
	Extra map[string]any `json:"extra,omitempty"`

	// Dir is the project directory (the parent of the marker directory)
	// and Source the descriptor file itself. Both are set by the caller
	// that knows where the file came from; Parse leaves them empty.
	Dir    string `json:"dir,omitempty"`
	Source string `json:"source,omitempty"`
}

// Concept is an architectural area of a project.
type Concept struct {
	Files   []string `json:"files"`
	Summary string   `json:"summary"`
}

// Doc points at a documentation file.
type Doc struct {
	Path    string `json:"path"`
	Summary string `json:"summary,omitempty"`
}

// Skill is task-specific guidance, either inline or in a file. Exactly one
// of Content and File is set.
type Skill struct {
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	File        string `json:"file,omitempty"`
}

// WorkspaceInfo is the optional root-level descriptor
// (<root>/.jumble/workspace.toml) holding workspace-wide conventions.
type WorkspaceInfo struct {
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Conventions []string       `json:"conventions"`
	Gotchas     []string       `json:"gotchas"`
	Extra       map[string]any `json:"extra,omitempty"`
	Source      string         `json:"source,omitempty"`
}

// New returns an empty descriptor with every collection initialized, so
// serialized output always carries {} and [] rather than null.
func New(name, description string) *Descriptor {
	return &Descriptor{
		Name:        name,
		Description: description,
		Commands:    map[string]string{},
		EntryPoints: map[string]string{},
		Concepts:    map[string]Concept{},
		Conventions: []string{},
		Gotchas:     []string{},
		Docs:        map[string]Doc{},
		Skills:      map[string]Skill{},
	}
}

// ResolvePath joins a descriptor-relative path onto the project directory.
// Absolute paths and descriptors without a Dir are returned unchanged.
func (d *Descriptor) ResolvePath(rel string) string {
	if rel == "" || d.Dir == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(d.Dir, filepath.FromSlash(rel))
}

// ProjectFilePath returns <dir>/<marker>/project.toml.
func ProjectFilePath(dir, marker string) string {
	return filepath.Join(dir, marker, ProjectFile)
}
