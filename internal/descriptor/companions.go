package descriptor

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// LoadCompanions merges the optional files that sit next to project.toml in
// markerDir: conventions.toml, docs.toml and skills/*.md. Entries already
// declared in project.toml win. Each companion that fails to load yields one
// error; the others are still merged.
func LoadCompanions(markerDir string, d *Descriptor) []error {
	var errs []error

	if doc, err := readOptional(filepath.Join(markerDir, ConventionsFile)); err != nil {
		errs = append(errs, err)
	} else if doc != nil {
		if err := mergeConventions(doc, filepath.Join(markerDir, ConventionsFile), d); err != nil {
			errs = append(errs, err)
		}
	}

	if doc, err := readOptional(filepath.Join(markerDir, DocsFile)); err != nil {
		errs = append(errs, err)
	} else if doc != nil {
		if err := mergeDocs(doc, filepath.Join(markerDir, DocsFile), d); err != nil {
			errs = append(errs, err)
		}
	}

	if err := discoverSkills(filepath.Join(markerDir, SkillsDir), d); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// LoadWorkspaceInfo loads the root-level workspace descriptor. The file has
// an optional [workspace] table with name and description, plus
// conventions and gotchas in the same shapes project.toml accepts.
func LoadWorkspaceInfo(path string) (*WorkspaceInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	doc, err := decode(data, path)
	if err != nil {
		return nil, err
	}

	c := &checker{}
	info := &WorkspaceInfo{Source: path}
	if ws, ok := c.section(doc, "workspace"); ok {
		info.Name = c.optionalString(ws, "workspace", "name")
		info.Description = c.optionalString(ws, "workspace", "description")
		delete(ws, "name")
		delete(ws, "description")
		if len(ws) == 0 {
			delete(doc, "workspace")
		}
	}
	info.Conventions = c.entries(doc, "conventions")
	info.Gotchas = c.entries(doc, "gotchas")
	if len(c.problems) > 0 {
		return nil, &ValidationError{Path: path, Problems: c.problems}
	}

	delete(doc, "conventions")
	delete(doc, "gotchas")
	if len(doc) > 0 {
		info.Extra = doc
	}
	return info, nil
}

// readOptional decodes a companion file, returning (nil, nil) when the file
// does not exist.
func readOptional(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &ReadError{Path: path, Err: err}
	}
	return decode(data, path)
}

func mergeConventions(doc map[string]any, path string, d *Descriptor) error {
	c := &checker{}
	conventions := c.entries(doc, "conventions")
	gotchas := c.entries(doc, "gotchas")
	if len(c.problems) > 0 {
		return &ValidationError{Path: path, Problems: c.problems}
	}
	d.Conventions = append(d.Conventions, conventions...)
	d.Gotchas = append(d.Gotchas, gotchas...)
	return nil
}

func mergeDocs(doc map[string]any, path string, d *Descriptor) error {
	c := &checker{}
	docs := c.docs(doc)
	if len(c.problems) > 0 {
		return &ValidationError{Path: path, Problems: c.problems}
	}
	for topic, entry := range docs {
		if _, exists := d.Docs[topic]; !exists {
			d.Docs[topic] = entry
		}
	}
	return nil
}

// discoverSkills registers every skills/<topic>.md as a file-backed skill.
// The description is the file's first non-empty line without heading marks.
func discoverSkills(dir string, d *Descriptor) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &ReadError{Path: dir, Err: err}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		topic := strings.TrimSuffix(e.Name(), ".md")
		if _, exists := d.Skills[topic]; exists {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return &ReadError{Path: path, Err: err}
		}

		file := path
		if d.Dir != "" {
			if rel, err := filepath.Rel(d.Dir, path); err == nil {
				file = filepath.ToSlash(rel)
			}
		}
		d.Skills[topic] = Skill{Description: firstLine(data), File: file}
	}
	return nil
}

func firstLine(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimLeft(sc.Text(), "# "))
		if line != "" {
			return line
		}
	}
	return ""
}
