package query

import (
	"github.com/HendryAvila/jumble/internal/tree"
	"github.com/HendryAvila/jumble/internal/workspace"
)

// Overview summarizes the whole workspace.
type Overview struct {
	Root         string                 `json:"root"`
	Name         string                 `json:"name,omitempty"`
	Description  string                 `json:"description,omitempty"`
	Projects     []ProjectSummary       `json:"projects"`
	Dependencies []Dependency           `json:"dependencies"`
	LoadErrors   []workspace.Diagnostic `json:"load_errors"`
}

// Dependency lists a project's declared neighbours, read from its
// [related_projects] table.
type Dependency struct {
	Project    string   `json:"project"`
	Upstream   []string `json:"upstream,omitempty"`
	Downstream []string `json:"downstream,omitempty"`
}

// WorkspaceOverview returns every project plus the cross-project
// dependency graph and the diagnostics of the last build.
func WorkspaceOverview(ws *workspace.Workspace) Overview {
	o := Overview{
		Root:         ws.Root,
		Projects:     ListProjects(ws),
		Dependencies: []Dependency{},
		LoadErrors:   ws.LoadErrors,
	}
	if o.LoadErrors == nil {
		o.LoadErrors = []workspace.Diagnostic{}
	}
	if ws.Info != nil {
		o.Name = ws.Info.Name
		o.Description = ws.Info.Description
	}

	for _, name := range ws.Names() {
		related := ws.Projects[name].Extra["related_projects"]
		up, _ := tree.Strings(mapValue(related, "upstream"))
		down, _ := tree.Strings(mapValue(related, "downstream"))
		if len(up) == 0 && len(down) == 0 {
			continue
		}
		o.Dependencies = append(o.Dependencies, Dependency{Project: name, Upstream: up, Downstream: down})
	}
	return o
}

// WorkspaceConventions returns the conventions and gotchas of the root
// workspace descriptor. Without one both lists are empty.
func WorkspaceConventions(ws *workspace.Workspace, category string) (map[string][]string, error) {
	if ws.Info == nil {
		return pickCategory(nil, nil, category)
	}
	return pickCategory(ws.Info.Conventions, ws.Info.Gotchas, category)
}

func mapValue(v any, key string) any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}
