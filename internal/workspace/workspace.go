// Package workspace discovers project descriptors under a root directory and
// publishes them as immutable snapshots.
//
// A Workspace is built once and never mutated afterwards. Re-scanning builds
// a fresh Workspace and the Store swaps it in atomically, so readers holding
// the previous snapshot keep a consistent view.
package workspace

import (
	"log/slog"
	"slices"
	"time"

	"github.com/HendryAvila/jumble/internal/descriptor"
)

// DefaultIgnore lists the directories the walk never descends into.
var DefaultIgnore = []string{
	"**/.git",
	"**/node_modules",
	"**/target",
	"**/vendor",
}

// Options tunes discovery.
type Options struct {
	// Marker is the per-project directory holding project.toml.
	// Empty means descriptor.DefaultMarkerDir.
	Marker string

	// Ignore holds doublestar patterns matched against slash-separated
	// paths relative to the root. Nil means DefaultIgnore; an empty
	// non-nil slice disables ignoring.
	Ignore []string

	// Logger receives walk progress. Nil discards.
	Logger *slog.Logger
}

func (o Options) marker() string {
	if o.Marker == "" {
		return descriptor.DefaultMarkerDir
	}
	return o.Marker
}

func (o Options) ignore() []string {
	if o.Ignore == nil {
		return DefaultIgnore
	}
	return o.Ignore
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Diagnostic is a non-fatal problem found while building a snapshot.
type Diagnostic struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Workspace is one immutable snapshot of every project under Root.
type Workspace struct {
	Root       string                            `json:"root"`
	Projects   map[string]*descriptor.Descriptor `json:"projects"`
	Info       *descriptor.WorkspaceInfo         `json:"info,omitempty"`
	LoadErrors []Diagnostic                      `json:"load_errors"`
	BuiltAt    time.Time                         `json:"built_at"`

	// Dirs lists every directory the walk visited, marker directories
	// included, in walk order. The watcher subscribes to these.
	Dirs []string `json:"-"`
}

// Empty returns a snapshot with no projects.
func Empty(root string) *Workspace {
	return &Workspace{
		Root:       root,
		Projects:   map[string]*descriptor.Descriptor{},
		LoadErrors: []Diagnostic{},
	}
}

// Names returns the project names in lexical order.
func (w *Workspace) Names() []string {
	names := make([]string, 0, len(w.Projects))
	for name := range w.Projects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Project looks up a project by name.
func (w *Workspace) Project(name string) (*descriptor.Descriptor, bool) {
	d, ok := w.Projects[name]
	return d, ok
}
