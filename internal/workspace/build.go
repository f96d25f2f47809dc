package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"

	"github.com/HendryAvila/jumble/internal/descriptor"
)

// ErrInvalidRoot is returned by Build when the root is missing or is not a
// directory. It is the only failure that prevents a snapshot.
var ErrInvalidRoot = errors.New("invalid workspace root")

// Build walks root and loads every <dir>/<marker>/project.toml it finds.
//
// The walk is pre-order with entries in lexical order, so repeated builds
// over the same tree produce the same snapshot and the same diagnostics.
// Directory symlinks are followed; a directory whose canonical path was
// already visited is skipped. Descriptor failures, name collisions and
// unreadable directories never abort the build.
func Build(ctx context.Context, root string, opts Options) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidRoot, "resolving %s: %v", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidRoot, "%v", err)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(ErrInvalidRoot, "%s is not a directory", abs)
	}

	w := &walker{
		ctx:     ctx,
		root:    abs,
		marker:  opts.marker(),
		ignore:  opts.ignore(),
		log:     opts.logger(),
		visited: map[string]bool{},
		owners:  map[string]string{},
		ws:      Empty(abs),
	}

	w.loadWorkspaceInfo()
	if err := w.walk(abs); err != nil {
		return nil, err
	}

	w.ws.BuiltAt = time.Now()
	w.log.Info("workspace built",
		"root", abs,
		"projects", len(w.ws.Projects),
		"diagnostics", len(w.ws.LoadErrors),
	)
	return w.ws, nil
}

type walker struct {
	ctx     context.Context
	root    string
	marker  string
	ignore  []string
	log     *slog.Logger
	visited map[string]bool
	owners  map[string]string // project name -> descriptor path
	ws      *Workspace
}

func (w *walker) diagnose(path, message string) {
	w.log.Warn("workspace diagnostic", "path", path, "message", message)
	w.ws.LoadErrors = append(w.ws.LoadErrors, Diagnostic{Path: path, Message: message})
}

func (w *walker) loadWorkspaceInfo() {
	path := filepath.Join(w.root, w.marker, descriptor.WorkspaceFile)
	if _, err := os.Stat(path); err != nil {
		return
	}
	info, err := descriptor.LoadWorkspaceInfo(path)
	if err != nil {
		w.diagnose(path, err.Error())
		return
	}
	w.ws.Info = info
}

func (w *walker) walk(dir string) error {
	if err := w.ctx.Err(); err != nil {
		return errors.Wrap(err, "workspace build cancelled")
	}

	canonical, err := filepath.EvalSymlinks(dir)
	if err != nil {
		w.log.Debug("skipping unresolvable directory", "dir", dir, "error", err)
		return nil
	}
	if w.visited[canonical] {
		w.log.Debug("skipping already visited directory", "dir", dir, "canonical", canonical)
		return nil
	}
	w.visited[canonical] = true
	w.ws.Dirs = append(w.ws.Dirs, dir)

	w.visitMarker(dir)

	// os.ReadDir returns entries sorted by file name.
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.log.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}

	for _, e := range entries {
		if e.Name() == w.marker {
			continue
		}
		child := filepath.Join(dir, e.Name())
		if !isDir(child, e) || w.ignored(child) {
			continue
		}
		if err := w.walk(child); err != nil {
			return err
		}
	}
	return nil
}

// visitMarker loads the project declared in dir, if any.
func (w *walker) visitMarker(dir string) {
	markerDir := filepath.Join(dir, w.marker)
	if info, err := os.Stat(markerDir); err != nil || !info.IsDir() {
		return
	}
	w.ws.Dirs = append(w.ws.Dirs, markerDir)
	if skills := filepath.Join(markerDir, descriptor.SkillsDir); isExistingDir(skills) {
		w.ws.Dirs = append(w.ws.Dirs, skills)
	}

	path := descriptor.ProjectFilePath(dir, w.marker)
	if _, err := os.Stat(path); err != nil {
		return
	}

	d, err := descriptor.Load(path)
	if err != nil {
		w.diagnose(path, err.Error())
		return
	}

	if first, taken := w.owners[d.Name]; taken {
		w.diagnose(path, fmt.Sprintf("duplicate project name %q (already defined by %s)", d.Name, first))
		return
	}

	for _, cerr := range descriptor.LoadCompanions(markerDir, d) {
		w.diagnose(companionPath(markerDir, cerr), cerr.Error())
	}

	w.owners[d.Name] = path
	w.ws.Projects[d.Name] = d
	w.log.Debug("loaded project", "name", d.Name, "path", path)
}

func (w *walker) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// companionPath extracts the failing file from a companion error so the
// diagnostic points at it rather than at the marker directory.
func companionPath(markerDir string, err error) string {
	var (
		rerr *descriptor.ReadError
		perr *descriptor.ParseError
		verr *descriptor.ValidationError
	)
	switch {
	case errors.As(err, &rerr):
		return rerr.Path
	case errors.As(err, &perr):
		return perr.Path
	case errors.As(err, &verr):
		return verr.Path
	}
	return markerDir
}

// isDir reports whether the entry is a directory, following symlinks.
func isDir(path string, e fs.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	return isExistingDir(path)
}

func isExistingDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
