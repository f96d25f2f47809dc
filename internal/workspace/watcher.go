package workspace

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for the filesystem to go
// quiet before rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Watcher rebuilds a Store when descriptor files change on disk.
type Watcher struct {
	store    *Store
	debounce time.Duration
	log      *slog.Logger

	watched map[string]bool
}

// NewWatcher creates a watcher for store. A non-positive debounce uses
// DefaultDebounce.
func NewWatcher(store *Store, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		store:    store,
		debounce: debounce,
		log:      logger,
		watched:  map[string]bool{},
	}
}

// Run watches every directory of the current snapshot until ctx is done.
// Bursts of relevant events collapse into a single rebuild; after each
// rebuild the watch list follows the new snapshot's directories.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer fw.Close()

	w.sync(fw, w.store.Current())
	w.log.Info("watching workspace", "root", w.store.Root(), "dirs", len(w.watched))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.log.Debug("workspace change", "path", event.Name, "op", event.Op.String())
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("file watcher error", "error", err)

		case <-timer.C:
			ws, err := w.store.Rebuild(ctx)
			if err != nil {
				continue
			}
			w.sync(fw, ws)
		}
	}
}

// relevant reports whether event can change a snapshot: a toml or md file
// inside a marker directory, a new directory, or a watched directory going
// away.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	if w.inMarker(event.Name) {
		switch filepath.Ext(event.Name) {
		case ".toml", ".md":
			return true
		}
	}
	if event.Has(fsnotify.Create) {
		return isExistingDir(event.Name)
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return w.watched[event.Name]
	}
	return false
}

func (w *Watcher) inMarker(path string) bool {
	marker := w.store.opts.marker()
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == marker {
			return true
		}
	}
	return false
}

// sync adds the directories of ws not yet watched and drops the ones that
// are no longer part of the walk.
func (w *Watcher) sync(fw *fsnotify.Watcher, ws *Workspace) {
	want := make(map[string]bool, len(ws.Dirs))
	for _, dir := range ws.Dirs {
		want[dir] = true
	}
	if len(want) == 0 {
		want[ws.Root] = true
	}

	for dir := range w.watched {
		if want[dir] {
			continue
		}
		if err := fw.Remove(dir); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
			w.log.Debug("failed to unwatch directory", "dir", dir, "error", err)
		}
		delete(w.watched, dir)
	}
	for dir := range want {
		if w.watched[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				w.log.Warn("failed to watch directory", "dir", dir, "error", err)
			}
			continue
		}
		w.watched[dir] = true
	}
}
