package search

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/HendryAvila/jumble/internal/workspace"
)

// ErrNotReady is returned by Searcher.Search before any snapshot has been
// indexed.
var ErrNotReady = errors.New("search index not built yet")

// Searcher owns the index for the current snapshot and replaces it when a
// new snapshot is published. Pass Publish to workspace.Store.OnPublish.
type Searcher struct {
	log *slog.Logger

	mu    sync.RWMutex
	index *Index
}

// NewSearcher creates a Searcher with no index.
func NewSearcher(logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Searcher{log: logger}
}

// Publish indexes ws and swaps the result in, closing the previous index.
// If indexing fails the previous index stays in service.
func (s *Searcher) Publish(ws *workspace.Workspace) {
	ix, err := Build(context.Background(), ws)
	if err != nil {
		s.log.Error("search index build failed", "error", err)
		return
	}

	s.mu.Lock()
	old := s.index
	s.index = ix
	s.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			s.log.Warn("closing previous search index", "error", err)
		}
	}
	s.log.Debug("search index published", "entries", ix.Len())
}

// Search queries the current index. In-flight searches finish before the
// index they use is closed.
func (s *Searcher) Search(ctx context.Context, query string, opts Options) ([]Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil, ErrNotReady
	}
	return s.index.Search(ctx, query, opts)
}

// Close releases the current index.
func (s *Searcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil
	}
	err := s.index.Close()
	s.index = nil
	return err
}
