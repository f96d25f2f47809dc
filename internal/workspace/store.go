package workspace

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Store holds the current snapshot. Readers call Current and never block;
// Rebuild builds a new snapshot off to the side and swaps it in only when
// the build succeeds.
type Store struct {
	root string
	opts Options
	log  *slog.Logger

	current atomic.Pointer[Workspace]

	mu    sync.Mutex // serializes rebuilds and guards hooks
	hooks []func(*Workspace)
}

// NewStore creates a store for root. Until the first Rebuild, Current
// returns an empty snapshot.
func NewStore(root string, opts Options) *Store {
	s := &Store{root: root, opts: opts, log: opts.logger()}
	s.current.Store(Empty(root))
	return s
}

// Root returns the directory the store scans.
func (s *Store) Root() string { return s.root }

// Current returns the latest published snapshot.
func (s *Store) Current() *Workspace {
	return s.current.Load()
}

// OnPublish registers fn to run after every successful rebuild, with the
// newly published snapshot. Hooks run while the rebuild lock is held, so
// they observe snapshots in publication order.
func (s *Store) OnPublish(fn func(*Workspace)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Rebuild scans the root and publishes the result. On error the previous
// snapshot stays current.
func (s *Store) Rebuild(ctx context.Context) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, err := Build(ctx, s.root, s.opts)
	if err != nil {
		s.log.Error("workspace rebuild failed, keeping previous snapshot", "root", s.root, "error", err)
		return nil, err
	}

	s.current.Store(ws)
	for _, fn := range s.hooks {
		fn(ws)
	}
	return ws, nil
}
