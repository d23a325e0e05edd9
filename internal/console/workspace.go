package console

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/productdesk/internal/catalog/controller"
)

// Factory builds the controller of a new browser session.
type Factory func() *controller.ListController

type workspace struct {
	ctl      *controller.ListController
	lastSeen time.Time
	loaded   bool
}

// Store keeps one ListController per browser session, the server side
// equivalent of one open page.
type Store struct {
	factory Factory
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu    sync.Mutex
	items map[string]*workspace
	loads singleflight.Group
}

// NewStore constructs a Store. Workspaces idle longer than ttl are dropped by Sweep.
func NewStore(factory Factory, ttl time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		factory: factory,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		items:   make(map[string]*workspace),
	}
}

// Get returns the controller of a session, loading the collection on first use.
// Concurrent first requests share a single load.
func (s *Store) Get(ctx context.Context, sessionID string) *controller.ListController {
	ws := s.lookup(sessionID, false)
	s.ensureLoaded(ctx, sessionID, ws)
	return ws.ctl
}

// Reload discards the session's workspace and loads a fresh one, like reloading
// the page. Unsaved drafts and the placeholder row are lost.
func (s *Store) Reload(ctx context.Context, sessionID string) *controller.ListController {
	ws := s.lookup(sessionID, true)
	s.ensureLoaded(ctx, sessionID, ws)
	return ws.ctl
}

func (s *Store) lookup(sessionID string, fresh bool) *workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.items[sessionID]
	if !ok || fresh {
		ws = &workspace{ctl: s.factory()}
		s.items[sessionID] = ws
	}
	ws.lastSeen = s.now()
	return ws
}

func (s *Store) ensureLoaded(ctx context.Context, sessionID string, ws *workspace) {
	s.mu.Lock()
	loaded := ws.loaded
	s.mu.Unlock()
	if loaded {
		return
	}
	// The load outlives the request that triggered it.
	loadCtx := context.WithoutCancel(ctx)
	key := fmt.Sprintf("%s/%p", sessionID, ws)
	_, _, _ = s.loads.Do(key, func() (any, error) {
		s.mu.Lock()
		done := ws.loaded
		s.mu.Unlock()
		if done {
			return nil, nil
		}
		err := ws.ctl.Load(loadCtx)
		s.mu.Lock()
		ws.loaded = true
		s.mu.Unlock()
		return nil, err
	})
}

// Len reports the number of live workspaces.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep drops workspaces idle for longer than the TTL and returns how many were removed.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, ws := range s.items {
		if ws.lastSeen.Before(cutoff) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Run sweeps periodically until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}
	interval := s.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("swept idle workspaces", slog.Int("count", n))
			}
		}
	}
}
