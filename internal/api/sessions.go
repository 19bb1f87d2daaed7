package api

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pokedexlabs/pokenator/internal/catalog"
	"github.com/pokedexlabs/pokenator/internal/game"
	"go.uber.org/zap"
)

// Registry maps opaque session ids to session handles. Each session's belief
// state is owned exclusively by its handle; the registry is the host-side
// concurrency-safe store the engine itself stays unaware of.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*game.Session
	catalog  *catalog.Catalog
}

func NewRegistry(cat *catalog.Catalog) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*game.Session),
		catalog:  cat,
	}
}

// Create starts a new session over the shared catalog.
func (r *Registry) Create() (uuid.UUID, *game.Session, error) {
	session, err := game.NewSession(r.catalog)
	if err != nil {
		return uuid.Nil, nil, err
	}

	id := uuid.New()
	r.mu.Lock()
	r.sessions[id] = session
	r.mu.Unlock()
	return id, session, nil
}

func (r *Registry) Get(id uuid.UUID) (*game.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// sweep removes sessions idle past the TTL and returns how many were dropped.
func (r *Registry) sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.LastActive().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Sweeper periodically reclaims abandoned sessions. Sessions hold no external
// resources, so dropping one is a pure memory release.
type Sweeper struct {
	registry *Registry
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewSweeper(registry *Registry, ttl time.Duration, logger *zap.Logger) *Sweeper {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Sweeper{
		registry: registry,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go func() {
		defer close(s.doneCh)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := s.registry.sweep(s.ttl); removed > 0 {
					s.logger.Info("swept idle sessions",
						zap.Int("removed", removed),
						zap.Int("active", s.registry.Len()))
				}
			case <-s.stopCh:
				return
			}
		}
	}()
}

func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}
