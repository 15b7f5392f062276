// Package session provides the in-memory store for visitor sessions.
// Session state is exclusively owned by this process and never persisted;
// losing it on restart only re-locks the gate, which visitors recover
// from by re-verifying.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"folio/config"
	"folio/internal/domain/entity"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const janitorInterval = time.Minute

// Store keeps sessions keyed by opaque id with TTL eviction.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
	ttl      time.Duration
	logger   *slog.Logger
	done     chan struct{}
}

// Params holds dependencies for the Store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the store and starts its eviction janitor, stopped via the
// fx lifecycle.
func New(params Params) *Store {
	store := &Store{
		sessions: make(map[string]*entity.Session),
		ttl:      params.Config.Session.TTL,
		logger:   params.Logger,
		done:     make(chan struct{}),
	}

	go store.janitor()

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			close(store.done)

			return nil
		},
	})

	return store
}

// NewStore creates a bare store without lifecycle wiring, for tests.
func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*entity.Session),
		ttl:      ttl,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Create starts a fresh locked, signed-out session. The returned value is
// a snapshot; the live record stays inside the store.
func (s *Store) Create() entity.Session {
	now := time.Now()
	sess := &entity.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		LastSeen:  now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return *sess
}

// Get returns a snapshot of the session for id, refreshing its last-seen
// time. Callers never receive the live record, so their field reads can
// not race with Mutate; writes go through Mutate by id.
func (s *Store) Get(id string) (entity.Session, bool) {
	if id == "" {
		return entity.Session{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return entity.Session{}, false
	}
	if time.Since(sess.LastSeen) > s.ttl {
		delete(s.sessions, id)

		return entity.Session{}, false
	}
	sess.LastSeen = time.Now()

	return *sess, true
}

// Mutate applies fn to the session under the store lock. It returns false
// when the session no longer exists.
func (s *Store) Mutate(id string, fn func(*entity.Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	fn(sess)

	return true
}

func (s *Store) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *Store) evictExpired() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
