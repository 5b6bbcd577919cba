package briefing

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"audio-briefing/src/workflows"
)

// Store keeps the sessions of all visitors in memory
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	def       workflows.Definition
	submitter Submitter
	logger    *slog.Logger
	now       func() time.Time
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock replaces time.Now, used by tests
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty session store
func NewStore(def workflows.Definition, submitter Submitter, opts ...StoreOption) *Store {
	s := &Store{
		sessions:  make(map[string]*Session),
		def:       def,
		submitter: submitter,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session with a random id
func (s *Store) Create() *Session {
	session := newSession(uuid.NewString(), s.def, s.submitter, s.logger, s.now)
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	s.logger.Debug("session created", "session_id", session.ID)
	return session
}

func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// GetOrCreate returns the session for id, or a new one when id is unknown.
// The boolean reports whether a session was created.
func (s *Store) GetOrCreate(id string) (*Session, bool) {
	if id != "" {
		if session, ok := s.Get(id); ok {
			return session, false
		}
	}
	return s.Create(), true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Prune drops sessions idle for longer than ttl. Sessions with a running submission are kept.
func (s *Store) Prune(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		lastSeen, sending := session.idleSince()
		if sending || lastSeen.After(cutoff) {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	if removed > 0 {
		s.logger.Info("pruned idle sessions", "count", removed, "remaining", len(s.sessions))
	}
	return removed
}
