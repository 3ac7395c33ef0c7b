package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated browser session. It carries only the
// logged-in username.
type Session struct {
	ID        string
	Username  string
	ExpiresAt time.Time
}

// IsExpired checks if the session has expired.
func (s Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is an in-process registry of sessions. Sessions die with the
// process, at logout, or when their TTL passes.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
}

// NewStore creates a session store with the given lifetime.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}
}

// Create registers a new session for the username.
func (s *Store) Create(username string) Session {
	sess := Session{
		ID:        uuid.New().String(),
		Username:  username,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get resolves a session ID. Expired sessions are removed on lookup.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if sess.IsExpired() {
		s.Delete(id)
		return Session{}, false
	}
	return sess, true
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// DeleteExpired removes every expired session and reports how many
// were dropped.
func (s *Store) DeleteExpired() int {
	now := time.Now()
	removed := 0

	s.mu.Lock()
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.mu.Unlock()

	return removed
}
