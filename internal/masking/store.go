package masking

import (
	"sync"
	"time"
)

// Store keeps per-session masking state in memory. Sessions are keyed
// by an opaque id chosen by the client (one per open study view) and
// expire after a period of inactivity.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

type sessionEntry struct {
	state     *State
	touchedAt time.Time
}

// NewStore returns a store whose sessions expire after ttl of
// inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the state of a session, creating it on first access.
// Every access refreshes the session's expiry. The returned state is
// not safe for concurrent use; callers serving concurrent requests go
// through Update instead.
func (s *Store) Get(sessionID string) *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(sessionID)
}

// Update runs fn against a session's state while holding the store
// lock, serializing concurrent requests on the same session.
func (s *Store) Update(sessionID string, fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.getLocked(sessionID))
}

func (s *Store) getLocked(sessionID string) *State {
	s.evictExpiredLocked()

	entry, ok := s.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{state: NewState()}
		s.sessions[sessionID] = entry
	}
	entry.touchedAt = s.now()
	return entry.state
}

// Delete drops a session.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
	return len(s.sessions)
}

func (s *Store) evictExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, entry := range s.sessions {
		if entry.touchedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
