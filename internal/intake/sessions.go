package intake

import (
	"sync"
	"time"
)

// Sessions maps an unlock token ID to its wizard session.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewSessions returns an empty registry. now is passed to new drafts.
func NewSessions(now func() time.Time) *Sessions {
	return &Sessions{sessions: make(map[string]*Session), now: now}
}

// Get returns the session for id, creating it on first use.
func (s *Sessions) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = NewSession(s.now)
		s.sessions[id] = sess
	}
	return sess
}

// Drop forgets the session for id.
func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
