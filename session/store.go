package session

import (
	"context"
	"sync"
)

// Store persists sessions between requests. Implementations must treat
// expired sessions as absent and remove them on load.
type Store interface {
	// Load returns the session with the given id, or ErrNotFound.
	Load(ctx context.Context, id string) (*Session, error)

	// Save persists the session until its expiration.
	Save(ctx context.Context, session *Session) error

	// Delete removes the session. Deleting an absent session is not
	// an error.
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory. Suitable for tests and
// single-instance deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if session.Expired() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	return session, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
