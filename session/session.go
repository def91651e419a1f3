// Package session provides cookie-bound sessions with pluggable
// storage backends.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CookieName is the name of the cookie carrying the session id.
const CookieName = "WS_SESSION_ID"

// DefaultTimeout is the default session lifetime.
const DefaultTimeout = time.Hour

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Session holds the values attached to one client across requests.
type Session struct {
	ID         string         `json:"id"`
	Values     map[string]any `json:"values"`
	Expiration time.Time      `json:"expiration"`
}

// New creates a fresh session expiring after the given timeout.
func New(timeout time.Duration) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Values:     make(map[string]any),
		Expiration: time.Now().Add(timeout),
	}
}

// Expired reports whether the session is past its expiration.
func (s *Session) Expired() bool {
	return time.Now().After(s.Expiration)
}

// Get returns the value stored under key, or nil.
func (s *Session) Get(key string) any {
	return s.Values[key]
}

// GetString returns the string value stored under key, or the empty
// string when absent or of another type.
func (s *Session) GetString(key string) string {
	value, _ := s.Values[key].(string)
	return value
}

// Set stores a value under key.
func (s *Session) Set(key string, value any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = value
}

// Delete removes the value stored under key.
func (s *Session) Delete(key string) {
	delete(s.Values, key)
}
