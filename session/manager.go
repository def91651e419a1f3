package session

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Manager binds sessions to requests through the session cookie.
type Manager struct {
	store      Store
	timeout    time.Duration
	cookieName string
	secure     bool
}

// ManagerOption is a functional option for configuring the manager.
type ManagerOption func(*Manager)

// WithTimeout sets the session lifetime.
func WithTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) ManagerOption {
	return func(m *Manager) {
		m.cookieName = name
	}
}

// WithSecureCookies marks the session cookie as secure.
func WithSecureCookies(secure bool) ManagerOption {
	return func(m *Manager) {
		m.secure = secure
	}
}

// NewManager creates a manager persisting sessions in the given store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:      store,
		timeout:    DefaultTimeout,
		cookieName: CookieName,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Get returns the session identified by the request cookie, creating a
// fresh one (and setting its cookie) when none exists or it expired.
// New sessions are not persisted until Save is called.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		session, err := m.store.Load(r.Context(), cookie.Value)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	session := New(m.timeout)
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(m.timeout.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return session, nil
}

// Save refreshes the session expiration and persists it.
func (m *Manager) Save(ctx context.Context, session *Session) error {
	session.Expiration = time.Now().Add(m.timeout)
	return m.store.Save(ctx, session)
}

// Destroy removes the session from the store and expires its cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request, session *Session) error {
	if err := m.store.Delete(r.Context(), session.ID); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
