// Package session holds the logged-in user's bearer token in memory and
// mirrors it to a durable Store so a later run can pick it up again.
//
// There is no expiry tracking and no refresh: a token is valid until the
// server says otherwise or the user logs out.
package session

import (
	"errors"
	"log/slog"
	"sync"
)

// Session is the explicit auth state passed to the API client.
type Session struct {
	store Store

	mu       sync.RWMutex
	token    string
	username string
}

// New creates an empty session backed by store.
func New(store Store) *Session {
	return &Session{store: store}
}

// SetToken stores the token in memory and in the durable store. The in-memory
// copy is updated even when persisting fails.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.username = ""
	s.mu.Unlock()

	return s.store.Save(token)
}

// SetUser records the identity returned by login.
func (s *Session) SetUser(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
}

// LoadToken reads the durable store and, if a token is present, makes it the
// in-memory token. It returns "" when nothing is stored.
func (s *Session) LoadToken() (string, error) {
	token, err := s.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return "", nil
		}
		return "", err
	}

	s.mu.Lock()
	s.token = token
	s.username = ""
	s.mu.Unlock()

	slog.Debug("restored session token from store")
	return token, nil
}

// Clear drops the token from memory and from the durable store.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.username = ""
	s.mu.Unlock()

	return s.store.Clear()
}

// Token returns the current bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username returns the known username. When login did not supply one, it
// falls back to the token's claims.
func (s *Session) Username() string {
	s.mu.RLock()
	token, username := s.token, s.username
	s.mu.RUnlock()

	if username != "" || token == "" {
		return username
	}
	return usernameFromToken(token)
}

// Active reports whether a token is held.
func (s *Session) Active() bool {
	return s.Token() != ""
}
