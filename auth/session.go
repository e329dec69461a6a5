package auth

import (
	"sync"
	"time"

	apperrors "github.com/kbukum/webdemo/errors"
	"github.com/kbukum/webdemo/auth/password"
)

// sessionIDBytes gives 128 bits of entropy per session identifier.
const sessionIDBytes = 16

// Session is one cookie-flow login.
type Session struct {
	Username string
	LoginAt  time.Time
}

// SessionStore maps opaque session ids to sessions for the cookie flow.
// Sessions live for the process lifetime; there is no expiry sweep.
// The mutex is required: gin handles requests on separate goroutines, and
// login writes race with cookie lookups.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithSessionClock overrides the login timestamp source for tests.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) { s.now = now }
}

// NewSessionStore creates an empty session store.
func NewSessionStore(opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create mints a fresh random session id for the username and records the
// login time. Each call yields a distinct id.
func (s *SessionStore) Create(username string) (string, error) {
	id, err := password.GenerateToken(sessionIDBytes)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessions[id] = Session{Username: username, LoginAt: s.now()}
	s.mu.Unlock()
	return id, nil
}

// Get looks up a session id via exact match.
func (s *SessionStore) Get(id string) (Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, apperrors.SessionNotFound()
	}
	return sess, nil
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
