package auth

import (
	"net/http"

	apperrors "github.com/kbukum/webdemo/errors"
)

// SessionStrategy authenticates the session cookie set by the cookie-flow
// login endpoint. Login itself is handled by the endpoint (Basic flow +
// SessionStore.Create); this strategy only resolves established sessions.
type SessionStrategy struct {
	store      *SessionStore
	cookieName string
}

// NewSessionStrategy creates the cookie session strategy.
func NewSessionStrategy(store *SessionStore, cookieName string) *SessionStrategy {
	return &SessionStrategy{store: store, cookieName: cookieName}
}

func (s *SessionStrategy) Name() string { return "session" }

// CookieName returns the cookie the strategy reads.
func (s *SessionStrategy) CookieName() string { return s.cookieName }

// Resolve looks the cookie value up verbatim in the session store.
func (s *SessionStrategy) Resolve(r *http.Request) (Principal, error) {
	sess, err := s.Lookup(r)
	if err != nil {
		return Principal{}, err
	}
	return Principal{Username: sess.Username}, nil
}

// Lookup returns the full session record for handlers that report the login
// timestamp. A missing cookie and an unknown value both fail with
// SessionNotFound.
func (s *SessionStrategy) Lookup(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil {
		return Session{}, apperrors.SessionNotFound()
	}
	return s.store.Get(cookie.Value)
}
