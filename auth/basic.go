package auth

import (
	"net/http"

	"github.com/kbukum/webdemo/auth/password"
	apperrors "github.com/kbukum/webdemo/errors"
)

// BasicStrategy authenticates HTTP Basic credentials against the credential
// store. The session and JWT login handlers reuse Authenticate directly.
type BasicStrategy struct {
	creds  *CredentialStore
	hasher password.Hasher
}

// NewBasicStrategy creates the Basic credentials strategy.
func NewBasicStrategy(creds *CredentialStore, hasher password.Hasher) *BasicStrategy {
	return &BasicStrategy{creds: creds, hasher: hasher}
}

func (s *BasicStrategy) Name() string { return "basic" }

// Challenge implements Challenger so 401 responses carry the Basic challenge.
func (s *BasicStrategy) Challenge() string { return `Basic realm="webdemo"` }

// Resolve extracts Basic credentials from the request and authenticates them.
func (s *BasicStrategy) Resolve(r *http.Request) (Principal, error) {
	username, pass, ok := r.BasicAuth()
	if !ok {
		return Principal{}, apperrors.InvalidCredentials()
	}
	return s.Authenticate(username, pass)
}

// Authenticate validates a username/password pair. Unknown users and wrong
// passwords both yield InvalidCredentials; a correct pair for a disabled
// account yields AccountInactive.
func (s *BasicStrategy) Authenticate(username, pass string) (Principal, error) {
	user, ok := s.creds.Lookup(username)
	if !ok {
		return Principal{}, apperrors.InvalidCredentials()
	}
	if err := s.hasher.Verify(pass, user.PasswordHash); err != nil {
		return Principal{}, apperrors.InvalidCredentials()
	}
	if !user.Active {
		return Principal{}, apperrors.AccountInactive()
	}
	return user.Principal(), nil
}
