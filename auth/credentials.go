package auth

import (
	"fmt"

	"github.com/kbukum/webdemo/auth/password"
)

// User is one credential-store record. Immutable after startup.
type User struct {
	Username     string
	PasswordHash string
	Email        string
	Active       bool
}

// CredentialStore maps usernames to user records. It is populated once at
// construction and read-only afterwards, so concurrent lookups need no lock.
type CredentialStore struct {
	users map[string]User
}

// NewCredentialStore hashes each seed password and builds the store.
func NewCredentialStore(seeds []SeedUser, hasher password.Hasher) (*CredentialStore, error) {
	users := make(map[string]User, len(seeds))
	for _, s := range seeds {
		hash, err := hasher.Hash(s.Password)
		if err != nil {
			return nil, fmt.Errorf("auth: hash password for %q: %w", s.Username, err)
		}
		users[s.Username] = User{
			Username:     s.Username,
			PasswordHash: hash,
			Email:        s.Email,
			Active:       !s.Disabled,
		}
	}
	return &CredentialStore{users: users}, nil
}

// Lookup returns the user record for a username via exact match.
func (s *CredentialStore) Lookup(username string) (User, bool) {
	u, ok := s.users[username]
	return u, ok
}

// Len returns the number of stored users.
func (s *CredentialStore) Len() int { return len(s.users) }

// Principal converts a user record to the request principal.
func (u User) Principal() Principal {
	return Principal{Username: u.Username, Email: u.Email}
}
