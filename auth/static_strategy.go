package auth

import (
	"net/http"

	apperrors "github.com/kbukum/webdemo/errors"
)

// StaticTokenHeader carries the pre-shared token.
const StaticTokenHeader = "x-auth-token"

// StaticTokenStrategy authenticates the x-auth-token header against the
// static token table. No expiry, no rotation.
type StaticTokenStrategy struct {
	table *StaticTokenTable
}

// NewStaticTokenStrategy creates the static header token strategy.
func NewStaticTokenStrategy(table *StaticTokenTable) *StaticTokenStrategy {
	return &StaticTokenStrategy{table: table}
}

func (s *StaticTokenStrategy) Name() string { return "static-token" }

// Resolve looks the header token up via exact match. A missing header and an
// unknown token are indistinguishable in the response.
func (s *StaticTokenStrategy) Resolve(r *http.Request) (Principal, error) {
	tok := r.Header.Get(StaticTokenHeader)
	username, ok := s.table.Resolve(tok)
	if !ok {
		return Principal{}, apperrors.InvalidCredentials()
	}
	return Principal{Username: username}, nil
}
