// Package token signs and verifies the JWT envelope shared by access and
// refresh tokens. The two kinds differ only in the "type" claim; every
// consumer must check the type explicitly via Claims.RequireType — a valid
// signature alone never authorizes anything.
package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Type discriminates access tokens from refresh tokens.
type Type string

const (
	// TypeAccess marks short-lived tokens authorizing direct resource access.
	TypeAccess Type = "access"
	// TypeRefresh marks long-lived tokens exchangeable for a new access token.
	TypeRefresh Type = "refresh"
)

// Claims is the token payload. Subject carries the username, duplicated in
// the Username field to match the wire format clients expect.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Type     Type   `json:"type"`
}

// RequireType rejects a claims set whose type claim does not match want.
// This stops a refresh token from being replayed as an access credential
// (and the other way around) even though its signature verifies.
func (c *Claims) RequireType(want Type) error {
	if c.Type != want {
		return fmt.Errorf("token: invalid token type %q, expected %q", c.Type, want)
	}
	return nil
}
