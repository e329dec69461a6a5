package auth

import (
	"net/http"
	"strings"

	"github.com/kbukum/webdemo/auth/password"
	"github.com/kbukum/webdemo/auth/token"
	apperrors "github.com/kbukum/webdemo/errors"
)

// TokenPair is the response body of a successful JWT login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// BearerTokenType is the token_type value reported to clients.
const BearerTokenType = "Bearer"

// JWTStrategy authenticates Bearer access tokens and exposes the login and
// refresh operations of the JWT flow. Tokens are never stored server-side;
// validity is signature plus expiry, checked at verification time.
//
// Known weakness kept from the design: refresh tokens are not rotated or
// revocable, so a leaked refresh token mints access tokens until it expires.
type JWTStrategy struct {
	codec  *token.Codec
	creds  *CredentialStore
	hasher password.Hasher
}

// NewJWTStrategy creates the JWT flow.
func NewJWTStrategy(codec *token.Codec, creds *CredentialStore, hasher password.Hasher) *JWTStrategy {
	return &JWTStrategy{codec: codec, creds: creds, hasher: hasher}
}

func (s *JWTStrategy) Name() string { return "jwt" }

// Login validates the credential pair via the Basic flow rules and issues
// one access and one refresh token.
func (s *JWTStrategy) Login(username, pass string) (TokenPair, error) {
	basic := BasicStrategy{creds: s.creds, hasher: s.hasher}
	p, err := basic.Authenticate(username, pass)
	if err != nil {
		return TokenPair{}, err
	}

	access, err := s.codec.IssueAccess(p.Username, p.Email)
	if err != nil {
		return TokenPair{}, apperrors.Internal(err)
	}
	refresh, err := s.codec.IssueRefresh(p.Username, p.Email)
	if err != nil {
		return TokenPair{}, apperrors.Internal(err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: BearerTokenType}, nil
}

// Resolve authenticates a Bearer access token.
func (s *JWTStrategy) Resolve(r *http.Request) (Principal, error) {
	p, _, err := s.ResolveClaims(r)
	return p, err
}

// ResolveClaims authenticates a Bearer access token and returns the verified
// claims so handlers can report token metadata (iat). The subject is
// re-resolved against the credential store on every call: a token for a user
// that no longer exists is invalid, and a disabled account is forbidden even
// with a valid token.
func (s *JWTStrategy) ResolveClaims(r *http.Request) (Principal, *token.Claims, error) {
	claims, err := s.verifyBearer(r, token.TypeAccess)
	if err != nil {
		return Principal{}, nil, err
	}
	user, err := s.resolveSubject(claims)
	if err != nil {
		return Principal{}, nil, err
	}
	return user.Principal(), claims, nil
}

// Refresh exchanges a Bearer refresh token for a fresh access token.
// The refresh token itself is returned unchanged to the client (no rotation).
func (s *JWTStrategy) Refresh(r *http.Request) (TokenPair, error) {
	claims, err := s.verifyBearer(r, token.TypeRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	user, err := s.resolveSubject(claims)
	if err != nil {
		return TokenPair{}, err
	}

	access, err := s.codec.IssueAccess(user.Username, user.Email)
	if err != nil {
		return TokenPair{}, apperrors.Internal(err)
	}
	return TokenPair{AccessToken: access, TokenType: BearerTokenType}, nil
}

// verifyBearer extracts the Bearer token, verifies the signature and expiry,
// and enforces the expected type claim.
func (s *JWTStrategy) verifyBearer(r *http.Request, want token.Type) (*token.Claims, error) {
	raw, err := ExtractBearer(r)
	if err != nil {
		return nil, err
	}
	claims, err := s.codec.Verify(raw)
	if err != nil {
		return nil, apperrors.InvalidToken("")
	}
	if err := claims.RequireType(want); err != nil {
		return nil, apperrors.InvalidToken(err.Error())
	}
	return claims, nil
}

// resolveSubject maps the sub claim back onto the credential store.
func (s *JWTStrategy) resolveSubject(claims *token.Claims) (User, error) {
	user, ok := s.creds.Lookup(claims.Subject)
	if !ok {
		return User{}, apperrors.InvalidToken("")
	}
	if !user.Active {
		return User{}, apperrors.AccountInactive()
	}
	return user, nil
}

// ExtractBearer pulls the token out of an Authorization: Bearer header.
func ExtractBearer(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperrors.Unauthorized("Authorization header required.")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.Unauthorized("Invalid authorization header format.")
	}
	return parts[1], nil
}
