package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/webdemo/auth/token"
	apperrors "github.com/kbukum/webdemo/errors"
)

func testJWT(t *testing.T) *JWTStrategy {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	codec, err := token.NewCodecFromKeys(&token.Config{}, key, &key.PublicKey)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return NewJWTStrategy(codec, testCredentials(t), testHasher())
}

func bearerRequest(tok string) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+tok)
	return r
}

func TestJWTLogin(t *testing.T) {
	jwt := testJWT(t)

	pair, err := jwt.Login("john", "qwerty")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("login must return both tokens")
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("token type = %q", pair.TokenType)
	}

	if _, err := jwt.Login("john", "wrong"); !apperrors.HasCode(err, apperrors.ErrCodeInvalidCredentials) {
		t.Errorf("expected InvalidCredentials, got %v", err)
	}
	if _, err := jwt.Login("bob", "hunter2"); !apperrors.HasCode(err, apperrors.ErrCodeAccountInactive) {
		t.Errorf("expected AccountInactive, got %v", err)
	}
}

func TestJWTResolveAccessToken(t *testing.T) {
	jwt := testJWT(t)
	pair, err := jwt.Login("john", "qwerty")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	p, claims, err := jwt.ResolveClaims(bearerRequest(pair.AccessToken))
	if err != nil {
		t.Fatalf("ResolveClaims: %v", err)
	}
	if p.Username != "john" || p.Email != "john@example.com" {
		t.Errorf("principal = %+v", p)
	}
	if claims.IssuedAt == nil {
		t.Error("claims must carry iat")
	}
}

func TestJWTRefreshTokenRejectedAsAccess(t *testing.T) {
	jwt := testJWT(t)
	pair, _ := jwt.Login("john", "qwerty")

	// A refresh token has a valid signature but the wrong type claim.
	if _, err := jwt.Resolve(bearerRequest(pair.RefreshToken)); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected InvalidToken for refresh-as-access, got %v", err)
	}
}

func TestJWTRefresh(t *testing.T) {
	jwt := testJWT(t)
	pair, _ := jwt.Login("john", "qwerty")

	// Refreshing with the access token fails the type check.
	if _, err := jwt.Refresh(bearerRequest(pair.AccessToken)); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected InvalidToken for access-as-refresh, got %v", err)
	}

	// Refreshing with the refresh token yields a new access token only.
	fresh, err := jwt.Refresh(bearerRequest(pair.RefreshToken))
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if fresh.AccessToken == "" {
		t.Error("refresh must mint an access token")
	}
	if fresh.RefreshToken != "" {
		t.Error("refresh must not mint a refresh token")
	}

	// The new access token authenticates.
	if _, err := jwt.Resolve(bearerRequest(fresh.AccessToken)); err != nil {
		t.Errorf("fresh access token should resolve: %v", err)
	}
}

func TestJWTResolveBadTokens(t *testing.T) {
	jwt := testJWT(t)

	// Garbage token.
	if _, err := jwt.Resolve(bearerRequest("not.a.jwt")); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected InvalidToken, got %v", err)
	}

	// Missing header.
	r := httptest.NewRequest("GET", "/", nil)
	if _, err := jwt.Resolve(r); !apperrors.HasCode(err, apperrors.ErrCodeUnauthorized) {
		t.Errorf("expected Unauthorized, got %v", err)
	}

	// Wrong scheme.
	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Basic am9objpxd2VydHk=")
	if _, err := jwt.Resolve(r); !apperrors.HasCode(err, apperrors.ErrCodeUnauthorized) {
		t.Errorf("expected Unauthorized for non-bearer scheme, got %v", err)
	}
}

func TestJWTTokenForDisabledOrGoneUser(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	codec, err := token.NewCodecFromKeys(&token.Config{}, key, &key.PublicKey)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	jwt := NewJWTStrategy(codec, testCredentials(t), testHasher())

	// Token for a subject the credential store no longer knows.
	gone, err := codec.IssueAccess("ghost", "")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := jwt.Resolve(bearerRequest(gone)); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("expected InvalidToken for unknown subject, got %v", err)
	}

	// Valid token for a disabled account.
	disabled, err := codec.IssueAccess("bob", "")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := jwt.Resolve(bearerRequest(disabled)); !apperrors.HasCode(err, apperrors.ErrCodeAccountInactive) {
		t.Errorf("expected AccountInactive, got %v", err)
	}
}
