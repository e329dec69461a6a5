package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/kbukum/webdemo/auth/password"
	apperrors "github.com/kbukum/webdemo/errors"
)

func testHasher() password.Hasher {
	return password.NewBcryptHasher(password.WithCost(4))
}

func testCredentials(t *testing.T) *CredentialStore {
	t.Helper()
	creds, err := NewCredentialStore([]SeedUser{
		{Username: "john", Password: "qwerty", Email: "john@example.com"},
		{Username: "sam", Password: "secret"},
		{Username: "bob", Password: "hunter2", Disabled: true},
	}, testHasher())
	if err != nil {
		t.Fatalf("NewCredentialStore: %v", err)
	}
	return creds
}

func TestBasicAuthenticate(t *testing.T) {
	basic := NewBasicStrategy(testCredentials(t), testHasher())

	tests := []struct {
		name     string
		username string
		password string
		wantCode apperrors.ErrorCode
	}{
		{"valid john", "john", "qwerty", ""},
		{"valid sam", "sam", "secret", ""},
		{"unknown user", "nobody", "qwerty", apperrors.ErrCodeInvalidCredentials},
		{"wrong password", "john", "dvorak", apperrors.ErrCodeInvalidCredentials},
		{"swapped pair", "sam", "qwerty", apperrors.ErrCodeInvalidCredentials},
		{"inactive account", "bob", "hunter2", apperrors.ErrCodeAccountInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := basic.Authenticate(tt.username, tt.password)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Authenticate: %v", err)
				}
				if p.Username != tt.username {
					t.Errorf("principal = %q, want %q", p.Username, tt.username)
				}
				return
			}
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestBasicResolve(t *testing.T) {
	basic := NewBasicStrategy(testCredentials(t), testHasher())

	r := httptest.NewRequest("GET", "/", nil)
	r.SetBasicAuth("john", "qwerty")
	p, err := basic.Resolve(r)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Username != "john" || p.Email != "john@example.com" {
		t.Errorf("principal = %+v", p)
	}

	// No credentials at all.
	r = httptest.NewRequest("GET", "/", nil)
	if _, err := basic.Resolve(r); !apperrors.HasCode(err, apperrors.ErrCodeInvalidCredentials) {
		t.Errorf("expected InvalidCredentials without header, got %v", err)
	}
}

func TestBasicChallenge(t *testing.T) {
	basic := NewBasicStrategy(testCredentials(t), testHasher())
	var c Challenger = basic
	if c.Challenge() != `Basic realm="webdemo"` {
		t.Errorf("unexpected challenge: %s", c.Challenge())
	}
}

func TestCredentialStoreHashesPasswords(t *testing.T) {
	creds := testCredentials(t)
	u, ok := creds.Lookup("john")
	if !ok {
		t.Fatal("john should exist")
	}
	if u.PasswordHash == "qwerty" {
		t.Error("password must not be stored in plaintext")
	}
	if !u.Active {
		t.Error("seed users default to active")
	}

	b, _ := creds.Lookup("bob")
	if b.Active {
		t.Error("disabled seed user must be inactive")
	}
}
