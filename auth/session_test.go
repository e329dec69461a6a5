package auth

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	apperrors "github.com/kbukum/webdemo/errors"
)

func TestSessionCreateYieldsDistinctIDs(t *testing.T) {
	store := NewSessionStore()

	id1, err := store.Create("john")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id2, err := store.Create("john")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id1 == id2 {
		t.Error("two logins must yield distinct session ids")
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
}

func TestSessionGet(t *testing.T) {
	loginAt := time.Date(2024, 5, 24, 21, 32, 0, 0, time.UTC)
	store := NewSessionStore(WithSessionClock(func() time.Time { return loginAt }))

	id, err := store.Create("john")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	sess, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.Username != "john" {
		t.Errorf("username = %q", sess.Username)
	}
	if !sess.LoginAt.Equal(loginAt) {
		t.Errorf("login at = %v, want %v", sess.LoginAt, loginAt)
	}

	// A value never issued by login must not resolve.
	if _, err := store.Get("never-issued"); !apperrors.HasCode(err, apperrors.ErrCodeSessionNotFound) {
		t.Errorf("expected SessionNotFound, got %v", err)
	}
}

func TestSessionDelete(t *testing.T) {
	store := NewSessionStore()
	id, _ := store.Create("john")

	store.Delete(id)
	if _, err := store.Get(id); !apperrors.HasCode(err, apperrors.ErrCodeSessionNotFound) {
		t.Errorf("expected SessionNotFound after delete, got %v", err)
	}

	// Deleting twice is harmless.
	store.Delete(id)
}

func TestSessionStoreConcurrency(t *testing.T) {
	store := NewSessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.Create("john")
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := store.Get(id); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if store.Len() != 50 {
		t.Errorf("Len = %d, want 50", store.Len())
	}
}

func TestSessionStrategyResolve(t *testing.T) {
	store := NewSessionStore()
	strategy := NewSessionStrategy(store, "web-app-session-id")

	id, _ := store.Create("john")

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "web-app-session-id", Value: id})
	p, err := strategy.Resolve(r)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Username != "john" {
		t.Errorf("principal = %+v", p)
	}

	// Missing cookie.
	r = httptest.NewRequest("GET", "/", nil)
	if _, err := strategy.Resolve(r); !apperrors.HasCode(err, apperrors.ErrCodeSessionNotFound) {
		t.Errorf("expected SessionNotFound without cookie, got %v", err)
	}

	// Forged cookie.
	r = httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "web-app-session-id", Value: "forged"})
	if _, err := strategy.Resolve(r); !apperrors.HasCode(err, apperrors.ErrCodeSessionNotFound) {
		t.Errorf("expected SessionNotFound for forged cookie, got %v", err)
	}
}
