package auth

import (
	"net/http"
	"testing"
)

type fakeStrategy struct{ name string }

func (f *fakeStrategy) Name() string { return f.name }
func (f *fakeStrategy) Resolve(_ *http.Request) (Principal, error) {
	return Principal{Username: "fake"}, nil
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&fakeStrategy{name: "basic"})
	reg.Register(&fakeStrategy{name: "jwt"})

	if _, ok := reg.Get("basic"); !ok {
		t.Error("basic should be registered")
	}
	if _, ok := reg.Get("session"); ok {
		t.Error("session should not be registered")
	}
	if got := reg.MustGet("jwt").Name(); got != "jwt" {
		t.Errorf("MustGet name = %q", got)
	}
	if len(reg.Names()) != 2 {
		t.Errorf("Names = %v", reg.Names())
	}
}

func TestRegistryMustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unregistered strategy")
		}
	}()
	NewRegistry().MustGet("nope")
}

func TestStaticTokenStrategy(t *testing.T) {
	table := NewStaticTokenTable(map[string]string{
		"41fa8183f208e234291027d8781bb89": "john",
	})
	strategy := NewStaticTokenStrategy(table)

	r, _ := http.NewRequest("GET", "/", nil)
	r.Header.Set(StaticTokenHeader, "41fa8183f208e234291027d8781bb89")
	p, err := strategy.Resolve(r)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Username != "john" {
		t.Errorf("principal = %+v", p)
	}

	r, _ = http.NewRequest("GET", "/", nil)
	r.Header.Set(StaticTokenHeader, "any-other-string")
	if _, err := strategy.Resolve(r); err == nil {
		t.Error("unknown token must fail")
	}

	r, _ = http.NewRequest("GET", "/", nil)
	if _, err := strategy.Resolve(r); err == nil {
		t.Error("missing header must fail")
	}
}

func TestAuthConfigDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.SessionCookie != "web-app-session-id" {
		t.Errorf("cookie = %q", cfg.SessionCookie)
	}
	if len(cfg.Users) == 0 {
		t.Fatal("defaults must seed users")
	}
	if cfg.Users[0].Username != "john" {
		t.Errorf("first seed user = %q", cfg.Users[0].Username)
	}
	if cfg.StaticTokens["41fa8183f208e234291027d8781bb89"] != "john" {
		t.Error("default static token for john missing")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestAuthConfigRejectsDuplicateUsers(t *testing.T) {
	cfg := &Config{Users: []SeedUser{
		{Username: "john", Password: "a"},
		{Username: "john", Password: "b"},
	}}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected duplicate user error")
	}
}
