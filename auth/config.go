package auth

import (
	"fmt"

	"github.com/kbukum/webdemo/auth/token"
)

// SeedUser describes one credential-store entry. Passwords are plaintext in
// config because the store is a fixed demo table hashed at process start;
// nothing is persisted.
type SeedUser struct {
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	Email    string `yaml:"email" mapstructure:"email"`
	Disabled bool   `yaml:"disabled" mapstructure:"disabled"`
}

// Config holds all authentication configuration.
type Config struct {
	// Token configures the JWT codec.
	Token token.Config `yaml:"token" mapstructure:"token"`

	// PasswordCost is the bcrypt cost parameter (default: 12).
	PasswordCost int `yaml:"password_cost" mapstructure:"password_cost"`

	// SessionCookie is the cookie name for the session flow.
	SessionCookie string `yaml:"session_cookie" mapstructure:"session_cookie"`

	// Users seeds the in-memory credential store.
	Users []SeedUser `yaml:"users" mapstructure:"users"`

	// StaticTokens maps pre-shared header tokens to usernames.
	StaticTokens map[string]string `yaml:"static_tokens" mapstructure:"static_tokens"`
}

// ApplyDefaults fills in the demo defaults: the fixed user table and static
// token table the endpoints are documented against.
func (c *Config) ApplyDefaults() {
	c.Token.ApplyDefaults()
	if c.PasswordCost == 0 {
		c.PasswordCost = 12
	}
	if c.SessionCookie == "" {
		c.SessionCookie = "web-app-session-id"
	}
	if len(c.Users) == 0 {
		c.Users = []SeedUser{
			{Username: "john", Password: "qwerty", Email: "john@example.com"},
			{Username: "sam", Password: "secret"},
		}
	}
	if len(c.StaticTokens) == 0 {
		c.StaticTokens = map[string]string{
			"6d86d329004d7a5c84ba9493bb44cee77": "admin",
			"41fa8183f208e234291027d8781bb89":   "john",
		}
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Token.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Users))
	for _, u := range c.Users {
		if u.Username == "" {
			return fmt.Errorf("auth: seed user with empty username")
		}
		if seen[u.Username] {
			return fmt.Errorf("auth: duplicate seed user %q", u.Username)
		}
		seen[u.Username] = true
	}
	return nil
}
