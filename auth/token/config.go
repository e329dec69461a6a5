package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config configures the token codec. Signing is asymmetric: the private key
// signs, the public key verifies, so a deployment holding only the public
// key can validate tokens without being able to mint them.
type Config struct {
	// PrivateKeyPath is the PEM file holding the RSA private key.
	// Optional; a codec without it is verify-only.
	PrivateKeyPath string `yaml:"private_key_path" mapstructure:"private_key_path"`

	// PublicKeyPath is the PEM file holding the RSA public key.
	PublicKeyPath string `yaml:"public_key_path" mapstructure:"public_key_path"`

	// Algorithm is the RSA signing algorithm (default: RS256).
	Algorithm string `yaml:"algorithm" mapstructure:"algorithm"`

	// Issuer is the "iss" claim (optional).
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// AccessTokenTTL is the lifetime of access tokens (default: 15m).
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`

	// RefreshTokenTTL is the lifetime of refresh tokens (default: 30 days).
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" mapstructure:"refresh_token_ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = "RS256"
	}
	if c.PrivateKeyPath == "" {
		c.PrivateKeyPath = "certs/jwt-private.pem"
	}
	if c.PublicKeyPath == "" {
		c.PublicKeyPath = "certs/jwt-public.pem"
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 15 * time.Minute
	}
	if c.RefreshTokenTTL == 0 {
		c.RefreshTokenTTL = 30 * 24 * time.Hour
	}
}

// Validate checks required fields. TTLs must be positive so every issued
// token's expiry lands strictly after its issued-at time.
func (c *Config) Validate() error {
	if c.signingMethod() == nil {
		return errors.New("token: algorithm must be one of RS256, RS384, RS512")
	}
	if c.PublicKeyPath == "" {
		return errors.New("token: public key path is required")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("token: access token TTL must be positive")
	}
	if c.RefreshTokenTTL <= 0 {
		return errors.New("token: refresh token TTL must be positive")
	}
	return nil
}

// signingMethod returns the golang-jwt signing method, or nil if unsupported.
func (c *Config) signingMethod() *jwt.SigningMethodRSA {
	switch c.Algorithm {
	case "RS256":
		return jwt.SigningMethodRS256
	case "RS384":
		return jwt.SigningMethodRS384
	case "RS512":
		return jwt.SigningMethodRS512
	default:
		return nil
	}
}
