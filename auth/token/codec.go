package token

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is wrapped by every Verify failure: bad signature,
// algorithm mismatch, malformed token, or expired token.
var ErrInvalidToken = errors.New("token: invalid token")

// ErrSigningKeyMissing is returned by Issue on a verify-only codec.
var ErrSigningKeyMissing = errors.New("token: codec has no signing key")

// Codec issues and verifies signed tokens.
type Codec struct {
	method     *jwt.SigningMethodRSA
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	cfg        Config
	now        func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock overrides the time source. Used by tests to issue tokens in the past.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec creates a codec from PEM key files named in cfg. The private key
// is optional: without it the codec can verify tokens but not issue them.
func NewCodec(cfg *Config, opts ...Option) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var priv *rsa.PrivateKey
	if cfg.PrivateKeyPath != "" {
		pem, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("token: read private key: %w", err)
		}
		priv, err = jwt.ParseRSAPrivateKeyFromPEM(pem)
		if err != nil {
			return nil, fmt.Errorf("token: parse private key: %w", err)
		}
	}

	pem, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("token: read public key: %w", err)
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("token: parse public key: %w", err)
	}

	return NewCodecFromKeys(cfg, priv, pub, opts...)
}

// NewCodecFromKeys creates a codec from in-memory keys. priv may be nil for
// a verify-only codec.
func NewCodecFromKeys(cfg *Config, priv *rsa.PrivateKey, pub *rsa.PublicKey, opts ...Option) (*Codec, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pub == nil {
		return nil, errors.New("token: public key is required")
	}

	c := &Codec{
		method:     cfg.signingMethod(),
		privateKey: priv,
		publicKey:  pub,
		cfg:        *cfg,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CanSign reports whether the codec holds a signing key.
func (c *Codec) CanSign() bool { return c.privateKey != nil }

// AccessTokenTTL returns the configured access token lifetime.
func (c *Codec) AccessTokenTTL() time.Duration { return c.cfg.AccessTokenTTL }

// IssueAccess signs an access token for the given identity.
func (c *Codec) IssueAccess(username, email string) (string, error) {
	return c.issue(username, email, TypeAccess, c.cfg.AccessTokenTTL)
}

// IssueRefresh signs a refresh token for the given identity.
func (c *Codec) IssueRefresh(username, email string) (string, error) {
	return c.issue(username, email, TypeRefresh, c.cfg.RefreshTokenTTL)
}

func (c *Codec) issue(username, email string, typ Type, ttl time.Duration) (string, error) {
	if c.privateKey == nil {
		return "", ErrSigningKeyMissing
	}

	now := c.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    c.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: username,
		Email:    email,
		Type:     typ,
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.privateKey)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature against the public key and the expiry against
// the current time. Any failure wraps ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc, c.parserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (c *Codec) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != c.method.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
	}
	return c.publicKey, nil
}

func (c *Codec) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	}
	if c.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.cfg.Issuer))
	}
	return opts
}
