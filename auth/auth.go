// Package auth implements the four authentication schemes webdemo exposes:
// HTTP Basic credentials, a static pre-shared header token, cookie-backed
// sessions, and JWT access/refresh tokens.
//
// Each scheme is an independent Strategy resolving an http.Request to a
// Principal. Strategies share the credential store but no mutable state;
// routes pick exactly one strategy via the middleware.
package auth

import "net/http"

// Principal is the authenticated identity resolved from a credential or
// token for the current request. The username is the sole external
// identifier across all schemes.
type Principal struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Strategy resolves a request to a principal or fails with an
// *errors.AppError (401 for bad credentials/tokens, 403 for disabled
// accounts). Failure is terminal for the request; no strategy retries.
type Strategy interface {
	// Name identifies the strategy in the registry and in logs.
	Name() string

	// Resolve authenticates the request.
	Resolve(r *http.Request) (Principal, error)
}

// Challenger is implemented by strategies that send a WWW-Authenticate
// challenge alongside a 401 response (HTTP Basic).
type Challenger interface {
	Challenge() string
}
