package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/webdemo/auth"
	"github.com/kbukum/webdemo/auth/authctx"
	apperrors "github.com/kbukum/webdemo/errors"
)

// Context keys set by Authenticate for convenient handler access.
const (
	PrincipalKey = "principal"
	UsernameKey  = "username"
)

// Authenticate returns a Gin middleware that resolves the caller's identity
// using the given strategy. On success the Principal is stored both in the
// request context (via authctx) and in the Gin context. On failure the chain
// is aborted with the structured error body; strategies that implement
// auth.Challenger also get a WWW-Authenticate header on 401 responses.
func Authenticate(strategy auth.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := strategy.Resolve(c.Request)
		if err != nil {
			abortUnauthenticated(c, strategy, err)
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), principal))
		c.Set(PrincipalKey, principal)
		c.Set(UsernameKey, principal.Username)
		c.Next()
	}
}

// Principal retrieves the authenticated Principal stored by Authenticate.
func Principal(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func abortUnauthenticated(c *gin.Context, strategy auth.Strategy, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	if appErr.HTTPStatus == http.StatusUnauthorized {
		if ch, ok := strategy.(auth.Challenger); ok {
			c.Header("WWW-Authenticate", ch.Challenge())
		}
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
