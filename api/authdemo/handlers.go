// Package authdemo exposes the teaching endpoints for HTTP Basic, static
// header token, and cookie session authentication.
package authdemo

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/webdemo/auth"
	apperrors "github.com/kbukum/webdemo/errors"
	"github.com/kbukum/webdemo/logger"
	"github.com/kbukum/webdemo/observability"
	"github.com/kbukum/webdemo/server"
	"github.com/kbukum/webdemo/server/middleware"
	"github.com/kbukum/webdemo/util"
)

// Handler serves the /demo-auth route group.
type Handler struct {
	basic       *auth.BasicStrategy
	staticToken *auth.StaticTokenStrategy
	session     *auth.SessionStrategy
	sessions    *auth.SessionStore
	log         *logger.Logger
	metrics     *observability.AuthMetrics
}

// New creates a Handler, resolving the Basic, static-token, and session
// strategies from the registry. metrics may be nil when observability is
// disabled.
func New(
	reg *auth.Registry,
	sessions *auth.SessionStore,
	log *logger.Logger,
	metrics *observability.AuthMetrics,
) *Handler {
	return &Handler{
		basic:       reg.MustGet("basic").(*auth.BasicStrategy),
		staticToken: reg.MustGet("static-token").(*auth.StaticTokenStrategy),
		session:     reg.MustGet("session").(*auth.SessionStrategy),
		sessions:    sessions,
		log:         log.WithComponent("authdemo"),
		metrics:     metrics,
	}
}

// Register mounts the routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	demo := rg.Group("/demo-auth")
	demo.GET("/", h.hello)
	demo.GET("/basic-auth/", h.basicAuthEcho)
	demo.GET("/basic-auth-username/", middleware.Authenticate(h.basic), h.basicAuthUsername)
	demo.GET("/some-http-header-auth/", middleware.Authenticate(h.staticToken), h.headerAuthUsername)
	demo.POST("/login-cookie/", h.loginCookie)
	demo.GET("/check-cookie/", middleware.Authenticate(h.session), h.checkCookie)
	demo.POST("/logout-cookie/", h.logoutCookie)
}

func (h *Handler) hello(c *gin.Context) {
	c.JSON(http.StatusOK, "Hello, world!!!")
}

// basicAuthEcho returns the presented Basic credentials without verifying
// them against the credential store. Teaching endpoint only.
func (h *Handler) basicAuthEcho(c *gin.Context) {
	username, pass, ok := c.Request.BasicAuth()
	if !ok {
		c.Header("WWW-Authenticate", h.basic.Challenge())
		server.AbortWithError(c, apperrors.InvalidCredentials())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Hi!",
		"username": username,
		"password": pass,
	})
}

func (h *Handler) basicAuthUsername(c *gin.Context) {
	principal, _ := middleware.Principal(c)
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Hi %s!", principal.Username),
		"username": principal.Username,
	})
}

func (h *Handler) headerAuthUsername(c *gin.Context) {
	principal, _ := middleware.Principal(c)
	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Hi %s!", principal.Username),
		"username": principal.Username,
	})
}

// loginCookie runs the Basic flow and mints a cookie session on success.
func (h *Handler) loginCookie(c *gin.Context) {
	principal, err := h.basic.Resolve(c.Request)
	if err != nil {
		if h.metrics != nil {
			if appErr, ok := apperrors.AsAppError(err); ok {
				h.metrics.RecordAuthFailure(c.Request.Context(), h.session.Name(), string(appErr.Code))
			}
		}
		if apperrors.HasCode(err, apperrors.ErrCodeInvalidCredentials) {
			c.Header("WWW-Authenticate", h.basic.Challenge())
		}
		server.AbortWithError(c, err)
		return
	}

	sessionID, err := h.sessions.Create(principal.Username)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	c.SetCookie(h.session.CookieName(), sessionID, 0, "/", "", false, true)
	if h.metrics != nil {
		h.metrics.SessionOpened(c.Request.Context())
	}
	h.log.Info("Session created", map[string]interface{}{
		"username": principal.Username,
		"session":  util.MaskSecret(sessionID, 8),
	})
	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}

func (h *Handler) checkCookie(c *gin.Context) {
	session, err := h.session.Lookup(c.Request)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username":     session.Username,
		"logged_in_at": session.LoginAt.Unix(),
	})
}

// logoutCookie deletes the session and expires the cookie.
func (h *Handler) logoutCookie(c *gin.Context) {
	cookie, err := c.Cookie(h.session.CookieName())
	if err != nil {
		server.RespondWithError(c, apperrors.SessionNotFound())
		return
	}
	if _, err := h.sessions.Get(cookie); err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.sessions.Delete(cookie)
	c.SetCookie(h.session.CookieName(), "", -1, "/", "", false, true)
	if h.metrics != nil {
		h.metrics.SessionClosed(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"result": "logged out"})
}
