// Package jwtauth exposes the JWT login, identity, and refresh endpoints.
package jwtauth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/webdemo/auth"
	apperrors "github.com/kbukum/webdemo/errors"
	"github.com/kbukum/webdemo/logger"
	"github.com/kbukum/webdemo/observability"
	"github.com/kbukum/webdemo/server"
)

// Handler serves the /jwt route group.
type Handler struct {
	jwt     *auth.JWTStrategy
	log     *logger.Logger
	metrics *observability.AuthMetrics
}

// New creates a Handler, resolving the JWT strategy from the registry.
// metrics may be nil when observability is disabled.
func New(reg *auth.Registry, log *logger.Logger, metrics *observability.AuthMetrics) *Handler {
	return &Handler{
		jwt:     reg.MustGet("jwt").(*auth.JWTStrategy),
		log:     log.WithComponent("jwtauth"),
		metrics: metrics,
	}
}

// Register mounts the routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	jwt := rg.Group("/jwt")
	jwt.POST("/login", h.login)
	jwt.GET("/users/me/", h.me)
	jwt.POST("/refresh", h.refresh)
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	start := time.Now()

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		server.RespondWithError(c, apperrors.Validation("username and password are required"))
		return
	}

	pair, err := h.jwt.Login(form.Username, form.Password)
	if err != nil {
		h.recordLogin(c, "failure", start)
		h.log.Warn("Login failed", map[string]interface{}{
			"username": form.Username,
		})
		server.RespondWithError(c, err)
		return
	}

	h.recordLogin(c, "success", start)
	if h.metrics != nil {
		h.metrics.RecordTokenIssued(c.Request.Context(), "access")
		h.metrics.RecordTokenIssued(c.Request.Context(), "refresh")
	}
	h.log.Info("User logged in", map[string]interface{}{
		"username": form.Username,
	})
	c.JSON(http.StatusOK, pair)
}

func (h *Handler) me(c *gin.Context) {
	principal, claims, err := h.jwt.ResolveClaims(c.Request)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	var loginInAt int64
	if claims.IssuedAt != nil {
		loginInAt = claims.IssuedAt.Unix()
	}
	c.JSON(http.StatusOK, gin.H{
		"username":    principal.Username,
		"email":       principal.Email,
		"login_in_at": loginInAt,
	})
}

func (h *Handler) refresh(c *gin.Context) {
	pair, err := h.jwt.Refresh(c.Request)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTokenIssued(c.Request.Context(), "access")
	}
	c.JSON(http.StatusOK, pair)
}

func (h *Handler) recordLogin(c *gin.Context, outcome string, start time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordLogin(c.Request.Context(), h.jwt.Name(), outcome, time.Since(start))
}
