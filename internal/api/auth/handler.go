package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gallery-app/internal/app/http/middleware"
	"gallery-app/internal/domain/access"
	"gallery-app/internal/platform/metrics"
	"gallery-app/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	sessions     *session.Manager
	cookieSecure bool
}

func NewHandler(sessions *session.Manager, cookieSecure bool) *Handler {
	return &Handler{sessions: sessions, cookieSecure: cookieSecure}
}

type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	State         string     `json:"state"`
	Capabilities  []string   `json:"capabilities"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// POST /login
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required", "code": "VALIDATION"})
		return
	}

	token, s, err := h.sessions.Login(c.Request.Context(), input.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredential) {
			metrics.LoginFailures.Inc()
			slog.Warn("admin login rejected", "ip", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "code": "UNAUTHORIZED"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create session", "code": "INTERNAL"})
		return
	}

	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, maxAge, "/", "", h.cookieSecure, true)

	slog.Info("admin logged in", "session_id", s.ID, "ip", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": s.ExpiresAt})
}

// POST /logout
func (h *Handler) Logout(c *gin.Context) {
	if s, ok := middleware.CurrentSession(c); ok {
		if err := h.sessions.Logout(c.Request.Context(), s); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not end session", "code": "INTERNAL"})
			return
		}
		slog.Info("admin logged out", "session_id", s.ID)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /session
func (h *Handler) Session(c *gin.Context) {
	var expiresAt *time.Time
	if s, ok := middleware.CurrentSession(c); ok {
		expiresAt = &s.ExpiresAt
	}
	policy := access.ComputePolicy(time.Now(), expiresAt)

	c.JSON(http.StatusOK, SessionResponse{
		Authenticated: policy.State.Authenticated(),
		State:         string(policy.State),
		Capabilities:  policy.Capabilities,
		ExpiresAt:     policy.ExpiresAt,
	})
}
