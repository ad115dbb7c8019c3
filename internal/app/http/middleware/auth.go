package middleware

import (
	"net/http"
	"strings"

	"gallery-app/internal/domain/access"
	"gallery-app/internal/session"

	"github.com/gin-gonic/gin"
)

// CookieName carries the session token for browser clients.
const CookieName = "gallery_session"

const (
	keyState   = "access_state"
	keySession = "session"
)

// AuthMiddleware resolves the caller's session from the cookie or a Bearer
// header. Missing or bad tokens leave the caller anonymous; RequireAdmin
// decides whether that is acceptable.
func AuthMiddleware(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(keyState, access.StateAnonymous)

		token := TokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		s, err := m.Validate(c.Request.Context(), token)
		if err == nil {
			c.Set(keyState, s.State)
			c.Set(keySession, s)
		}
		c.Next()
	}
}

// RequireAdmin aborts with 401 unless AuthMiddleware found an admin session.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !State(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Admin session required",
				"code":  "UNAUTHORIZED",
			})
			return
		}
		c.Next()
	}
}

// TokenFromRequest prefers the Authorization header over the cookie.
func TokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if v, err := c.Cookie(CookieName); err == nil {
		return v
	}
	return ""
}

// State is the caller's access state; anonymous when unset.
func State(c *gin.Context) access.State {
	if v, ok := c.Get(keyState); ok {
		if s, ok := v.(access.State); ok {
			return s
		}
	}
	return access.StateAnonymous
}

// CurrentSession returns the validated session, if any.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(keySession)
	if !ok {
		return session.Session{}, false
	}
	s, ok := v.(session.Session)
	return s, ok
}
