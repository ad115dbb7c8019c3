package routes

import (
	"net/http"

	adminapi "gallery-app/internal/api/admin"
	authapi "gallery-app/internal/api/auth"
	"gallery-app/internal/api/categories"
	"gallery-app/internal/api/paintings"
	"gallery-app/internal/app/http/middleware"
	"gallery-app/internal/gallery"
	"gallery-app/internal/platform/metrics"
	"gallery-app/internal/session"

	"github.com/gin-gonic/gin"
)

// Deps are the services the HTTP layer needs.
type Deps struct {
	Store        *gallery.Store
	Sessions     *session.Manager
	LoginLimiter *middleware.IPRateLimiter
	UploadDir    string // served read-only at UploadPrefix when set
	UploadPrefix string
	MaxUpload    int64
	CookieSecure bool
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestLogger(), metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if d.UploadDir != "" {
		r.Static(d.UploadPrefix, d.UploadDir)
	}

	cats := categories.NewHandler(d.Store)
	ps := paintings.NewHandler(d.Store, d.MaxUpload)
	auth := authapi.NewHandler(d.Sessions, d.CookieSecure)
	admin := adminapi.NewHandler(d.Store)

	// Every route sees the caller's session; anonymous is fine for reads.
	public := r.Group("/")
	public.Use(middleware.AuthMiddleware(d.Sessions))

	public.GET("/categories", cats.List)
	public.GET("/paintings", ps.List)
	public.GET("/paintings/:id", ps.Get)

	public.GET("/session", auth.Session)
	public.POST("/login", middleware.RateLimit(d.LoginLimiter), auth.Login)
	public.POST("/logout", auth.Logout)

	// Admin routes. Only stored content is sanitized; credentials are compared as sent.
	authed := public.Group("/")
	authed.Use(middleware.RequireAdmin(), middleware.SanitizeAndCleanInputMiddleware(d.MaxUpload))

	authed.POST("/categories", cats.Create)
	authed.PUT("/categories/:id", cats.Rename)
	authed.DELETE("/categories/:id", cats.Delete)

	authed.POST("/paintings", ps.Create)
	authed.PUT("/paintings/:id", ps.Update)
	authed.DELETE("/paintings/:id", ps.Delete)

	authed.GET("/admin/stats", admin.Stats)
	authed.POST("/admin/repair", admin.Repair)
}
