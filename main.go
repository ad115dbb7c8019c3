package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gallery-app/config"
	"gallery-app/database"
	routes "gallery-app/internal/app/http"
	"gallery-app/internal/app/http/middleware"
	"gallery-app/internal/gallery"
	"gallery-app/internal/infra/blob"
	"gallery-app/internal/platform/logging"
	"gallery-app/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutdown complete.")
}

func run(ctx context.Context, cfg config.Config) error {
	db, err := database.Open(cfg.DBDriver, cfg.DBURL)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	blobs, err := blob.NewDisk(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		return err
	}

	store, err := gallery.New(ctx, db, blobs, cfg.BlobTimeout)
	if err != nil {
		return err
	}

	sessions, err := session.NewManager(db, session.Config{
		AdminPassword:     cfg.AdminPassword,
		AdminPasswordHash: cfg.AdminPasswordHash,
		Secret:            []byte(cfg.JWTSecret),
		TTL:               cfg.SessionTTL,
	})
	if err != nil {
		return err
	}
	go sessions.RunJanitor(ctx, time.Hour)

	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = cfg.MaxUploadBytes()

	// CORS must be in place before routes are registered.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Store:        store,
		Sessions:     sessions,
		LoginLimiter: middleware.NewIPRateLimiter(cfg.LoginRate),
		UploadDir:    blobs.Dir(),
		UploadPrefix: cfg.UploadURLPrefix,
		MaxUpload:    cfg.MaxUploadBytes(),
		CookieSecure: cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("gallery listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
