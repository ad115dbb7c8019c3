package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the gallery service.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`

	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite"` // "sqlite" | "postgres"
	DBURL    string `env:"DB_URL" envDefault:"gallery.db"`

	AdminPassword     string        `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `env:"JWT_SECRET,required"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CookieSecure      bool          `env:"COOKIE_SECURE" envDefault:"false"`
	LoginRate         int           `env:"LOGIN_RATE" envDefault:"10"` // attempts per minute per IP

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`

	UploadDir       string        `env:"UPLOAD_DIR" envDefault:"uploads"`
	UploadURLPrefix string        `env:"UPLOAD_URL_PREFIX" envDefault:"/uploads"`
	MaxUploadMB     int64         `env:"MAX_UPLOAD_MB" envDefault:"10"`
	BlobTimeout     time.Duration `env:"BLOB_TIMEOUT" envDefault:"15s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and the process environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found. Using system environment variables.")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c Config) Validate() error {
	if strings.TrimSpace(c.AdminPassword) == "" && strings.TrimSpace(c.AdminPasswordHash) == "" {
		return fmt.Errorf("one of ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.BlobTimeout <= 0 {
		return fmt.Errorf("BLOB_TIMEOUT must be positive")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

// MaxUploadBytes is the multipart memory/size limit for painting uploads.
func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
