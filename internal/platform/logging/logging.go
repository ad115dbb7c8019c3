// Package logging configures colored structured logging with tint.
//
// LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	gormlogger "gorm.io/gorm/logger"
)

// Setup installs a tint handler as the slog default at the given level name.
func Setup(level string) {
	SetupWithWriter(os.Stderr, ParseLevel(level))
}

// SetupWithWriter installs a tint handler writing to w.
func SetupWithWriter(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  level == slog.LevelDebug,
		}),
	))
}

// ParseLevel maps a LOG_LEVEL value to a slog level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GormLogger routes gorm's slow-query and error output through the default slog handler.
func GormLogger() gormlogger.Interface {
	return gormlogger.New(
		log.New(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn).Writer(), "", 0),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
