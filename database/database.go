package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gallery-app/internal/domain/gallery"
	"gallery-app/internal/platform/logging"
	"gallery-app/internal/session"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured database and migrates every model.
// driver is "postgres" or "sqlite".
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("DB_URL not set")
		}
		dialector = postgres.Open(dsn)
	case "sqlite":
		if err := ensureDirForSQLite(dsn); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(sqliteDSN(dsn))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.GormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	slog.Info("✅ Connected and migrated successfully", "driver", driver)
	return db, nil
}

// Migrate auto-migrates all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&gallery.Category{},
		&gallery.Painting{},
		&session.Revocation{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// sqliteDSN turns on foreign keys, WAL and a busy timeout so readers on
// other connections keep working during a write and writers wait on the
// write lock instead of failing.
func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "gallery.db"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
}

// ensureDirForSQLite creates the parent dir of a SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
