package database

import (
	"path/filepath"
	"testing"

	"gallery-app/internal/domain/gallery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesDirAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gallery.db")

	db, err := Open("sqlite", path)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, db.Migrator().HasTable(&gallery.Category{}))
	assert.True(t, db.Migrator().HasTable(&gallery.Painting{}))
	assert.True(t, db.Migrator().HasIndex(&gallery.Category{}, "idx_categories_name_key"))

	var mode string
	require.NoError(t, db.Raw("PRAGMA journal_mode").Scan(&mode).Error)
	assert.Equal(t, "wal", mode)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", sqliteDSN("a.db"))
	assert.Equal(t, "file:a.db?cache=shared&_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", sqliteDSN("file:a.db?cache=shared"))
}
