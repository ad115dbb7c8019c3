// Package testkit holds shared helpers for package tests.
package testkit

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"gallery-app/database"
	"gallery-app/internal/domain/media"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PNG is the smallest valid PNG image; content sniffing accepts it.
var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

// OpenDB returns a migrated SQLite database in a temp dir. A single
// connection keeps concurrent test goroutines from hitting SQLITE_BUSY.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gallery.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// OpenPooledDB opens a temp SQLite file through database.Open, so tests
// run on the production DSN (WAL, busy timeout) with several connections.
func OpenPooledDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "pooled.db"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// ErrBlobDown is what FailingBlobs returns.
var ErrBlobDown = errors.New("blob store unavailable")

// FailingBlobs wraps a BlobStore and fails the operations that are switched on.
type FailingBlobs struct {
	media.BlobStore
	FailPut    bool
	FailDelete bool
}

func (f *FailingBlobs) Put(ctx context.Context, r io.Reader, filename, contentType string) (media.Stored, error) {
	if f.FailPut {
		return media.Stored{}, ErrBlobDown
	}
	return f.BlobStore.Put(ctx, r, filename, contentType)
}

func (f *FailingBlobs) Delete(ctx context.Context, reference string) error {
	if f.FailDelete {
		return ErrBlobDown
	}
	return f.BlobStore.Delete(ctx, reference)
}
