// Package gallery owns the category and painting collections and keeps
// every painting's category pointing at an existing category name.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gallery-app/internal/domain/access"
	domain "gallery-app/internal/domain/gallery"
	"gallery-app/internal/domain/media"

	"gorm.io/gorm"
)

const defaultBlobTimeout = 15 * time.Second

// Store is safe for concurrent use; it keeps no per-request state.
type Store struct {
	db          *gorm.DB
	blobs       media.BlobStore
	blobTimeout time.Duration
}

// New builds a Store and runs Repair so the default category exists
// before the first request.
func New(ctx context.Context, db *gorm.DB, blobs media.BlobStore, blobTimeout time.Duration) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store is nil")
	}
	if blobTimeout <= 0 {
		blobTimeout = defaultBlobTimeout
	}

	s := &Store{db: db, blobs: blobs, blobTimeout: blobTimeout}
	if _, err := s.Repair(ctx); err != nil {
		return nil, fmt.Errorf("repair gallery: %w", err)
	}
	return s, nil
}

func requireAdmin(state access.State) error {
	if !state.Authenticated() {
		return domain.Unauthorized()
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
