package media

import (
	"context"
	"io"
)

// Stored is what a blob store returns for a persisted image.
type Stored struct {
	Reference string `json:"reference"` // opaque handle used for deletion
	URL       string `json:"url"`       // public URL for rendering
}

// BlobStore persists uploaded image bytes.
type BlobStore interface {
	// Put stores r under a new reference. filename is only a hint for the extension.
	Put(ctx context.Context, r io.Reader, filename, contentType string) (Stored, error)

	// Delete releases a reference returned by Put.
	Delete(ctx context.Context, reference string) error
}
