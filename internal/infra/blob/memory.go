package blob

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gallery-app/internal/domain/media"

	"github.com/google/uuid"
)

// Memory keeps blobs in process memory. Used for tests and throwaway runs.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

var _ media.BlobStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{blobs: map[string][]byte{}}
}

func (m *Memory) Put(ctx context.Context, r io.Reader, filename, contentType string) (media.Stored, error) {
	if err := ctx.Err(); err != nil {
		return media.Stored{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return media.Stored{}, err
	}
	ref := newReference(uuid.NewString(), filename, contentType)

	m.mu.Lock()
	m.blobs[ref] = data
	m.mu.Unlock()

	return media.Stored{Reference: ref, URL: "/uploads/" + ref}, nil
}

func (m *Memory) Delete(ctx context.Context, reference string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[reference]; !ok {
		return fmt.Errorf("blob %q not found", reference)
	}
	delete(m.blobs, reference)
	return nil
}

// Has reports whether reference is currently stored.
func (m *Memory) Has(reference string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[reference]
	return ok
}

// Len is the number of stored blobs.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}
