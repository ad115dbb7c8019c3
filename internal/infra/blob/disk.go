package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"gallery-app/internal/domain/media"

	"github.com/google/uuid"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

var (
	validRef = regexp.MustCompile(`^[a-z0-9-]{1,96}\.[a-z0-9]{1,5}$`)
	validExt = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)
)

// ErrInvalidReference is returned for references Disk never produced.
var ErrInvalidReference = errors.New("invalid blob reference")

// Disk stores images as files in one directory, served under urlPrefix.
type Disk struct {
	dir       string
	urlPrefix string
}

var _ media.BlobStore = (*Disk)(nil)

// NewDisk creates dir if needed.
func NewDisk(dir, urlPrefix string) (*Disk, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &Disk{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Dir is the directory files are written to.
func (d *Disk) Dir() string { return d.dir }

func (d *Disk) Put(ctx context.Context, r io.Reader, filename, contentType string) (media.Stored, error) {
	if err := ctx.Err(); err != nil {
		return media.Stored{}, err
	}

	ref := newReference(uuid.NewString(), filename, contentType)
	tmp, err := os.CreateTemp(d.dir, ".upload-*")
	if err != nil {
		return media.Stored{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	hasher := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, hasher), &ctxReader{ctx: ctx, r: r})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return media.Stored{}, fmt.Errorf("write blob: %w", err)
	}
	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		return media.Stored{}, fmt.Errorf("chmod blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(d.dir, ref)); err != nil {
		return media.Stored{}, fmt.Errorf("commit blob: %w", err)
	}

	slog.Debug("blob stored", "reference", ref, "bytes", n, "sha256", hex.EncodeToString(hasher.Sum(nil)))
	return media.Stored{Reference: ref, URL: path.Join(d.urlPrefix, ref)}, nil
}

func (d *Disk) Delete(ctx context.Context, reference string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validRef.MatchString(reference) {
		return ErrInvalidReference
	}
	if err := os.Remove(filepath.Join(d.dir, reference)); err != nil {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

func extensionFor(filename, contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if validExt.MatchString(ext) {
		return ext
	}
	return ".bin"
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
