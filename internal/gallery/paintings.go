package gallery

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"gallery-app/internal/domain/access"
	domain "gallery-app/internal/domain/gallery"
	"gallery-app/internal/platform/metrics"

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"
)

// Image is an uploaded painting image.
type Image struct {
	Filename string
	Data     []byte
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ListPaintings returns paintings newest-first by their date text, then by
// insertion. Dates are free-form, so the order is plain string order.
// An empty or "All" filter returns every painting; a filter naming no
// category returns none.
func (s *Store) ListPaintings(ctx context.Context, filter string) ([]domain.Painting, error) {
	db := s.db.WithContext(ctx)
	q := db.Model(&domain.Painting{})
	if !domain.IsAllFilter(filter) {
		var c domain.Category
		err := categoryByKey(db, domain.NameKey(filter)).First(&c).Error
		if isNotFound(err) {
			return []domain.Painting{}, nil
		}
		if err != nil {
			return nil, err
		}
		q = paintingsInCategory(q, c.Name)
	}

	var out []domain.Painting
	if err := q.Order("date DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetPainting(ctx context.Context, id uint) (domain.Painting, error) {
	var p domain.Painting
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if isNotFound(err) {
			return p, domain.NotFound("painting %d not found", id)
		}
		return p, err
	}
	return p, nil
}

// CreatePainting stores the image, then inserts the row. A blob failure
// aborts before any row exists; a row failure releases the blob.
// Unknown or empty categories fall back to Uncategorized.
func (s *Store) CreatePainting(ctx context.Context, state access.State, f domain.PaintingFields, img *Image) (domain.Painting, error) {
	if err := requireAdmin(state); err != nil {
		return domain.Painting{}, err
	}
	if img == nil || len(img.Data) == 0 {
		return domain.Painting{}, domain.Validation("image is required")
	}
	mt := mimetype.Detect(img.Data)
	if !allowedImageTypes[mt.String()] {
		return domain.Painting{}, domain.Validation("unsupported image type %s", mt.String())
	}

	bctx, cancel := context.WithTimeout(ctx, s.blobTimeout)
	stored, err := s.blobs.Put(bctx, bytes.NewReader(img.Data), img.Filename, mt.String())
	cancel()
	if err != nil {
		metrics.BlobFailures.WithLabelValues("put").Inc()
		slog.Error("blob upload failed", "filename", img.Filename, "error", err)
		return domain.Painting{}, domain.BlobStore("store image", err)
	}

	p := domain.Painting{
		Title:          strings.TrimSpace(f.Title),
		Date:           strings.TrimSpace(f.Date),
		Materials:      strings.TrimSpace(f.Materials),
		Location:       strings.TrimSpace(f.Location),
		Description:    strings.TrimSpace(f.Description),
		ImageReference: stored.Reference,
		ImageURL:       stored.URL,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		name, err := resolveCategory(tx, f.Category, true)
		if err != nil {
			return err
		}
		p.Category = name
		return tx.Create(&p).Error
	})
	if err != nil {
		s.releaseBlob(ctx, 0, stored.Reference)
		return domain.Painting{}, err
	}

	slog.Info("painting created", "painting_id", p.ID, "category", p.Category, "image", p.ImageReference)
	return p, nil
}

// UpdatePainting applies the non-nil fields of patch. The image never changes.
func (s *Store) UpdatePainting(ctx context.Context, state access.State, id uint, patch domain.PaintingPatch) (domain.Painting, error) {
	if err := requireAdmin(state); err != nil {
		return domain.Painting{}, err
	}

	var p domain.Painting
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFound("painting %d not found", id)
			}
			return err
		}
		if patch.Empty() {
			return nil
		}

		updates := map[string]interface{}{}
		setText := func(col string, v *string) {
			if v != nil {
				updates[col] = strings.TrimSpace(*v)
			}
		}
		setText("title", patch.Title)
		setText("date", patch.Date)
		setText("materials", patch.Materials)
		setText("location", patch.Location)
		setText("description", patch.Description)

		if patch.Category != nil {
			name, err := resolveCategory(tx, *patch.Category, false)
			if err != nil {
				return err
			}
			updates["category"] = name
		}

		if err := tx.Model(&domain.Painting{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&p, p.ID).Error
	})
	if err != nil {
		return domain.Painting{}, err
	}

	slog.Info("painting updated", "painting_id", p.ID)
	return p, nil
}

// DeletePainting asks the blob store to drop the image and removes the
// row. Blob failures are logged and do not stop the delete.
func (s *Store) DeletePainting(ctx context.Context, state access.State, id uint) error {
	if err := requireAdmin(state); err != nil {
		return err
	}

	p, err := s.GetPainting(ctx, id)
	if err != nil {
		return err
	}

	s.releaseBlob(ctx, p.ID, p.ImageReference)

	res := s.db.WithContext(ctx).Delete(&domain.Painting{}, p.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("painting %d not found", id)
	}

	slog.Info("painting deleted", "painting_id", p.ID)
	return nil
}

// releaseBlob deletes a blob, logging instead of failing.
func (s *Store) releaseBlob(ctx context.Context, paintingID uint, ref string) {
	bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.blobTimeout)
	defer cancel()

	if err := s.blobs.Delete(bctx, ref); err != nil {
		metrics.BlobFailures.WithLabelValues("delete").Inc()
		slog.Warn("blob delete failed; image orphaned", "painting_id", paintingID, "image", ref, "error", err)
	}
}

// resolveCategory maps a submitted category to its canonical stored name.
// Empty means Uncategorized. Unknown names fall back to Uncategorized when
// fallback is set and are a validation error otherwise.
func resolveCategory(tx *gorm.DB, name string, fallback bool) (string, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		c, err := findCategory(tx, name)
		if err == nil {
			return c.Name, nil
		}
		if !isNotFound(err) {
			return "", err
		}
		if !fallback {
			return "", domain.Validation("category %q does not exist", name)
		}
	}

	def, err := ensureDefault(tx)
	if err != nil {
		return "", err
	}
	return def.Name, nil
}
