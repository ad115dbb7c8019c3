package gallery

import (
	"context"
	"log/slog"

	domain "gallery-app/internal/domain/gallery"

	"gorm.io/gorm"
)

// RepairReport counts what Repair changed.
type RepairReport struct {
	Recased    int64 // references fixed to the canonical case of an existing category
	Reassigned int64 // references to missing categories moved to Uncategorized
}

// Repair restores the category invariant over existing data: the default
// category exists under its exact name, and every painting points at an
// existing category. Data written by older non-cascading renames is the
// usual source of orphans.
func (s *Store) Repair(ctx context.Context) (RepairReport, error) {
	var report RepairReport
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		def, err := ensureDefault(tx)
		if err != nil {
			return err
		}
		if def.Name != domain.DefaultCategory {
			if err := tx.Model(&def).Update("name", domain.DefaultCategory).Error; err != nil {
				return err
			}
		}

		var cats []domain.Category
		if err := tx.Find(&cats).Error; err != nil {
			return err
		}
		canonical := make(map[string]string, len(cats))
		for _, c := range cats {
			canonical[c.NameKey] = c.Name
		}

		var used []string
		if err := tx.Model(&domain.Painting{}).Distinct().Pluck("category", &used).Error; err != nil {
			return err
		}

		for _, name := range used {
			want, ok := canonical[domain.NameKey(name)]
			if ok && want == name {
				continue
			}
			if !ok {
				want = domain.DefaultCategory
			}

			res := tx.Model(&domain.Painting{}).Where("category = ?", name).Update("category", want)
			if res.Error != nil {
				return res.Error
			}
			if ok {
				report.Recased += res.RowsAffected
			} else {
				report.Reassigned += res.RowsAffected
			}
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	if report.Recased > 0 || report.Reassigned > 0 {
		slog.Warn("repaired painting categories", "recased", report.Recased, "reassigned", report.Reassigned)
	}
	return report, nil
}
