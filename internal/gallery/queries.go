package gallery

import (
	domain "gallery-app/internal/domain/gallery"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockRows adds a row lock on dialects that support it. SQLite serializes
// writers on its own and rejects FOR UPDATE syntax.
func lockRows(tx *gorm.DB, strength string) *gorm.DB {
	if tx.Dialector.Name() != "postgres" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: strength})
}

func categoryByKey(tx *gorm.DB, key string) *gorm.DB {
	return tx.Model(&domain.Category{}).Where("name_key = ?", key)
}

// paintingsInCategory matches the canonical category name exactly. Writes
// always store the canonical name and Repair re-cases older rows, so no
// SQL case folding is needed (SQLite's LOWER only folds ASCII).
func paintingsInCategory(tx *gorm.DB, name string) *gorm.DB {
	return tx.Model(&domain.Painting{}).Where("category = ?", name)
}

// findCategory resolves a name case-insensitively, holding a share lock
// so a concurrent delete cannot orphan the row being written.
func findCategory(tx *gorm.DB, name string) (domain.Category, error) {
	var c domain.Category
	err := lockRows(categoryByKey(tx, domain.NameKey(name)), "SHARE").First(&c).Error
	return c, err
}

// ensureDefault returns the Uncategorized row, creating it if missing.
func ensureDefault(tx *gorm.DB) (domain.Category, error) {
	var c domain.Category
	err := tx.Where(domain.Category{NameKey: domain.NameKey(domain.DefaultCategory)}).
		Attrs(domain.Category{Name: domain.DefaultCategory}).
		FirstOrCreate(&c).Error
	return c, err
}
