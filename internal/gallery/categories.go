package gallery

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gallery-app/internal/domain/access"
	domain "gallery-app/internal/domain/gallery"

	"gorm.io/gorm"
)

// ListCategories returns every category ordered case-insensitively by name.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := s.db.WithContext(ctx).Order("name_key ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory adds a category. Names are unique ignoring case.
func (s *Store) CreateCategory(ctx context.Context, state access.State, name string) (domain.Category, error) {
	if err := requireAdmin(state); err != nil {
		return domain.Category{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, domain.Validation("category name is required")
	}

	c := domain.Category{Name: name, NameKey: domain.NameKey(name)}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := categoryByKey(tx, c.NameKey).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.Validation("category %q already exists", name)
		}
		return tx.Create(&c).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Category{}, domain.Validation("category %q already exists", name)
	}
	if err != nil {
		return domain.Category{}, err
	}

	slog.Info("category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

// RenameCategory renames a category and moves every painting that
// referenced the old name to the new one in the same transaction.
func (s *Store) RenameCategory(ctx context.Context, state access.State, id uint, newName string) (domain.Category, error) {
	if err := requireAdmin(state); err != nil {
		return domain.Category{}, err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.Category{}, domain.Validation("category name is required")
	}
	newKey := domain.NameKey(newName)

	var (
		c     domain.Category
		moved int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRows(tx, "UPDATE").First(&c, id).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFound("category %d not found", id)
			}
			return err
		}
		if c.IsDefault() {
			return domain.Validation("%q cannot be renamed", domain.DefaultCategory)
		}
		if newKey == domain.NameKey(domain.DefaultCategory) {
			return domain.Validation("category %q already exists", domain.DefaultCategory)
		}

		var n int64
		if err := categoryByKey(tx, newKey).Where("id <> ?", c.ID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.Validation("category %q already exists", newName)
		}

		oldName := c.Name
		if err := tx.Model(&c).Updates(map[string]interface{}{
			"name":     newName,
			"name_key": newKey,
		}).Error; err != nil {
			return err
		}
		c.Name, c.NameKey = newName, newKey

		res := paintingsInCategory(tx, oldName).Update("category", newName)
		if res.Error != nil {
			return res.Error
		}
		moved = res.RowsAffected
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Category{}, domain.Validation("category %q already exists", newName)
	}
	if err != nil {
		return domain.Category{}, err
	}

	slog.Info("category renamed", "category_id", c.ID, "name", c.Name, "paintings_moved", moved)
	return c, nil
}

// DeleteCategory reassigns the category's paintings to Uncategorized and
// removes it, atomically. It returns how many paintings were reassigned.
func (s *Store) DeleteCategory(ctx context.Context, state access.State, id uint) (int64, error) {
	if err := requireAdmin(state); err != nil {
		return 0, err
	}

	var (
		c          domain.Category
		reassigned int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRows(tx, "UPDATE").First(&c, id).Error; err != nil {
			if isNotFound(err) {
				return domain.NotFound("category %d not found", id)
			}
			return err
		}
		if c.IsDefault() {
			return domain.Validation("%q cannot be deleted", domain.DefaultCategory)
		}

		def, err := ensureDefault(tx)
		if err != nil {
			return err
		}

		res := paintingsInCategory(tx, c.Name).Update("category", def.Name)
		if res.Error != nil {
			return res.Error
		}
		reassigned = res.RowsAffected

		return tx.Delete(&domain.Category{}, c.ID).Error
	})
	if err != nil {
		return 0, err
	}

	slog.Info("category deleted", "category_id", c.ID, "name", c.Name, "paintings_reassigned", reassigned)
	return reassigned, nil
}
