package gallery

import (
	"strings"
	"time"
)

// DefaultCategory is the protected fallback every painting resolves to.
const DefaultCategory = "Uncategorized"

// AllCategories is the list filter value meaning "no filter".
const AllCategories = "All"

type Category struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	NameKey string `gorm:"column:name_key;not null;uniqueIndex:idx_categories_name_key" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDefault reports whether c is the protected Uncategorized category.
func (c Category) IsDefault() bool {
	return c.NameKey == NameKey(DefaultCategory)
}

// NameKey is the case-insensitive identity of a category name.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsAllFilter reports whether a list filter means "every category".
func IsAllFilter(filter string) bool {
	f := strings.TrimSpace(filter)
	return f == "" || strings.EqualFold(f, AllCategories)
}
