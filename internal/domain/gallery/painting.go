package gallery

import "time"

type Painting struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title       string `gorm:"not null;default:''" json:"title"`
	Date        string `gorm:"not null;default:'';index" json:"date"` // free-form, sorted as text
	Materials   string `gorm:"not null;default:''" json:"materials"`
	Location    string `gorm:"not null;default:''" json:"location"`
	Description string `gorm:"not null;default:''" json:"description"`

	// Category holds a category name, not an id.
	Category string `gorm:"not null;index" json:"category"`

	ImageReference string `gorm:"column:image_reference;not null" json:"image_reference"`
	ImageURL       string `gorm:"column:image_url;not null;default:''" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaintingFields are the text fields supplied when a painting is created.
type PaintingFields struct {
	Title       string
	Date        string
	Materials   string
	Location    string
	Description string
	Category    string
}

// PaintingPatch carries the subset of fields an update touches; nil means unchanged.
type PaintingPatch struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Materials   *string `json:"materials"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// Empty reports whether the patch changes nothing.
func (p PaintingPatch) Empty() bool {
	return p.Title == nil && p.Date == nil && p.Materials == nil &&
		p.Location == nil && p.Description == nil && p.Category == nil
}
