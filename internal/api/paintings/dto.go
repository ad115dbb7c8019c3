package paintings

import (
	"time"

	domain "gallery-app/internal/domain/gallery"
)

type PaintingDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Materials   string    `json:"materials"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageRef    string    `json:"image_reference"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func toDTO(p domain.Painting) PaintingDTO {
	return PaintingDTO{
		ID:          p.ID,
		Title:       p.Title,
		Date:        p.Date,
		Materials:   p.Materials,
		Location:    p.Location,
		Description: p.Description,
		Category:    p.Category,
		ImageRef:    p.ImageReference,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}
