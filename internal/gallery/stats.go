package gallery

import (
	"context"

	domain "gallery-app/internal/domain/gallery"
)

// Stats summarizes the collections for the admin dashboard.
type Stats struct {
	TotalCategories     int64            `json:"total_categories"`
	TotalPaintings      int64            `json:"total_paintings"`
	PaintingsByCategory map[string]int64 `json:"paintings_by_category"`
}

// Stats counts paintings per category. Categories without paintings report 0.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	db := s.db.WithContext(ctx)
	out := Stats{PaintingsByCategory: map[string]int64{}}

	var cats []domain.Category
	if err := db.Find(&cats).Error; err != nil {
		return out, err
	}
	for _, c := range cats {
		out.PaintingsByCategory[c.Name] = 0
	}
	out.TotalCategories = int64(len(cats))

	type categoryCount struct {
		Category string
		Count    int64
	}
	var counts []categoryCount
	if err := db.Model(&domain.Painting{}).
		Select("category, COUNT(id) AS count").
		Group("category").
		Scan(&counts).Error; err != nil {
		return out, err
	}
	for _, c := range counts {
		out.PaintingsByCategory[c.Category] = c.Count
		out.TotalPaintings += c.Count
	}
	return out, nil
}
