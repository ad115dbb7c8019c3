package categories

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type DeleteCategoryResponse struct {
	Status     string `json:"status"`
	Reassigned int64  `json:"reassigned"`
}
