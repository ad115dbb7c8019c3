package categories

import (
	"net/http"

	"gallery-app/internal/api/respond"
	"gallery-app/internal/app/http/middleware"
	domain "gallery-app/internal/domain/gallery"
	"gallery-app/internal/gallery"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *gallery.Store
}

func NewHandler(store *gallery.Store) *Handler {
	return &Handler{store: store}
}

func toDTO(c domain.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name}
}

// GET /categories
func (h *Handler) List(c *gin.Context) {
	cats, err := h.store.ListCategories(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	out := make([]CategoryDTO, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toDTO(cat))
	}
	c.JSON(http.StatusOK, out)
}

// POST /categories
func (h *Handler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required", "code": string(domain.KindValidation)})
		return
	}

	cat, err := h.store.CreateCategory(c.Request.Context(), middleware.State(c), req.Name)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDTO(cat))
}

// PUT /categories/:id
func (h *Handler) Rename(c *gin.Context) {
	id, ok := respond.ParamID(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required", "code": string(domain.KindValidation)})
		return
	}

	cat, err := h.store.RenameCategory(c.Request.Context(), middleware.State(c), id, req.Name)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toDTO(cat))
}

// DELETE /categories/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := respond.ParamID(c, "id")
	if !ok {
		return
	}

	n, err := h.store.DeleteCategory(c.Request.Context(), middleware.State(c), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteCategoryResponse{Status: "deleted", Reassigned: n})
}
