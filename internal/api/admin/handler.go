package admin

import (
	"net/http"

	"gallery-app/internal/api/respond"
	"gallery-app/internal/gallery"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *gallery.Store
}

func NewHandler(store *gallery.Store) *Handler {
	return &Handler{store: store}
}

// GET /admin/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// POST /admin/repair re-runs the category backfill over stored paintings.
func (h *Handler) Repair(c *gin.Context) {
	report, err := h.store.Repair(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recased":    report.Recased,
		"reassigned": report.Reassigned,
	})
}
