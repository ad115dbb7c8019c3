package paintings

import (
	"errors"
	"io"
	"net/http"

	"gallery-app/internal/api/respond"
	"gallery-app/internal/app/http/middleware"
	domain "gallery-app/internal/domain/gallery"
	"gallery-app/internal/gallery"

	"github.com/gin-gonic/gin"
)

// imageField is the multipart field holding the upload.
const imageField = "image"

type Handler struct {
	store    *gallery.Store
	maxBytes int64
}

func NewHandler(store *gallery.Store, maxBytes int64) *Handler {
	return &Handler{store: store, maxBytes: maxBytes}
}

// GET /paintings?category=
func (h *Handler) List(c *gin.Context) {
	ps, err := h.store.ListPaintings(c.Request.Context(), c.Query("category"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	out := make([]PaintingDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, toDTO(p))
	}
	c.JSON(http.StatusOK, out)
}

// GET /paintings/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := respond.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := h.store.GetPainting(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toDTO(p))
}

// POST /paintings (multipart: image + text fields)
func (h *Handler) Create(c *gin.Context) {
	img, err := h.readImage(c)
	if err != nil {
		respond.Error(c, err)
		return
	}

	fields := domain.PaintingFields{
		Title:       c.PostForm("title"),
		Date:        c.PostForm("date"),
		Materials:   c.PostForm("materials"),
		Location:    c.PostForm("location"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
	}

	p, err := h.store.CreatePainting(c.Request.Context(), middleware.State(c), fields, img)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDTO(p))
}

// PUT /paintings/:id (JSON, only provided fields change)
func (h *Handler) Update(c *gin.Context) {
	id, ok := respond.ParamID(c, "id")
	if !ok {
		return
	}

	var patch domain.PaintingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid painting fields", "code": string(domain.KindValidation)})
		return
	}

	p, err := h.store.UpdatePainting(c.Request.Context(), middleware.State(c), id, patch)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toDTO(p))
}

// DELETE /paintings/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := respond.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeletePainting(c.Request.Context(), middleware.State(c), id); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// readImage returns nil when no file was sent; the store reports that as a validation error.
func (h *Handler) readImage(c *gin.Context) (*gallery.Image, error) {
	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Validation("invalid upload: %v", err)
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return nil, domain.Validation("image exceeds %d bytes", h.maxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &gallery.Image{Filename: fh.Filename, Data: data}, nil
}
