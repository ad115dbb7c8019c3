// Package respond maps gallery errors onto HTTP responses.
package respond

import (
	"log/slog"
	"net/http"
	"strconv"

	domain "gallery-app/internal/domain/gallery"

	"github.com/gin-gonic/gin"
)

// Error writes the status and body matching err's kind. Unclassified
// errors are logged and reported as a generic 500.
func Error(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := http.StatusInternalServerError
	msg := "Internal error"

	switch kind {
	case domain.KindValidation:
		status, msg = http.StatusBadRequest, err.Error()
	case domain.KindNotFound:
		status, msg = http.StatusNotFound, err.Error()
	case domain.KindUnauthorized:
		status, msg = http.StatusUnauthorized, err.Error()
	case domain.KindBlobStore:
		status, msg = http.StatusBadGateway, "Image storage failed"
	default:
		kind = "INTERNAL"
		slog.Error("request failed", "path", c.FullPath(), "error", err)
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg, "code": string(kind)})
}

// ParamID parses a positive numeric path parameter, writing a 400 if it is invalid.
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name, "code": string(domain.KindValidation)})
		return 0, false
	}
	return uint(id), true
}
