package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// formOverhead is the room left beside the file for text fields and part headers.
const formOverhead = 64 << 10

// SanitizeAndCleanInputMiddleware strips markup from every top-level string
// field of JSON bodies and every text field of multipart forms. Plain text
// such as "&" or "'" is kept as typed. maxMultipart bounds the upload size.
func SanitizeAndCleanInputMiddleware(maxMultipart int64) gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		switch {
		case strings.HasPrefix(c.ContentType(), "multipart/form-data"):
			if maxMultipart > 0 {
				c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxMultipart+formOverhead)
			}
			if err := c.Request.ParseMultipartForm(maxMultipart); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Upload too large", "code": "VALIDATION"})
					return
				}
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed form", "code": "VALIDATION"})
				return
			}
			for _, form := range []map[string][]string{
				c.Request.MultipartForm.Value,
				c.Request.PostForm,
				c.Request.Form,
			} {
				for _, vals := range form {
					for i, v := range vals {
						vals[i] = stripMarkup(policy, v)
					}
				}
			}

		case c.ContentType() == "application/json":
			buf, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body", "code": "VALIDATION"})
				return
			}
			if len(bytes.TrimSpace(buf)) == 0 {
				c.Request.Body = io.NopCloser(bytes.NewReader(buf))
				c.Next()
				return
			}

			var body map[string]interface{}
			if err := json.Unmarshal(buf, &body); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON", "code": "VALIDATION"})
				return
			}
			for k, v := range body {
				if str, ok := v.(string); ok {
					body[k] = stripMarkup(policy, str)
				}
			}

			newBody, _ := json.Marshal(body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
			c.Request.ContentLength = int64(len(newBody))
		}

		c.Next()
	}
}

// stripMarkup removes tags but leaves text unescaped. It repeats until
// stable so entity-encoded tags cannot come back as markup.
func stripMarkup(policy *bluemonday.Policy, s string) string {
	for i := 0; i < 4; i++ {
		out := html.UnescapeString(policy.Sanitize(s))
		if out == s {
			return s
		}
		s = out
	}
	return policy.Sanitize(s)
}
