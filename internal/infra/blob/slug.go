package blob

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

const maxSlugLen = 48

// MakeSlug turns an upload filename into a URL-safe stem.
// Example: "Harbor at Dawn (final).JPG" -> "harbor-at-dawn-final"
func MakeSlug(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.ToLower(strings.TrimSpace(base))
	base = strings.ReplaceAll(base, " ", "-")
	base = strings.ReplaceAll(base, "_", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	if len(base) > maxSlugLen {
		base = base[:maxSlugLen]
	}
	base = strings.Trim(base, "-")

	if base == "" || base == "." {
		base = "painting"
	}
	return base
}

// newReference builds "<slug>-<uuid><ext>".
func newReference(id, filename, contentType string) string {
	return MakeSlug(filename) + "-" + id + extensionFor(filename, contentType)
}
