// Package media validates uploaded images and names their objects.
package media

import (
	"path"
	"strings"

	"inkwell/internal/core/apperr"

	"github.com/gofrs/uuid"
)

// MaxImageSize is the largest accepted upload, 5 MiB.
const MaxImageSize = 5 << 20

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ValidateImage checks type and size and returns the object extension to use.
func ValidateImage(contentType string, size int64) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	ext, ok := imageTypes[ct]
	if !ok {
		return "", apperr.Validation("Validation error", map[string]string{"file": "only jpeg, png, gif and webp images are allowed"})
	}
	if size <= 0 {
		return "", apperr.Validation("Validation error", map[string]string{"file": "file is empty"})
	}
	if size > MaxImageSize {
		return "", apperr.Validation("Validation error", map[string]string{"file": "file exceeds 5 MiB"})
	}
	return ext, nil
}

// ObjectName builds "<prefix>/<ownerID>/<random><ext>".
func ObjectName(prefix, ownerID, ext string) string {
	return path.Join(prefix, ownerID, uuid.Must(uuid.NewV4()).String()+ext)
}
