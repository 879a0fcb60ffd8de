package upload

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// buildFileName generates a collision-resistant object name that preserves
// the original extension.
func buildFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if ext == "" || len(ext) > 10 {
		ext = ".dat"
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
}

// detectContentType sniffs the MIME type from the fallback header, extension,
// or raw payload bytes, in that priority order.
func detectContentType(filename string, payload []byte, fallback string) string {
	contentType := strings.TrimSpace(fallback)
	if contentType != "" {
		return contentType
	}
	if ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename))); ext != "" {
		if guessed := mime.TypeByExtension(ext); guessed != "" {
			return guessed
		}
	}
	if len(payload) > 0 {
		return http.DetectContentType(payload)
	}
	return "application/octet-stream"
}

// slotForType maps the upload type query to an object-key namespace.
func slotForType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "image":
		return "images"
	case "background":
		return "backgrounds"
	default:
		return ""
	}
}
