package utils

import (
	"path/filepath"
	"strings"
)

// ExtensionFromContentType guesses a file suffix from a MIME type, "" when unknown
func ExtensionFromContentType(contentType string) string {
	contentType = strings.ToLower(contentType)

	switch {
	case strings.Contains(contentType, "jpeg") || strings.Contains(contentType, "jpg"):
		return "jpg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "svg"):
		return "svg"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	case strings.Contains(contentType, "pdf"):
		return "pdf"
	case strings.Contains(contentType, "text/plain"):
		return "txt"
	case strings.Contains(contentType, "csv"):
		return "csv"
	case strings.Contains(contentType, "json"):
		return "json"
	case strings.Contains(contentType, "zip") || strings.Contains(contentType, "compressed"):
		return "zip"
	default:
		return ""
	}
}

// ExtensionFromFilename returns the suffix of filename without the dot
func ExtensionFromFilename(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
