package storage

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage persists uploaded media and returns public URLs for it. The
// object-store backend serves production; the local backend serves
// development and hero images, which always stay on local disk.
type Storage interface {
	// Save writes data under key and returns its public URL.
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes the object under key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL for an already-stored key.
	URL(key string) string
}

// GenerateKey builds a unique storage key under prefix, keeping the
// original extension so content type stays guessable from the URL.
func GenerateKey(prefix, filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	return filepath.ToSlash(filepath.Join(prefix,
		time.Now().UTC().Format("2006/01"),
		uuid.NewString()[:8]+"_"+base+ext))
}

// ContentTypeFor returns the content type for a filename
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".pdf":
		return "application/pdf"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}
