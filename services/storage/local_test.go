package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/static/")
	require.NoError(t, err)

	ctx := context.Background()
	url, err := store.Save(ctx, "uploads/hero/hero_1_banner.jpg", []byte("image-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/hero/hero_1_banner.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "uploads", "hero", "hero_1_banner.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "uploads/hero/hero_1_banner.jpg"))
	_, err = os.Stat(filepath.Join(dir, "uploads", "hero", "hero_1_banner.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageDeleteMissingKeyIsNoError(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/static")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "never/stored.png"))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/static")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.Save(ctx, "../outside.txt", []byte("nope"), "text/plain")
	assert.Error(t, err)

	err = store.Delete(ctx, "../../etc/passwd")
	assert.Error(t, err)
}

func TestGenerateKey(t *testing.T) {
	key := GenerateKey("media", "College Brochure.pdf")

	assert.True(t, strings.HasPrefix(key, "media/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.NotContains(t, key, "\\")

	// Keys for the same filename must not collide
	assert.NotEqual(t, key, GenerateKey("media", "College Brochure.pdf"))
}

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"photo.JPG":    "image/jpeg",
		"photo.jpeg":   "image/jpeg",
		"logo.png":     "image/png",
		"anim.gif":     "image/gif",
		"hero.webp":    "image/webp",
		"icon.svg":     "image/svg+xml",
		"brochure.pdf": "application/pdf",
		"tour.mp4":     "video/mp4",
		"unknown.bin":  "application/octet-stream",
		"noext":        "application/octet-stream",
	}

	for filename, want := range cases {
		assert.Equal(t, want, ContentTypeFor(filename), "filename %q", filename)
	}
}
