package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores files under a static directory served by the app.
// Hero images always use this backend so section URLs stay same-origin.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates a filesystem backend rooted at baseDir. Files
// saved under key become reachable at baseURL/key.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create static directory: %w", err)
	}
	return &LocalStorage{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Save writes data to baseDir/key, creating parent directories as needed
func (l *LocalStorage) Save(_ context.Context, key string, data []byte, _ string) (string, error) {
	path, err := l.safePath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return l.URL(key), nil
}

// Delete removes the file under key. Missing files are not an error.
func (l *LocalStorage) Delete(_ context.Context, key string) error {
	path, err := l.safePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL returns the public URL for a stored key
func (l *LocalStorage) URL(key string) string {
	return l.baseURL + "/" + filepath.ToSlash(key)
}

// safePath joins key under baseDir and rejects traversal outside it
func (l *LocalStorage) safePath(key string) (string, error) {
	path := filepath.Join(l.baseDir, filepath.FromSlash(key))
	rel, err := filepath.Rel(l.baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return path, nil
}
