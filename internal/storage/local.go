package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrInvalidKey is returned for keys that are empty or escape the uploads root
var ErrInvalidKey = errors.New("storage: invalid key")

// FileStore persists uploaded files and resolves them by public path
type FileStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	Remove(ctx context.Context, publicPath string) error
}

// LocalStore keeps uploads in a directory below the public web root so the
// HTTP server can serve them directly. Public paths look like
// "/uploads/<key>".
type LocalStore struct {
	publicDir  string
	uploadsDir string
}

// NewLocalStore initializes a LocalStore and makes sure the uploads
// directory and its donation subdirectory exist
func NewLocalStore(publicDir, uploadsDir string) (*LocalStore, error) {
	publicDir = strings.TrimSpace(publicDir)
	if publicDir == "" {
		return nil, errors.New("storage: public dir is required")
	}
	uploadsDir, err := sanitizeKey(uploadsDir)
	if err != nil {
		return nil, fmt.Errorf("storage: uploads dir: %w", err)
	}

	s := &LocalStore{publicDir: publicDir, uploadsDir: uploadsDir}
	for _, dir := range []string{s.Root(), filepath.Join(s.Root(), DonationsDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: ensure directory: %w", err)
		}
	}
	return s, nil
}

// Root returns the directory uploads are written to
func (s *LocalStore) Root() string {
	return filepath.Join(s.publicDir, filepath.FromSlash(s.uploadsDir))
}

// URLPrefix returns the public path prefix under which uploads are served
func (s *LocalStore) URLPrefix() string {
	return "/" + s.uploadsDir
}

// Write persists data under key, relative to the uploads root, and returns
// the public path of the stored file
func (s *LocalStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.Root(), filepath.FromSlash(cleanKey))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return path.Join(s.URLPrefix(), cleanKey), nil
}

// Remove deletes the file behind a public path. A file that is already gone
// is not an error.
func (s *LocalStore) Remove(ctx context.Context, publicPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := s.keyFromPublicPath(publicPath)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.Root(), filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remove file: %w", err)
	}
	return nil
}

func (s *LocalStore) keyFromPublicPath(publicPath string) (string, error) {
	cleaned, err := sanitizeKey(publicPath)
	if err != nil {
		return "", err
	}
	prefix := s.uploadsDir + "/"
	if !strings.HasPrefix(cleaned, prefix) {
		return "", ErrInvalidKey
	}
	return sanitizeKey(strings.TrimPrefix(cleaned, prefix))
}

// sanitizeKey normalizes a key and prevents escaping the storage root
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
