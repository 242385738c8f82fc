// Package storage implements the object store backing product images.
// Files live on local disk under a per-seller namespace and are served by
// the HTTP layer as static files, so the "public URL" of an object is just
// the configured base URL plus its key.  Keys embed a random UUID so
// concurrent uploads and same-named files never collide.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore writes uploaded product images under Dir and exposes them at
// BaseURL + "/uploads/" + key.
type ImageStore struct {
	Dir     string // root directory for uploaded objects
	BaseURL string // public base URL, e.g. https://sellerapp.com
}

// NewImageStore ensures the root directory exists and returns the store.
func NewImageStore(dir, baseURL string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save streams one uploaded file into the store under a randomized key in
// the seller's namespace and returns that key.  The original filename
// contributes only its extension.
func (s *ImageStore) Save(sellerID uint64, filename string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%d/%s%s", sellerID, uuid.New().String(), ext)

	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create seller dir: %w", err)
	}
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		// Remove the partial object so a retry starts clean.
		_ = os.Remove(path)
		return "", fmt.Errorf("write object: %w", err)
	}
	return key, nil
}

// PublicURL returns the URL under which a stored key is served.
func (s *ImageStore) PublicURL(key string) string {
	return s.BaseURL + "/uploads/" + key
}

// Remove deletes a stored object by key.  Used for compensating deletes
// when a catalog write fails after its images were already uploaded.
func (s *ImageStore) Remove(key string) error {
	return os.Remove(filepath.Join(s.Dir, filepath.FromSlash(key)))
}

// KeyFromURL maps a public URL back to its storage key, returning false
// for URLs that do not belong to this store.
func (s *ImageStore) KeyFromURL(url string) (string, bool) {
	prefix := s.BaseURL + "/uploads/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}
