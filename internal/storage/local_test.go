package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *ImageStore {
	t.Helper()
	s, err := NewImageStore(t.TempDir(), "https://sellerapp.example/")
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}
	return s
}

func TestSaveAndRemove(t *testing.T) {
	s := newTestStore(t)

	key, err := s.Save(7, "photo.JPG", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(key, "7/") {
		t.Errorf("key %q not under seller namespace", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key %q did not keep a lowered extension", key)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("read stored object: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored content = %q", data)
	}

	if err := s.Remove(key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Dir, filepath.FromSlash(key))); !os.IsNotExist(err) {
		t.Errorf("object still present after Remove")
	}
}

func TestSaveKeysNeverCollide(t *testing.T) {
	s := newTestStore(t)
	k1, err := s.Save(7, "same.png", strings.NewReader("a"))
	if err != nil {
		t.Fatal(err)
	}
	k2, err := s.Save(7, "same.png", strings.NewReader("b"))
	if err != nil {
		t.Fatal(err)
	}
	if k1 == k2 {
		t.Errorf("two uploads of the same filename produced one key %q", k1)
	}
}

func TestPublicURLAndKeyFromURL(t *testing.T) {
	s := newTestStore(t)

	url := s.PublicURL("7/abc.png")
	if url != "https://sellerapp.example/uploads/7/abc.png" {
		t.Errorf("PublicURL = %q", url)
	}

	key, ok := s.KeyFromURL(url)
	if !ok || key != "7/abc.png" {
		t.Errorf("KeyFromURL(%q) = %q, %v", url, key, ok)
	}

	for _, bad := range []string{
		"https://elsewhere.example/uploads/7/abc.png",
		"https://sellerapp.example/uploads/",
		"https://sellerapp.example/uploads/../etc/passwd",
	} {
		if _, ok := s.KeyFromURL(bad); ok {
			t.Errorf("KeyFromURL accepted %q", bad)
		}
	}
}
