package fetch

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
)

// DiskCache is a file-based BlobCache, grounded on the teacher's
// edgar.MarkdownCache: one file per key under a cache directory,
// generalized from Markdown-specific (cik,accession) keys to an
// arbitrary caller-supplied key string (typically the fetched URL),
// so it can cache raw HTML, XBRL, and JSON submissions payloads
// alike, not just converted Markdown.
type DiskCache struct {
	dir string
}

// NewDiskCache creates (if needed) dir and returns a cache backed by
// it.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) path(key string) string {
	sum := md5.Sum([]byte(key))
	return filepath.Join(c.dir, fmt.Sprintf("%x.blob", sum))
}

// Get returns the cached bytes for key, or ok=false if absent.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put writes data under key, overwriting any prior entry.
func (c *DiskCache) Put(key string, data []byte) error {
	return os.WriteFile(c.path(key), data, 0o644)
}

// Evict removes key's cached entry, if any. Removing an absent key is
// not an error.
func (c *DiskCache) Evict(key string) error {
	err := os.Remove(c.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("evicting %s: %w", key, err)
	}
	return nil
}

// Clear removes every cached entry.
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}
