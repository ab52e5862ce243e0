package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"TootBot/internal/ports"
)

// DefaultPath matches the location used by earlier deployments.
const DefaultPath = "/tmp/wikibot.cache"

// FileCache keeps one raw blob in a single file.
type FileCache struct {
	path string
}

var _ ports.FeedCache = (*FileCache)(nil)

// NewFileCache returns a cache backed by path.
func NewFileCache(path string) *FileCache {
	if path == "" {
		path = DefaultPath
	}
	return &FileCache{path: path}
}

// Read returns the cached blob, or nil when the file does not exist.
func (c *FileCache) Read() ([]byte, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", c.path, err)
	}
	return data, nil
}

// Write replaces the cached blob. The file is written next to the target
// and renamed so readers never see a partial blob.
func (c *FileCache) Write(blob []byte) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace cache %s: %w", c.path, err)
	}
	return nil
}

// Path returns the file backing the cache.
func (c *FileCache) Path() string {
	return c.path
}
