package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileCacheMissingFile(t *testing.T) {
	t.Parallel()

	c := NewFileCache(filepath.Join(t.TempDir(), "absent.cache"))
	data, err := c.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil blob, got %q", data)
	}
}

func TestFileCacheWriteAndRead(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "wikibot.cache")
	c := NewFileCache(path)

	if err := c.Write([]byte(`{"updated":"2026-10-19T00:00:00Z"}`)); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if err := c.Write([]byte(`{"updated":"2026-10-20T00:00:00Z"}`)); err != nil {
		t.Fatalf("second Write error: %v", err)
	}

	data, err := c.Read()
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if string(data) != `{"updated":"2026-10-20T00:00:00Z"}` {
		t.Fatalf("unexpected blob: %s", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the cache file, found %d entries", len(entries))
	}
}
