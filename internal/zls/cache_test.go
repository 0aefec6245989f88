package zls

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheKeyTrimming(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "zls")
	if err := os.WriteFile(binary, []byte("bin"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}

	cache := NewCache()
	cache.Put("0.13.0\n", binary)

	path, ok := cache.Get("0.13.0")
	if !ok {
		t.Fatal("expected hit for trimmed key")
	}
	if path != binary {
		t.Fatalf("expected %s, got %s", binary, path)
	}
}

func TestCacheUnversionedKey(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "zls")
	if err := os.WriteFile(binary, []byte("bin"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}

	cache := NewCache()
	cache.Put("", binary)

	if _, ok := cache.Get(""); !ok {
		t.Fatal("expected hit for unversioned key")
	}
	if _, ok := cache.Get("0.13.0"); ok {
		t.Fatal("expected miss for versioned key")
	}
}

func TestCacheStaleEntryReadsAsMiss(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "zls")
	if err := os.WriteFile(binary, []byte("bin"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}

	cache := NewCache()
	cache.Put("0.13.0", binary)

	if err := os.Remove(binary); err != nil {
		t.Fatalf("remove binary: %v", err)
	}

	if _, ok := cache.Get("0.13.0"); ok {
		t.Fatal("expected stale entry to read as a miss")
	}
}

func TestCacheDirectoryIsNotAFile(t *testing.T) {
	dir := t.TempDir()

	cache := NewCache()
	cache.Put("0.13.0", dir)

	if _, ok := cache.Get("0.13.0"); ok {
		t.Fatal("expected directory path to read as a miss")
	}
}
