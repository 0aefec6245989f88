package zls

import (
	"strings"
	"sync"

	"zigls/internal/paths"
)

// Cache maps a zig toolchain version to the on-disk path of a previously
// resolved zls binary. The empty key stands for "no local toolchain". The
// cache lives for the lifetime of its resolver; nothing is persisted.
type Cache struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: map[string]string{}}
}

// Get returns the cached binary path for the given toolchain version. An
// entry is trusted only if the path is still a regular file; external
// removal of the binary is an expected condition and reads as a plain miss.
func (c *Cache) Get(zigVersion string) (string, bool) {
	key := cacheKey(zigVersion)

	c.mu.Lock()
	path, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return "", false
	}

	exists, err := paths.FileExists(path)
	if err != nil || !exists {
		return "", false
	}
	return path, true
}

// Put records the binary path for the given toolchain version.
func (c *Cache) Put(zigVersion, path string) {
	key := cacheKey(zigVersion)

	c.mu.Lock()
	c.entries[key] = path
	c.mu.Unlock()
}

// cacheKey trims the raw toolchain version so `zig version` output with a
// trailing newline and the same version passed verbatim share one entry.
func cacheKey(zigVersion string) string {
	return strings.TrimSpace(zigVersion)
}
