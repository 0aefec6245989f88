package zls

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	releaseCacheFile = "release_cache.json"
	releaseCacheTTL  = 1 * time.Hour
)

// releaseCache stores the last latest-release lookup per platform token on
// disk so repeated cold resolutions within the TTL skip the GitHub query.
// Every operation is best-effort; a broken cache file reads as empty.
type releaseCache struct {
	dir string
}

type releaseCacheEntry struct {
	Version   string    `json:"version"`
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetched_at"`
}

type releaseCacheDoc struct {
	Entries map[string]releaseCacheEntry `json:"entries"`
}

func (rc releaseCache) path() string {
	return filepath.Join(rc.dir, releaseCacheFile)
}

func (rc releaseCache) load() releaseCacheDoc {
	doc := releaseCacheDoc{Entries: map[string]releaseCacheEntry{}}
	if rc.dir == "" {
		return doc
	}
	data, err := os.ReadFile(rc.path())
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return releaseCacheDoc{Entries: map[string]releaseCacheEntry{}}
	}
	if doc.Entries == nil {
		doc.Entries = map[string]releaseCacheEntry{}
	}
	return doc
}

func (rc releaseCache) getLatest(token string) (Resolution, bool) {
	doc := rc.load()
	entry, ok := doc.Entries[token]
	if !ok {
		return Resolution{}, false
	}
	if time.Since(entry.FetchedAt) > releaseCacheTTL {
		return Resolution{}, false
	}
	return Resolution{Version: entry.Version, DownloadURL: entry.URL}, true
}

func (rc releaseCache) putLatest(token string, res Resolution) {
	if rc.dir == "" {
		return
	}
	doc := rc.load()
	doc.Entries[token] = releaseCacheEntry{
		Version:   res.Version,
		URL:       res.DownloadURL,
		FetchedAt: time.Now(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(rc.dir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(rc.path(), data, 0o644)
}
