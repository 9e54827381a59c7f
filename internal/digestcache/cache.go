// Package digestcache persists file content digests between runs so
// unchanged files are not rehashed.
//
// The cache is a single snapshot file mapping absolute paths to their last
// known size, mtime, and digest. An entry is only trusted while size and
// mtime still match; anything stale is rehashed by the caller and replaced.
// The snapshot is JSON, zstd-compressed on disk.
//
// Losing or corrupting the cache is never an error. Open falls back to an
// empty cache and the tool simply hashes everything again.
package digestcache

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Entry records what was known about a file when it was last hashed.
type Entry struct {
	Size    int64  `json:"size"`
	ModTime int64  `json:"mtime"`
	Digest  string `json:"digest"`
}

// Cache maps absolute file paths to digest entries. Not safe for concurrent
// use; the renamer is single-threaded.
type Cache struct {
	path    string
	entries map[string]Entry
	dirty   bool
}

// Open loads the snapshot at path, or returns an empty cache if the snapshot
// is missing or unreadable.
func Open(path string) *Cache {
	c := &Cache{
		path:    path,
		entries: make(map[string]Entry),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	raw, err := decompress(data)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(raw, &c.entries); err != nil {
		c.entries = make(map[string]Entry)
	}
	return c
}

// Lookup returns the cached digest for path if size and mtime still match.
func (c *Cache) Lookup(path string, info fs.FileInfo) (string, bool) {
	e, ok := c.entries[path]
	if !ok {
		return "", false
	}
	if e.Size != info.Size() || e.ModTime != info.ModTime().UnixNano() {
		return "", false
	}
	return e.Digest, true
}

// Record stores the digest for path keyed by its current size and mtime.
func (c *Cache) Record(path string, info fs.FileInfo, digest string) {
	c.entries[path] = Entry{
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
		Digest:  digest,
	}
	c.dirty = true
}

// Forget drops the entry for path, if any.
func (c *Cache) Forget(path string) {
	if _, ok := c.entries[path]; ok {
		delete(c.entries, path)
		c.dirty = true
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Save writes the snapshot back to disk if anything changed.
func (c *Cache) Save() error {
	if !c.dirty {
		return nil
	}

	raw, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("serialize cache: %w", err)
	}
	data, err := compress(raw)
	if err != nil {
		return fmt.Errorf("compress cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}

	c.dirty = false
	return nil
}

// DefaultPath returns the snapshot location under the user cache directory.
func DefaultPath() string {
	return filepath.Join(xdg.CacheHome, "audiohash", "digests.json.zst")
}
