// Package cache remembers which files are already formatted.
//
// One msgpack file per settings key lives under $XDG_CACHE_HOME/comform.
// An entry records size, modification time and content hash of a file as it
// was written (or found) in formatted form.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// bump when the payload layout changes
const schemaVersion uint16 = 1

// ErrCorrupt is returned by Open when the stored payload cannot be decoded.
// The returned cache is still usable and starts empty.
var ErrCorrupt = errors.New("cache payload is corrupt")

// Digest is a sha256 content hash.
type Digest [sha256.Size]byte

// Sum hashes content.
func Sum(content []byte) Digest { return sha256.Sum256(content) }

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Entry describes a formatted file.
type Entry struct {
	Size    int64
	ModTime int64 // unix nanoseconds
	Hash    Digest
}

type payload struct {
	Schema  uint16
	Key     string
	Entries map[string]Entry
}

// Cache is safe for concurrent use. A nil *Cache is a disabled cache.
type Cache struct {
	mu      sync.Mutex
	path    string
	key     string
	entries map[string]Entry
	dirty   bool
}

// Key derives a settings key from any msgpack-encodable value. Files formatted
// under different keys never share entries.
func Key(v any) (string, error) {
	raw, err := msgpack.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8]), nil
}

// Dir returns the cache directory for app, honouring XDG_CACHE_HOME.
func Dir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// Open loads the cache for key from the standard location of app.
func Open(app, key string) (*Cache, error) {
	dir, err := Dir(app)
	if err != nil {
		return nil, err
	}
	return OpenDir(dir, key)
}

// OpenDir loads the cache for key from dir.
func OpenDir(dir, key string) (*Cache, error) {
	c := &Cache{
		path:    filepath.Join(dir, "cache."+key+".mp"),
		key:     key,
		entries: make(map[string]Entry),
	}
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	var p payload
	if err := msgpack.Unmarshal(raw, &p); err != nil {
		return c, fmt.Errorf("%s: %w: %v", c.path, ErrCorrupt, err)
	}
	if p.Schema != schemaVersion || p.Key != key {
		return c, nil
	}
	if p.Entries != nil {
		c.entries = p.Entries
	}
	return c, nil
}

// Path is the backing file.
func (c *Cache) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Len reports the number of entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Fresh reports whether path is unchanged since it was recorded, judged by
// size and modification time alone.
func (c *Cache) Fresh(path string, info fs.FileInfo) bool {
	if c == nil || info == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	return ok && e.Size == info.Size() && e.ModTime == info.ModTime().UnixNano()
}

// FreshContent reports whether content hashes to the recorded digest. It
// catches files that were touched without being changed.
func (c *Cache) FreshContent(path string, content []byte) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	return ok && e.Size == int64(len(content)) && e.Hash == Sum(content)
}

// Record stores path as formatted with the given content.
func (c *Cache) Record(path string, info fs.FileInfo, content []byte) {
	if c == nil || info == nil {
		return
	}
	e := Entry{Size: info.Size(), ModTime: info.ModTime().UnixNano(), Hash: Sum(content)}
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.entries[path]; ok && old == e {
		return
	}
	c.entries[path] = e
	c.dirty = true
}

// Forget drops the entry for path.
func (c *Cache) Forget(path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[path]; ok {
		delete(c.entries, path)
		c.dirty = true
	}
}

// Save writes the cache if it changed. The file is replaced atomically.
func (c *Cache) Save() (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(&payload{Schema: schemaVersion, Key: c.key, Entries: c.entries}); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	if err = os.Rename(f.Name(), c.path); err != nil {
		return err
	}
	c.dirty = false
	return nil
}

// Drop removes the backing file and all entries.
func (c *Cache) Drop() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
	c.dirty = false
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
