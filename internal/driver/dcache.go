package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// cacheSchemaVersion invalidates every entry when the formatter's output
// rules or the payload layout change.
const cacheSchemaVersion uint16 = 1

// DiskCache stores formatted output keyed by source content hash and layout
// width, so unchanged files skip the parse and layout passes entirely.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema    uint16
	Width     uint32
	Formatted []byte
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app>/fmt, falling
// back to ~/.cache.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "fmt")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// cacheKey mixes the content hash with the width and schema version, so the
// same file cached at different widths occupies distinct entries.
func cacheKey(contentHash [32]byte, width uint32) [32]byte {
	var tail [6]byte
	binary.LittleEndian.PutUint32(tail[:4], width)
	binary.LittleEndian.PutUint16(tail[4:], cacheSchemaVersion)
	h := sha256.New()
	h.Write(contentHash[:])
	h.Write(tail[:])
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Lookup returns the cached formatted output for the content hash at the
// given width. A corrupt or mismatched entry reads as a miss.
func (c *DiskCache) Lookup(contentHash [32]byte, width uint32) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(cacheKey(contentHash, width)))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion || payload.Width != width {
		return nil, false
	}
	return payload.Formatted, true
}

// Store writes a cache entry atomically via temp file and rename.
func (c *DiskCache) Store(contentHash [32]byte, width uint32, formatted []byte) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(cacheKey(contentHash, width))
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	payload := cachePayload{Schema: cacheSchemaVersion, Width: width, Formatted: formatted}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DropAll discards every cache entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
