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

	"sdl/internal/ast"
	"sdl/internal/parser"
	"sdl/internal/source"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest identifies parse input: file content plus the depth limit.
type Digest [32]byte

// DiskCache хранит результаты успешного разбора по хэшу содержимого.
// Thread-safe for concurrent access. A nil *DiskCache is a valid no-op cache.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the on-disk record of one successful parse.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	Path   string
	Hash   Digest
	Tags   []*ast.Tag
}

// OpenDiskCache opens dir, or $XDG_CACHE_HOME/sdl (~/.cache/sdl) when dir is empty.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "sdl")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// KeyFor mixes the content hash with the effective depth limit,
// since a deeper document can parse under one limit and fail under another.
func KeyFor(file *source.File, maxDepth int) Digest {
	if maxDepth <= 0 {
		maxDepth = parser.DefaultMaxDepth
	}
	h := sha256.New()
	_, _ = h.Write(file.Hash[:])
	var depth [8]byte
	binary.LittleEndian.PutUint64(depth[:], uint64(maxDepth))
	_, _ = h.Write(depth[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог по первым двум символам, чтобы не раздувать одну директорию.
	return filepath.Join(c.dir, "tags", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *CachePayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// Lookup returns cached tags for file, rebound to file's ID.
// Corrupt or stale entries count as misses.
func (c *DiskCache) Lookup(file *source.File, maxDepth int) ([]*ast.Tag, bool) {
	if c == nil || file == nil {
		return nil, false
	}
	var payload CachePayload
	ok, err := c.Get(KeyFor(file, maxDepth), &payload)
	if err != nil || !ok || payload.Schema != cacheSchemaVersion || payload.Hash != Digest(file.Hash) {
		return nil, false
	}
	for _, tag := range payload.Tags {
		tag.Walk(func(t *ast.Tag, _ int) bool {
			t.Span.File = file.ID
			if t.Attributes == nil {
				t.Attributes = make(map[string]ast.Value)
			}
			return true
		})
	}
	return payload.Tags, true
}

// Store records a successful parse of file.
func (c *DiskCache) Store(file *source.File, maxDepth int, tags []*ast.Tag) error {
	if c == nil || file == nil {
		return nil
	}
	return c.Put(KeyFor(file, maxDepth), &CachePayload{
		Schema: cacheSchemaVersion,
		Path:   file.Path,
		Hash:   Digest(file.Hash),
		Tags:   tags,
	})
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим, чтобы параллельный Get не увидел полузачищенное дерево
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
