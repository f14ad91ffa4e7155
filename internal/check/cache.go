package check

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

	"sievels/internal/diag"
	"sievels/internal/settings"
)

// Bump when cachePayload changes shape so stale entries are ignored.
const cacheSchemaVersion uint16 = 1

// Digest keys cached results by script content and effective settings.
type Digest [sha256.Size]byte

// cacheKey hashes the script content together with every setting that can
// change the analysis outcome.
func cacheKey(content []byte, st settings.Settings) Digest {
	h := sha256.New()
	h.Write(content)
	var flags [2]byte
	if st.ProtonExtensions {
		flags[0] |= 1
	}
	if st.StrictMode {
		flags[0] |= 2
	}
	if st.SemanticAnalysis {
		flags[0] |= 4
	}
	h.Write(flags[:])
	var max [8]byte
	binary.LittleEndian.PutUint64(max[:], uint64(st.MaxErrors))
	h.Write(max[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

type cachePayload struct {
	Schema      uint16
	Diagnostics []diag.Diagnostic
}

// DiskCache stores analysis results keyed by Digest. A nil *DiskCache is a
// valid no-op cache. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location under XDG_CACHE_HOME.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "results", hexKey+".mp")
}

// Put serializes and writes a payload, replacing the entry atomically.
func (c *DiskCache) Put(key Digest, payload *cachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; hit is false for missing or stale entries.
func (c *DiskCache) Get(key Digest, out *cachePayload) (bool, error) {
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
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
