package dncheck

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	tt "github.com/dnlab/dncheck/internal/types"
)

const cacheFileName = "dncheck_cache.gob"

type fileStamp struct {
	Hash         string
	LastModified time.Time
}

type cacheEntry struct {
	Stamp        fileStamp
	Fingerprint  string
	Verdict      tt.Verdict
	CreatedAt    time.Time
	LastAccessed time.Time
}

// verdictCache keeps verdicts for unchanged files across runs. Entries
// are keyed by path and dropped when the file content, the checking
// options, or the entry age no longer match.
type verdictCache struct {
	dir         string
	entries     map[string]cacheEntry
	mutex       sync.RWMutex
	maxAge      time.Duration
	fingerprint string
}

func openCache(dir string, maxAge time.Duration, fingerprint string) (*verdictCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	cache := &verdictCache{
		dir:         dir,
		entries:     make(map[string]cacheEntry),
		maxAge:      maxAge,
		fingerprint: fingerprint,
	}
	cache.load()
	return cache, nil
}

// load reads the cache file if one exists. A missing or corrupt cache
// is disposable, so load never fails the open.
func (c *verdictCache) load() {
	file, err := os.Open(filepath.Join(c.dir, cacheFileName))
	if err != nil {
		return
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&c.entries); err != nil {
		c.entries = make(map[string]cacheEntry)
	}
}

func (c *verdictCache) save() error {
	file, err := os.Create(filepath.Join(c.dir, cacheFileName))
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("encoding cache file: %w", err)
	}
	return nil
}

func (c *verdictCache) get(path string) (tt.Verdict, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.entries[path]
	if !ok {
		return tt.Verdict{}, false
	}

	if c.isEntryStale(path, entry) {
		delete(c.entries, path)
		return tt.Verdict{}, false
	}

	entry.LastAccessed = time.Now()
	c.entries[path] = entry

	return entry.Verdict, true
}

func (c *verdictCache) set(path string, verdict tt.Verdict) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	stamp, err := stampFile(path)
	if err != nil {
		return fmt.Errorf("fingerprinting %s: %w", path, err)
	}

	c.entries[path] = cacheEntry{
		Stamp:        stamp,
		Fingerprint:  c.fingerprint,
		Verdict:      verdict,
		CreatedAt:    time.Now(),
		LastAccessed: time.Now(),
	}
	return c.save()
}

func (c *verdictCache) setFingerprint(fingerprint string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.fingerprint = fingerprint
}

func (c *verdictCache) isEntryStale(path string, entry cacheEntry) bool {
	if time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}
	if entry.Fingerprint != c.fingerprint {
		return true
	}

	stamp, err := stampFile(path)
	if err != nil {
		return true
	}
	if stamp.Hash != entry.Stamp.Hash || !stamp.LastModified.Equal(entry.Stamp.LastModified) {
		return true
	}
	return false
}

func stampFile(path string) (fileStamp, error) {
	file, err := os.Open(path)
	if err != nil {
		return fileStamp{}, err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileStamp{}, err
	}

	info, err := file.Stat()
	if err != nil {
		return fileStamp{}, err
	}

	return fileStamp{
		Hash:         fmt.Sprintf("%x", hash.Sum(nil)),
		LastModified: info.ModTime(),
	}, nil
}

// configFingerprint identifies the effective checking options: the
// depth limit plus the codes switched off.
func configFingerprint(maxDepth int, disabled map[string]bool) string {
	codes := make([]string, 0, len(disabled))
	for code, off := range disabled {
		if off {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return fmt.Sprintf("depth=%d;off=%s", maxDepth, strings.Join(codes, ","))
}
