package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Entry is one cached model response.
type Entry struct {
	Key       string    `json:"key"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"createdAt"`
}

// Cache is a directory of JSON entries. A disabled Cache misses on every Get
// and ignores Put.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
	now     func() time.Time
}

// New creates a Cache. If dir is empty the default cache directory is used.
// A ttlSeconds of zero or less keeps entries forever.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	c := &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlSeconds) * time.Second,
		enabled: enabled,
		now:     time.Now,
	}
	if !enabled {
		return c, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return c, nil
}

// Key derives the entry key for a request.
func Key(provider, model, prompt string) string {
	h := sha256.New()
	for _, part := range []string{provider, model, prompt} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached entry for key.
func (c *Cache) Get(key string) (Entry, bool) {
	if !c.enabled {
		return Entry{}, false
	}
	path := c.entryPath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Key != key {
		return Entry{}, false
	}
	if c.expired(entry) {
		os.Remove(path)
		return Entry{}, false
	}
	return entry, true
}

// Put stores a response under key.
func (c *Cache) Put(key, provider, model, response string) error {
	if !c.enabled {
		return nil
	}
	data, err := json.Marshal(Entry{
		Key:       key,
		Provider:  provider,
		Model:     model,
		Response:  response,
		CreatedAt: c.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	tmp := c.entryPath(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := os.Rename(tmp, c.entryPath(key)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were deleted. It works on
// disabled caches too, so stale entries can be dropped after turning caching off.
func (c *Cache) Clear() (int, error) {
	names, err := c.entryNames()
	if err != nil {
		return 0, err
	}
	removed := 0
	var errs []error
	for _, name := range names {
		if err := os.Remove(filepath.Join(c.dir, name)); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// Stats describes the cache directory.
type Stats struct {
	Dir        string
	Enabled    bool
	Entries    int
	Expired    int
	TotalBytes int64
}

// Stats walks the cache directory.
func (c *Cache) Stats() (Stats, error) {
	stats := Stats{Dir: c.dir, Enabled: c.enabled}
	names, err := c.entryNames()
	if err != nil {
		return stats, err
	}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(c.dir, name))
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += int64(len(data))

		var entry Entry
		if json.Unmarshal(data, &entry) == nil && c.expired(entry) {
			stats.Expired++
		}
	}
	return stats, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Enabled reports whether Get and Put are active.
func (c *Cache) Enabled() bool { return c.enabled }

func (c *Cache) expired(e Entry) bool {
	return c.ttl > 0 && c.now().Sub(e.CreatedAt) > c.ttl
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *Cache) entryNames() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// DefaultDir returns the platform cache directory for srclens.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "srclens"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "srclens"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "srclens", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "srclens", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "srclens"), nil
	}
}
