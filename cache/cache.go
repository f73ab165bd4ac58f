package cache

import (
	"fmt"
	"log/slog"

	"github.com/casualjim/rxagent/pkg/jsonx"
	"github.com/casualjim/rxagent/pkg/slogx"
	"github.com/goccy/go-json"
)

// Backend names a Store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendBadger Backend = "badger"
)

// Open opens the store for backend at path. For the badger backend path is a
// directory.
func Open(backend Backend, path string) (*Cache, error) {
	switch backend {
	case BackendFile, "":
		return New(OpenFile(path)), nil
	case BackendBadger:
		store, err := OpenBadger(path)
		if err != nil {
			return nil, err
		}
		return New(store), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// Cache stores tool results in a Store under their call fingerprint.
type Cache struct {
	store Store
}

// New wraps store.
func New(store Store) *Cache {
	return &Cache{store: store}
}

// Get returns the decoded result cached for tool called with args.
func (c *Cache) Get(tool string, args map[string]any) (any, bool, error) {
	key, err := Fingerprint(tool, args)
	if err != nil {
		return nil, false, err
	}
	raw, ok, err := c.store.Get(key)
	if err != nil || !ok {
		return nil, false, err
	}

	var result any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}
	slog.Debug("tool cache hit", slogx.LoggerName("cache"), slogx.Tool(tool), slogx.Fingerprint(key))
	return result, true, nil
}

// Put records result for tool called with args.
func (c *Cache) Put(tool string, args map[string]any, result any) error {
	key, err := Fingerprint(tool, args)
	if err != nil {
		return err
	}
	raw, err := jsonx.Canonical(result)
	if err != nil {
		return fmt.Errorf("encoding %s result: %w", tool, err)
	}
	return c.store.Put(key, raw)
}

// Len returns the number of cached results.
func (c *Cache) Len() (int, error) {
	return c.store.Len()
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}
