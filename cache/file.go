package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/alphadose/haxmap"
	"github.com/casualjim/rxagent/pkg/slogx"
	"github.com/goccy/go-json"
)

// FileStore keeps every entry in memory and mirrors them to a single JSON
// object on disk.
type FileStore struct {
	path    string
	entries *haxmap.Map[string, json.RawMessage]
	// mu serializes rewrites of the backing file.
	mu sync.Mutex
}

var _ Store = (*FileStore)(nil)

// OpenFile loads the cache file at path. A missing or unreadable file yields
// an empty store; the file is created on the first Put.
func OpenFile(path string) *FileStore {
	s := &FileStore{
		path:    path,
		entries: haxmap.New[string, json.RawMessage](),
	}

	log := slog.With(slogx.LoggerName("cache.file"), slog.String("path", path))
	n, err := s.load()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("no cache file yet, starting empty")
	case err != nil:
		log.Warn("ignoring unreadable cache file", slogx.Error(err))
	default:
		log.Debug("loaded tool cache", slog.Int("entries", n))
	}
	return s
}

func (s *FileStore) load() (int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, err
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, err
	}
	for k, v := range entries {
		s.entries.Set(k, v)
	}
	return len(entries), nil
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (json.RawMessage, bool, error) {
	v, ok := s.entries.Get(key)
	return v, ok, nil
}

// Put records value and rewrites the whole file.
func (s *FileStore) Put(key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries.Set(key, value)
	return s.flush()
}

func (s *FileStore) Len() (int, error) {
	return int(s.entries.Len()), nil
}

func (s *FileStore) Close() error {
	return nil
}

// flush writes a temporary file next to the cache file and renames it into
// place, so readers never observe a half-written cache.
func (s *FileStore) flush() error {
	snapshot := make(map[string]json.RawMessage, s.entries.Len())
	s.entries.ForEach(func(k string, v json.RawMessage) bool {
		snapshot[k] = v
		return true
	})

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tool cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temporary cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing tool cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing tool cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing tool cache: %w", err)
	}
	return nil
}
