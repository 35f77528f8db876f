package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/logger"
)

// Compile-time interface check.
var _ domain.Store = (*FileStore)(nil)

// FileStore persists the key space as a single JSON document on disk.
// Writes are flushed immediately; there is no shutdown hook guaranteed
// to run, so every mutation must already be durable. All I/O failures
// are logged and swallowed: a failed write degrades durability, never
// in-memory operation.
type FileStore struct {
	path string
	log  *logger.Logger

	mu     sync.RWMutex
	values map[string]string
}

// NewFileStore loads (or initializes) the store backed by path. A
// missing file yields an empty store; a corrupt file is logged and
// treated as empty rather than failing startup.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	s := &FileStore{
		path:   path,
		log:    log,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("storage: reading %s: %v (starting empty)", path, err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		log.Warn("storage: corrupt store file %s: %v (starting empty)", path, err)
		s.values = make(map[string]string)
	}
	return s
}

// Get returns the value for key and whether it was present.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores a value and flushes to disk.
func (s *FileStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.flushLocked()
}

// Remove deletes a key and flushes to disk.
func (s *FileStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.flushLocked()
}

// Clear wipes every key and flushes to disk.
func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
	s.flushLocked()
}

// flushLocked writes the whole document. Write-to-temp-then-rename so
// a crash mid-write never leaves a truncated store behind.
func (s *FileStore) flushLocked() {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		s.log.Error("storage: marshaling store: %v", err)
		return
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.log.Error("storage: creating %s: %v", dir, err)
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.log.Error("storage: writing %s: %v", tmp, err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.Error("storage: replacing %s: %v", s.path, err)
	}
}
