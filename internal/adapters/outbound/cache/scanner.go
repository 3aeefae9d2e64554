package cache

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/openkraft/hubguard/internal/domain"
)

// Scanner is a domain.FileScanner that reuses cached results for files whose
// size and modification time are unchanged. It is safe for concurrent use.
type Scanner struct {
	inner domain.FileScanner

	mu    sync.Mutex
	cache *domain.ScanCache
	hits  int
	dirty bool
}

// NewScanner wraps inner with c. c must have been built for the same rule
// set as inner.
func NewScanner(inner domain.FileScanner, c *domain.ScanCache) *Scanner {
	return &Scanner{inner: inner, cache: c}
}

func (s *Scanner) ScanFile(hub domain.Hub, relPath string) ([]domain.Violation, error) {
	info, err := os.Stat(filepath.Join(hub.Path, filepath.FromSlash(relPath)))
	if err != nil {
		return s.inner.ScanFile(hub, relPath)
	}
	key := hub.Name + "/" + relPath

	s.mu.Lock()
	entry, ok := s.cache.Files[key]
	if ok && entry.Size == info.Size() && entry.ModTime == info.ModTime().UnixNano() {
		s.hits++
		s.mu.Unlock()
		return append([]domain.Violation(nil), entry.Violations...), nil
	}
	s.mu.Unlock()

	vs, err := s.inner.ScanFile(hub, relPath)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache.Files[key] = domain.CachedFile{
		Size:       info.Size(),
		ModTime:    info.ModTime().UnixNano(),
		Violations: append([]domain.Violation(nil), vs...),
	}
	s.dirty = true
	s.mu.Unlock()
	return vs, nil
}

// Hits returns how many scans were served from the cache.
func (s *Scanner) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

// Flush saves the cache through store if any entry changed.
func (s *Scanner) Flush(store domain.CacheStore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := store.Save(s.cache); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
