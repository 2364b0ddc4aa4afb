package pagecache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	page    *Page
	tags    []string
	expires time.Time
}

// MemoryStore keeps pages in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	byTag   map[string]map[string]struct{}
	gens    map[string]int64
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		byTag:   make(map[string]map[string]struct{}),
		gens:    make(map[string]int64),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Page, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expires.IsZero() && !s.now().Before(entry.expires) {
		s.removeLocked(key)
		return nil, false, nil
	}
	return entry.page, true, nil
}

func (s *MemoryStore) Generation(_ context.Context, tags []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generationLocked(tags), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, page *Page, tags []string, ttl time.Duration, generation int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generationLocked(tags) != generation {
		return ErrStale
	}

	s.removeLocked(key)

	entry := memoryEntry{page: page, tags: tags}
	if ttl > 0 {
		entry.expires = s.now().Add(ttl)
	}
	s.entries[key] = entry
	for _, tag := range tags {
		keys, ok := s.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

func (s *MemoryStore) InvalidateTag(_ context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.byTag[tag] {
		s.removeLocked(key)
	}
	delete(s.byTag, tag)
	s.gens[tag]++
	return nil
}

// Len returns the number of stored pages, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) generationLocked(tags []string) int64 {
	var sum int64
	for _, tag := range tags {
		sum += s.gens[tag]
	}
	return sum
}

func (s *MemoryStore) removeLocked(key string) {
	entry, ok := s.entries[key]
	if !ok {
		return
	}
	delete(s.entries, key)
	for _, tag := range entry.tags {
		if keys, ok := s.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.byTag, tag)
			}
		}
	}
}
