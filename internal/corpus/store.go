package corpus

import (
	"sync"

	"submatch/internal/fingerprint"
)

// Item is one stored (path, fingerprint set) pair.
type Item struct {
	Path string
	Set  fingerprint.Set
}

// Store maps file paths to their fingerprint sets. Insertion order is
// preserved so matching and reports stay deterministic across runs. Add is
// safe for concurrent use; the store is read-only once a corpus is built.
type Store struct {
	mu    sync.Mutex
	order []string
	sets  map[string]fingerprint.Set
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{sets: make(map[string]fingerprint.Set)}
}

// Add inserts or overwrites the entry for path. Re-adding an existing path
// keeps its original position.
func (s *Store) Add(path string, set fingerprint.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sets[path]; !ok {
		s.order = append(s.order, path)
	}
	s.sets[path] = set
}

// Get returns the fingerprint set stored for path.
func (s *Store) Get(path string) (fingerprint.Set, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[path]
	return set, ok
}

// Items returns the stored pairs in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, 0, len(s.order))
	for _, path := range s.order {
		items = append(items, Item{Path: path, Set: s.sets[path]})
	}
	return items
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
