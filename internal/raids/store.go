package raids

import "sync"

// Store holds the currently loaded collection behind a lock so the API
// server can keep serving while a reload (file watcher, manual refresh)
// swaps in a fresh one. Engines never see the store; they take the
// snapshot a handler read from it.
type Store struct {
	mu       sync.RWMutex
	current  *Collection
	loadErrs []error
}

// NewStore creates a store seeded with a collection and the per-file
// errors its load produced.
func NewStore(c *Collection, loadErrs []error) *Store {
	return &Store{current: c, loadErrs: loadErrs}
}

// Set replaces the current collection.
func (s *Store) Set(c *Collection, loadErrs []error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
	s.loadErrs = loadErrs
}

// Collection returns the current collection snapshot.
func (s *Store) Collection() *Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LoadErrors returns the per-file errors from the last load.
func (s *Store) LoadErrors() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	errs := make([]error, len(s.loadErrs))
	copy(errs, s.loadErrs)
	return errs
}
