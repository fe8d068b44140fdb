package cache

import (
	"fmt"
	"log/slog"
)

// Session holds the process-wide entry cache and list key tracker.
// Construct it once at startup and pass it to every consumer.
type Session[V any] struct {
	entries  *EntryCache[V]
	listKeys *ListKeyTracker
}

type SessionStats struct {
	Entries         int
	EntryCapacity   int
	ListKeys        int
	ListKeyCapacity int
}

// NewSession passes listeners to both structures.
// A listener runs while the evicting structure, and for cascades also the tracker, is locked,
// so it must not call any method on the session.
func NewSession[V any](entryCapacity int, listKeyCapacity int, logger *slog.Logger, listeners ...EvictionListener) (*Session[V], error) {
	entries, err := NewEntryCache[V](entryCapacity, logger, listeners...)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry cache: %w", err)
	}

	listKeys, err := NewListKeyTracker(listKeyCapacity, entries, logger, listeners...)
	if err != nil {
		return nil, fmt.Errorf("failed to create list key tracker: %w", err)
	}

	return &Session[V]{
		entries:  entries,
		listKeys: listKeys,
	}, nil
}

func (s *Session[V]) Entries() *EntryCache[V] {
	return s.entries
}

func (s *Session[V]) ListKeys() *ListKeyTracker {
	return s.listKeys
}

// Lookup is the read side of cache-aside. Only fetch from the source when this misses.
func (s *Session[V]) Lookup(key string) (V, bool) {
	value, ok := s.entries.Get(key)
	recordLookup(ok)
	return value, ok
}

// StoreDetail caches a value fetched for a single-item view
func (s *Session[V]) StoreDetail(key string, value V) {
	s.entries.Set(key, value)
}

// StoreListed caches a value fetched for a list view and tracks its key as list-sourced.
// Returns the list key evicted to make room, if any.
func (s *Session[V]) StoreListed(key string, value V) (string, bool) {
	s.entries.Set(key, value)
	return s.listKeys.Add(key)
}

// Reset drops every cached entry. Tracked list keys are kept.
func (s *Session[V]) Reset() {
	s.entries.Clear()
}

func (s *Session[V]) Stats() SessionStats {
	return SessionStats{
		Entries:         s.entries.Len(),
		EntryCapacity:   s.entries.Capacity(),
		ListKeys:        s.listKeys.Size(),
		ListKeyCapacity: s.listKeys.Capacity(),
	}
}
