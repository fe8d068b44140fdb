package cache

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

const listKeyTrackerComponent = "listKeyTracker"

type cascadeTarget interface {
	deleteCascaded(key string) error
}

// ListKeyTracker is a bounded set of keys that were populated by list views.
//
// When it grows past its bound the oldest key is dropped from the set and deleted from the entry cache.
// The cascade only goes one way: entries deleted from the entry cache stay tracked.
type ListKeyTracker struct {
	mu       sync.Mutex
	capacity int
	keys     *simplelru.LRU[string, struct{}]
	// Set by the simplelru eviction callback, read after each Add
	lastRemoved string
	entries     cascadeTarget
	logger      *slog.Logger
	notifier    evictionNotifier
}

func NewListKeyTracker[V any](capacity int, entries *EntryCache[V], logger *slog.Logger, listeners ...EvictionListener) (*ListKeyTracker, error) {
	return newListKeyTracker(capacity, entries, logger, listeners...)
}

func newListKeyTracker(capacity int, entries cascadeTarget, logger *slog.Logger, listeners ...EvictionListener) (*ListKeyTracker, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	logger = logger.With("component", listKeyTrackerComponent)

	tracker := &ListKeyTracker{
		capacity: capacity,
		entries:  entries,
		logger:   logger,
		notifier: newEvictionNotifier(listKeyTrackerComponent, logger, listeners),
	}

	keys, err := simplelru.NewLRU[string, struct{}](capacity, func(key string, _ struct{}) {
		tracker.lastRemoved = key
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create key set: %w", err)
	}
	tracker.keys = keys

	return tracker, nil
}

// Add registers key as list-sourced and returns the key evicted to make room, if any
func (t *ListKeyTracker) Add(key string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var evicted string
	var ok bool
	err := guard(func() error {
		var err error
		evicted, ok, err = t.add(key)
		return err
	})
	if err != nil {
		t.logger.Error("Failed to add key", "key", key, "error", err.Error())
		return "", false
	}
	return evicted, ok
}

func (t *ListKeyTracker) add(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	t.lastRemoved = ""
	// Add on an existing key moves it to the newest position
	if evicted := t.keys.Add(key, struct{}{}); !evicted {
		return "", false, nil
	}
	evictedKey := t.lastRemoved

	// The tracker eviction stands even if the cascade fails
	err := guard(func() error {
		return t.entries.deleteCascaded(evictedKey)
	})
	if err != nil {
		t.logger.Warn("Failed to delete evicted key from entry cache", "key", evictedKey, "error", err.Error())
	}

	if err := t.notifier.notify(evictedKey, EvictionReasonCapacity); err != nil {
		t.logger.Warn("Failed to notify eviction", "key", evictedKey, "error", err.Error())
	}

	return evictedKey, true, nil
}

func (t *ListKeyTracker) Has(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.keys.Contains(key)
}

// Remove stops tracking key. The entry cache is left untouched.
func (t *ListKeyTracker) Remove(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	err := guard(func() error {
		t.keys.Remove(key)
		return nil
	})
	if err != nil {
		t.logger.Error("Failed to remove key", "key", key, "error", err.Error())
	}
}

func (t *ListKeyTracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.keys.Len()
}

// Keys returns the tracked keys from oldest to newest
func (t *ListKeyTracker) Keys() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.keys.Keys()
}

func (t *ListKeyTracker) Capacity() int {
	return t.capacity
}
