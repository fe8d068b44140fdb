package cache

import (
	"fmt"
	"log/slog"
	"sync"

	list "github.com/bahlo/generic-list-go"
)

const entryCacheComponent = "entryCache"

type entry[V any] struct {
	key   string
	value V
}

// EntryCache is a bounded key -> value store evicting the least recently inserted entry.
//
// Re-setting a key moves it to the newest position. Reads never affect eviction order.
// Failures are logged and never returned to the caller.
type EntryCache[V any] struct {
	mu       sync.Mutex
	capacity int
	// Oldest entry at the front
	order    *list.List[entry[V]]
	index    map[string]*list.Element[entry[V]]
	logger   *slog.Logger
	notifier evictionNotifier
}

func NewEntryCache[V any](capacity int, logger *slog.Logger, listeners ...EvictionListener) (*EntryCache[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	logger = logger.With("component", entryCacheComponent)

	return &EntryCache[V]{
		capacity: capacity,
		order:    list.New[entry[V]](),
		index:    make(map[string]*list.Element[entry[V]], capacity),
		logger:   logger,
		notifier: newEvictionNotifier(entryCacheComponent, logger, listeners),
	}, nil
}

func (c *EntryCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.index[key]
	if !ok {
		var empty V
		return empty, false
	}
	return element.Value.value, true
}

func (c *EntryCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := guard(func() error {
		return c.set(key, value)
	})
	if err != nil {
		c.logger.Error("Failed to set entry", "key", key, "error", err.Error())
	}
}

func (c *EntryCache[V]) set(key string, value V) error {
	if key == "" {
		return ErrEmptyKey
	}

	if element, ok := c.index[key]; ok {
		c.order.Remove(element)
		delete(c.index, key)
	}

	c.index[key] = c.order.PushBack(entry[V]{key: key, value: value})

	return c.evictOverCapacity()
}

// evictOverCapacity removes the oldest entries until the cache is within its bound.
// Listener failures do not stop the loop.
func (c *EntryCache[V]) evictOverCapacity() error {
	var listenerErr error
	for c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.index, oldest.Value.key)

		if err := c.notifier.notify(oldest.Value.key, EvictionReasonCapacity); err != nil {
			listenerErr = err
		}
	}
	return listenerErr
}

func (c *EntryCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := guard(func() error {
		c.delete(key)
		return nil
	})
	if err != nil {
		c.logger.Error("Failed to delete entry", "key", key, "error", err.Error())
	}
}

func (c *EntryCache[V]) delete(key string) bool {
	element, ok := c.index[key]
	if !ok {
		return false
	}
	c.order.Remove(element)
	delete(c.index, key)
	return true
}

// deleteCascaded removes key on behalf of the list key tracker
func (c *EntryCache[V]) deleteCascaded(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return guard(func() error {
		if !c.delete(key) {
			return nil
		}
		return c.notifier.notify(key, EvictionReasonCascade)
	})
}

func (c *EntryCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.index = make(map[string]*list.Element[entry[V]], c.capacity)
}

func (c *EntryCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

// Keys returns the cached keys from oldest to newest
func (c *EntryCache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.order.Len())
	for element := c.order.Front(); element != nil; element = element.Next() {
		keys = append(keys, element.Value.key)
	}
	return keys
}

func (c *EntryCache[V]) Capacity() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.capacity
}

// SetCapacity changes the bound, evicting the oldest entries right away if the cache is now too large.
// Non-positive capacities are rejected and logged.
func (c *EntryCache[V]) SetCapacity(capacity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := guard(func() error {
		if capacity <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
		}
		c.capacity = capacity
		return c.evictOverCapacity()
	})
	if err != nil {
		c.logger.Error("Failed to set capacity", "capacity", capacity, "error", err.Error())
	}
}
