package cache

import (
	"sync"
	"time"
)

type basicCacheEntry[T any] struct {
	data  T
	valid bool
}

// basicCache never expires entries
type basicCache[T any] struct {
	entries map[string]basicCacheEntry[T]
	mu      sync.Mutex
}

func (c *basicCache[T]) getOrClaim(key string) hitResult[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.entries[key]
	if ok {
		return hitResult[T]{
			data:    existing.data,
			valid:   existing.valid,
			claimed: false,
		}
	}

	c.entries[key] = basicCacheEntry[T]{valid: false}
	return hitResult[T]{
		valid:   false,
		claimed: true,
	}
}

func (c *basicCache[T]) set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = basicCacheEntry[T]{data: data, valid: true}
}

func (c *basicCache[T]) delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *basicCache[T]) wait() {
	time.Sleep(10 * time.Millisecond)
}

// NewBasicCache is for tests and local experiments where entries should never expire
func NewBasicCache[T any]() *basicCache[T] {
	return &basicCache[T]{
		entries: make(map[string]basicCacheEntry[T]),
	}
}
