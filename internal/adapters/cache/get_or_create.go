package cache

import (
	"context"
	"fmt"

	"github.com/Amund211/gameshelf/internal/logging"
)

// GetOrCreate returns the cached value for key, calling create on a miss.
// Concurrent callers for the same key wait for the first one instead of calling create themselves.
//
// Returns data, created, error
func GetOrCreate[T any](ctx context.Context, cache Cache[T], key string, create func() (T, error)) (T, bool, error) {
	logger := logging.FromContext(ctx)

	// Release the claim if create fails so that other callers can try again
	claimed := false
	set := false
	defer func() {
		if claimed && !set {
			cache.delete(key)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			var empty T
			return empty, false, fmt.Errorf("gave up waiting for cache entry: %w", err)
		}

		result := cache.getOrClaim(key)

		if result.claimed {
			claimed = true

			logger.InfoContext(ctx, "Getting cache entry", "key", key, "cache", "miss")

			data, err := create()
			if err != nil {
				var empty T
				return empty, false, fmt.Errorf("failed to create cache entry: %w", err)
			}

			cache.set(key, data)
			set = true

			return data, true, nil
		}

		if result.valid {
			logger.InfoContext(ctx, "Getting cache entry", "key", key, "cache", "hit")
			return result.data, false, nil
		}

		logger.InfoContext(ctx, "Waiting for cache", "key", key)
		cache.wait()
	}
}
