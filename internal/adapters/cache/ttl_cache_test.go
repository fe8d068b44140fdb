package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCache(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		rowCache := NewTTLCache[[]string](1000 * time.Second)
		defer rowCache.Stop()

		rowCache.set("popular", []string{"game-1", "game-2"})

		result := rowCache.getOrClaim("popular")
		require.False(t, result.claimed, "Expected entry to exist")
		require.True(t, result.valid)
		require.Equal(t, []string{"game-1", "game-2"}, result.data)
	})

	t.Run("getOrClaim claims when missing", func(t *testing.T) {
		t.Parallel()

		rowCache := NewTTLCache[[]string](1000 * time.Second)
		defer rowCache.Stop()

		result := rowCache.getOrClaim("popular")
		require.True(t, result.claimed, "Expected entry to not exist and get claimed")

		result = rowCache.getOrClaim("popular")
		require.False(t, result.claimed, "Expected entry to exist and not get claimed")
		require.False(t, result.valid, "Expected entry to be invalid")
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		rowCache := NewTTLCache[[]string](1000 * time.Second)
		defer rowCache.Stop()
		rowCache.set("popular", []string{"game-1"})

		rowCache.delete("popular")

		result := rowCache.getOrClaim("popular")
		require.True(t, result.claimed, "Expected to not find a value")
	})

	t.Run("delete missing entry", func(t *testing.T) {
		t.Parallel()

		rowCache := NewTTLCache[[]string](1000 * time.Second)
		defer rowCache.Stop()

		rowCache.delete("popular")

		result := rowCache.getOrClaim("popular")
		require.True(t, result.claimed, "Expected to not find a value")
	})

	t.Run("entries expire", func(t *testing.T) {
		t.Parallel()

		rowCache := NewTTLCache[[]string](10 * time.Millisecond)
		defer rowCache.Stop()
		rowCache.set("popular", []string{"game-1"})

		require.Eventually(t, func() bool {
			result := rowCache.getOrClaim("popular")
			if result.claimed {
				rowCache.delete("popular")
			}
			return result.claimed
		}, time.Second, 5*time.Millisecond)
	})
}
