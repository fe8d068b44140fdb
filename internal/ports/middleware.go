package ports

import (
	"net/http"

	"github.com/Amund211/gameshelf/internal/ratelimiting"
)

func NewRateLimitMiddleware(rateLimiter ratelimiting.RequestRateLimiter, onLimitExceeded http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !rateLimiter.Consume(r) {
				onLimitExceeded(w, r)
				return
			}

			next(w, r)
		}
	}
}

func writeRateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"success":false,"cause":"rate limit exceeded"}`))
}

func newKeyedRateLimitMiddleware(keyFunc func(r *http.Request) string, refillPerSecond ratelimiting.RefillPerSecond, burstSize ratelimiting.BurstSize) func(http.HandlerFunc) http.HandlerFunc {
	limiter, _ := ratelimiting.NewTokenBucketRateLimiter(refillPerSecond, burstSize)
	return NewRateLimitMiddleware(
		ratelimiting.NewRequestBasedRateLimiter(limiter, keyFunc),
		writeRateLimitExceeded,
	)
}

// newIPRateLimitMiddleware gives each client IP its own token bucket
func newIPRateLimitMiddleware(refillPerSecond ratelimiting.RefillPerSecond, burstSize ratelimiting.BurstSize) func(http.HandlerFunc) http.HandlerFunc {
	return newKeyedRateLimitMiddleware(ratelimiting.IPKeyFunc, refillPerSecond, burstSize)
}

// NOTE: Rate limiting based on user controlled value
func newUserIDRateLimitMiddleware(refillPerSecond ratelimiting.RefillPerSecond, burstSize ratelimiting.BurstSize) func(http.HandlerFunc) http.HandlerFunc {
	return newKeyedRateLimitMiddleware(ratelimiting.UserIDKeyFunc, refillPerSecond, burstSize)
}

func ComposeMiddlewares(middlewares ...func(http.HandlerFunc) http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	if len(middlewares) == 1 {
		return middlewares[0]
	}
	first := middlewares[0]
	rest := ComposeMiddlewares(middlewares[1:]...)
	return func(h http.HandlerFunc) http.HandlerFunc {
		return first(rest(h))
	}
}
