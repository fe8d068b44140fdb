package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var ErrEmptyKey = errors.New("empty key")
var ErrInvalidCapacity = errors.New("capacity must be positive")

type EvictionReason string

const (
	// The structure grew past its capacity bound
	EvictionReasonCapacity EvictionReason = "capacity"
	// The entry was removed because the list key tracker evicted the same key
	EvictionReasonCascade EvictionReason = "cascade"
)

type Eviction struct {
	Component string
	Key       string
	Reason    EvictionReason
}

// Called synchronously while the evicting structure holds its lock.
// Listeners must not call back into the structure that evicted, or into a Session wrapping it.
type EvictionListener func(Eviction)

type cacheMetricsCollection struct {
	evictions metric.Int64Counter
	lookups   metric.Int64Counter
}

var metrics cacheMetricsCollection

func init() {
	const name = "gameshelf/cache"
	meter := otel.Meter(name)

	evictions, err := meter.Int64Counter(
		"cache/evictions",
		metric.WithDescription("Number of keys evicted from the session caches"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create evictions metric: %w", err))
	}

	lookups, err := meter.Int64Counter(
		"cache/lookups",
		metric.WithDescription("Number of session cache lookups"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create lookups metric: %w", err))
	}

	metrics = cacheMetricsCollection{
		evictions: evictions,
		lookups:   lookups,
	}
}

type evictionNotifier struct {
	component string
	logger    *slog.Logger
	listeners []EvictionListener
}

func newEvictionNotifier(component string, logger *slog.Logger, listeners []EvictionListener) evictionNotifier {
	return evictionNotifier{
		component: component,
		logger:    logger,
		listeners: listeners,
	}
}

func (n evictionNotifier) notify(key string, reason EvictionReason) error {
	n.logger.Info("Evicted key", "key", key, "reason", string(reason))

	metrics.evictions.Add(
		context.Background(),
		1,
		metric.WithAttributes(
			attribute.String("component", n.component),
			attribute.String("reason", string(reason)),
		),
	)

	eviction := Eviction{Component: n.component, Key: key, Reason: reason}
	var errs error
	for _, listener := range n.listeners {
		errs = errors.Join(errs, guard(func() error {
			listener(eviction)
			return nil
		}))
	}
	if errs != nil {
		return fmt.Errorf("eviction listener failed: %w", errs)
	}
	return nil
}

// guard runs f, converting a panic into an error
func guard(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered panic: %v", r)
		}
	}()
	return f()
}

func recordLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	metrics.lookups.Add(
		context.Background(),
		1,
		metric.WithAttributes(attribute.String("result", result)),
	)
}
