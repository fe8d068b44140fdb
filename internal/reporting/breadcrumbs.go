package reporting

import (
	"fmt"

	"github.com/Amund211/gameshelf/internal/adapters/cache"
	"github.com/getsentry/sentry-go"
)

// NewEvictionBreadcrumbListener records cache evictions as breadcrumbs on hub,
// so reported errors show what the session cache dropped just before.
//
// NOTE: Runs under the cache locks. Only touches the hub.
func NewEvictionBreadcrumbListener(hub *sentry.Hub) cache.EvictionListener {
	return func(eviction cache.Eviction) {
		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     "default",
			Category: "cache.eviction",
			Message:  fmt.Sprintf("%s evicted %s", eviction.Component, eviction.Key),
			Data: map[string]any{
				"component": eviction.Component,
				"key":       eviction.Key,
				"reason":    string(eviction.Reason),
			},
			Level: sentry.LevelInfo,
		}, nil)
	}
}
