package reporting

import (
	"context"
	"maps"
	"time"
)

type reportingMetaContextKey struct{}

// ReportingMeta is attached to every Sentry event reported from a request
type ReportingMeta struct {
	tags      map[string]string
	extras    map[string]string
	userID    string
	startedAt time.Time
}

func MetaFromContext(ctx context.Context) ReportingMeta {
	meta, ok := ctx.Value(reportingMetaContextKey{}).(ReportingMeta)
	if !ok {
		return ReportingMeta{
			tags:   make(map[string]string),
			extras: make(map[string]string),
		}
	}
	return ReportingMeta{
		tags:      maps.Clone(meta.tags),
		extras:    maps.Clone(meta.extras),
		userID:    meta.userID,
		startedAt: meta.startedAt,
	}
}

func updateMetaInContext(ctx context.Context, update func(meta *ReportingMeta)) context.Context {
	meta := MetaFromContext(ctx)
	update(&meta)
	return context.WithValue(ctx, reportingMetaContextKey{}, meta)
}

func setStartedAtInContext(ctx context.Context, startedAt time.Time) context.Context {
	return updateMetaInContext(ctx, func(meta *ReportingMeta) {
		meta.startedAt = startedAt
	})
}

func AddExtrasToContext(ctx context.Context, extras map[string]string) context.Context {
	return updateMetaInContext(ctx, func(meta *ReportingMeta) {
		maps.Copy(meta.extras, extras)
	})
}

func AddTagsToContext(ctx context.Context, tags map[string]string) context.Context {
	return updateMetaInContext(ctx, func(meta *ReportingMeta) {
		maps.Copy(meta.tags, tags)
	})
}

func SetUserIDInContext(ctx context.Context, userID string) context.Context {
	return updateMetaInContext(ctx, func(meta *ReportingMeta) {
		meta.userID = userID
	})
}
