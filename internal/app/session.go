package app

import (
	"context"

	"github.com/Amund211/gameshelf/internal/adapters/cache"
	"github.com/Amund211/gameshelf/internal/domain"
	"github.com/Amund211/gameshelf/internal/logging"
)

type ResetSession func(ctx context.Context)

func BuildResetSession(session *cache.Session[domain.Game]) ResetSession {
	return func(ctx context.Context) {
		before := session.Stats()
		session.Reset()
		logging.FromContext(ctx).InfoContext(ctx, "Reset session cache", "droppedEntries", before.Entries)
	}
}

type GetSessionStats func(ctx context.Context) cache.SessionStats

func BuildGetSessionStats(session *cache.Session[domain.Game]) GetSessionStats {
	return func(ctx context.Context) cache.SessionStats {
		return session.Stats()
	}
}
