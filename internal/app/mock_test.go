package app_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/Amund211/gameshelf/internal/adapters/cache"
	"github.com/Amund211/gameshelf/internal/domain"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestSession(t *testing.T, entryCapacity, listKeyCapacity int) *cache.Session[domain.Game] {
	t.Helper()
	session, err := cache.NewSession[domain.Game](entryCapacity, listKeyCapacity, testLogger)
	require.NoError(t, err)
	return session
}

type mockGameProvider struct {
	t *testing.T

	mu sync.Mutex

	games    map[string]domain.Game
	getErr   error
	getCalls []string

	rows          map[string][]domain.Game
	rowErr        error
	rowCalls      []string
	expectedLimit int
}

func (m *mockGameProvider) GetGame(ctx context.Context, id string) (domain.Game, error) {
	m.t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	m.getCalls = append(m.getCalls, id)
	if m.getErr != nil {
		return domain.Game{}, m.getErr
	}
	game, ok := m.games[id]
	if !ok {
		return domain.Game{}, domain.ErrGameNotFound
	}
	return game, nil
}

func (m *mockGameProvider) GetListRow(ctx context.Context, row domain.ListRow, limit int) ([]domain.Game, error) {
	m.t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	require.Equal(m.t, m.expectedLimit, limit)

	m.rowCalls = append(m.rowCalls, row.Key())
	if m.rowErr != nil {
		return nil, m.rowErr
	}
	return m.rows[row.Key()], nil
}

func game(id, title string) domain.Game {
	return domain.Game{ID: id, Title: title}
}
