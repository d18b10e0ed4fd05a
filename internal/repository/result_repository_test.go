package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchpoint/internal/db"
	"matchpoint/internal/game"
)

func newTestRepo(t *testing.T) ResultRepository {
	t.Helper()

	pool, err := db.Connect()
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	require.NoError(t, db.Initialize(pool))
	return NewResultRepository(pool)
}

func TestResultRepository_RecordAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &RoundResult{
		SessionID:  "session-a",
		Round:      1,
		Outcome:    game.Won,
		Winner:     game.PlayerX,
		FinishedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Record(ctx, first))
	assert.NotZero(t, first.ID)

	second := &RoundResult{
		SessionID:  "session-a",
		Round:      2,
		Outcome:    game.Draw,
		FinishedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Record(ctx, second))

	other := &RoundResult{
		SessionID:  "session-b",
		Round:      1,
		Outcome:    game.Won,
		Winner:     game.PlayerO,
		FinishedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Record(ctx, other))

	results, err := repo.ListBySession(ctx, "session-a")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 1, results[0].Round)
	assert.Equal(t, game.Won, results[0].Outcome)
	assert.Equal(t, game.PlayerX, results[0].Winner)

	assert.Equal(t, 2, results[1].Round)
	assert.Equal(t, game.Draw, results[1].Outcome)
	assert.Equal(t, game.None, results[1].Winner)
}

func TestResultRepository_ListEmptySession(t *testing.T) {
	repo := newTestRepo(t)

	results, err := repo.ListBySession(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, results)
}
