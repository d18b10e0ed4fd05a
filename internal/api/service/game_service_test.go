package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchpoint/internal/db"
	"matchpoint/internal/game"
	"matchpoint/internal/repository"
	"matchpoint/internal/session"
)

// recordingNotifier captures every published snapshot.
type recordingNotifier struct {
	published []game.Snapshot
}

func (n *recordingNotifier) Publish(_ string, snap game.Snapshot) {
	n.published = append(n.published, snap)
}

func newTestService(t *testing.T) (GameService, *recordingNotifier) {
	t.Helper()

	pool, err := db.Connect()
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	require.NoError(t, db.Initialize(pool))

	notifier := &recordingNotifier{}
	svc := NewGameService(session.NewManager(time.Minute), repository.NewResultRepository(pool), notifier)
	return svc, notifier
}

func TestGameService_SessionLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, snap, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, game.PlayerX, snap.Turn)

	got, err := svc.State(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	_, err = svc.State(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGameService_SubmitMove(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()

	id, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	snap, accepted, err := svc.SubmitMove(ctx, id, 4)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.Equal(t, game.PlayerX, snap.Board[4])
	assert.Equal(t, game.PlayerO, snap.Turn)
	assert.Len(t, notifier.published, 1)

	// Rejected moves leave state untouched and publish nothing.
	snap2, accepted, err := svc.SubmitMove(ctx, id, 4)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, snap, snap2)
	assert.Len(t, notifier.published, 1)

	_, _, err = svc.SubmitMove(ctx, "missing", 0)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGameService_FinishedRoundsLandInLedger(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	// X wins round 1 on the first column.
	for _, idx := range []int{0, 1, 3, 4, 6} {
		_, accepted, err := svc.SubmitMove(ctx, id, idx)
		require.NoError(t, err)
		require.True(t, accepted)
	}

	snap, err := svc.StartNewRound(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, game.PlayerO, snap.Starter)
	assert.Equal(t, game.Score{XWins: 1}, snap.Scores)

	// Round 2, opened by O, is a draw: O X O / O X X / X O O.
	for _, idx := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
		_, accepted, err := svc.SubmitMove(ctx, id, idx)
		require.NoError(t, err)
		require.True(t, accepted)
	}

	results, err := svc.Results(ctx, id)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 1, results[0].Round)
	assert.Equal(t, game.Won, results[0].Outcome)
	assert.Equal(t, game.PlayerX, results[0].Winner)

	assert.Equal(t, 2, results[1].Round)
	assert.Equal(t, game.Draw, results[1].Outcome)
	assert.Equal(t, game.None, results[1].Winner)

	_, err = svc.Results(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGameService_StartNewMatchResetsEverything(t *testing.T) {
	svc, notifier := newTestService(t)
	ctx := context.Background()

	id, _, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	for _, idx := range []int{0, 1, 3, 4, 6} {
		_, _, err := svc.SubmitMove(ctx, id, idx)
		require.NoError(t, err)
	}

	snap, err := svc.StartNewMatch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, game.Score{}, snap.Scores)
	assert.Equal(t, game.PlayerX, snap.Starter)
	assert.NotEmpty(t, notifier.published)

	_, err = svc.StartNewMatch(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
