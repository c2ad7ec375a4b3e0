package daily

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-09", DateKey(ts))
}

func TestPairIndexDeterministicAndBounded(t *testing.T) {
	ts := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

	a := PairIndex(ts, "salt", 12)
	b := PairIndex(ts, "salt", 12)
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 12)

	// Different salt or date may pick a different puzzle; zero pairs is safe.
	assert.Equal(t, 0, PairIndex(ts, "salt", 0))
}

const dailyDDL = `
CREATE TABLE daily_results (
    player_id  TEXT NOT NULL,
    date       TEXT NOT NULL,
    pair_index INTEGER NOT NULL,
    turns      INTEGER NOT NULL,
    elapsed_ms INTEGER NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(player_id, date)
);`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(dailyDDL)
	require.NoError(t, err)
	return NewStore(db)
}

func TestStoreOncePerDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	played, err := s.AlreadyPlayed(ctx, "p1", "2024-03-09")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "p1", Date: "2024-03-09", PairIndex: 3, Turns: 4, ElapsedMs: 9000}))
	// Second insert for the same day is ignored, not an error.
	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "p1", Date: "2024-03-09", PairIndex: 3, Turns: 1, ElapsedMs: 10}))

	played, err = s.AlreadyPlayed(ctx, "p1", "2024-03-09")
	require.NoError(t, err)
	assert.True(t, played)

	rows, err := s.Leaderboard(ctx, "2024-03-09", 20)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].Turns, "the first result stands")
}

func TestLeaderboardOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "slow", Date: "2024-03-09", Turns: 5, ElapsedMs: 1000}))
	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "fast", Date: "2024-03-09", Turns: 2, ElapsedMs: 8000}))
	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "quick", Date: "2024-03-09", Turns: 2, ElapsedMs: 2000}))
	require.NoError(t, s.InsertResult(ctx, Result{PlayerID: "other-day", Date: "2024-03-10", Turns: 1, ElapsedMs: 1}))

	rows, err := s.Leaderboard(ctx, "2024-03-09", 20)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "quick", rows[0].PlayerID, "fewest turns, then fastest")
	assert.Equal(t, "fast", rows[1].PlayerID)
	assert.Equal(t, "slow", rows[2].PlayerID)
}
