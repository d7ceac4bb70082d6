package persist

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l1jgo/arcade/internal/config"
)

// openTestDB connects to ARCADE_TEST_DSN, migrates, and empties the tables.
// Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("ARCADE_TEST_DSN")
	if dsn == "" {
		t.Skip("ARCADE_TEST_DSN not set")
	}
	ctx := context.Background()
	cfg := config.Defaults().Database
	cfg.DSN = dsn
	db, err := NewDB(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	version, err := RunMigrations(ctx, db.Pool, zap.NewNop())
	require.NoError(t, err)
	require.GreaterOrEqual(t, version, int64(2))

	_, err = db.Pool.Exec(ctx, `TRUNCATE runs CASCADE`)
	require.NoError(t, err)
	return db
}

func TestRunRepo_SaveAndTop(t *testing.T) {
	db := openTestDB(t)
	repo := NewRunRepo(db)
	ctx := context.Background()

	runs := []*RunRow{
		{Seed: 1, Score: 5, MaxScore: 20, Frames: 600, Duration: 10 * time.Second, Difficulty: "easy"},
		{Seed: 2, Score: 20, MaxScore: 20, Won: true, Frames: 900, Duration: 15 * time.Second, Difficulty: "hard", AgentUsed: true},
		{Seed: 3, Score: 20, MaxScore: 20, Won: true, Frames: 700, Duration: 12 * time.Second, Difficulty: "medium",
			Pools: []PoolRow{
				{Name: "asteroids", Capacity: 3, Acquired: 40, Exhausted: 12},
				{Name: "explosions", Capacity: 5, Acquired: 30},
			}},
	}
	for _, run := range runs {
		id, err := repo.Save(ctx, run)
		require.NoError(t, err)
		assert.Equal(t, id, run.ID)
		assert.False(t, run.CreatedAt.IsZero())
	}

	top, err := repo.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(3), top[0].Seed, "ties broken by shorter duration")
	assert.Equal(t, int64(2), top[1].Seed)
	assert.Equal(t, 12*time.Second, top[0].Duration)
	assert.True(t, top[1].AgentUsed)

	pools, err := repo.Pools(ctx, runs[2].ID)
	require.NoError(t, err)
	assert.Equal(t, runs[2].Pools, pools)

	all, err := repo.Top(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
