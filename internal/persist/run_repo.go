package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// DefaultTopLimit is how many runs Top returns when asked for none.
const DefaultTopLimit = 10

// RunRow is one finished run.
type RunRow struct {
	ID         int64
	Seed       int64
	Score      int32
	MaxScore   int32
	Won        bool
	Frames     int64
	Duration   time.Duration
	Difficulty string
	AgentUsed  bool
	Spawned    int64
	Destroyed  int64
	Escaped    int64
	Shots      int64
	Explosions int64
	Pools      []PoolRow
	CreatedAt  time.Time
}

// PoolRow is one pool's counters at the end of a run.
type PoolRow struct {
	Name      string
	Capacity  int32
	Acquired  int64
	Exhausted int64
}

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Save writes the run and its pool counters in one transaction and returns
// the new run ID.
func (r *RunRepo) Save(ctx context.Context, run *RunRow) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("save run begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	var createdAt time.Time
	err = tx.QueryRow(ctx,
		`INSERT INTO runs (seed, score, max_score, won, frames, duration_ms, difficulty, agent_used,
		                   spawned, destroyed, escaped, shots, explosions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at`,
		run.Seed, run.Score, run.MaxScore, run.Won, run.Frames, run.Duration.Milliseconds(),
		run.Difficulty, run.AgentUsed,
		run.Spawned, run.Destroyed, run.Escaped, run.Shots, run.Explosions,
	).Scan(&id, &createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	for _, p := range run.Pools {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_pools (run_id, pool, capacity, acquired, exhausted)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, p.Name, p.Capacity, p.Acquired, p.Exhausted,
		); err != nil {
			return 0, fmt.Errorf("insert run pool %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("save run commit: %w", err)
	}
	run.ID = id
	run.CreatedAt = createdAt
	r.db.log.Debug("run saved")
	return id, nil
}

// Top returns the best runs: highest score first, then the shortest run.
// Pool counters are not loaded.
func (r *RunRepo) Top(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, seed, score, max_score, won, frames, duration_ms, difficulty, agent_used,
		        spawned, destroyed, escaped, shots, explosions, created_at
		 FROM runs
		 ORDER BY score DESC, duration_ms ASC, id ASC
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RunRow
	for rows.Next() {
		var row RunRow
		var durationMS int64
		if err := rows.Scan(
			&row.ID, &row.Seed, &row.Score, &row.MaxScore, &row.Won, &row.Frames, &durationMS,
			&row.Difficulty, &row.AgentUsed,
			&row.Spawned, &row.Destroyed, &row.Escaped, &row.Shots, &row.Explosions, &row.CreatedAt,
		); err != nil {
			return nil, err
		}
		row.Duration = time.Duration(durationMS) * time.Millisecond
		result = append(result, row)
	}
	return result, rows.Err()
}

// Pools loads the pool counters of one run, ordered by pool name.
func (r *RunRepo) Pools(ctx context.Context, runID int64) ([]PoolRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT pool, capacity, acquired, exhausted
		 FROM run_pools
		 WHERE run_id = $1
		 ORDER BY pool`, runID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (PoolRow, error) {
		var p PoolRow
		err := row.Scan(&p.Name, &p.Capacity, &p.Acquired, &p.Exhausted)
		return p, err
	})
}
