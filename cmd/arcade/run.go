package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/l1jgo/arcade/internal/agent"
	"github.com/l1jgo/arcade/internal/config"
	"github.com/l1jgo/arcade/internal/data"
	"github.com/l1jgo/arcade/internal/game"
	"github.com/l1jgo/arcade/internal/metrics"
	"github.com/l1jgo/arcade/internal/persist"
	"github.com/l1jgo/arcade/internal/scripting"
)

// Brain choices for --brain.
const (
	brainAuto      = "auto"
	brainHeuristic = "heuristic"
	brainLua       = "lua"
)

// newBrain picks the agent implementation. auto uses the Lua scripts when the
// scripts directory exists and the built-in heuristic otherwise. The returned
// func releases the brain's resources.
func newBrain(kind, scriptsDir string, log *zap.Logger) (agent.Brain, string, func(), error) {
	if kind == brainAuto {
		kind = brainHeuristic
		if st, err := os.Stat(scriptsDir); err == nil && st.IsDir() {
			kind = brainLua
		}
	}
	switch kind {
	case brainHeuristic:
		return agent.Heuristic{}, kind, func() {}, nil
	case brainLua:
		engine, err := scripting.NewEngine(scriptsDir, log)
		if err != nil {
			return nil, "", nil, fmt.Errorf("load agent scripts: %w", err)
		}
		return engine, kind, engine.Close, nil
	default:
		return nil, "", nil, fmt.Errorf("unknown brain %q (want %s, %s or %s)", kind, brainAuto, brainHeuristic, brainLua)
	}
}

// session is a game plus everything built around it for one command.
type session struct {
	game      *game.Game
	collector *metrics.Collector
	brain     string
	close     func()
}

func newSession(cfg *config.Config, log *zap.Logger, brainKind string) (*session, error) {
	tpl, err := data.LoadTemplates(cfg.Data.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	brain, kind, closeBrain, err := newBrain(brainKind, cfg.Agent.ScriptsDir, log)
	if err != nil {
		return nil, err
	}
	collector := metrics.NewCollector()
	g, err := game.New(game.Deps{
		Config:    cfg,
		Templates: tpl,
		Brain:     brain,
		Observer:  collector,
		Log:       log,
	})
	if err != nil {
		closeBrain()
		return nil, fmt.Errorf("create game: %w", err)
	}
	return &session{game: g, collector: collector, brain: kind, close: closeBrain}, nil
}

// serveMetrics exposes the collector on cfg.BindAddress until the returned
// func is called. It is a no-op when metrics are disabled.
func serveMetrics(cfg config.MetricsConfig, c *metrics.Collector, log *zap.Logger) func() {
	if !cfg.Enabled {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: cfg.BindAddress, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", zap.Error(err))
		}
	}()
	log.Info("metrics listening", zap.String("addr", cfg.BindAddress))
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// runRow summarizes a finished game for the runs table.
func runRow(g *game.Game, agentUsed bool) *persist.RunRow {
	st := g.Stats()
	row := &persist.RunRow{
		Seed:       g.Seed(),
		Score:      int32(g.Score()),
		MaxScore:   int32(g.MaxScore()),
		Won:        g.Won(),
		Frames:     int64(g.FrameCount()),
		Duration:   g.Elapsed(),
		Difficulty: g.Agent().Difficulty().String(),
		AgentUsed:  agentUsed,
		Spawned:    int64(st.Spawned),
		Destroyed:  int64(st.Destroyed),
		Escaped:    int64(st.Escaped),
		Shots:      int64(st.Shots),
		Explosions: int64(st.Explosions),
	}
	for _, ps := range g.PoolStats() {
		row.Pools = append(row.Pools, persist.PoolRow{
			Name:      ps.Name,
			Capacity:  int32(ps.Capacity),
			Acquired:  int64(ps.Acquired),
			Exhausted: int64(ps.Exhausted),
		})
	}
	return row
}

// saveRun stores the run when the database is enabled. Failures are logged
// and do not fail the command: the run already happened.
func saveRun(cfg config.DatabaseConfig, row *persist.RunRow, log *zap.Logger) {
	if !cfg.Enabled {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, _, err := persist.Open(ctx, cfg, log)
	if err != nil {
		log.Error("run not saved", zap.Error(err))
		return
	}
	defer db.Close()

	id, err := persist.NewRunRepo(db).Save(ctx, row)
	if err != nil {
		log.Error("run not saved", zap.Error(err))
		return
	}
	log.Info("run saved", zap.Int64("id", id), zap.Int32("score", row.Score))
}
