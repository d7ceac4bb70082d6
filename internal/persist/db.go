package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/l1jgo/arcade/internal/config"
)

const pingTimeout = 5 * time.Second

// DB wraps a pgx connection pool.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

// poolConfig turns the database section into a pgxpool config. Zero limits
// keep the pgx defaults.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = min(int32(cfg.MaxIdleConns), poolCfg.MaxConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	return poolCfg, nil
}

// NewDB connects and pings. It does not touch the schema; see Open.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	log.Debug("database connected",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return &DB{Pool: pool, log: log}, nil
}

// Open connects and applies pending migrations, returning the schema version.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, int64, error) {
	db, err := NewDB(ctx, cfg, log)
	if err != nil {
		return nil, 0, err
	}
	version, err := RunMigrations(ctx, db.Pool, log)
	if err != nil {
		db.Close()
		return nil, 0, err
	}
	log.Debug("schema ready", zap.Int64("version", version))
	return db, version, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}
