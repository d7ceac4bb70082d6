package persist

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// gooseLogger routes goose output through zap at debug level.
type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Debugf(strings.TrimSpace(format), v...)
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Fatalf(strings.TrimSpace(format), v...)
}

// withGoose opens a database/sql handle over the pool and configures goose
// for the embedded migrations.
func withGoose(pool *pgxpool.Pool, log *zap.Logger, fn func(db *sql.DB) error) error {
	goose.SetLogger(gooseLogger{log: log.Sugar()})
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return fn(db)
}

// RunMigrations applies all pending migrations and returns the schema version
// afterwards.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) (int64, error) {
	var version int64
	err := withGoose(pool, log, func(db *sql.DB) error {
		if err := goose.UpContext(ctx, db, "migrations"); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

// SchemaVersion reports the applied schema version without migrating.
func SchemaVersion(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) (int64, error) {
	var version int64
	err := withGoose(pool, log, func(db *sql.DB) error {
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}
