package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roombooking/src/infra/config"
	"roombooking/src/infra/logger"
)

// ErrNoURL is returned by Dial when no connection string is configured.
var ErrNoURL = errors.New("database url is not configured")

// Postgres wraps a pgx connection pool with helper methods.
type Postgres struct {
	Pool *pgxpool.Pool
	log  *slog.Logger
}

// Dial opens a connection pool bounded by cfg and verifies it with a ping.
func Dial(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Postgres, error) {
	if cfg.URL == "" {
		return nil, ErrNoURL
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MinOpenConns)
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	if cfg.StatementTimeout > 0 {
		poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}
	poolCfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		logger.Debug(log, "physical connection opened", "pid", conn.PgConn().PID())
		return nil
	}
	poolCfg.BeforeClose = func(conn *pgx.Conn) {
		logger.Debug(log, "physical connection closed", "pid", conn.PgConn().PID())
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx := ctx
	if cfg.PingTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{
		Pool: pool,
		log:  log,
	}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

// Health checks if the database is reachable.
func (p *Postgres) Health(ctx context.Context) error {
	if p.Pool == nil {
		return errors.New("database pool is not initialized")
	}
	return p.Pool.Ping(ctx)
}
