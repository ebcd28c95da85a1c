// Package db opens the PostgreSQL pool shared by every repository.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/yigit/camnote/internal/config"
)

const connectTimeout = 10 * time.Second

// PoolConfig translates the database section into pool settings. Queries
// slower or noisier than warn level are reported through lgr.
func PoolConfig(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("conn_max_lifetime: %w", err)
	}

	pc.MaxConns = int32(cfg.Database.MaxOpenConns)
	pc.MinConns = int32(cfg.Database.MaxIdleConns)
	pc.MaxConnLifetime = lifetime

	pc.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			lgr.Warn().Err(err).Msg("Dropping unhealthy connection")
			return false
		}
		return true
	}

	pc.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   zerologAdapter(lgr),
		LogLevel: tracelog.LogLevelWarn,
	}
	return pc, nil
}

func zerologAdapter(lgr zerolog.Logger) tracelog.LoggerFunc {
	return func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		var ev *zerolog.Event
		switch level {
		case tracelog.LogLevelError:
			ev = lgr.Error()
		case tracelog.LogLevelWarn:
			ev = lgr.Warn()
		case tracelog.LogLevelInfo:
			ev = lgr.Info()
		default:
			ev = lgr.Debug()
		}
		ev.Fields(data).Str("component", "pgx").Msg(msg)
	}
}

// Connect opens the pool and verifies it with a ping.
func Connect(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	pc, err := PoolConfig(cfg, lgr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
