// Package database owns the PostgreSQL connection lifecycle.
//
// It handles:
//   - building the DSN from config
//   - creating the pgx connection pool lazily, and again after Close
//   - handing out fresh single connections the caller owns
//   - wiring query tracing/logging (pgx tracelog)
//   - optional New Relic instrumentation (nrpgx5)
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/config"
	loggerConfig "github.com/deppfellow/jobportal/internal/logger"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

// DatabasePingTimeout bounds the ping issued when a pool is created.
const DatabasePingTimeout = 10 * time.Second

// Database is the connection provider shared by every repository.
//
// The pool is created on first use. Close drops it and the next call to
// Pool creates a new one, so a provider survives a closed pool.
type Database struct {
	cfg           *config.Config
	log           *zerolog.Logger
	loggerService *loggerConfig.LoggerService

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// multiTracer chains several pgx query tracers into the single
// ConnConfig.Tracer slot (New Relic plus local SQL logging).
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt.tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt.tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

// New returns a provider for cfg. It does not connect.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) *Database {
	return &Database{
		cfg:           cfg,
		log:           logger,
		loggerService: loggerService,
	}
}

// tracer builds the query tracer for the current environment, or nil.
func (db *Database) tracer() pgx.QueryTracer {
	var tracers []pgx.QueryTracer

	if db.loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// SQL logging is noisy, so only the local environment gets it.
	if db.cfg.Primary.Env == "local" {
		globalLevel := db.log.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		})
	}

	switch len(tracers) {
	case 0:
		return nil
	case 1:
		return tracers[0]
	default:
		return &multiTracer{tracers: tracers}
	}
}

func (db *Database) poolConfig() (*pgxpool.Config, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(db.cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	dbCfg := db.cfg.Database
	pgxPoolConfig.MaxConns = int32(dbCfg.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(dbCfg.MaxIdleConns, dbCfg.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(dbCfg.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(dbCfg.ConnMaxIdleTime) * time.Second

	if t := db.tracer(); t != nil {
		pgxPoolConfig.ConnConfig.Tracer = t
	}

	return pgxPoolConfig, nil
}

// Pool returns the live pool, creating it when absent.
//
// Failures wrap sqlerr.ErrConnection so callers classify them as
// connectivity errors. Only the calling operation fails; the next call
// tries again.
func (db *Database) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.pool != nil {
		return db.pool, nil
	}

	pgxPoolConfig, err := db.poolConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sqlerr.ErrConnection, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create pgx pool: %w", sqlerr.ErrConnection, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, DatabasePingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %w", sqlerr.ErrConnection, err)
	}

	db.log.Info().
		Int32("max_conns", pgxPoolConfig.MaxConns).
		Msg("connected to the database")

	db.pool = pool
	return pool, nil
}

// Fresh opens a new single connection outside the pool. The caller owns
// it and must Close it.
func (db *Database) Fresh(ctx context.Context) (*pgx.Conn, error) {
	connConfig, err := pgx.ParseConfig(db.cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse connection config: %w", sqlerr.ErrConnection, err)
	}

	if t := db.tracer(); t != nil {
		connConfig.Tracer = t
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sqlerr.ErrConnection, err)
	}

	return conn, nil
}

// WithQueryTimeout derives a context bounded by database.query_timeout.
// A zero timeout leaves ctx unbounded.
func (db *Database) WithQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.cfg.Database.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.cfg.Database.QueryTimeout)
}

// Close closes the pool if one exists. It never fails; calling it twice
// or before any connection was made is harmless.
func (db *Database) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.pool == nil {
		return nil
	}

	db.log.Info().Msg("closing database connection pool")
	db.pool.Close()
	db.pool = nil

	return nil
}
