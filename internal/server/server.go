// Package server defines the core Server struct that composes the app's
// main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - the database connection provider
//   - the optional redis client and the job service built on it
//   - the http.Server, when the API is served
//
// The console, the API and the worker all start from the same Server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/config"
	"github.com/deppfellow/jobportal/internal/database"
	"github.com/deppfellow/jobportal/internal/lib/email"
	"github.com/deppfellow/jobportal/internal/lib/job"
	loggerPkg "github.com/deppfellow/jobportal/internal/logger"
)

const redisPingTimeout = 5 * time.Second

// Server is the application container that holds shared resources.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// DB connects lazily on first use.
	DB *database.Database

	// Redis and Job are nil when no redis address is configured.
	Redis *redis.Client
	Job   *job.JobService

	httpServer *http.Server
}

// New constructs a Server. Nothing here fails on an unreachable
// database or redis: the database connects on first query, and a redis
// that does not answer the startup ping is logged and kept.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("server: config and logger are required")
	}

	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            database.New(cfg, logger, loggerService),
	}

	if !cfg.Redis.Enabled() {
		logger.Info().Msg("redis not configured, notifications disabled")
		return s, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("redis did not answer, notifications may be delayed")
	}

	s.Redis = redisClient
	s.Job = job.NewJobService(redisClient, email.NewClient(cfg, logger), logger, loggerService)

	return s, nil
}

// SetupHTTPServer configures the net/http server around handler.
// Config timeouts are seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start serves HTTP until Shutdown. It requires SetupHTTPServer.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops whatever was started: the HTTP server (waiting for
// in-flight requests until ctx ends), the job worker, the database pool
// and the redis client.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	return nil
}
