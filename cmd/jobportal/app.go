package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/deppfellow/jobportal/internal/config"
	"github.com/deppfellow/jobportal/internal/logger"
	"github.com/deppfellow/jobportal/internal/repository"
	"github.com/deppfellow/jobportal/internal/server"
	"github.com/deppfellow/jobportal/internal/service"
)

const shutdownTimeout = 30 * time.Second

// app is what every command starts from.
type app struct {
	server   *server.Server
	services *service.Services
}

// bootstrap loads the configuration and builds the server, repositories
// and services. Logs go to logOut.
func bootstrap(logOut io.Writer) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithWriter(cfg.Observability, loggerService, logOut)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return nil, fmt.Errorf("initializing server: %w", err)
	}

	services, err := service.NewService(srv, repository.NewRepositories(srv))
	if err != nil {
		loggerService.Shutdown()
		return nil, fmt.Errorf("initializing services: %w", err)
	}

	return &app{server: srv, services: services}, nil
}

// close releases the database pool and redis, then flushes New Relic.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.server.Logger.Error().Err(err).Msg("shutdown failed")
	}
	a.server.LoggerService.Shutdown()
}
