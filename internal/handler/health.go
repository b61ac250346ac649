package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobportal/internal/middleware"
	"github.com/deppfellow/jobportal/internal/server"
)

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type check struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string           `json:"status"`
	Timestamp   time.Time        `json:"timestamp"`
	Environment string           `json:"environment"`
	Checks      map[string]check `json:"checks"`
}

// CheckHealth probes the dependencies named in the health check config:
// the database and, when configured, redis. It answers 503 when the
// database is unreachable; a failing redis only delays notifications and
// is reported without failing the check. With checks disabled it only
// reports that the process is up.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]check),
	}

	checks := h.server.Config.Observability.HealthChecks
	if !checks.Enabled {
		return c.JSON(http.StatusOK, response)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), checks.Timeout)
	defer cancel()

	if checks.Includes("database") {
		dbStart := time.Now()
		err := h.pingDatabase(ctx)
		response.Checks["database"] = h.record("database", dbStart, err)
		if err != nil {
			response.Status = "unhealthy"
			logger.Error().Err(err).Dur("response_time", time.Since(dbStart)).Msg("database health check failed")
		}
	}

	if checks.Includes("redis") && h.server.Redis != nil {
		redisStart := time.Now()
		err := h.server.Redis.Ping(ctx).Err()
		response.Checks["redis"] = h.record("redis", redisStart, err)
		if err != nil {
			logger.Error().Err(err).Dur("response_time", time.Since(redisStart)).Msg("redis health check failed")
		}
	}

	if response.Status != "healthy" {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	pool, err := h.server.DB.Pool(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// record builds the check entry and reports failures as HealthCheckError
// events.
func (h *HealthHandler) record(name string, start time.Time, err error) check {
	elapsed := time.Since(start)
	if err == nil {
		return check{Status: "healthy", ResponseTime: elapsed.String()}
	}

	h.server.LoggerService.RecordEvent("HealthCheckError", map[string]interface{}{
		"check_type":       name,
		"operation":        "health_check",
		"error_type":       name + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})

	return check{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
}
