package middleware

import (
	"math"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/deppfellow/jobportal/internal/errs"
	"github.com/deppfellow/jobportal/internal/server"
)

const rateLimitExpiry = 3 * time.Minute

// RateLimitMiddleware limits requests per client IP with a token bucket
// per visitor. Config.Server.RateLimit is the sustained rate in requests
// per second; zero disables limiting.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns the limiting middleware. The burst is twice the rate,
// at least one request.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	perSecond := r.server.Config.Server.RateLimit
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     int(math.Max(1, math.Ceil(2*perSecond))),
		ExpiresIn: rateLimitExpiry,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Too many requests, please slow down")
		},
	})
}

// RecordRateLimitHit records a RateLimitHit custom event when New Relic
// is enabled.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	r.server.LoggerService.RecordEvent("RateLimitHit", map[string]interface{}{
		"endpoint": endpoint,
	})
}
