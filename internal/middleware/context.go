package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/logger"
	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/server"
)

// Echo context keys.
const (
	UserIDKey = "user_id"
	UserKey   = "user"
	LoggerKey = "logger"
)

// ContextEnhancer attaches a request-scoped logger to every request.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext builds a logger carrying request_id, method, path, ip and
// the New Relic trace ids, and stores it in both the Echo context and the
// request context (see zerolog.Ctx). It must run after RequestID and the New Relic middleware.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			storeLogger(c, contextLogger)
			return next(c)
		}
	}
}

func storeLogger(c echo.Context, l zerolog.Logger) {
	c.Set(LoggerKey, &l)
	c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
}

// setUser records the authenticated user on the request: in the Echo
// context, on the request logger and on the New Relic transaction.
func setUser(c echo.Context, user *model.User) {
	id := strconv.FormatInt(user.ID, 10)
	c.Set(UserKey, user)
	c.Set(UserIDKey, id)

	storeLogger(c, GetLogger(c).With().Str("user_id", id).Logger())

	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.AddAttribute("user.id", id)
	}
}

// GetUser returns the user set by RequireAuth, or nil.
func GetUser(c echo.Context) *model.User {
	if user, ok := c.Get(UserKey).(*model.User); ok {
		return user
	}
	return nil
}

func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger returns the request logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	l := zerolog.Nop()
	return &l
}
