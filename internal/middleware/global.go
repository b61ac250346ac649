package middleware

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/errs"
	"github.com/deppfellow/jobportal/internal/server"
	"github.com/deppfellow/jobportal/internal/service"
	"github.com/deppfellow/jobportal/internal/sqlerr"
	"github.com/deppfellow/jobportal/internal/validation"
)

type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" line per request. The level follows the
// final status, which for a failed handler is taken from the error since
// the error handler has not written the response yet.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status
			if v.Error != nil {
				var httpErr *errs.HTTPError
				if errors.As(translateError(v.Error), &httpErr) {
					statusCode = httpErr.Status
				}
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

func code(c string) *string { return &c }

// translateError maps any handler error onto an *errs.HTTPError: Echo
// errors, validation failures, the service sentinels and, last, storage
// failures through sqlerr.HandleError.
func translateError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound:
			return errs.NewNotFoundError("Route not found", false, nil)
		case http.StatusUnauthorized:
			return errs.NewUnauthorizedError("Invalid email or password", true)
		}
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = http.StatusText(echoErr.Code)
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: msg,
			Status:  echoErr.Code,
		}
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return validation.ValidationError(validationErrors)
	}

	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return errs.NewConflictError("Email already registered", true, code("USER_ALREADY_EXISTS"))
	case errors.Is(err, service.ErrAlreadyApplied):
		return errs.NewConflictError("You have already applied for this job", true, code("APPLICATION_ALREADY_EXISTS"))
	case errors.Is(err, service.ErrInterviewExists):
		return errs.NewConflictError("An interview is already scheduled for this application", true, code("INTERVIEW_ALREADY_EXISTS"))
	case errors.Is(err, service.ErrInvalidCredentials):
		return errs.NewUnauthorizedError("Invalid email or password", true)
	case errors.Is(err, service.ErrInvalidStatus):
		return errs.NewBadRequestError("Unknown status", true, code("INVALID_STATUS"), nil, nil)
	case errors.Is(err, service.ErrUserNotFound):
		return errs.NewNotFoundError("User not found", true, code("USER_NOT_FOUND"))
	case errors.Is(err, service.ErrCompanyNotFound):
		return errs.NewNotFoundError("Company not found", true, code("COMPANY_NOT_FOUND"))
	case errors.Is(err, service.ErrJobNotFound):
		return errs.NewNotFoundError("Job posting not found", true, code("JOB_POSTING_NOT_FOUND"))
	case errors.Is(err, service.ErrApplicationNotFound):
		return errs.NewNotFoundError("Application not found", true, code("APPLICATION_NOT_FOUND"))
	case errors.Is(err, service.ErrInterviewNotFound):
		return errs.NewNotFoundError("Interview not found", true, code("INTERVIEW_NOT_FOUND"))
	}

	return sqlerr.HandleError(err)
}

// GlobalErrorHandler is the Echo HTTPErrorHandler. The original error is
// logged; the client only sees the translated HTTPError.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	var httpErr *errs.HTTPError
	if !errors.As(translateError(err), &httpErr) {
		httpErr = errs.NewInternalServerError()
	}

	logger := GetLogger(c)
	event := logger.Warn()
	if httpErr.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	}
	event.
		Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if httpErr.Status == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, `basic realm="`+authRealm+`"`)
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(httpErr.Status)
			return
		}
		_ = c.JSON(httpErr.Status, httpErr)
	}
}
