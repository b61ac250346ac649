package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/server"
)

const authRealm = "Job Portal"

// Authenticator checks an email and password pair. It returns (nil, nil)
// when they do not match.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

type AuthMiddleware struct {
	server *server.Server
	auth   Authenticator
}

func NewAuthMiddleware(s *server.Server, auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auth:   auth,
	}
}

// RequireAuth enforces HTTP Basic authentication with the user's email
// and password. On success the user is stored in the Echo context under
// UserKey and its id under UserIDKey.
//
// Wrong credentials answer 401 with a WWW-Authenticate challenge; a
// storage failure while checking them reaches the global error handler.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: authRealm,
		Validator: func(email, password string, c echo.Context) (bool, error) {
			start := time.Now()

			user, err := auth.auth.Authenticate(c.Request().Context(), email, password)
			if err != nil {
				return false, err
			}
			if user == nil {
				GetLogger(c).Warn().
					Str("function", "RequireAuth").
					Dur("duration", time.Since(start)).
					Msg("invalid credentials")
				return false, nil
			}

			setUser(c, user)

			GetLogger(c).Debug().
				Str("function", "RequireAuth").
				Int64("user_id", user.ID).
				Dur("duration", time.Since(start)).
				Msg("user authenticated successfully")

			return true, nil
		},
	})(next)
}
