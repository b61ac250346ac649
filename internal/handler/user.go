package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobportal/internal/errs"
	"github.com/deppfellow/jobportal/internal/middleware"
	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/server"
	"github.com/deppfellow/jobportal/internal/service"
)

// UserHandler serves registration and the /me endpoints of the
// authenticated user.
type UserHandler struct {
	Handler
	services *service.Services
}

func NewUserHandler(s *server.Server, services *service.Services) *UserHandler {
	return &UserHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

func currentUser(c echo.Context) (*model.User, error) {
	user := middleware.GetUser(c)
	if user == nil {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}
	return user, nil
}

func (h *UserHandler) Register(c echo.Context, req *service.RegisterInput) (*model.User, error) {
	return h.services.Auth.Register(c.Request().Context(), *req)
}

func (h *UserHandler) Profile(c echo.Context, _ *EmptyRequest) (*model.User, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.services.Users.Profile(c.Request().Context(), user.ID)
}

// UpdateProfile changes the given fields; missing or blank ones keep
// their value.
func (h *UserHandler) UpdateProfile(c echo.Context, req *service.ProfileUpdate) (*model.User, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.services.Users.UpdateProfile(c.Request().Context(), user.ID, *req)
}

func (h *UserHandler) Apply(c echo.Context, req *ApplyRequest) (*model.Application, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.services.Applications.Apply(c.Request().Context(), user.ID, req.JobID)
}

func (h *UserHandler) Applications(c echo.Context, _ *EmptyRequest) ([]service.ApplicationView, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.services.Applications.ListForUser(c.Request().Context(), user.ID)
}

func (h *UserHandler) Withdraw(c echo.Context, req *IDRequest) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return h.services.Applications.Withdraw(c.Request().Context(), user.ID, req.ID)
}

func (h *UserHandler) Interviews(c echo.Context, _ *EmptyRequest) ([]service.InterviewView, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	return h.services.Interviews.ListForUser(c.Request().Context(), user.ID)
}
