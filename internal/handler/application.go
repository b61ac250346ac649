package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/server"
	"github.com/deppfellow/jobportal/internal/service"
)

const dateLayout = "2006-01-02"

// ApplicationHandler serves the recruiter side: application review and
// interview scheduling.
type ApplicationHandler struct {
	Handler
	applications *service.ApplicationService
	interviews   *service.InterviewService
}

func NewApplicationHandler(s *server.Server, applications *service.ApplicationService, interviews *service.InterviewService) *ApplicationHandler {
	return &ApplicationHandler{
		Handler:      NewHandler(s),
		applications: applications,
		interviews:   interviews,
	}
}

func (h *ApplicationHandler) Get(c echo.Context, req *IDRequest) (*model.Application, error) {
	return h.applications.Get(c.Request().Context(), req.ID)
}

func (h *ApplicationHandler) ListForJob(c echo.Context, req *IDRequest) ([]model.Application, error) {
	return h.applications.ListForJob(c.Request().Context(), req.ID)
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context, req *UpdateApplicationStatusRequest) (*model.Application, error) {
	return h.applications.UpdateStatus(c.Request().Context(), req.ID, req.Status)
}

func (h *ApplicationHandler) ScheduleInterview(c echo.Context, req *ScheduleInterviewRequest) (*model.Interview, error) {
	// Validated as a date already.
	date, _ := time.Parse(dateLayout, req.ScheduledDate)
	return h.interviews.Schedule(c.Request().Context(), req.ApplicationID, date)
}

func (h *ApplicationHandler) Interview(c echo.Context, req *IDRequest) (*model.Interview, error) {
	return h.interviews.Get(c.Request().Context(), req.ID)
}

// Interviews lists interviews, optionally filtered by ?status= or by the
// inclusive ?from=&to= range.
func (h *ApplicationHandler) Interviews(c echo.Context, req *InterviewSearchRequest) ([]model.Interview, error) {
	ctx := c.Request().Context()

	switch {
	case req.Status != "":
		return h.interviews.FindByStatus(ctx, model.ParseInterviewStatus(req.Status))
	case req.From != "":
		from, _ := time.Parse(dateLayout, req.From)
		to, _ := time.Parse(dateLayout, req.To)
		return h.interviews.Between(ctx, from, to)
	default:
		return h.interviews.List(ctx)
	}
}

// UpdateInterview completes or cancels an interview.
func (h *ApplicationHandler) UpdateInterview(c echo.Context, req *UpdateInterviewRequest) (*model.Interview, error) {
	ctx := c.Request().Context()
	if model.ParseInterviewStatus(req.Status) == model.InterviewCancelled {
		return h.interviews.Cancel(ctx, req.ID)
	}
	return h.interviews.Complete(ctx, req.ID, req.Feedback)
}
