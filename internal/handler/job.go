package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/server"
	"github.com/deppfellow/jobportal/internal/service"
)

type JobHandler struct {
	Handler
	jobs *service.JobPostingService
}

func NewJobHandler(s *server.Server, jobs *service.JobPostingService) *JobHandler {
	return &JobHandler{
		Handler: NewHandler(s),
		jobs:    jobs,
	}
}

// Search lists postings matching ?skills= and ?location=, each with its
// company.
func (h *JobHandler) Search(c echo.Context, req *service.JobSearch) ([]service.JobListing, error) {
	ctx := c.Request().Context()

	jobs, err := h.jobs.Search(ctx, *req)
	if err != nil {
		return nil, err
	}
	return h.jobs.WithCompanies(ctx, jobs)
}

func (h *JobHandler) Get(c echo.Context, req *IDRequest) (*service.JobListing, error) {
	return h.jobs.Listing(c.Request().Context(), req.ID)
}

func (h *JobHandler) Post(c echo.Context, req *service.PostJobInput) (*model.JobPosting, error) {
	return h.jobs.Post(c.Request().Context(), *req)
}
