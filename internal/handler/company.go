package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/server"
	"github.com/deppfellow/jobportal/internal/service"
)

type CompanyHandler struct {
	Handler
	companies *service.CompanyService
}

func NewCompanyHandler(s *server.Server, companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		Handler:   NewHandler(s),
		companies: companies,
	}
}

func (h *CompanyHandler) Create(c echo.Context, req *service.CreateCompanyInput) (*model.Company, error) {
	return h.companies.Create(c.Request().Context(), *req)
}

// List returns every company, or the companies named exactly ?name=.
func (h *CompanyHandler) List(c echo.Context, req *ListCompaniesRequest) ([]model.Company, error) {
	ctx := c.Request().Context()
	if req.Name == "" {
		return h.companies.List(ctx)
	}

	company, err := h.companies.FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return []model.Company{}, nil
	}
	return []model.Company{*company}, nil
}

// Get returns the company with its postings.
func (h *CompanyHandler) Get(c echo.Context, req *IDRequest) (*service.CompanyWithJobs, error) {
	return h.companies.WithJobs(c.Request().Context(), req.ID)
}
