package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/model"
)

type CompanyService struct {
	companies model.CompanyRepository
	nav       *Navigator
	logger    *zerolog.Logger
}

func NewCompanyService(companies model.CompanyRepository, nav *Navigator, logger *zerolog.Logger) *CompanyService {
	return &CompanyService{companies: companies, nav: nav, logger: logger}
}

type CreateCompanyInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Location string `json:"location" validate:"max=100"`
	Industry string `json:"industry" validate:"max=100"`
}

func (in *CreateCompanyInput) Validate() error {
	return validate.Struct(in)
}

// CompanyWithJobs is a company together with its postings.
type CompanyWithJobs struct {
	model.Company
	Jobs []model.JobPosting `json:"jobs"`
}

func (s *CompanyService) Create(ctx context.Context, in CreateCompanyInput) (*model.Company, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	company := model.NewCompany(in.Name, strings.TrimSpace(in.Location), strings.TrimSpace(in.Industry))
	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("company_id", company.ID).Str("name", company.Name).Msg("company created")
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, id int64) (*model.Company, error) {
	company, err := s.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}

// FindByName returns (nil, nil) when no company has exactly that name.
func (s *CompanyService) FindByName(ctx context.Context, name string) (*model.Company, error) {
	return s.companies.FindByName(ctx, strings.TrimSpace(name))
}

func (s *CompanyService) List(ctx context.Context) ([]model.Company, error) {
	return s.companies.FindAll(ctx)
}

func (s *CompanyService) WithJobs(ctx context.Context, id int64) (*CompanyWithJobs, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	jobs, err := s.nav.JobPostingsOfCompany(ctx, company)
	if err != nil {
		return nil, err
	}

	return &CompanyWithJobs{Company: *company, Jobs: jobs}, nil
}
