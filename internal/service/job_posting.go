package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/model"
)

type JobPostingService struct {
	jobs      model.JobPostingRepository
	companies model.CompanyRepository
	nav       *Navigator
	logger    *zerolog.Logger
}

func NewJobPostingService(
	jobs model.JobPostingRepository,
	companies model.CompanyRepository,
	nav *Navigator,
	logger *zerolog.Logger,
) *JobPostingService {
	return &JobPostingService{jobs: jobs, companies: companies, nav: nav, logger: logger}
}

type PostJobInput struct {
	CompanyID      int64  `json:"company_id" validate:"required,min=1"`
	Title          string `json:"title" validate:"required,max=200"`
	Description    string `json:"description" validate:"max=5000"`
	Location       string `json:"location" validate:"max=100"`
	SkillsRequired string `json:"skills_required" validate:"max=500"`
}

func (in *PostJobInput) Validate() error {
	return validate.Struct(in)
}

// JobSearch filters postings. Empty fields do not filter; when both are
// set a posting must match both.
type JobSearch struct {
	Skills   string `query:"skills" validate:"max=200"`
	Location string `query:"location" validate:"max=100"`
}

func (q *JobSearch) Validate() error {
	return validate.Struct(q)
}

// JobListing is a posting with its company, nil when the company is gone.
type JobListing struct {
	model.JobPosting
	Company *model.Company `json:"company"`
}

func (s *JobPostingService) Post(ctx context.Context, in PostJobInput) (*model.JobPosting, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	company, err := s.companies.FindByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	job := model.NewJobPosting(company.ID, in.Title, strings.TrimSpace(in.Description),
		strings.TrimSpace(in.Location), model.JoinSkills(model.SplitSkills(in.SkillsRequired)))
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("job_id", job.ID).Int64("company_id", company.ID).Msg("job posted")
	return job, nil
}

func (s *JobPostingService) Get(ctx context.Context, id int64) (*model.JobPosting, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

func (s *JobPostingService) Search(ctx context.Context, q JobSearch) ([]model.JobPosting, error) {
	skills, location := strings.TrimSpace(q.Skills), strings.TrimSpace(q.Location)

	switch {
	case skills == "" && location == "":
		return s.jobs.FindAll(ctx)
	case location == "":
		return s.jobs.SearchBySkills(ctx, skills)
	case skills == "":
		return s.jobs.SearchByLocation(ctx, location)
	}

	bySkills, err := s.jobs.SearchBySkills(ctx, skills)
	if err != nil {
		return nil, err
	}
	byLocation, err := s.jobs.SearchByLocation(ctx, location)
	if err != nil {
		return nil, err
	}

	inLocation := make(map[int64]struct{}, len(byLocation))
	for _, j := range byLocation {
		inLocation[j.ID] = struct{}{}
	}

	out := make([]model.JobPosting, 0, len(bySkills))
	for _, j := range bySkills {
		if _, ok := inLocation[j.ID]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

// WithCompanies pairs each posting with its company.
func (s *JobPostingService) WithCompanies(ctx context.Context, jobs []model.JobPosting) ([]JobListing, error) {
	out := make([]JobListing, 0, len(jobs))
	for i := range jobs {
		company, err := s.nav.CompanyOfJob(ctx, &jobs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, JobListing{JobPosting: jobs[i], Company: company})
	}
	return out, nil
}

func (s *JobPostingService) Listing(ctx context.Context, id int64) (*JobListing, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	company, err := s.nav.CompanyOfJob(ctx, job)
	if err != nil {
		return nil, err
	}

	return &JobListing{JobPosting: *job, Company: company}, nil
}
