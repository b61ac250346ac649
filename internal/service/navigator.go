package service

import (
	"context"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/repository"
)

// Navigator follows the foreign keys between records.
//
// Every call queries storage again; nothing is cached. A nil input or a
// missing record anywhere along the path yields (nil, nil), so chained
// lookups need no intermediate checks. Errors are storage failures only.
type Navigator struct {
	repos *repository.Repositories
}

func NewNavigator(repos *repository.Repositories) *Navigator {
	return &Navigator{repos: repos}
}

func (n *Navigator) CompanyOfJob(ctx context.Context, job *model.JobPosting) (*model.Company, error) {
	if job == nil {
		return nil, nil
	}
	return n.repos.Companies.FindByID(ctx, job.CompanyID)
}

func (n *Navigator) JobPostingsOfCompany(ctx context.Context, company *model.Company) ([]model.JobPosting, error) {
	if company == nil {
		return nil, nil
	}
	return n.repos.JobPostings.FindByCompanyID(ctx, company.ID)
}

func (n *Navigator) ApplicationsOfJob(ctx context.Context, job *model.JobPosting) ([]model.Application, error) {
	if job == nil {
		return nil, nil
	}
	return n.repos.Applications.FindByJobID(ctx, job.ID)
}

func (n *Navigator) ApplicationsOfUser(ctx context.Context, user *model.User) ([]model.Application, error) {
	if user == nil {
		return nil, nil
	}
	return n.repos.Applications.FindByUserID(ctx, user.ID)
}

func (n *Navigator) JobOfApplication(ctx context.Context, app *model.Application) (*model.JobPosting, error) {
	if app == nil {
		return nil, nil
	}
	return n.repos.JobPostings.FindByID(ctx, app.JobID)
}

func (n *Navigator) UserOfApplication(ctx context.Context, app *model.Application) (*model.User, error) {
	if app == nil {
		return nil, nil
	}
	return n.repos.Users.FindByID(ctx, app.UserID)
}

func (n *Navigator) InterviewOfApplication(ctx context.Context, app *model.Application) (*model.Interview, error) {
	if app == nil {
		return nil, nil
	}
	return n.repos.Interviews.FindByApplicationID(ctx, app.ID)
}

func (n *Navigator) ApplicationOfInterview(ctx context.Context, interview *model.Interview) (*model.Application, error) {
	if interview == nil {
		return nil, nil
	}
	return n.repos.Applications.FindByID(ctx, interview.ApplicationID)
}

func (n *Navigator) JobOfInterview(ctx context.Context, interview *model.Interview) (*model.JobPosting, error) {
	app, err := n.ApplicationOfInterview(ctx, interview)
	if err != nil {
		return nil, err
	}
	return n.JobOfApplication(ctx, app)
}

func (n *Navigator) UserOfInterview(ctx context.Context, interview *model.Interview) (*model.User, error) {
	app, err := n.ApplicationOfInterview(ctx, interview)
	if err != nil {
		return nil, err
	}
	return n.UserOfApplication(ctx, app)
}
