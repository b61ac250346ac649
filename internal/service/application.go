package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/repository"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

type ApplicationService struct {
	repos    *repository.Repositories
	nav      *Navigator
	notifier Notifier
	logger   *zerolog.Logger
}

func NewApplicationService(repos *repository.Repositories, nav *Navigator, notifier Notifier, logger *zerolog.Logger) *ApplicationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ApplicationService{repos: repos, nav: nav, notifier: notifier, logger: logger}
}

// ApplicationView is an application with its job, nil when the job is gone.
type ApplicationView struct {
	model.Application
	Job *model.JobPosting `json:"job"`
}

// Apply records userID's application for jobID.
//
// An existing application for the same pair is rejected before any
// insert. The unique (job, user) constraint reports a concurrent
// duplicate the same way.
func (s *ApplicationService) Apply(ctx context.Context, userID, jobID int64) (*model.Application, error) {
	job, err := s.repos.JobPostings.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	user, err := s.repos.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.repos.Applications.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.JobID == jobID {
			return nil, ErrAlreadyApplied
		}
	}

	app := model.NewApplication(jobID, userID)
	if err := s.repos.Applications.Save(ctx, app); err != nil {
		if sqlerr.IsConstraint(err) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	s.logger.Info().
		Int64("application_id", app.ID).
		Int64("job_id", jobID).
		Int64("user_id", userID).
		Msg("application submitted")

	company, err := s.nav.CompanyOfJob(ctx, job)
	if err != nil {
		s.logger.Warn().Err(err).Int64("job_id", jobID).Msg("failed to load company for notification")
	}
	if err := s.notifier.NotifyApplicationSubmitted(ctx, user, job, company); err != nil {
		s.logger.Warn().Err(err).Int64("application_id", app.ID).Msg("failed to queue application email")
	}

	return app, nil
}

func (s *ApplicationService) Get(ctx context.Context, id int64) (*model.Application, error) {
	app, err := s.repos.Applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	return app, nil
}

// ListForUser returns userID's applications with their jobs.
func (s *ApplicationService) ListForUser(ctx context.Context, userID int64) ([]ApplicationView, error) {
	apps, err := s.repos.Applications.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]ApplicationView, 0, len(apps))
	for i := range apps {
		job, err := s.nav.JobOfApplication(ctx, &apps[i])
		if err != nil {
			return nil, err
		}
		out = append(out, ApplicationView{Application: apps[i], Job: job})
	}
	return out, nil
}

func (s *ApplicationService) ListForJob(ctx context.Context, jobID int64) ([]model.Application, error) {
	return s.repos.Applications.FindByJobID(ctx, jobID)
}

// UpdateStatus moves an application to one of the known statuses.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Application, error) {
	parsed := model.ParseApplicationStatus(status)
	if !parsed.IsKnown() {
		return nil, ErrInvalidStatus
	}

	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	app.Status = parsed
	ok, err := s.repos.Applications.Update(ctx, app)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrApplicationNotFound
	}

	s.logger.Info().Int64("application_id", id).Str("status", parsed.String()).Msg("application status changed")
	return app, nil
}

// Withdraw deletes one of userID's applications. Another user's
// application reads as absent. An application with an interview cannot
// be deleted and fails with a constraint error.
func (s *ApplicationService) Withdraw(ctx context.Context, userID, id int64) error {
	app, err := s.repos.Applications.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if app == nil || app.UserID != userID {
		return ErrApplicationNotFound
	}

	ok, err := s.repos.Applications.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrApplicationNotFound
	}

	s.logger.Info().Int64("application_id", id).Int64("user_id", userID).Msg("application withdrawn")
	return nil
}
