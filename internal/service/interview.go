package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/repository"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

type InterviewService struct {
	repos  *repository.Repositories
	nav    *Navigator
	logger *zerolog.Logger
}

func NewInterviewService(repos *repository.Repositories, nav *Navigator, logger *zerolog.Logger) *InterviewService {
	return &InterviewService{repos: repos, nav: nav, logger: logger}
}

// InterviewView is an interview with the job it is for, nil when absent.
type InterviewView struct {
	model.Interview
	Job *model.JobPosting `json:"job"`
}

// Schedule books the single interview an application may have.
func (s *InterviewService) Schedule(ctx context.Context, applicationID int64, date time.Time) (*model.Interview, error) {
	app, err := s.repos.Applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	existing, err := s.nav.InterviewOfApplication(ctx, app)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrInterviewExists
	}

	interview := model.NewInterview(app.ID, date)
	if err := s.repos.Interviews.Save(ctx, interview); err != nil {
		if sqlerr.IsConstraint(err) {
			return nil, ErrInterviewExists
		}
		return nil, err
	}

	s.logger.Info().
		Int64("interview_id", interview.ID).
		Int64("application_id", app.ID).
		Time("scheduled_date", interview.ScheduledDate).
		Msg("interview scheduled")
	return interview, nil
}

// ListForUser returns the interviews across all of userID's applications.
func (s *InterviewService) ListForUser(ctx context.Context, userID int64) ([]InterviewView, error) {
	apps, err := s.repos.Applications.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]InterviewView, 0)
	for i := range apps {
		interview, err := s.nav.InterviewOfApplication(ctx, &apps[i])
		if err != nil {
			return nil, err
		}
		if interview == nil {
			continue
		}

		job, err := s.nav.JobOfApplication(ctx, &apps[i])
		if err != nil {
			return nil, err
		}
		out = append(out, InterviewView{Interview: *interview, Job: job})
	}
	return out, nil
}

func (s *InterviewService) Get(ctx context.Context, id int64) (*model.Interview, error) {
	interview, err := s.repos.Interviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, ErrInterviewNotFound
	}
	return interview, nil
}

// Complete closes an interview with feedback.
func (s *InterviewService) Complete(ctx context.Context, id int64, feedback string) (*model.Interview, error) {
	return s.transition(ctx, id, model.InterviewCompleted, &feedback)
}

func (s *InterviewService) Cancel(ctx context.Context, id int64) (*model.Interview, error) {
	return s.transition(ctx, id, model.InterviewCancelled, nil)
}

func (s *InterviewService) transition(ctx context.Context, id int64, status model.InterviewStatus, feedback *string) (*model.Interview, error) {
	interview, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	interview.Status = status
	if feedback != nil {
		interview.Feedback = *feedback
	}

	ok, err := s.repos.Interviews.Update(ctx, interview)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInterviewNotFound
	}

	s.logger.Info().Int64("interview_id", id).Str("status", status.String()).Msg("interview updated")
	return interview, nil
}

func (s *InterviewService) FindByStatus(ctx context.Context, status model.InterviewStatus) ([]model.Interview, error) {
	return s.repos.Interviews.FindByStatus(ctx, status)
}

// Between lists interviews scheduled from start to end, both days included.
func (s *InterviewService) Between(ctx context.Context, start, end time.Time) ([]model.Interview, error) {
	return s.repos.Interviews.FindByDateRange(ctx, start, end)
}

func (s *InterviewService) List(ctx context.Context) ([]model.Interview, error) {
	return s.repos.Interviews.FindAll(ctx)
}
