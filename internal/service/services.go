package service

import (
	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/lib/job"
	"github.com/deppfellow/jobportal/internal/repository"
	"github.com/deppfellow/jobportal/internal/server"
)

type Services struct {
	Auth         *AuthService
	Users        *UserService
	Companies    *CompanyService
	JobPostings  *JobPostingService
	Applications *ApplicationService
	Interviews   *InterviewService
	Navigator    *Navigator
	Job          *job.JobService
}

// NewService builds every service over repos. Notifications go through
// s.Job when the queue is configured and are dropped otherwise.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier Notifier = NopNotifier{}
	if s.Job != nil {
		notifier = s.Job
	}

	services := New(repos, notifier, s.Config.Auth.BcryptCost, s.Logger)
	services.Job = s.Job
	return services, nil
}

// New wires the services from explicit dependencies.
func New(repos *repository.Repositories, notifier Notifier, bcryptCost int, logger *zerolog.Logger) *Services {
	nav := NewNavigator(repos)
	auth := NewAuthService(repos.Users, notifier, bcryptCost, logger)

	return &Services{
		Auth:         auth,
		Users:        NewUserService(repos.Users, auth, logger),
		Companies:    NewCompanyService(repos.Companies, nav, logger),
		JobPostings:  NewJobPostingService(repos.JobPostings, repos.Companies, nav, logger),
		Applications: NewApplicationService(repos, nav, notifier, logger),
		Interviews:   NewInterviewService(repos, nav, logger),
		Navigator:    nav,
	}
}
