package handler

import (
	"github.com/deppfellow/jobportal/internal/server"
	"github.com/deppfellow/jobportal/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health       *HealthHandler
	Companies    *CompanyHandler
	Jobs         *JobHandler
	Users        *UserHandler
	Applications *ApplicationHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		Companies:    NewCompanyHandler(s, services.Companies),
		Jobs:         NewJobHandler(s, services.JobPostings),
		Users:        NewUserHandler(s, services),
		Applications: NewApplicationHandler(s, services.Applications, services.Interviews),
	}
}
