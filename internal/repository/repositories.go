package repository

import (
	"github.com/deppfellow/jobportal/internal/database"
	"github.com/deppfellow/jobportal/internal/model"
	"github.com/deppfellow/jobportal/internal/server"
)

// Repositories is a container for all repository instances.
//
// Fields are typed by the contracts in package model so services can
// be built over the in-memory implementations in memrepo.
type Repositories struct {
	Users        model.UserRepository
	Companies    model.CompanyRepository
	JobPostings  model.JobPostingRepository
	Applications model.ApplicationRepository
	Interviews   model.InterviewRepository
}

// NewRepositories wires the Postgres repositories onto s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return NewPostgresRepositories(s.DB)
}

func NewPostgresRepositories(db *database.Database) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Companies:    NewCompanyRepository(db),
		JobPostings:  NewJobPostingRepository(db),
		Applications: NewApplicationRepository(db),
		Interviews:   NewInterviewRepository(db),
	}
}
