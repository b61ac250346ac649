package model

import (
	"context"
	"time"
)

// Repository conventions shared by every entity:
//
//   - Save inserts and assigns the new identity in place.
//   - Update rewrites every mutable column by ID and reports whether a
//     row matched. Delete reports the same.
//   - FindByID and the single-result finders return (nil, nil) when
//     nothing matches. List finders return an empty slice.
//   - Substring searches are case-insensitive "contains" matches.
//   - A non-nil error always means the storage call failed.

type UserRepository interface {
	Save(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindBySkills(ctx context.Context, skills string) ([]User, error)
	FindAll(ctx context.Context) ([]User, error)
}

type CompanyRepository interface {
	Save(ctx context.Context, c *Company) error
	Update(ctx context.Context, c *Company) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*Company, error)
	// FindByName is an exact match and returns the first company found.
	FindByName(ctx context.Context, name string) (*Company, error)
	FindAll(ctx context.Context) ([]Company, error)
}

type JobPostingRepository interface {
	Save(ctx context.Context, j *JobPosting) error
	Update(ctx context.Context, j *JobPosting) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*JobPosting, error)
	FindByCompanyID(ctx context.Context, companyID int64) ([]JobPosting, error)
	SearchBySkills(ctx context.Context, skills string) ([]JobPosting, error)
	SearchByLocation(ctx context.Context, location string) ([]JobPosting, error)
	FindAll(ctx context.Context) ([]JobPosting, error)
}

type ApplicationRepository interface {
	Save(ctx context.Context, a *Application) error
	Update(ctx context.Context, a *Application) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*Application, error)
	FindByJobID(ctx context.Context, jobID int64) ([]Application, error)
	FindByUserID(ctx context.Context, userID int64) ([]Application, error)
	FindAll(ctx context.Context) ([]Application, error)
}

type InterviewRepository interface {
	Save(ctx context.Context, i *Interview) error
	Update(ctx context.Context, i *Interview) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*Interview, error)
	FindByApplicationID(ctx context.Context, applicationID int64) (*Interview, error)
	FindByStatus(ctx context.Context, status InterviewStatus) ([]Interview, error)
	// FindByDateRange is inclusive at both ends.
	FindByDateRange(ctx context.Context, start, end time.Time) ([]Interview, error)
	FindAll(ctx context.Context) ([]Interview, error)
}
