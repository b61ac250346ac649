// Package model defines the job portal's entities and the repository
// contracts the storage layer implements.
//
// Records are plain values: an ID of zero means "not yet persisted",
// storage assigns identities starting at 1, and related records are
// reached through explicit lookups rather than embedded references.
package model

import (
	"strings"
	"time"
)

// User is a registered job seeker.
type User struct {
	ID           int64  `json:"user_id" db:"user_id"`
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Location     string `json:"location" db:"location"`
	Skills       string `json:"skills" db:"skills"`
}

// NewUser returns an unsaved user. passwordHash must already be hashed.
func NewUser(name, email, passwordHash, location, skills string) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Location:     location,
		Skills:       skills,
	}
}

// IsPersisted reports whether storage has assigned an identity.
func (u *User) IsPersisted() bool { return u.ID > 0 }

// SkillList splits Skills on commas, trimming blanks.
func (u *User) SkillList() []string { return SplitSkills(u.Skills) }

// Company posts jobs.
type Company struct {
	ID       int64  `json:"company_id" db:"company_id"`
	Name     string `json:"name" db:"name"`
	Location string `json:"location" db:"location"`
	Industry string `json:"industry" db:"industry"`
}

func NewCompany(name, location, industry string) *Company {
	return &Company{Name: name, Location: location, Industry: industry}
}

func (c *Company) IsPersisted() bool { return c.ID > 0 }

// JobPosting is an open position at a Company.
type JobPosting struct {
	ID             int64     `json:"job_id" db:"job_id"`
	CompanyID      int64     `json:"company_id" db:"company_id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	Location       string    `json:"location" db:"location"`
	SkillsRequired string    `json:"skills_required" db:"skills_required"`
	DatePosted     time.Time `json:"date_posted" db:"date_posted"`
}

// NewJobPosting returns an unsaved posting dated today.
func NewJobPosting(companyID int64, title, description, location, skillsRequired string) *JobPosting {
	return &JobPosting{
		CompanyID:      companyID,
		Title:          title,
		Description:    description,
		Location:       location,
		SkillsRequired: skillsRequired,
		DatePosted:     Today(),
	}
}

func (j *JobPosting) IsPersisted() bool { return j.ID > 0 }

func (j *JobPosting) SkillList() []string { return SplitSkills(j.SkillsRequired) }

// Application links a User to a JobPosting.
type Application struct {
	ID              int64             `json:"application_id" db:"application_id"`
	JobID           int64             `json:"job_id" db:"job_id"`
	UserID          int64             `json:"user_id" db:"user_id"`
	ApplicationDate time.Time         `json:"application_date" db:"application_date"`
	Status          ApplicationStatus `json:"status" db:"status"`
}

// NewApplication returns an unsaved, pending application dated today.
func NewApplication(jobID, userID int64) *Application {
	return &Application{
		JobID:           jobID,
		UserID:          userID,
		ApplicationDate: Today(),
		Status:          ApplicationPending,
	}
}

func (a *Application) IsPersisted() bool { return a.ID > 0 }

// Interview is scheduled against exactly one Application.
type Interview struct {
	ID            int64           `json:"interview_id" db:"interview_id"`
	ApplicationID int64           `json:"application_id" db:"application_id"`
	ScheduledDate time.Time       `json:"scheduled_date" db:"scheduled_date"`
	Status        InterviewStatus `json:"status" db:"status"`
	Feedback      string          `json:"feedback" db:"feedback"`
}

// NewInterview returns an unsaved interview in the Scheduled state.
func NewInterview(applicationID int64, scheduledDate time.Time) *Interview {
	return &Interview{
		ApplicationID: applicationID,
		ScheduledDate: DateOf(scheduledDate),
		Status:        InterviewScheduled,
	}
}

func (i *Interview) IsPersisted() bool { return i.ID > 0 }

// SplitSkills turns "Java, SQL,,Go" into ["Java" "SQL" "Go"].
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinSkills is the inverse of SplitSkills.
func JoinSkills(skills []string) string {
	return strings.Join(SplitSkills(strings.Join(skills, ",")), ", ")
}

// DateOf truncates t to a calendar date in UTC, matching the DATE columns.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar date.
func Today() time.Time {
	return DateOf(time.Now())
}
