package memrepo

import (
	"context"
	"time"

	"github.com/deppfellow/jobportal/internal/model"
)

type Users struct{ s *Store }

func (r *Users) Save(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.save"); err != nil {
		return err
	}

	if r.s.users.exists(func(x model.User) bool { return x.Email == u.Email }) {
		return uniqueViolation("users.save", "users", "users_email_key")
	}

	u.ID = r.s.users.nextID()
	r.s.users.rows[u.ID] = *u
	return nil
}

func (r *Users) Update(_ context.Context, u *model.User) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.update"); err != nil {
		return false, err
	}

	if r.s.users.exists(func(x model.User) bool { return x.Email == u.Email && x.ID != u.ID }) {
		return false, uniqueViolation("users.update", "users", "users_email_key")
	}

	return r.s.users.update(u.ID, *u), nil
}

func (r *Users) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.delete"); err != nil {
		return false, err
	}

	if r.s.applications.exists(func(a model.Application) bool { return a.UserID == id }) {
		return false, stillReferenced("users.delete", "users", "applications", "applications_user_id_fkey")
	}

	return r.s.users.remove(id), nil
}

func (r *Users) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.find_by_id"); err != nil {
		return nil, err
	}
	return r.s.users.get(id), nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.find_by_email"); err != nil {
		return nil, err
	}
	return r.s.users.first(func(u model.User) bool { return u.Email == email }), nil
}

func (r *Users) FindBySkills(_ context.Context, skills string) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.find_by_skills"); err != nil {
		return nil, err
	}
	return r.s.users.filter(func(u model.User) bool { return contains(u.Skills, skills) }), nil
}

func (r *Users) FindAll(_ context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.find_all"); err != nil {
		return nil, err
	}
	return r.s.users.filter(nil), nil
}

type Companies struct{ s *Store }

func (r *Companies) Save(_ context.Context, c *model.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("companies.save"); err != nil {
		return err
	}

	c.ID = r.s.companies.nextID()
	r.s.companies.rows[c.ID] = *c
	return nil
}

func (r *Companies) Update(_ context.Context, c *model.Company) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("companies.update"); err != nil {
		return false, err
	}
	return r.s.companies.update(c.ID, *c), nil
}

func (r *Companies) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("companies.delete"); err != nil {
		return false, err
	}

	if r.s.jobPostings.exists(func(j model.JobPosting) bool { return j.CompanyID == id }) {
		return false, stillReferenced("companies.delete", "companies", "job_postings", "job_postings_company_id_fkey")
	}

	return r.s.companies.remove(id), nil
}

func (r *Companies) FindByID(_ context.Context, id int64) (*model.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("companies.find_by_id"); err != nil {
		return nil, err
	}
	return r.s.companies.get(id), nil
}

func (r *Companies) FindByName(_ context.Context, name string) (*model.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("companies.find_by_name"); err != nil {
		return nil, err
	}
	return r.s.companies.first(func(c model.Company) bool { return c.Name == name }), nil
}

func (r *Companies) FindAll(_ context.Context) ([]model.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("companies.find_all"); err != nil {
		return nil, err
	}
	return r.s.companies.filter(nil), nil
}

type JobPostings struct{ s *Store }

func (r *JobPostings) Save(_ context.Context, j *model.JobPosting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("job_postings.save"); err != nil {
		return err
	}

	if !r.s.companies.has(j.CompanyID) {
		return foreignKeyViolation("job_postings.save", "job_postings", "job_postings_company_id_fkey")
	}

	if j.DatePosted.IsZero() {
		j.DatePosted = model.Today()
	}
	j.DatePosted = model.DateOf(j.DatePosted)
	j.ID = r.s.jobPostings.nextID()
	r.s.jobPostings.rows[j.ID] = *j
	return nil
}

func (r *JobPostings) Update(_ context.Context, j *model.JobPosting) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("job_postings.update"); err != nil {
		return false, err
	}

	if !r.s.jobPostings.has(j.ID) {
		return false, nil
	}
	if !r.s.companies.has(j.CompanyID) {
		return false, foreignKeyViolation("job_postings.update", "job_postings", "job_postings_company_id_fkey")
	}

	row := *j
	if row.DatePosted.IsZero() {
		row.DatePosted = model.Today()
	}
	row.DatePosted = model.DateOf(row.DatePosted)
	return r.s.jobPostings.update(j.ID, row), nil
}

func (r *JobPostings) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("job_postings.delete"); err != nil {
		return false, err
	}

	if r.s.applications.exists(func(a model.Application) bool { return a.JobID == id }) {
		return false, stillReferenced("job_postings.delete", "job_postings", "applications", "applications_job_id_fkey")
	}

	return r.s.jobPostings.remove(id), nil
}

func (r *JobPostings) FindByID(_ context.Context, id int64) (*model.JobPosting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("job_postings.find_by_id"); err != nil {
		return nil, err
	}
	return r.s.jobPostings.get(id), nil
}

func (r *JobPostings) FindByCompanyID(_ context.Context, companyID int64) ([]model.JobPosting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("job_postings.find_by_company_id"); err != nil {
		return nil, err
	}
	return r.s.jobPostings.filter(func(j model.JobPosting) bool { return j.CompanyID == companyID }), nil
}

func (r *JobPostings) SearchBySkills(_ context.Context, skills string) ([]model.JobPosting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("job_postings.search_by_skills"); err != nil {
		return nil, err
	}
	return r.s.jobPostings.filter(func(j model.JobPosting) bool { return contains(j.SkillsRequired, skills) }), nil
}

func (r *JobPostings) SearchByLocation(_ context.Context, location string) ([]model.JobPosting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("job_postings.search_by_location"); err != nil {
		return nil, err
	}
	return r.s.jobPostings.filter(func(j model.JobPosting) bool { return contains(j.Location, location) }), nil
}

func (r *JobPostings) FindAll(_ context.Context) ([]model.JobPosting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("job_postings.find_all"); err != nil {
		return nil, err
	}
	return r.s.jobPostings.filter(nil), nil
}

type Applications struct{ s *Store }

// checkApplication enforces the foreign keys and the (job, user) pair.
func (r *Applications) checkApplication(op string, a *model.Application) error {
	if !r.s.jobPostings.has(a.JobID) {
		return foreignKeyViolation(op, "applications", "applications_job_id_fkey")
	}
	if !r.s.users.has(a.UserID) {
		return foreignKeyViolation(op, "applications", "applications_user_id_fkey")
	}
	if r.s.applications.exists(func(x model.Application) bool {
		return x.JobID == a.JobID && x.UserID == a.UserID && x.ID != a.ID
	}) {
		return uniqueViolation(op, "applications", "applications_job_id_user_id_key")
	}
	return nil
}

func applicationRow(a model.Application) model.Application {
	if a.ApplicationDate.IsZero() {
		a.ApplicationDate = model.Today()
	}
	a.ApplicationDate = model.DateOf(a.ApplicationDate)
	if a.Status == "" {
		a.Status = model.ApplicationPending
	}
	return a
}

func normalizeApplications(items []model.Application) []model.Application {
	for i := range items {
		items[i].Status = model.ParseApplicationStatus(string(items[i].Status))
	}
	return items
}

func (r *Applications) Save(_ context.Context, a *model.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("applications.save"); err != nil {
		return err
	}

	a.ID = 0
	if err := r.checkApplication("applications.save", a); err != nil {
		return err
	}

	*a = applicationRow(*a)
	a.ID = r.s.applications.nextID()
	r.s.applications.rows[a.ID] = *a
	return nil
}

func (r *Applications) Update(_ context.Context, a *model.Application) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("applications.update"); err != nil {
		return false, err
	}

	if !r.s.applications.has(a.ID) {
		return false, nil
	}
	if err := r.checkApplication("applications.update", a); err != nil {
		return false, err
	}

	return r.s.applications.update(a.ID, applicationRow(*a)), nil
}

func (r *Applications) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("applications.delete"); err != nil {
		return false, err
	}

	if r.s.interviews.exists(func(i model.Interview) bool { return i.ApplicationID == id }) {
		return false, stillReferenced("applications.delete", "applications", "interviews", "interviews_application_id_fkey")
	}

	return r.s.applications.remove(id), nil
}

func (r *Applications) FindByID(_ context.Context, id int64) (*model.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("applications.find_by_id"); err != nil {
		return nil, err
	}

	a := r.s.applications.get(id)
	if a != nil {
		a.Status = model.ParseApplicationStatus(string(a.Status))
	}
	return a, nil
}

func (r *Applications) FindByJobID(_ context.Context, jobID int64) ([]model.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("applications.find_by_job_id"); err != nil {
		return nil, err
	}
	return normalizeApplications(r.s.applications.filter(func(a model.Application) bool { return a.JobID == jobID })), nil
}

func (r *Applications) FindByUserID(_ context.Context, userID int64) ([]model.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("applications.find_by_user_id"); err != nil {
		return nil, err
	}
	return normalizeApplications(r.s.applications.filter(func(a model.Application) bool { return a.UserID == userID })), nil
}

func (r *Applications) FindAll(_ context.Context) ([]model.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("applications.find_all"); err != nil {
		return nil, err
	}
	return normalizeApplications(r.s.applications.filter(nil)), nil
}

type Interviews struct{ s *Store }

func (r *Interviews) checkInterview(op string, i *model.Interview) error {
	if !r.s.applications.has(i.ApplicationID) {
		return foreignKeyViolation(op, "interviews", "interviews_application_id_fkey")
	}
	if r.s.interviews.exists(func(x model.Interview) bool {
		return x.ApplicationID == i.ApplicationID && x.ID != i.ID
	}) {
		return uniqueViolation(op, "interviews", "interviews_application_id_key")
	}
	return nil
}

func interviewRow(i model.Interview) model.Interview {
	i.ScheduledDate = model.DateOf(i.ScheduledDate)
	if i.Status == "" {
		i.Status = model.InterviewScheduled
	}
	return i
}

func normalizeInterviews(items []model.Interview) []model.Interview {
	for i := range items {
		items[i].Status = model.ParseInterviewStatus(string(items[i].Status))
	}
	return items
}

func (r *Interviews) Save(_ context.Context, i *model.Interview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("interviews.save"); err != nil {
		return err
	}

	i.ID = 0
	if err := r.checkInterview("interviews.save", i); err != nil {
		return err
	}

	*i = interviewRow(*i)
	i.ID = r.s.interviews.nextID()
	r.s.interviews.rows[i.ID] = *i
	return nil
}

func (r *Interviews) Update(_ context.Context, i *model.Interview) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("interviews.update"); err != nil {
		return false, err
	}

	if !r.s.interviews.has(i.ID) {
		return false, nil
	}
	if err := r.checkInterview("interviews.update", i); err != nil {
		return false, err
	}

	return r.s.interviews.update(i.ID, interviewRow(*i)), nil
}

func (r *Interviews) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("interviews.delete"); err != nil {
		return false, err
	}
	return r.s.interviews.remove(id), nil
}

func (r *Interviews) FindByID(_ context.Context, id int64) (*model.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("interviews.find_by_id"); err != nil {
		return nil, err
	}

	i := r.s.interviews.get(id)
	if i != nil {
		i.Status = model.ParseInterviewStatus(string(i.Status))
	}
	return i, nil
}

func (r *Interviews) FindByApplicationID(_ context.Context, applicationID int64) (*model.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("interviews.find_by_application_id"); err != nil {
		return nil, err
	}

	i := r.s.interviews.first(func(i model.Interview) bool { return i.ApplicationID == applicationID })
	if i != nil {
		i.Status = model.ParseInterviewStatus(string(i.Status))
	}
	return i, nil
}

// FindByStatus compares the stored text exactly, as the SQL does.
func (r *Interviews) FindByStatus(_ context.Context, status model.InterviewStatus) ([]model.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("interviews.find_by_status"); err != nil {
		return nil, err
	}
	return normalizeInterviews(r.s.interviews.filter(func(i model.Interview) bool { return i.Status == status })), nil
}

func (r *Interviews) FindByDateRange(_ context.Context, start, end time.Time) ([]model.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("interviews.find_by_date_range"); err != nil {
		return nil, err
	}

	from, to := model.DateOf(start), model.DateOf(end)
	items := r.s.interviews.filter(func(i model.Interview) bool {
		return !i.ScheduledDate.Before(from) && !i.ScheduledDate.After(to)
	})
	sortByScheduledDate(items)
	return normalizeInterviews(items), nil
}

func (r *Interviews) FindAll(_ context.Context) ([]model.Interview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("interviews.find_all"); err != nil {
		return nil, err
	}
	return normalizeInterviews(r.s.interviews.filter(nil)), nil
}
