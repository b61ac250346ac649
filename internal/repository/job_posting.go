package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/jobportal/internal/database"
	"github.com/deppfellow/jobportal/internal/model"
)

const jobPostingColumns = `job_id, company_id, title, description, location, skills_required, date_posted`

type JobPostingRepository struct {
	db *database.Database
}

func NewJobPostingRepository(db *database.Database) *JobPostingRepository {
	return &JobPostingRepository{db: db}
}

// postedDate is the DATE stored for j; a zero value means today.
func postedDate(j *model.JobPosting) time.Time {
	if j.DatePosted.IsZero() {
		return model.Today()
	}
	return model.DateOf(j.DatePosted)
}

func jobPostingArgs(j *model.JobPosting) pgx.NamedArgs {
	return pgx.NamedArgs{
		"job_id":          j.ID,
		"company_id":      j.CompanyID,
		"title":           j.Title,
		"description":     j.Description,
		"location":        j.Location,
		"skills_required": j.SkillsRequired,
		"date_posted":     postedDate(j),
	}
}

// Save inserts j. A zero DatePosted is stored as today.
func (r *JobPostingRepository) Save(ctx context.Context, j *model.JobPosting) error {
	id, err := insertReturningID(ctx, r.db, "job_postings.save", `
		INSERT INTO job_postings (company_id, title, description, location, skills_required, date_posted)
		VALUES (@company_id, @title, @description, @location, @skills_required, @date_posted)
		RETURNING job_id`,
		jobPostingArgs(j))
	if err != nil {
		return err
	}

	j.ID = id
	j.DatePosted = postedDate(j)
	return nil
}

func (r *JobPostingRepository) Update(ctx context.Context, j *model.JobPosting) (bool, error) {
	return execAffected(ctx, r.db, "job_postings.update", `
		UPDATE job_postings
		SET company_id = @company_id, title = @title, description = @description,
			location = @location, skills_required = @skills_required, date_posted = @date_posted
		WHERE job_id = @job_id`,
		jobPostingArgs(j))
}

func (r *JobPostingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return execAffected(ctx, r.db, "job_postings.delete", `DELETE FROM job_postings WHERE job_id = $1`, id)
}

func (r *JobPostingRepository) FindByID(ctx context.Context, id int64) (*model.JobPosting, error) {
	return collectOne[model.JobPosting](ctx, r.db, "job_postings.find_by_id",
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE job_id = $1`, id)
}

func (r *JobPostingRepository) FindByCompanyID(ctx context.Context, companyID int64) ([]model.JobPosting, error) {
	return collectAll[model.JobPosting](ctx, r.db, "job_postings.find_by_company_id",
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE company_id = $1 ORDER BY job_id`, companyID)
}

func (r *JobPostingRepository) SearchBySkills(ctx context.Context, skills string) ([]model.JobPosting, error) {
	return collectAll[model.JobPosting](ctx, r.db, "job_postings.search_by_skills",
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE skills_required ILIKE $1 ORDER BY job_id`,
		containsPattern(skills))
}

func (r *JobPostingRepository) SearchByLocation(ctx context.Context, location string) ([]model.JobPosting, error) {
	return collectAll[model.JobPosting](ctx, r.db, "job_postings.search_by_location",
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE location ILIKE $1 ORDER BY job_id`,
		containsPattern(location))
}

func (r *JobPostingRepository) FindAll(ctx context.Context) ([]model.JobPosting, error) {
	return collectAll[model.JobPosting](ctx, r.db, "job_postings.find_all",
		`SELECT `+jobPostingColumns+` FROM job_postings ORDER BY job_id`)
}
