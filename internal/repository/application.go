package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/jobportal/internal/database"
	"github.com/deppfellow/jobportal/internal/model"
)

const applicationColumns = `application_id, job_id, user_id, application_date, status`

type ApplicationRepository struct {
	db *database.Database
}

func NewApplicationRepository(db *database.Database) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func applicationArgs(a *model.Application) pgx.NamedArgs {
	applied := a.ApplicationDate
	if applied.IsZero() {
		applied = model.Today()
	}

	status := a.Status
	if status == "" {
		status = model.ApplicationPending
	}

	return pgx.NamedArgs{
		"application_id":   a.ID,
		"job_id":           a.JobID,
		"user_id":          a.UserID,
		"application_date": model.DateOf(applied),
		"status":           string(status),
	}
}

// normalizeApplications maps stored status spellings onto the known set.
func normalizeApplications(items []model.Application) []model.Application {
	for i := range items {
		items[i].Status = model.ParseApplicationStatus(string(items[i].Status))
	}
	return items
}

// Save inserts a. Empty dates and statuses default to today and Pending.
func (r *ApplicationRepository) Save(ctx context.Context, a *model.Application) error {
	args := applicationArgs(a)

	id, err := insertReturningID(ctx, r.db, "applications.save", `
		INSERT INTO applications (job_id, user_id, application_date, status)
		VALUES (@job_id, @user_id, @application_date, @status)
		RETURNING application_id`,
		args)
	if err != nil {
		return err
	}

	a.ID = id
	a.ApplicationDate = args["application_date"].(time.Time)
	a.Status = model.ApplicationStatus(args["status"].(string))
	return nil
}

func (r *ApplicationRepository) Update(ctx context.Context, a *model.Application) (bool, error) {
	return execAffected(ctx, r.db, "applications.update", `
		UPDATE applications
		SET job_id = @job_id, user_id = @user_id, application_date = @application_date, status = @status
		WHERE application_id = @application_id`,
		applicationArgs(a))
}

func (r *ApplicationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return execAffected(ctx, r.db, "applications.delete", `DELETE FROM applications WHERE application_id = $1`, id)
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id int64) (*model.Application, error) {
	a, err := collectOne[model.Application](ctx, r.db, "applications.find_by_id",
		`SELECT `+applicationColumns+` FROM applications WHERE application_id = $1`, id)
	if a != nil {
		a.Status = model.ParseApplicationStatus(string(a.Status))
	}
	return a, err
}

func (r *ApplicationRepository) FindByJobID(ctx context.Context, jobID int64) ([]model.Application, error) {
	items, err := collectAll[model.Application](ctx, r.db, "applications.find_by_job_id",
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY application_id`, jobID)
	return normalizeApplications(items), err
}

func (r *ApplicationRepository) FindByUserID(ctx context.Context, userID int64) ([]model.Application, error) {
	items, err := collectAll[model.Application](ctx, r.db, "applications.find_by_user_id",
		`SELECT `+applicationColumns+` FROM applications WHERE user_id = $1 ORDER BY application_id`, userID)
	return normalizeApplications(items), err
}

func (r *ApplicationRepository) FindAll(ctx context.Context) ([]model.Application, error) {
	items, err := collectAll[model.Application](ctx, r.db, "applications.find_all",
		`SELECT `+applicationColumns+` FROM applications ORDER BY application_id`)
	return normalizeApplications(items), err
}
