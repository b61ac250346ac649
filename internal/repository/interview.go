package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/jobportal/internal/database"
	"github.com/deppfellow/jobportal/internal/model"
)

const interviewColumns = `interview_id, application_id, scheduled_date, status, feedback`

type InterviewRepository struct {
	db *database.Database
}

func NewInterviewRepository(db *database.Database) *InterviewRepository {
	return &InterviewRepository{db: db}
}

func interviewArgs(i *model.Interview) pgx.NamedArgs {
	status := i.Status
	if status == "" {
		status = model.InterviewScheduled
	}

	return pgx.NamedArgs{
		"interview_id":   i.ID,
		"application_id": i.ApplicationID,
		"scheduled_date": model.DateOf(i.ScheduledDate),
		"status":         string(status),
		"feedback":       i.Feedback,
	}
}

func normalizeInterviews(items []model.Interview) []model.Interview {
	for i := range items {
		items[i].Status = model.ParseInterviewStatus(string(items[i].Status))
	}
	return items
}

func (r *InterviewRepository) Save(ctx context.Context, i *model.Interview) error {
	args := interviewArgs(i)

	id, err := insertReturningID(ctx, r.db, "interviews.save", `
		INSERT INTO interviews (application_id, scheduled_date, status, feedback)
		VALUES (@application_id, @scheduled_date, @status, @feedback)
		RETURNING interview_id`,
		args)
	if err != nil {
		return err
	}

	i.ID = id
	i.ScheduledDate = args["scheduled_date"].(time.Time)
	i.Status = model.InterviewStatus(args["status"].(string))
	return nil
}

func (r *InterviewRepository) Update(ctx context.Context, i *model.Interview) (bool, error) {
	return execAffected(ctx, r.db, "interviews.update", `
		UPDATE interviews
		SET application_id = @application_id, scheduled_date = @scheduled_date,
			status = @status, feedback = @feedback
		WHERE interview_id = @interview_id`,
		interviewArgs(i))
}

func (r *InterviewRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return execAffected(ctx, r.db, "interviews.delete", `DELETE FROM interviews WHERE interview_id = $1`, id)
}

func (r *InterviewRepository) FindByID(ctx context.Context, id int64) (*model.Interview, error) {
	i, err := collectOne[model.Interview](ctx, r.db, "interviews.find_by_id",
		`SELECT `+interviewColumns+` FROM interviews WHERE interview_id = $1`, id)
	if i != nil {
		i.Status = model.ParseInterviewStatus(string(i.Status))
	}
	return i, err
}

func (r *InterviewRepository) FindByApplicationID(ctx context.Context, applicationID int64) (*model.Interview, error) {
	i, err := collectOne[model.Interview](ctx, r.db, "interviews.find_by_application_id",
		`SELECT `+interviewColumns+` FROM interviews WHERE application_id = $1`, applicationID)
	if i != nil {
		i.Status = model.ParseInterviewStatus(string(i.Status))
	}
	return i, err
}

// FindByStatus matches the stored text exactly.
func (r *InterviewRepository) FindByStatus(ctx context.Context, status model.InterviewStatus) ([]model.Interview, error) {
	items, err := collectAll[model.Interview](ctx, r.db, "interviews.find_by_status",
		`SELECT `+interviewColumns+` FROM interviews WHERE status = $1 ORDER BY interview_id`, string(status))
	return normalizeInterviews(items), err
}

func (r *InterviewRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]model.Interview, error) {
	items, err := collectAll[model.Interview](ctx, r.db, "interviews.find_by_date_range",
		`SELECT `+interviewColumns+` FROM interviews
		WHERE scheduled_date BETWEEN $1 AND $2
		ORDER BY scheduled_date, interview_id`,
		model.DateOf(start), model.DateOf(end))
	return normalizeInterviews(items), err
}

func (r *InterviewRepository) FindAll(ctx context.Context) ([]model.Interview, error) {
	items, err := collectAll[model.Interview](ctx, r.db, "interviews.find_all",
		`SELECT `+interviewColumns+` FROM interviews ORDER BY interview_id`)
	return normalizeInterviews(items), err
}
