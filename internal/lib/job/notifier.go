package job

import (
	"context"
	"strings"

	"github.com/deppfellow/jobportal/internal/model"
)

// firstName is the first word of a full name, or the whole name.
func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

// NotifyWelcome queues the welcome email for a new user.
func (j *JobService) NotifyWelcome(ctx context.Context, user *model.User) error {
	task, err := NewWelcomeEmailTask(user.ID, user.Email, firstName(user.Name))
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("queued welcome email")
	return nil
}

// NotifyApplicationSubmitted queues the confirmation for an application.
// company may be nil.
func (j *JobService) NotifyApplicationSubmitted(ctx context.Context, user *model.User, posting *model.JobPosting, company *model.Company) error {
	p := ApplicationSubmittedPayload{
		UserID:    user.ID,
		JobID:     posting.ID,
		To:        user.Email,
		FirstName: firstName(user.Name),
		JobTitle:  posting.Title,
	}
	if company != nil {
		p.CompanyName = company.Name
	}

	task, err := NewApplicationSubmittedTask(p)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("queued application email")
	return nil
}
