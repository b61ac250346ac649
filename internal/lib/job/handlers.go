package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
)

// handleWelcomeEmailTask sends the welcome email. A payload that does
// not decode is never retried.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	ctx, txn := j.loggerService.StartBackground(ctx, "job/"+t.Type())
	defer txn.End()

	log := j.logger.With().Str("type", "welcome").Int64("user_id", p.UserID).Logger()
	log.Info().Msg("processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(ctx, p.To, p.FirstName, p.IdempotencyKey); err != nil {
		txn.NoticeError(nrpkgerrors.Wrap(err))
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("sent welcome email")
	return nil
}

func (j *JobService) handleApplicationSubmittedTask(ctx context.Context, t *asynq.Task) error {
	var p ApplicationSubmittedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal application email payload: %v: %w", err, asynq.SkipRetry)
	}

	ctx, txn := j.loggerService.StartBackground(ctx, "job/"+t.Type())
	defer txn.End()

	log := j.logger.With().
		Str("type", "application_submitted").
		Int64("user_id", p.UserID).
		Int64("job_id", p.JobID).
		Logger()
	log.Info().Msg("processing application email task")

	err := j.mailer.SendApplicationSubmittedEmail(ctx, p.To, p.FirstName, p.JobTitle, p.CompanyName, p.IdempotencyKey)
	if err != nil {
		txn.NoticeError(nrpkgerrors.Wrap(err))
		log.Error().Err(err).Msg("failed to send application email")
		return err
	}

	log.Info().Msg("sent application email")
	return nil
}
