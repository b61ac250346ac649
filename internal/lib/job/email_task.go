package job

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	TaskWelcome              = "email:welcome"
	TaskApplicationSubmitted = "email:application_submitted"
)

// WelcomeEmailPayload is the JSON stored in Redis for TaskWelcome.
//
// IdempotencyKey is fixed at enqueue time so every retry of one task
// reuses it.
type WelcomeEmailPayload struct {
	UserID         int64  `json:"user_id"`
	To             string `json:"to"`
	FirstName      string `json:"first_name"`
	IdempotencyKey string `json:"idempotency_key"`
}

type ApplicationSubmittedPayload struct {
	UserID         int64  `json:"user_id"`
	JobID          int64  `json:"job_id"`
	To             string `json:"to"`
	FirstName      string `json:"first_name"`
	JobTitle       string `json:"job_title"`
	CompanyName    string `json:"company_name"`
	IdempotencyKey string `json:"idempotency_key"`
}

func NewWelcomeEmailTask(userID int64, to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		UserID:         userID,
		To:             to,
		FirstName:      firstName,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewApplicationSubmittedTask goes to the critical queue; applicants
// expect the confirmation right away.
func NewApplicationSubmittedTask(p ApplicationSubmittedPayload) (*asynq.Task, error) {
	if p.IdempotencyKey == "" {
		p.IdempotencyKey = uuid.NewString()
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskApplicationSubmitted,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
