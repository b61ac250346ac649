package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type fakeMailer struct {
	welcome []string
	applied []string
	keys    []string
	err     error
}

func (f *fakeMailer) SendWelcomeEmail(_ context.Context, to, firstName, key string) error {
	f.welcome = append(f.welcome, to+"/"+firstName)
	f.keys = append(f.keys, key)
	return f.err
}

func (f *fakeMailer) SendApplicationSubmittedEmail(_ context.Context, to, firstName, jobTitle, companyName, key string) error {
	f.applied = append(f.applied, to+"/"+firstName+"/"+jobTitle+"/"+companyName)
	f.keys = append(f.keys, key)
	return f.err
}

func newTestService(m mailer) *JobService {
	log := zerolog.Nop()
	return &JobService{mailer: m, logger: &log}
}

func TestWelcomeTaskRoundTrip(t *testing.T) {
	task, err := NewWelcomeEmailTask(7, "alice@example.com", "Alice")
	if err != nil {
		t.Fatalf("NewWelcomeEmailTask: %v", err)
	}
	if task.Type() != TaskWelcome {
		t.Fatalf("unexpected type %q", task.Type())
	}

	m := &fakeMailer{}
	if err := newTestService(m).handleWelcomeEmailTask(context.Background(), task); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(m.welcome) != 1 || m.welcome[0] != "alice@example.com/Alice" {
		t.Fatalf("unexpected sends %v", m.welcome)
	}
	if m.keys[0] == "" {
		t.Fatalf("expected an idempotency key")
	}
}

func TestApplicationTaskKeepsIdempotencyKey(t *testing.T) {
	task, err := NewApplicationSubmittedTask(ApplicationSubmittedPayload{
		UserID:         3,
		JobID:          5,
		To:             "bob@example.com",
		FirstName:      "Bob",
		JobTitle:       "Data Analyst",
		IdempotencyKey: "fixed-key",
	})
	if err != nil {
		t.Fatalf("NewApplicationSubmittedTask: %v", err)
	}

	var p ApplicationSubmittedPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.IdempotencyKey != "fixed-key" || p.JobID != 5 {
		t.Fatalf("unexpected payload %+v", p)
	}

	m := &fakeMailer{}
	svc := newTestService(m)
	for range 2 {
		if err := svc.handleApplicationSubmittedTask(context.Background(), task); err != nil {
			t.Fatalf("handler: %v", err)
		}
	}
	if m.keys[0] != "fixed-key" || m.keys[1] != "fixed-key" {
		t.Fatalf("retries must reuse the key, got %v", m.keys)
	}
	if m.applied[0] != "bob@example.com/Bob/Data Analyst/" {
		t.Fatalf("unexpected send %q", m.applied[0])
	}
}

func TestMalformedPayloadIsNotRetried(t *testing.T) {
	svc := newTestService(&fakeMailer{})
	bad := asynq.NewTask(TaskWelcome, []byte("{not json"))

	err := svc.handleWelcomeEmailTask(context.Background(), bad)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestSendFailureIsRetried(t *testing.T) {
	sendErr := errors.New("provider down")
	svc := newTestService(&fakeMailer{err: sendErr})

	task, _ := NewWelcomeEmailTask(1, "a@example.com", "A")
	err := svc.handleWelcomeEmailTask(context.Background(), task)
	if !errors.Is(err, sendErr) || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected a retryable error, got %v", err)
	}
}

func TestFirstName(t *testing.T) {
	tests := map[string]string{
		"Alice Smith": "Alice",
		"  Bob ":      "Bob",
		"":            "",
	}
	for in, want := range tests {
		if got := firstName(in); got != want {
			t.Fatalf("firstName(%q) = %q, want %q", in, got, want)
		}
	}
}
