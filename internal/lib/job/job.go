// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: the API and console enqueue tasks
// through JobService (which also implements service.Notifier), and the
// `jobportal worker` command runs the handlers that consume them.
package job

import (
	"context"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/logger"
)

// mailer is the part of email.Client the task handlers use.
type mailer interface {
	SendWelcomeEmail(ctx context.Context, to, firstName, idempotencyKey string) error
	SendApplicationSubmittedEmail(ctx context.Context, to, firstName, jobTitle, companyName, idempotencyKey string) error
}

// JobService enqueues tasks and, in the worker process, runs them.
type JobService struct {
	// Client enqueues tasks on the shared Redis connection.
	Client *asynq.Client

	redis         redis.UniversalClient
	mailer        mailer
	logger        *zerolog.Logger
	loggerService *logger.LoggerService

	mu     sync.Mutex
	server *asynq.Server
}

// NewJobService builds a producer on rdb. The Redis connection stays
// owned by the caller; Stop does not close it.
func NewJobService(rdb redis.UniversalClient, m mailer, log *zerolog.Logger, ls *logger.LoggerService) *JobService {
	return &JobService{
		Client:        asynq.NewClientFromRedisClient(rdb),
		redis:         rdb,
		mailer:        m,
		logger:        log,
		loggerService: ls,
	}
}

// Mux routes every task type to its handler.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskApplicationSubmitted, j.handleApplicationSubmittedTask)
	return mux
}

// Start launches the worker server. It returns once workers are running.
//
// Concurrency = 10 spread across queues by weight: critical 6,
// default 3, low 1.
func (j *JobService) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.server = asynq.NewServerFromRedisClient(j.redis, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		Logger: &asynqLogger{log: j.logger},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			j.logger.Error().Err(err).Str("type", task.Type()).Msg("task failed")
		}),
	})

	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop shuts the worker server down, waiting for running tasks.
func (j *JobService) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.server == nil {
		return
	}

	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	j.server = nil
}
