// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) using asynq.Client.
//   - a server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/pharmacy-service/internal/config"
	"github.com/deppfellow/pharmacy-service/internal/model/pharmacy"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	mailer   Mailer
	notifyTo string
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the largest worker share.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server.
// It returns once the workers are running.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskPharmacyRegistered, j.handlePharmacyRegisteredTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the job server and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// NotificationsEnabled reports whether registration notices are produced.
func (j *JobService) NotificationsEnabled() bool {
	return j != nil && j.mailer != nil && j.notifyTo != ""
}

// EnqueuePharmacyRegistered schedules the registration notice of p.
// It is a no-op when notices are disabled.
func (j *JobService) EnqueuePharmacyRegistered(ctx context.Context, p *pharmacy.Pharmacy) error {
	if !j.NotificationsEnabled() {
		return nil
	}

	task, err := NewPharmacyRegisteredTask(j.notifyTo, p)
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", TaskPharmacyRegistered, err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", TaskPharmacyRegistered, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("pharmacy_id", p.ID).
		Msg("enqueued registration notice")

	return nil
}
