package cron

import (
	"context"
	"errors"
	"fmt"

	"accountcleanup/config"
	"accountcleanup/services/cleanup"
	"accountcleanup/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt returns the asynq connection settings for the cleanup queue.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// CleanupWorker consumes queued cascade deletions. Retries and backoff are
// left to asynq; the handler itself never retries.
type CleanupWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewCleanupWorker(cfg config.Config, handler cleanup.EventHandler, logger *zap.Logger) *CleanupWorker {
	srv := asynq.NewServer(
		RedisOpt(cfg),
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Queues: map[string]int{
				tasks.QueueName: 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCascadeDelete, HandleCascadeDeleteTask(handler, logger))

	return &CleanupWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background.
func (w *CleanupWorker) Start() error {
	w.logger.Info("starting cleanup worker", zap.String("queue", tasks.QueueName))
	return w.srv.Start(w.mux)
}

// Shutdown waits for in-flight tasks and stops the worker.
func (w *CleanupWorker) Shutdown() {
	w.srv.Shutdown()
}

// HandleCascadeDeleteTask runs the cascade for one queued event. Store
// failures are returned so asynq records the attempt as failed and retries it.
func HandleCascadeDeleteTask(handler cleanup.EventHandler, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseCascadeDeletePayload(task)
		if err != nil {
			logger.Error("dropping cascade delete task", zap.Error(err))
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}

		if _, err := handler.HandleEvent(ctx, p.EventID, p.UID); err != nil {
			logger.Error("cascade delete failed",
				zap.String("uid", p.UID), zap.String("eventId", p.EventID), zap.Error(err))
			if errors.Is(err, cleanup.ErrEmptyUID) {
				return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
			}
			return err
		}
		return nil
	}
}
