package user

import (
	"context"

	"github.com/hibiken/asynq"
)

// UserService handles administrative account removal.
type UserService interface {
	// DeleteUser removes the Firebase Auth account and queues the cascade
	// cleanup of its documents. It returns the queued event id.
	DeleteUser(ctx context.Context, uid string) (string, error)
}

// AuthAccounts is the part of the Firebase Auth client used here; *auth.Client satisfies it.
type AuthAccounts interface {
	DeleteUser(ctx context.Context, uid string) error
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
