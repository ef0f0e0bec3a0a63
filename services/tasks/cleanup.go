package tasks

import (
	"encoding/json"
	"fmt"

	"accountcleanup/models"

	"github.com/hibiken/asynq"
)

const (
	TypeCascadeDelete = "user:cascade-delete"
	// QueueName is the asynq queue cascade deletions run on.
	QueueName = "cleanup"
)

// NewCascadeDeleteTask queues the cascade for one deleted account. The event
// id doubles as the asynq task id, so re-enqueuing the same event conflicts
// instead of running twice.
func NewCascadeDeleteTask(payload models.CascadeDeletePayload, maxRetry int) (*asynq.Task, error) {
	if payload.UID == "" {
		return nil, fmt.Errorf("cascade delete task requires a uid")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	opts := []asynq.Option{asynq.Queue(QueueName), asynq.MaxRetry(maxRetry)}
	if payload.EventID != "" {
		opts = append(opts, asynq.TaskID(payload.EventID))
	}
	return asynq.NewTask(TypeCascadeDelete, b, opts...), nil
}

// ParseCascadeDeletePayload decodes a task created by NewCascadeDeleteTask.
func ParseCascadeDeletePayload(task *asynq.Task) (models.CascadeDeletePayload, error) {
	var p models.CascadeDeletePayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid cascade delete payload: %w", err)
	}
	if p.UID == "" {
		return p, fmt.Errorf("invalid cascade delete payload: empty uid")
	}
	return p, nil
}
