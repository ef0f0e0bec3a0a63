package user

import (
	"context"
	"errors"
	"fmt"

	"accountcleanup/models"
	"accountcleanup/services/tasks"

	"firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ErrEmptyUID is returned when no account id is given.
var ErrEmptyUID = errors.New("user: empty uid")

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	auth     AuthAccounts
	queue    TaskEnqueuer
	maxRetry int
	logger   *zap.Logger

	// isNotFound reports whether an auth error means the account is already gone.
	isNotFound func(error) bool
}

func NewDefaultUserService(authClient AuthAccounts, queue TaskEnqueuer, maxRetry int, logger *zap.Logger) (*DefaultUserService, error) {
	if authClient == nil || queue == nil {
		return nil, fmt.Errorf("user service initialization error: auth client or queue is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{
		auth:       authClient,
		queue:      queue,
		maxRetry:   maxRetry,
		logger:     logger,
		isNotFound: auth.IsUserNotFound,
	}, nil
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, uid string) (string, error) {
	if uid == "" {
		return "", ErrEmptyUID
	}

	if err := s.auth.DeleteUser(ctx, uid); err != nil {
		if !s.isNotFound(err) {
			return "", fmt.Errorf("failed to delete auth account %s: %w", uid, err)
		}
		// Already removed from Auth; the documents may still need cleaning.
		s.logger.Info("auth account already absent", zap.String("uid", uid))
	}

	payload := models.CascadeDeletePayload{EventID: uuid.NewString(), UID: uid}
	task, err := tasks.NewCascadeDeleteTask(payload, s.maxRetry)
	if err != nil {
		return "", err
	}
	if _, err := s.queue.EnqueueContext(ctx, task); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		return "", fmt.Errorf("failed to enqueue cascade delete for %s: %w", uid, err)
	}
	return payload.EventID, nil
}
