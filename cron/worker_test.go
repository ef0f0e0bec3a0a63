package cron

import (
	"context"
	"errors"
	"testing"

	"accountcleanup/database"
	"accountcleanup/models"
	"accountcleanup/services/cleanup"
	"accountcleanup/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubHandler struct {
	calls []models.CascadeDeletePayload
	err   error
}

func (s *stubHandler) HandleEvent(ctx context.Context, eventID, uid string) (models.CleanupResult, error) {
	s.calls = append(s.calls, models.CascadeDeletePayload{EventID: eventID, UID: uid})
	return models.CleanupResult{UID: uid, EventID: eventID}, s.err
}

func TestHandleCascadeDeleteTask(t *testing.T) {
	h := &stubHandler{}
	task, err := tasks.NewCascadeDeleteTask(models.CascadeDeletePayload{EventID: "e1", UID: "u1"}, 3)
	require.NoError(t, err)

	err = HandleCascadeDeleteTask(h, zap.NewNop())(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, []models.CascadeDeletePayload{{EventID: "e1", UID: "u1"}}, h.calls)
}

func TestHandleCascadeDeleteTaskRetriesStoreErrors(t *testing.T) {
	h := &stubHandler{err: database.ErrUnavailable}
	task, err := tasks.NewCascadeDeleteTask(models.CascadeDeletePayload{EventID: "e1", UID: "u1"}, 3)
	require.NoError(t, err)

	err = HandleCascadeDeleteTask(h, zap.NewNop())(context.Background(), task)
	assert.ErrorIs(t, err, database.ErrUnavailable)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleCascadeDeleteTaskSkipsBadPayload(t *testing.T) {
	h := &stubHandler{}
	err := HandleCascadeDeleteTask(h, zap.NewNop())(context.Background(), asynq.NewTask(tasks.TypeCascadeDelete, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, h.calls)
}

func TestHandleCascadeDeleteTaskEndToEnd(t *testing.T) {
	store := database.NewMemoryStore()
	store.Put("users", "u1", map[string]string{"uid": "u1"})
	store.Put("users/u1/notifications", "n1", nil)

	deleter, err := cleanup.NewCascadeDeleter(store, zap.NewNop())
	require.NoError(t, err)
	processor := cleanup.NewEventProcessor(deleter, nil, zap.NewNop())

	task, err := tasks.NewCascadeDeleteTask(models.CascadeDeletePayload{EventID: "e1", UID: "u1"}, 3)
	require.NoError(t, err)

	require.NoError(t, HandleCascadeDeleteTask(processor, zap.NewNop())(context.Background(), task))
	assert.Equal(t, 0, store.Count("users"))
	assert.Equal(t, 0, store.Count("users/u1/notifications"))
}
