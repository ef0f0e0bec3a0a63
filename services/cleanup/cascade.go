package cleanup

import (
	"context"
	"fmt"
	"time"

	"accountcleanup/config"
	"accountcleanup/database"
	"accountcleanup/models"

	"go.uber.org/zap"
)

// DefaultCascadeDeleter walks users -> notifications sequentially. It holds no
// mutable state, so one instance can serve concurrent invocations.
type DefaultCascadeDeleter struct {
	store  database.Store
	logger *zap.Logger
}

func NewCascadeDeleter(store database.Store, logger *zap.Logger) (*DefaultCascadeDeleter, error) {
	if store == nil {
		return nil, fmt.Errorf("cascade deleter initialization error: store is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultCascadeDeleter{store: store, logger: logger}, nil
}

func (d *DefaultCascadeDeleter) DeleteUserData(ctx context.Context, uid string) (models.CleanupResult, error) {
	start := time.Now()
	result, err := d.cascade(ctx, uid)
	observeRun(start, err)
	return result, err
}

func (d *DefaultCascadeDeleter) cascade(ctx context.Context, uid string) (models.CleanupResult, error) {
	result := models.CleanupResult{UID: uid, DeletedNotifications: []string{}}
	if uid == "" {
		return result, ErrEmptyUID
	}

	users, err := d.store.FindByField(ctx, config.UsersCollection, config.UIDField, uid)
	if err != nil {
		return result, fmt.Errorf("failed to find users with uid %s: %w", uid, err)
	}
	result.MatchedUsers = len(users)

	for _, user := range users {
		// The final delete addresses users/<uid>; a match stored under another
		// key keeps its own document.
		if user.ID != uid {
			d.logger.Warn("user document key differs from uid",
				zap.String("uid", uid), zap.String("path", user.Path()))
		}

		notifications, err := d.store.ListDocuments(ctx, user.Sub(config.NotificationsCollection))
		if err != nil {
			return result, fmt.Errorf("failed to list notifications of %s: %w", user.Path(), err)
		}
		for _, n := range notifications {
			if err := d.store.Delete(ctx, n); err != nil {
				return result, fmt.Errorf("failed to delete notification %s: %w", n.Path(), err)
			}
			// Logged only once the delete has been acknowledged.
			d.logger.Info(fmt.Sprintf("Deleting document %s from collection %s", n.ID, config.NotificationsCollection),
				zap.String("id", n.ID), zap.String("path", n.Path()))
			result.DeletedNotifications = append(result.DeletedNotifications, n.ID)
			NotificationsDeleted.Inc()
		}
	}

	userRef := database.DocRef{Collection: config.UsersCollection, ID: uid}
	if err := d.store.Delete(ctx, userRef); err != nil {
		return result, fmt.Errorf("failed to delete user %s: %w", userRef.Path(), err)
	}
	return result, nil
}
