package cleanup

import (
	"context"
	"errors"

	"accountcleanup/models"
)

// ErrEmptyUID is returned when a deletion is requested without an account id.
var ErrEmptyUID = errors.New("cleanup: empty uid")

// CascadeDeleter removes the store records owned by a deleted account.
type CascadeDeleter interface {
	// DeleteUserData deletes every notification under the users matching uid,
	// then the users/<uid> document. Store errors are returned unchanged in kind.
	DeleteUserData(ctx context.Context, uid string) (models.CleanupResult, error)
}

// EventHandler processes user-deleted events, which may be delivered more than once.
type EventHandler interface {
	HandleEvent(ctx context.Context, eventID, uid string) (models.CleanupResult, error)
}
