package cleanup

import (
	"context"
	"fmt"
	"time"

	"accountcleanup/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// EventLedgerPrefix is the Redis key prefix for handled user-deleted events.
const EventLedgerPrefix = "cleanup:event:"

// EventLedger remembers which user-deleted events completed successfully.
type EventLedger interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Record(ctx context.Context, eventID string) error
}

// RedisEventLedger keeps handled event ids in Redis for a fixed TTL.
type RedisEventLedger struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEventLedger(client *redis.Client, ttl time.Duration) *RedisEventLedger {
	return &RedisEventLedger{client: client, ttl: ttl}
}

func ledgerKey(eventID string) string {
	return EventLedgerPrefix + eventID
}

func (l *RedisEventLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := l.client.Exists(ctx, ledgerKey(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check event %s: %w", eventID, err)
	}
	return n > 0, nil
}

func (l *RedisEventLedger) Record(ctx context.Context, eventID string) error {
	stamp := time.Now().UTC().Format(time.RFC3339)
	if err := l.client.Set(ctx, ledgerKey(eventID), stamp, l.ttl).Err(); err != nil {
		return fmt.Errorf("failed to record event %s: %w", eventID, err)
	}
	return nil
}

// EventProcessor runs the cascade for user-deleted events, skipping events the
// ledger has already seen complete. A nil ledger disables de-duplication.
type EventProcessor struct {
	deleter CascadeDeleter
	ledger  EventLedger
	logger  *zap.Logger
}

func NewEventProcessor(deleter CascadeDeleter, ledger EventLedger, logger *zap.Logger) *EventProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventProcessor{deleter: deleter, ledger: ledger, logger: logger}
}

// HandleEvent runs the cascade for uid. Events without an id are always
// processed. Ledger failures are logged and never block the deletion.
func (p *EventProcessor) HandleEvent(ctx context.Context, eventID, uid string) (models.CleanupResult, error) {
	useLedger := p.ledger != nil && eventID != ""

	if useLedger {
		seen, err := p.ledger.Seen(ctx, eventID)
		if err != nil {
			p.logger.Warn("event ledger lookup failed", zap.String("eventId", eventID), zap.Error(err))
		} else if seen {
			DuplicateEvents.Inc()
			return models.CleanupResult{UID: uid, EventID: eventID, Duplicate: true, DeletedNotifications: []string{}}, nil
		}
	}

	result, err := p.deleter.DeleteUserData(ctx, uid)
	result.EventID = eventID
	if err != nil {
		return result, err
	}

	if useLedger {
		if err := p.ledger.Record(ctx, eventID); err != nil {
			p.logger.Warn("event ledger record failed", zap.String("eventId", eventID), zap.Error(err))
		}
	}
	return result, nil
}
