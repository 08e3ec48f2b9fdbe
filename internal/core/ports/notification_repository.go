package ports

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
)

// ErrClaimLost is returned when a worker writes to a notification whose
// claim it no longer holds.
var ErrClaimLost = errors.New("notification claim lost")

// NotificationRepository stores live notifications.
//
// Delivery workers coordinate through claims: a worker may only send for and
// update a notification after Claim succeeded, and until the claim expires.
type NotificationRepository interface {
	// Add inserts a single notification atomically.
	Add(ctx context.Context, n *notification.Notification) error

	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// UpdateRead persists the read flag.
	UpdateRead(ctx context.Context, n *notification.Notification) error

	// ListDeliverable returns IDs of unclaimed (or expired-claim) notifications
	// that are either finished or due for another send attempt, oldest first.
	ListDeliverable(ctx context.Context, now time.Time, limit int) ([]kernel.UUID, error)

	// Claim marks the notification as owned by worker until now+ttl. It
	// returns false when another worker holds a live claim or the row is gone.
	Claim(ctx context.Context, id kernel.UUID, worker string, now time.Time, ttl time.Duration) (bool, error)

	// UpdateDelivery persists delivery state if worker still holds the claim,
	// otherwise returns ErrClaimLost.
	UpdateDelivery(ctx context.Context, n *notification.Notification, worker string) error

	// Release drops the worker's claim so the row becomes scannable again.
	Release(ctx context.Context, id kernel.UUID, worker string) error

	// Delete removes a live row. Missing rows are not an error.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteArchived removes live rows whose notification already has a
	// history entry and returns how many were removed.
	DeleteArchived(ctx context.Context) (int64, error)

	// DeleteOrphaned removes live rows whose recipient no longer exists and
	// returns how many were removed.
	DeleteOrphaned(ctx context.Context) (int64, error)

	DeleteByRecipient(ctx context.Context, recipientID kernel.UUID) error
}

// NotificationHistoryRepository stores archived notifications.
type NotificationHistoryRepository interface {
	// Add inserts the entry unless one already exists for the same
	// notification; the duplicate is silently ignored.
	Add(ctx context.Context, entry notification.HistoryEntry) error

	// DeleteOrphaned removes entries whose recipient no longer exists. An
	// archive that raced a user deletion can leave such rows behind.
	DeleteOrphaned(ctx context.Context) (int64, error)

	DeleteByRecipient(ctx context.Context, recipientID kernel.UUID) error
}
