// Package notificationrepo stores live notifications, their delivery claims
// and the notification history.
package notificationrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/dberr"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationRepository stores live notifications and their delivery
// claims with GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add saves a new notification to the database.
func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	return dberr.Translate("add notification", r.db.WithContext(ctx).Create(&dto).Error)
}

// Get retrieves a notification by ID.
func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, dberr.Translate("get notification", err)
	}
	return toDomain(dto)
}

// UpdateRead persists the read flag.
func (r *GormNotificationRepository) UpdateRead(ctx context.Context, n *notification.Notification) error {
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", n.ID().Bytes()).
		UpdateColumn("is_read", n.IsRead())
	if result.Error != nil {
		return dberr.Translate("mark notification read", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", n.ID().String())
	}
	return nil
}

// ListDeliverable returns up to limit unclaimed (or expired-claim) notifications
// that are due: finished ones waiting to be archived and pending ones whose
// next attempt time has passed. Oldest first.
func (r *GormNotificationRepository) ListDeliverable(ctx context.Context, now time.Time, limit int) ([]kernel.UUID, error) {
	now = now.UTC()

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("claimed_by IS NULL OR claim_expires_at < ?", now).
		Where("delivery_status <> ? OR next_attempt_at <= ?", string(notification.DeliveryPending), now).
		Order("created_at ASC").
		Limit(limit).
		Pluck("id", &raw).Error
	if err != nil {
		return nil, dberr.Translate("list deliverable notifications", err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, err := kernel.UUIDFromBytes(b[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Claim is a single conditional UPDATE, so two workers racing for the same
// row cannot both win.
func (r *GormNotificationRepository) Claim(
	ctx context.Context,
	id kernel.UUID,
	worker string,
	now time.Time,
	ttl time.Duration,
) (bool, error) {
	now = now.UTC()
	expires := now.Add(ttl)

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id.Bytes()).
		Where("claimed_by IS NULL OR claim_expires_at < ?", now).
		UpdateColumns(map[string]any{
			"claimed_by":       worker,
			"claim_expires_at": expires,
		})
	if result.Error != nil {
		return false, dberr.Translate("claim notification", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// UpdateDelivery writes the delivery outcome, provided worker still holds the
// claim. Otherwise it returns ports.ErrClaimLost and changes nothing.
func (r *GormNotificationRepository) UpdateDelivery(ctx context.Context, n *notification.Notification, worker string) error {
	if err := n.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND claimed_by = ?", n.ID().Bytes(), worker).
		UpdateColumns(map[string]any{
			"delivery_status": string(n.DeliveryStatus()),
			"email_sent_at":   utc(n.EmailSentAt()),
			"attempts":        n.Attempts(),
			"next_attempt_at": n.NextAttemptAt().UTC(),
			"last_error":      n.LastError(),
		})
	if result.Error != nil {
		return dberr.Translate("update notification delivery", result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrClaimLost
	}
	return nil
}

// Release drops worker's claim so the row can be picked up again.
func (r *GormNotificationRepository) Release(ctx context.Context, id kernel.UUID, worker string) error {
	err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ? AND claimed_by = ?", id.Bytes(), worker).
		UpdateColumns(map[string]any{
			"claimed_by":       nil,
			"claim_expires_at": nil,
		}).Error
	return dberr.Translate("release notification", err)
}

// Delete removes a live notification.
func (r *GormNotificationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	err := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&NotificationDTO{}).Error
	return dberr.Translate("delete notification", err)
}

// DeleteArchived removes live rows whose history entry already exists.
func (r *GormNotificationRepository) DeleteArchived(ctx context.Context) (int64, error) {
	archived := r.db.Model(&HistoryDTO{}).Select("notification_id")

	result := r.db.WithContext(ctx).Where("id IN (?)", archived).Delete(&NotificationDTO{})
	if result.Error != nil {
		return 0, dberr.Translate("delete archived notifications", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteOrphaned removes live notifications addressed to deleted users.
func (r *GormNotificationRepository) DeleteOrphaned(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("recipient_id NOT IN (?)", existingUsers(r.db)).Delete(&NotificationDTO{})
	if result.Error != nil {
		return 0, dberr.Translate("delete orphaned notifications", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteByRecipient removes every live notification of a user.
func (r *GormNotificationRepository) DeleteByRecipient(ctx context.Context, recipientID kernel.UUID) error {
	err := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID.Bytes()).Delete(&NotificationDTO{}).Error
	return dberr.Translate("delete recipient notifications", err)
}

// GormHistoryRepository stores archived notifications with GORM.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Add archives an entry. A second entry for the same notification is ignored.
func (r *GormHistoryRepository) Add(ctx context.Context, entry notification.HistoryEntry) error {
	dto := historyFromDomain(entry)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "notification_id"}}, DoNothing: true}).
		Create(&dto).Error
	return dberr.Translate("archive notification", err)
}

// DeleteByRecipient removes a user's history.
func (r *GormHistoryRepository) DeleteByRecipient(ctx context.Context, recipientID kernel.UUID) error {
	err := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID.Bytes()).Delete(&HistoryDTO{}).Error
	return dberr.Translate("delete recipient history", err)
}

// DeleteOrphaned removes history entries of deleted users.
func (r *GormHistoryRepository) DeleteOrphaned(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("recipient_id NOT IN (?)", existingUsers(r.db)).Delete(&HistoryDTO{})
	if result.Error != nil {
		return 0, dberr.Translate("delete orphaned history", result.Error)
	}
	return result.RowsAffected, nil
}

// existingUsers is the subquery of live user IDs. The users table belongs to
// userrepo; it is named here to keep the packages independent.
func existingUsers(db *gorm.DB) *gorm.DB {
	return db.Table("users").Select("id")
}
