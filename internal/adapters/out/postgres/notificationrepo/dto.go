package notificationrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDTO is a live notification row. ClaimedBy and ClaimExpiresAt
// belong to the delivery pipeline and never leave this package.
type NotificationDTO struct {
	ID             uuid.UUID                          `gorm:"type:uuid;primaryKey"`
	RecipientID    uuid.UUID                          `gorm:"type:uuid;index;not null"`
	Content        string                             `gorm:"type:text;not null"`
	Type           string                             `gorm:"size:32;not null"`
	Status         string                             `gorm:"size:64;not null"`
	Payload        datatypes.JSONType[map[string]any] `gorm:"not null"`
	IsRead         bool                               `gorm:"not null;default:false"`
	DeliveryStatus string                             `gorm:"size:16;index;not null"`
	EmailSentAt    *time.Time
	Attempts       int       `gorm:"not null;default:0"`
	NextAttemptAt  time.Time `gorm:"index;not null"`
	LastError      string    `gorm:"size:500"`
	ClaimedBy      *string   `gorm:"size:128"`
	ClaimExpiresAt *time.Time
	CreatedAt      time.Time `gorm:"index;not null;autoCreateTime:false"`
}

// TableName returns the table name for live notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// HistoryDTO is an archived notification. NotificationID is unique so the
// archive step can be replayed without creating duplicates.
type HistoryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	NotificationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	RecipientID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Content        string    `gorm:"type:text;not null"`
	Type           string    `gorm:"size:32;not null"`
	Status         string    `gorm:"size:64;not null"`
	Delivered      bool      `gorm:"not null"`
	Attempts       int       `gorm:"not null"`
	SentAt         *time.Time
	CreatedAt      time.Time `gorm:"not null;autoCreateTime:false"`
	ArchivedAt     time.Time `gorm:"index;not null"`
}

// TableName returns the table name for archived notifications.
func (HistoryDTO) TableName() string {
	return "notification_history"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:             n.ID().Bytes(),
		RecipientID:    n.RecipientID().Bytes(),
		Content:        n.Content(),
		Type:           n.Type().String(),
		Status:         n.Status().String(),
		Payload:        datatypes.NewJSONType(n.Payload()),
		IsRead:         n.IsRead(),
		DeliveryStatus: string(n.DeliveryStatus()),
		EmailSentAt:    utc(n.EmailSentAt()),
		Attempts:       n.Attempts(),
		NextAttemptAt:  n.NextAttemptAt().UTC(),
		LastError:      n.LastError(),
		CreatedAt:      n.CreatedAt().UTC(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(notification.Snapshot{
		ID:             id,
		RecipientID:    recipientID,
		Content:        dto.Content,
		Type:           notification.Type(dto.Type),
		Status:         notification.Status(dto.Status),
		Payload:        dto.Payload.Data(),
		IsRead:         dto.IsRead,
		DeliveryStatus: notification.DeliveryStatus(dto.DeliveryStatus),
		EmailSentAt:    utc(dto.EmailSentAt),
		Attempts:       dto.Attempts,
		NextAttemptAt:  dto.NextAttemptAt.UTC(),
		LastError:      dto.LastError,
		CreatedAt:      dto.CreatedAt.UTC(),
	})
}

func historyFromDomain(e notification.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		ID:             e.ID.Bytes(),
		NotificationID: e.NotificationID.Bytes(),
		RecipientID:    e.RecipientID.Bytes(),
		Content:        e.Content,
		Type:           e.Type.String(),
		Status:         e.Status.String(),
		Delivered:      e.Delivered,
		Attempts:       e.Attempts,
		SentAt:         utc(e.SentAt),
		CreatedAt:      e.CreatedAt.UTC(),
		ArchivedAt:     e.ArchivedAt.UTC(),
	}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
