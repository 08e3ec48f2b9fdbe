package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/pkg/dberr"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListNotificationsQueryHandler reads live notifications, newest first.
type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewListNotificationsQueryHandler creates a new ListNotificationsQueryHandler.
func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

// Handle returns the recipient's notifications ordered by creation time,
// newest first. With OnlyUnread set, read notifications are skipped.
func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) ([]NotificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			type,
			status,
			content,
			payload,
			is_read,
			delivery_status,
			email_sent_at,
			created_at
		FROM notifications
		WHERE recipient_id = ?`
	args := []any{query.UserID().Bytes()}
	if query.OnlyUnread() {
		sql += ` AND is_read = ?`
		args = append(args, false)
	}
	sql += ` ORDER BY created_at DESC, id DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, dberr.Translate("list notifications", err)
	}
	defer rows.Close()

	views := make([]NotificationView, 0)
	for rows.Next() {
		var (
			view           NotificationView
			id             uuid.UUID
			typ, status    string
			payload        datatypes.JSONType[map[string]any]
			deliveryStatus string
		)

		if err = rows.Scan(
			&id,
			&typ,
			&status,
			&view.Content,
			&payload,
			&view.IsRead,
			&deliveryStatus,
			&view.EmailSentAt,
			&view.CreatedAt,
		); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		view.Type = notification.Type(typ)
		view.Status = notification.Status(status)
		view.Payload = payload.Data()
		view.EmailSent = notification.DeliveryStatus(deliveryStatus) == notification.DeliverySent
		view.CreatedAt = view.CreatedAt.UTC()
		if view.EmailSentAt != nil {
			sentAt := view.EmailSentAt.UTC()
			view.EmailSentAt = &sentAt
		}

		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
