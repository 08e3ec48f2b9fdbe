package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/pkg/dberr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListHistoryQueryHandler reads archived notifications, newest first.
type ListHistoryQueryHandler struct {
	db *gorm.DB
}

// NewListHistoryQueryHandler creates a new ListHistoryQueryHandler.
func NewListHistoryQueryHandler(db *gorm.DB) ListHistoryQueryHandler {
	return ListHistoryQueryHandler{db: db}
}

type historyRow struct {
	NotificationID uuid.UUID
	Type           string
	Status         string
	Content        string
	Delivered      bool
	Attempts       int
	SentAt         *time.Time
	CreatedAt      time.Time
	ArchivedAt     time.Time
}

// Handle returns archived entries, most recently archived first.
func (h ListHistoryQueryHandler) Handle(ctx context.Context, query ListHistoryQuery) ([]HistoryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []historyRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			notification_id,
			type,
			status,
			content,
			delivered,
			attempts,
			sent_at,
			created_at,
			archived_at
		FROM notification_history
		WHERE recipient_id = ?
		ORDER BY archived_at DESC, created_at DESC
	`, query.UserID().Bytes()).Scan(&rows).Error
	if err != nil {
		return nil, dberr.Translate("list notification history", err)
	}

	views := make([]HistoryView, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.NotificationID[:])
		if err != nil {
			return nil, err
		}

		views = append(views, HistoryView{
			NotificationID: id,
			Type:           notification.Type(row.Type),
			Status:         notification.Status(row.Status),
			Content:        row.Content,
			Delivered:      row.Delivered,
			Attempts:       row.Attempts,
			SentAt:         row.SentAt,
			CreatedAt:      row.CreatedAt.UTC(),
			ArchivedAt:     row.ArchivedAt.UTC(),
		})
	}
	return views, nil
}
