package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/pkg/guard"
)

// ErrListNotificationsQueryIsNotConstructed is returned when the query was built as a literal.
var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery reads a user's live notifications, newest first.
//
// Example:
//
//	query, err := NewListNotificationsQuery(userID, true)
//	if err != nil {
//	    return err
//	}
//	unread, err := handler.Handle(ctx, query)
type ListNotificationsQuery struct {
	userID     kernel.UUID
	onlyUnread bool

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery creates a notifications query.
func NewListNotificationsQuery(userID kernel.UUID, onlyUnread bool) (ListNotificationsQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}

	return ListNotificationsQuery{
		userID:     userID,
		onlyUnread: onlyUnread,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) UserID() kernel.UUID { return q.userID }
func (q ListNotificationsQuery) OnlyUnread() bool    { return q.onlyUnread }

// Validate reports whether the query came from its constructor.
func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

// NotificationView is a live notification as shown to its recipient.
type NotificationView struct {
	ID          kernel.UUID
	Type        notification.Type
	Status      notification.Status
	Content     string
	Payload     map[string]any
	IsRead      bool
	EmailSent   bool
	EmailSentAt *time.Time
	CreatedAt   time.Time
}
