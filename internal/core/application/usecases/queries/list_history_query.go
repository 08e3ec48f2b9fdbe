package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/pkg/guard"
)

// ErrListHistoryQueryIsNotConstructed is returned when the query was built as a literal.
var ErrListHistoryQueryIsNotConstructed = errors.New(
	"ListHistoryQuery must be created via NewListHistoryQuery constructor",
)

// ListHistoryQuery reads a user's archived notifications.
type ListHistoryQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewListHistoryQuery creates a history query.
func NewListHistoryQuery(userID kernel.UUID) (ListHistoryQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListHistoryQuery{}, err
	}
	return ListHistoryQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// UserID returns the recipient whose history is listed.
func (q ListHistoryQuery) UserID() kernel.UUID {
	return q.userID
}

// Validate reports whether the query came from its constructor.
func (q ListHistoryQuery) Validate() error {
	return q.guard.Validate(ErrListHistoryQueryIsNotConstructed)
}

// HistoryView is one archived notification.
type HistoryView struct {
	NotificationID kernel.UUID
	Type           notification.Type
	Status         notification.Status
	Content        string
	Delivered      bool
	Attempts       int
	SentAt         *time.Time
	CreatedAt      time.Time
	ArchivedAt     time.Time
}
