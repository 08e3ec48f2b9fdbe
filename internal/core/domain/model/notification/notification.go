package notification

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"
	"unicode/utf8"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

const maxLastErrorLen = 500

var (
	ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")
	ErrNotTerminal                  = errors.New("notification delivery is not finished")
	ErrAlreadyFinished              = errors.New("notification delivery is already finished")
)

// Draft is what the dispatcher decides to notify; it becomes a Notification
// once it gets an ID and a creation time.
type Draft struct {
	RecipientID kernel.UUID
	Type        Type
	Status      Status
	Content     string
	Payload     map[string]any
}

// Notification is the live, per-recipient record of one event.
type Notification struct {
	id             kernel.UUID
	recipientID    kernel.UUID
	content        string
	typ            Type
	status         Status
	payload        map[string]any
	isRead         bool
	deliveryStatus DeliveryStatus
	emailSentAt    *time.Time
	attempts       int
	nextAttemptAt  time.Time
	lastError      string
	createdAt      time.Time

	isConstructed bool
}

// NewNotification turns a draft into a pending notification due immediately.
func NewNotification(d Draft, at time.Time) (*Notification, error) {
	return RestoreNotification(Snapshot{
		ID:             kernel.NewUUID(),
		RecipientID:    d.RecipientID,
		Content:        d.Content,
		Type:           d.Type,
		Status:         d.Status,
		Payload:        d.Payload,
		DeliveryStatus: DeliveryPending,
		NextAttemptAt:  at,
		CreatedAt:      at,
	})
}

// Snapshot carries every persisted field, for repositories rebuilding a
// Notification.
type Snapshot struct {
	ID             kernel.UUID
	RecipientID    kernel.UUID
	Content        string
	Type           Type
	Status         Status
	Payload        map[string]any
	IsRead         bool
	DeliveryStatus DeliveryStatus
	EmailSentAt    *time.Time
	Attempts       int
	NextAttemptAt  time.Time
	LastError      string
	CreatedAt      time.Time
}

// RestoreNotification rebuilds a notification from storage.
func RestoreNotification(s Snapshot) (*Notification, error) {
	var contentErr, deliveryErr error
	if strings.TrimSpace(s.Content) == "" {
		contentErr = errs.NewValueIsRequiredError("content")
	}
	if _, err := ParseDeliveryStatus(string(s.DeliveryStatus)); err != nil {
		deliveryErr = err
	}

	if err := errors.Join(
		s.ID.Validate(),
		s.RecipientID.Validate(),
		s.Type.Validate(),
		s.Status.Validate(),
		contentErr,
		deliveryErr,
	); err != nil {
		return nil, err
	}

	payload := make(map[string]any, len(s.Payload))
	maps.Copy(payload, s.Payload)

	return &Notification{
		id:             s.ID,
		recipientID:    s.RecipientID,
		content:        strings.TrimSpace(s.Content),
		typ:            s.Type,
		status:         s.Status,
		payload:        payload,
		isRead:         s.IsRead,
		deliveryStatus: s.DeliveryStatus,
		emailSentAt:    s.EmailSentAt,
		attempts:       s.Attempts,
		nextAttemptAt:  s.NextAttemptAt,
		lastError:      s.LastError,
		createdAt:      s.CreatedAt,
		isConstructed:  true,
	}, nil
}

// Validate reports whether the notification came from a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID                { return n.id }
func (n *Notification) RecipientID() kernel.UUID       { return n.recipientID }
func (n *Notification) Content() string                { return n.content }
func (n *Notification) Type() Type                     { return n.typ }
func (n *Notification) Status() Status                 { return n.status }
func (n *Notification) IsRead() bool                   { return n.isRead }
func (n *Notification) DeliveryStatus() DeliveryStatus { return n.deliveryStatus }
func (n *Notification) EmailSent() bool                { return n.deliveryStatus == DeliverySent }
func (n *Notification) EmailSentAt() *time.Time        { return n.emailSentAt }
func (n *Notification) Attempts() int                  { return n.attempts }
func (n *Notification) NextAttemptAt() time.Time       { return n.nextAttemptAt }
func (n *Notification) LastError() string              { return n.lastError }
func (n *Notification) CreatedAt() time.Time           { return n.createdAt }

// Payload returns a copy of the event metadata.
func (n *Notification) Payload() map[string]any {
	return maps.Clone(n.payload)
}

// MarkRead flags the notification as read. Only its recipient may do so.
func (n *Notification) MarkRead(actor kernel.Actor) error {
	if !actor.Is(n.recipientID) {
		return errs.NewForbiddenError(actor.ID().String(), fmt.Sprintf("read notification %s", n.id))
	}
	n.isRead = true
	return nil
}

// MarkEmailSent records a successful send.
func (n *Notification) MarkEmailSent(at time.Time) error {
	if n.deliveryStatus.IsTerminal() {
		return ErrAlreadyFinished
	}
	n.deliveryStatus = DeliverySent
	n.emailSentAt = &at
	n.attempts++
	n.lastError = ""
	return nil
}

// RecordFailure registers a failed send. Retryable failures are rescheduled
// by the policy's backoff until it is exhausted; anything else makes the
// notification terminal (DeliveryFailed).
func (n *Notification) RecordFailure(cause error, retryable bool, at time.Time, policy RetryPolicy) error {
	if n.deliveryStatus.IsTerminal() {
		return ErrAlreadyFinished
	}

	n.attempts++
	n.lastError = truncate(cause.Error(), maxLastErrorLen)

	if !retryable || policy.Exhausted(n.attempts) {
		n.deliveryStatus = DeliveryFailed
		return nil
	}

	n.nextAttemptAt = at.Add(policy.Backoff(n.attempts))
	return nil
}

// Email renders the message sent to the recipient.
func (n *Notification) Email() (subject, body string) {
	return n.status.Subject(), n.content
}

// ToHistory builds the archive entry of a finished notification.
func (n *Notification) ToHistory(archivedAt time.Time) (HistoryEntry, error) {
	if !n.deliveryStatus.IsTerminal() {
		return HistoryEntry{}, ErrNotTerminal
	}

	return HistoryEntry{
		ID:             kernel.NewUUID(),
		NotificationID: n.id,
		RecipientID:    n.recipientID,
		Content:        n.content,
		Type:           n.typ,
		Status:         n.status,
		Delivered:      n.deliveryStatus == DeliverySent,
		Attempts:       n.attempts,
		SentAt:         n.emailSentAt,
		CreatedAt:      n.createdAt,
		ArchivedAt:     archivedAt,
	}, nil
}

// HistoryEntry is the immutable archive of a notification whose delivery has
// finished, successfully or not.
type HistoryEntry struct {
	ID             kernel.UUID
	NotificationID kernel.UUID
	RecipientID    kernel.UUID
	Content        string
	Type           Type
	Status         Status
	Delivered      bool
	Attempts       int
	SentAt         *time.Time
	CreatedAt      time.Time
	ArchivedAt     time.Time
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.ToValidUTF8(s[:n], "")
}
