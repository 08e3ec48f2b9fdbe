package commands

import (
	"context"

	"marketplace/internal/core/domain/model/events"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/metrics"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// EventPublisher turns a committed domain event into stored notifications.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) ([]*notification.Notification, error)
}

// NotificationEventPublisher runs the dispatcher and inserts each resulting
// notification on its own. A failed insert does not undo the others: the
// rows that made it are returned and will be delivered normally, and the
// failures are reported together.
type NotificationEventPublisher struct {
	dispatcher services.NotificationDispatcher
	uowFactory NotificationUoWFactory
	clock      kernel.Clock
}

// NewNotificationEventPublisher creates a publisher storing the dispatcher's
// notifications.
func NewNotificationEventPublisher(
	dispatcher services.NotificationDispatcher,
	uowFactory NotificationUoWFactory,
	clock kernel.Clock,
) *NotificationEventPublisher {
	return &NotificationEventPublisher{
		dispatcher: dispatcher,
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Publish turns the event into notifications and stores each one on its
// own. It returns the stored notifications along with the combined errors
// of the drafts that could not be stored.
func (p *NotificationEventPublisher) Publish(
	ctx context.Context,
	event events.Event,
) ([]*notification.Notification, error) {
	drafts, err := p.dispatcher.Dispatch(event)
	if err != nil {
		return nil, err
	}

	repo := p.uowFactory.Create().NotificationRepository()
	now := p.clock()

	created := make([]*notification.Notification, 0, len(drafts))
	var publishErr error
	for _, draft := range drafts {
		n, err := notification.NewNotification(draft, now)
		if err != nil {
			publishErr = multierr.Append(publishErr, err)
			continue
		}

		if err = repo.Add(ctx, n); err != nil {
			metrics.NotificationsCreated.WithLabelValues(draft.Type.String(), "error").Inc()
			publishErr = multierr.Append(publishErr, err)
			continue
		}

		metrics.NotificationsCreated.WithLabelValues(draft.Type.String(), "ok").Inc()
		created = append(created, n)
	}

	return created, publishErr
}

// publishCommitted hands an already committed event to the publisher. The
// state change stands even if notifying fails, so the failure is only logged.
func publishCommitted(ctx context.Context, publisher EventPublisher, log *zap.Logger, event events.Event) {
	if _, err := publisher.Publish(ctx, event); err != nil {
		log.Error("failed to publish notifications",
			zap.String("event", event.EventName()),
			zap.Error(err),
		)
	}
}
