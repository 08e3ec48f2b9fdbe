package services

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/events"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
)

// ErrUnrecognizedEvent is returned for an event kind the dispatcher has no
// rule for. It signals a programming error, never a runtime condition.
var ErrUnrecognizedEvent = errors.New("unrecognized event")

// NotificationDispatcher decides who hears about an event and what they are
// told. It is a pure function of the event: the same event always yields the
// same drafts, and every recognised event yields at least one.
//
// Rules:
//
//	OrderTransitioned  pending -> in_progress     client      order_in_progress
//	OrderTransitioned  delivered -> in_progress   freelancer  order_revision_requested
//	OrderTransitioned  * -> delivered             client      order_delivered
//	OrderTransitioned  * -> completed             freelancer  order_completed
//	OrderTransitioned  * -> cancelled             both        order_cancelled
//	OrderPlaced                                   freelancer  order_placed
//	ReviewCreated                                 freelancer  review_received
//	ContactRequestRaised                          addressee   contact_request_pending
//	ContactRequestResolved                        requester   contact_request_accepted|rejected
//	FreelancerRequestResolved                     applicant   freelancer_request_approved|rejected
type NotificationDispatcher struct{}

// NewNotificationDispatcher creates the dispatcher.
func NewNotificationDispatcher() NotificationDispatcher {
	return NotificationDispatcher{}
}

// Dispatch returns one draft per recipient.
func (d NotificationDispatcher) Dispatch(event events.Event) ([]notification.Draft, error) {
	switch e := event.(type) {
	case events.OrderTransitioned:
		return d.orderTransitioned(e)
	case events.OrderPlaced:
		return []notification.Draft{{
			RecipientID: e.FreelancerID,
			Type:        notification.TypeOrder,
			Status:      notification.StatusOrderPlaced,
			Content:     fmt.Sprintf("You received a new order %s for %s.", e.OrderID, e.TotalPrice),
			Payload:     payload("orderId", e.OrderID, "serviceId", e.ServiceID, "clientId", e.ClientID),
		}}, nil
	case events.ReviewCreated:
		return []notification.Draft{{
			RecipientID: e.FreelancerID,
			Type:        notification.TypeReview,
			Status:      notification.StatusReviewReceived,
			Content:     fmt.Sprintf("You received a %d-star review on order %s.", e.Rating, e.OrderID),
			Payload:     payload("reviewId", e.ReviewID, "orderId", e.OrderID, "rating", e.Rating),
		}}, nil
	case events.ContactRequestRaised:
		return []notification.Draft{{
			RecipientID: e.ToUserID,
			Type:        notification.TypeContactRequest,
			Status:      notification.StatusContactRequestPending,
			Content:     e.Message,
			Payload:     payload("contactRequestId", e.RequestID, "fromUserId", e.FromUserID),
		}}, nil
	case events.ContactRequestResolved:
		status, verb := notification.StatusContactRequestRejected, "declined"
		if e.Accepted {
			status, verb = notification.StatusContactRequestAccepted, "accepted"
		}
		return []notification.Draft{{
			RecipientID: e.FromUserID,
			Type:        notification.TypeContactRequest,
			Status:      status,
			Content:     fmt.Sprintf("Your contact request was %s.", verb),
			Payload:     payload("contactRequestId", e.RequestID, "toUserId", e.ToUserID),
		}}, nil
	case events.FreelancerRequestResolved:
		status, verb := notification.StatusFreelancerRequestRejected, "declined"
		if e.Approved {
			status, verb = notification.StatusFreelancerRequestApproved, "approved"
		}
		return []notification.Draft{{
			RecipientID: e.UserID,
			Type:        notification.TypeSystem,
			Status:      status,
			Content:     fmt.Sprintf("Your application to become a freelancer was %s.", verb),
			Payload:     payload("freelancerRequestId", e.RequestID),
		}}, nil
	case nil:
		return nil, fmt.Errorf("%w: nil event", ErrUnrecognizedEvent)
	default:
		return nil, fmt.Errorf("%w: %T (%s)", ErrUnrecognizedEvent, event, event.EventName())
	}
}

func (d NotificationDispatcher) orderTransitioned(e events.OrderTransitioned) ([]notification.Draft, error) {
	meta := payload(
		"orderId", e.OrderID,
		"fromStatus", e.From.String(),
		"toStatus", e.To.String(),
		"actorId", e.ActorID,
	)

	draft := func(recipient kernel.UUID, status notification.Status, content string) notification.Draft {
		return notification.Draft{
			RecipientID: recipient,
			Type:        notification.TypeOrder,
			Status:      status,
			Content:     content,
			Payload:     meta,
		}
	}

	switch {
	case e.To == order.InProgress && e.From == order.Pending:
		return []notification.Draft{
			draft(e.ClientID, notification.StatusOrderInProgress,
				fmt.Sprintf("The freelancer started working on order %s.", e.OrderID)),
		}, nil
	case e.To == order.InProgress && e.From == order.Delivered:
		return []notification.Draft{
			draft(e.FreelancerID, notification.StatusOrderRevisionRequested,
				fmt.Sprintf("The client requested changes to order %s.", e.OrderID)),
		}, nil
	case e.To == order.Delivered:
		return []notification.Draft{
			draft(e.ClientID, notification.StatusOrderDelivered,
				fmt.Sprintf("Order %s has been delivered.", e.OrderID)),
		}, nil
	case e.To == order.Completed:
		return []notification.Draft{
			draft(e.FreelancerID, notification.StatusOrderCompleted,
				fmt.Sprintf("Order %s was accepted and completed.", e.OrderID)),
		}, nil
	case e.To == order.Cancelled:
		content := fmt.Sprintf("Order %s was cancelled.", e.OrderID)
		return []notification.Draft{
			draft(e.ClientID, notification.StatusOrderCancelled, content),
			draft(e.FreelancerID, notification.StatusOrderCancelled, content),
		}, nil
	default:
		return nil, fmt.Errorf("%w: order transition %s -> %s", ErrUnrecognizedEvent, e.From, e.To)
	}
}

// payload builds event metadata from key/value pairs, rendering IDs as strings.
func payload(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		switch v := kv[i+1].(type) {
		case kernel.UUID:
			m[key] = v.String()
		default:
			m[key] = v
		}
	}
	return m
}
