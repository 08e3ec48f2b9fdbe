package notification

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Type is the coarse category a notification is filed under.
type Type string

const (
	TypeOrder          Type = "order"
	TypeMessage        Type = "message"
	TypeSystem         Type = "system"
	TypeReview         Type = "review"
	TypeContactRequest Type = "contact_request"
	TypeSupport        Type = "support"
)

// ParseType converts a stored value into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks that t is a known type.
func (t Type) Validate() error {
	switch t {
	case TypeOrder, TypeMessage, TypeSystem, TypeReview, TypeContactRequest, TypeSupport:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid notification type", string(t)))
	}
}

func (t Type) String() string { return string(t) }

// Status is the fine-grained event a notification reports.
type Status string

const (
	StatusOrderPlaced               Status = "order_placed"
	StatusOrderInProgress           Status = "order_in_progress"
	StatusOrderDelivered            Status = "order_delivered"
	StatusOrderRevisionRequested    Status = "order_revision_requested"
	StatusOrderCompleted            Status = "order_completed"
	StatusOrderCancelled            Status = "order_cancelled"
	StatusReviewReceived            Status = "review_received"
	StatusContactRequestPending     Status = "contact_request_pending"
	StatusContactRequestAccepted    Status = "contact_request_accepted"
	StatusContactRequestRejected    Status = "contact_request_rejected"
	StatusFreelancerRequestApproved Status = "freelancer_request_approved"
	StatusFreelancerRequestRejected Status = "freelancer_request_rejected"
)

// subjects doubles as the set of valid statuses.
var subjects = map[Status]string{
	StatusOrderPlaced:               "You have a new order",
	StatusOrderInProgress:           "Work on your order has started",
	StatusOrderDelivered:            "Your order has been delivered",
	StatusOrderRevisionRequested:    "The client asked for changes",
	StatusOrderCompleted:            "Your order was completed",
	StatusOrderCancelled:            "An order was cancelled",
	StatusReviewReceived:            "You received a new review",
	StatusContactRequestPending:     "Someone wants to get in touch",
	StatusContactRequestAccepted:    "Your contact request was accepted",
	StatusContactRequestRejected:    "Your contact request was declined",
	StatusFreelancerRequestApproved: "Your freelancer application was approved",
	StatusFreelancerRequestRejected: "Your freelancer application was declined",
}

// ParseStatus converts a stored value into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

// Validate checks that s is a known status.
func (s Status) Validate() error {
	if _, ok := subjects[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid notification status", string(s)))
	}
	return nil
}

func (s Status) String() string { return string(s) }

// Subject is the email subject line used for the status.
func (s Status) Subject() string { return subjects[s] }

// DeliveryStatus tracks the email side of a notification.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
)

// ParseDeliveryStatus converts a stored value into a DeliveryStatus.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	switch d := DeliveryStatus(s); d {
	case DeliveryPending, DeliverySent, DeliveryFailed:
		return d, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("deliveryStatus", fmt.Errorf("%q is not a valid delivery status", s))
	}
}

// IsTerminal reports whether the notification is ready to be archived.
func (d DeliveryStatus) IsTerminal() bool {
	return d == DeliverySent || d == DeliveryFailed
}
