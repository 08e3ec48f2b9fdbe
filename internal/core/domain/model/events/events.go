// Package events defines the domain facts published after a state change has
// been committed. The notification dispatcher is their only consumer.
package events

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// Event is an immutable fact.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// OrderTransitioned is published once per committed order status change.
type OrderTransitioned struct {
	order.Transition
}

func (e OrderTransitioned) EventName() string     { return "order.transitioned" }
func (e OrderTransitioned) OccurredAt() time.Time { return e.At }

// OrderPlaced is published when a client buys a service.
type OrderPlaced struct {
	OrderID      kernel.UUID
	ServiceID    kernel.UUID
	ClientID     kernel.UUID
	FreelancerID kernel.UUID
	TotalPrice   kernel.Money
	At           time.Time
}

func (e OrderPlaced) EventName() string     { return "order.placed" }
func (e OrderPlaced) OccurredAt() time.Time { return e.At }

// ReviewCreated is published after a review is stored.
type ReviewCreated struct {
	ReviewID     kernel.UUID
	OrderID      kernel.UUID
	ServiceID    kernel.UUID
	ReviewerID   kernel.UUID
	FreelancerID kernel.UUID
	Rating       int
	At           time.Time
}

func (e ReviewCreated) EventName() string     { return "review.created" }
func (e ReviewCreated) OccurredAt() time.Time { return e.At }

// ContactRequestRaised is published after a contact request is stored.
type ContactRequestRaised struct {
	RequestID  kernel.UUID
	FromUserID kernel.UUID
	ToUserID   kernel.UUID
	Message    string
	At         time.Time
}

func (e ContactRequestRaised) EventName() string     { return "contact_request.raised" }
func (e ContactRequestRaised) OccurredAt() time.Time { return e.At }

// ContactRequestResolved is published after a contact request is accepted or rejected.
type ContactRequestResolved struct {
	RequestID  kernel.UUID
	FromUserID kernel.UUID
	ToUserID   kernel.UUID
	Accepted   bool
	At         time.Time
}

func (e ContactRequestResolved) EventName() string     { return "contact_request.resolved" }
func (e ContactRequestResolved) OccurredAt() time.Time { return e.At }

// FreelancerRequestResolved is published after an admin decides on an application.
type FreelancerRequestResolved struct {
	RequestID kernel.UUID
	UserID    kernel.UUID
	Approved  bool
	At        time.Time
}

func (e FreelancerRequestResolved) EventName() string     { return "freelancer_request.resolved" }
func (e FreelancerRequestResolved) OccurredAt() time.Time { return e.At }
