package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a purchase of one service by one client.
// The freelancer and the price are snapshotted from the service at order time.
//
// Order follows these invariants:
//   - client and freelancer are different users
//   - status changes only through Transition, which enforces the state table
//     and who may trigger each edge
//   - Completed and Cancelled orders never change again
type Order struct {
	id           kernel.UUID
	serviceID    kernel.UUID
	clientID     kernel.UUID
	freelancerID kernel.UUID
	totalPrice   kernel.Money
	status       Status
	orderedAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// Transition describes one applied status change. It is the payload of the
// event published once the change has been committed.
type Transition struct {
	OrderID      kernel.UUID
	ClientID     kernel.UUID
	FreelancerID kernel.UUID
	From         Status
	To           Status
	ActorID      kernel.UUID
	At           time.Time
}

// NewOrder creates a Pending order.
//
// Example:
//
//	price, _ := kernel.NewMoney(5000, "USD")
//	o, err := order.NewOrder(kernel.NewUUID(), serviceID, clientID, freelancerID, price, now)
func NewOrder(
	id, serviceID, clientID, freelancerID kernel.UUID,
	totalPrice kernel.Money,
	orderedAt time.Time,
) (*Order, error) {
	return RestoreOrder(id, serviceID, clientID, freelancerID, totalPrice, Pending, orderedAt, orderedAt)
}

// RestoreOrder rebuilds an order from persistence with any valid status.
func RestoreOrder(
	id, serviceID, clientID, freelancerID kernel.UUID,
	totalPrice kernel.Money,
	status Status,
	orderedAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		orderedAt:     orderedAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setService(serviceID),
		o.setParties(clientID, freelancerID),
		o.setTotalPrice(totalPrice),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual reports whether both orders have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID           { return o.id }
func (o *Order) ServiceID() kernel.UUID    { return o.serviceID }
func (o *Order) ClientID() kernel.UUID     { return o.clientID }
func (o *Order) FreelancerID() kernel.UUID { return o.freelancerID }
func (o *Order) TotalPrice() kernel.Money  { return o.totalPrice }
func (o *Order) Status() Status            { return o.status }
func (o *Order) OrderedAt() time.Time      { return o.orderedAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }

// PartyOf returns the side the user plays in this order, or 0 for outsiders.
func (o *Order) PartyOf(userID kernel.UUID) Party {
	var p Party
	if o.clientID.IsEqual(userID) {
		p |= PartyClient
	}
	if o.freelancerID.IsEqual(userID) {
		p |= PartyFreelancer
	}
	return p
}

// IsParticipant reports whether the actor is the client, the freelancer or an admin.
func (o *Order) IsParticipant(actor kernel.Actor) bool {
	return actor.IsAdmin() || o.PartyOf(actor.ID()) != 0
}

// Transition moves the order to the target status on behalf of actor.
//
// Checks run in this order:
//  1. the actor is a participant or an admin (ForbiddenError)
//  2. the edge exists in the state table (InvalidTransitionError)
//  3. the actor's side may trigger that edge (ForbiddenError); admins skip this
//
// On error the order is left untouched.
func (o *Order) Transition(to Status, actor kernel.Actor, at time.Time) (Transition, error) {
	if err := o.Validate(); err != nil {
		return Transition{}, err
	}

	if !o.IsParticipant(actor) {
		return Transition{}, errs.NewForbiddenError(actor.ID().String(), fmt.Sprintf("change order %s", o.id))
	}

	allowed, ok := o.status.AllowedParties(to)
	if !ok {
		return Transition{}, errs.NewInvalidTransitionError("order", o.status.String(), to.String())
	}

	if !actor.IsAdmin() && !allowed.Has(o.PartyOf(actor.ID())) {
		return Transition{}, errs.NewForbiddenError(
			actor.ID().String(),
			fmt.Sprintf("move order %s to %s (only %s may)", o.id, to, allowed),
		)
	}

	t := Transition{
		OrderID:      o.id,
		ClientID:     o.clientID,
		FreelancerID: o.freelancerID,
		From:         o.status,
		To:           to,
		ActorID:      actor.ID(),
		At:           at,
	}

	o.status = to
	o.updatedAt = at
	return t, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setService(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("serviceID", err)
	}
	o.serviceID = serviceID
	return nil
}

func (o *Order) setParties(clientID, freelancerID kernel.UUID) error {
	if err := errors.Join(clientID.Validate(), freelancerID.Validate()); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("participants", err)
	}
	if clientID.IsEqual(freelancerID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"participants", fmt.Errorf("client %s cannot order their own service", clientID),
		)
	}
	o.clientID = clientID
	o.freelancerID = freelancerID
	return nil
}

func (o *Order) setTotalPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	o.totalPrice = price
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
