package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrCreateReviewCommandIsNotConstructed is returned when the command was built as a literal.
var ErrCreateReviewCommandIsNotConstructed = errors.New(
	"CreateReviewCommand must be created via NewCreateReviewCommand constructor",
)

// CreateReviewCommand is a client rating a completed order from 1 to 5.
// Rating and comment are checked by the review aggregate.
//
// Example:
//
//	cmd, err := NewCreateReviewCommand(orderID, client, 5, "Fast and clean work")
//	if err != nil {
//	    return err
//	}
//	rv, err := handler.Handle(ctx, cmd)
type CreateReviewCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	reviewer kernel.Actor
	rating   int
	comment  string

	guard guard.ConstructorGuard
}

// NewCreateReviewCommand creates a review command.
func NewCreateReviewCommand(orderID kernel.UUID, reviewer kernel.Actor, rating int, comment string) (CreateReviewCommand, error) {
	if err := errors.Join(orderID.Validate(), reviewer.Validate()); err != nil {
		return CreateReviewCommand{}, err
	}

	return CreateReviewCommand{
		orderID:  orderID,
		reviewer: reviewer,
		rating:   rating,
		comment:  comment,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c CreateReviewCommand) Validate() error {
	return c.guard.Validate(ErrCreateReviewCommandIsNotConstructed)
}

func (c CreateReviewCommand) OrderID() kernel.UUID   { return c.orderID }
func (c CreateReviewCommand) Reviewer() kernel.Actor { return c.reviewer }
func (c CreateReviewCommand) Rating() int            { return c.rating }
func (c CreateReviewCommand) Comment() string        { return c.comment }
