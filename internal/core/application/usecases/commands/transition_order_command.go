package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

// ErrTransitionOrderCommandIsNotConstructed is returned when the command was built as a literal.
var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks to move an order to a new status on behalf of
// an actor.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.Cancelled, client)
//	if err != nil {
//	    return fmt.Errorf("invalid command: %w", err)
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	to      order.Status
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a transition command. Legality of the
// move is decided by the handler against the stored order.
func NewTransitionOrderCommand(orderID kernel.UUID, to order.Status, actor kernel.Actor) (TransitionOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), to.Validate(), actor.Validate()); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID: orderID,
		to:      to,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionOrderCommand) To() order.Status     { return c.to }
func (c TransitionOrderCommand) Actor() kernel.Actor  { return c.actor }
