package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrDeliverOrderCommandIsNotConstructed is returned when the command was built as a literal.
var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand submits work for an in-progress order.
//
// Example:
//
//	cmd, err := NewDeliverOrderCommand(orderID, freelancer, "Draft v2", "")
//	if err != nil {
//	    return err
//	}
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actor       kernel.Actor
	message     string
	artifactURL string

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a delivery command. The message and
// artifact URL are validated by the delivery entity.
func NewDeliverOrderCommand(orderID kernel.UUID, actor kernel.Actor, message, artifactURL string) (DeliverOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return DeliverOrderCommand{}, err
	}

	return DeliverOrderCommand{
		orderID:     orderID,
		actor:       actor,
		message:     message,
		artifactURL: artifactURL,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c DeliverOrderCommand) Actor() kernel.Actor  { return c.actor }
func (c DeliverOrderCommand) Message() string      { return c.message }
func (c DeliverOrderCommand) ArtifactURL() string  { return c.artifactURL }
