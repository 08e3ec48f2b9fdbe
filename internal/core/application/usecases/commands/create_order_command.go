package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when the command was built as a literal.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a client buying a service.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(serviceID, actor)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	serviceID kernel.UUID
	client    kernel.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command for client to order the service.
func NewCreateOrderCommand(serviceID kernel.UUID, client kernel.Actor) (CreateOrderCommand, error) {
	if err := errors.Join(serviceID.Validate(), client.Validate()); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		serviceID: serviceID,
		client:    client,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) ServiceID() kernel.UUID { return c.serviceID }
func (c CreateOrderCommand) Client() kernel.Actor   { return c.client }
