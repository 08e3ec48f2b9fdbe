package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrDeleteUserCommandIsNotConstructed = errors.New(
		"DeleteUserCommand must be created via NewDeleteUserCommand constructor",
	)
	ErrDeleteOrderCommandIsNotConstructed = errors.New(
		"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
	)
)

// DeleteUserCommand removes a user with everything that references them.
type DeleteUserCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	actor  kernel.Actor

	guard guard.ConstructorGuard
}

// NewDeleteUserCommand creates a command deleting userID on behalf of actor.
func NewDeleteUserCommand(userID kernel.UUID, actor kernel.Actor) (DeleteUserCommand, error) {
	if err := errors.Join(userID.Validate(), actor.Validate()); err != nil {
		return DeleteUserCommand{}, err
	}

	return DeleteUserCommand{userID: userID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the command came from its constructor.
func (c DeleteUserCommand) Validate() error {
	return c.guard.Validate(ErrDeleteUserCommandIsNotConstructed)
}

func (c DeleteUserCommand) UserID() kernel.UUID { return c.userID }
func (c DeleteUserCommand) Actor() kernel.Actor { return c.actor }

// DeleteOrderCommand removes an order, its deliveries and its reviews.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	admin   kernel.Actor

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a command deleting an order.
func NewDeleteOrderCommand(orderID kernel.UUID, admin kernel.Actor) (DeleteOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), admin.Validate()); err != nil {
		return DeleteOrderCommand{}, err
	}

	return DeleteOrderCommand{orderID: orderID, admin: admin, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the command came from its constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c DeleteOrderCommand) Admin() kernel.Actor  { return c.admin }
