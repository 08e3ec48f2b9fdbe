package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrRaiseContactRequestCommandIsNotConstructed is returned when the command was built as a literal.
var ErrRaiseContactRequestCommandIsNotConstructed = errors.New(
	"RaiseContactRequestCommand must be created via NewRaiseContactRequestCommand constructor",
)

// RaiseContactRequestCommand asks another user to get in touch.
type RaiseContactRequestCommand struct { //nolint:recvcheck //using for validation
	from     kernel.Actor
	toUserID kernel.UUID
	message  string

	guard guard.ConstructorGuard
}

// NewRaiseContactRequestCommand creates a contact request command.
func NewRaiseContactRequestCommand(from kernel.Actor, toUserID kernel.UUID, message string) (RaiseContactRequestCommand, error) {
	if err := errors.Join(from.Validate(), toUserID.Validate()); err != nil {
		return RaiseContactRequestCommand{}, err
	}

	return RaiseContactRequestCommand{
		from:     from,
		toUserID: toUserID,
		message:  message,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c RaiseContactRequestCommand) Validate() error {
	return c.guard.Validate(ErrRaiseContactRequestCommandIsNotConstructed)
}

func (c RaiseContactRequestCommand) From() kernel.Actor    { return c.from }
func (c RaiseContactRequestCommand) ToUserID() kernel.UUID { return c.toUserID }
func (c RaiseContactRequestCommand) Message() string       { return c.message }
