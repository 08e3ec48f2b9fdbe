package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrResolveContactRequestCommandIsNotConstructed is returned when the command was built as a literal.
var ErrResolveContactRequestCommandIsNotConstructed = errors.New(
	"ResolveContactRequestCommand must be created via NewResolveContactRequestCommand constructor",
)

// ResolveContactRequestCommand is the addressee accepting or rejecting a
// contact request.
type ResolveContactRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	actor     kernel.Actor
	accepted  bool

	guard guard.ConstructorGuard
}

// NewResolveContactRequestCommand creates a resolve command.
func NewResolveContactRequestCommand(requestID kernel.UUID, actor kernel.Actor, accepted bool) (ResolveContactRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), actor.Validate()); err != nil {
		return ResolveContactRequestCommand{}, err
	}

	return ResolveContactRequestCommand{
		requestID: requestID,
		actor:     actor,
		accepted:  accepted,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c ResolveContactRequestCommand) Validate() error {
	return c.guard.Validate(ErrResolveContactRequestCommandIsNotConstructed)
}

func (c ResolveContactRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c ResolveContactRequestCommand) Actor() kernel.Actor    { return c.actor }
func (c ResolveContactRequestCommand) Accepted() bool         { return c.accepted }
