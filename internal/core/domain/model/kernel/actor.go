package kernel

import (
	"errors"
)

// ErrActorIsNotConstructed is returned when validating a zero-value Actor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the user on whose behalf a command executes. Admins bypass
// participant checks but never the order state machine.
type Actor struct {
	id    UUID
	admin bool
}

// NewActor builds an actor from an authenticated user id.
func NewActor(id UUID, admin bool) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, admin: admin}, nil
}

// ID returns the acting user's ID.
func (a Actor) ID() UUID {
	return a.id
}

// IsAdmin reports whether the actor has admin rights.
func (a Actor) IsAdmin() bool {
	return a.admin
}

// Is reports whether the actor is the given user.
func (a Actor) Is(userID UUID) bool {
	return a.id.IsEqual(userID)
}

// Validate reports whether the actor came from NewActor.
func (a Actor) Validate() error {
	if a.id.Validate() != nil {
		return ErrActorIsNotConstructed
	}
	return nil
}
