package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/guard"
)

// ErrDeliverNotificationsCommandIsNotConstructed is returned when the command was built as a literal.
var ErrDeliverNotificationsCommandIsNotConstructed = errors.New(
	"DeliverNotificationsCommand must be created via NewDeliverNotificationsCommand constructor",
)

// DeliverNotificationsCommand triggers one pass of the email delivery
// pipeline over the notifications that are due now.
//
// Example:
//
//	cmd := NewDeliverNotificationsCommand()
//	report, err := handler.Handle(ctx, cmd)
type DeliverNotificationsCommand struct {
	guard guard.ConstructorGuard
}

// NewDeliverNotificationsCommand creates a command for one delivery pass.
func NewDeliverNotificationsCommand() DeliverNotificationsCommand {
	return DeliverNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate reports whether the command came from its constructor.
func (c *DeliverNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDeliverNotificationsCommandIsNotConstructed)
}

// DeliverySettings tunes one delivery pass.
type DeliverySettings struct {
	// Worker identifies this process in claims. Must be unique per instance.
	Worker string
	// BatchSize caps how many notifications one pass looks at.
	BatchSize int
	// Workers bounds how many notifications are processed in parallel.
	Workers int
	// ClaimTTL is how long a claim protects a notification from other workers.
	ClaimTTL time.Duration
	// SendTimeout bounds a single Mailer.Send call.
	SendTimeout time.Duration
	// RegistryTTL is how long the send registry remembers a sent email.
	RegistryTTL time.Duration
}

// DeliveryReport counts what one pass did.
type DeliveryReport struct {
	Claimed  int
	Skipped  int
	Sent     int
	Retrying int
	Failed   int
	Archived int
}

// IsEmpty reports whether the pass touched nothing.
func (r DeliveryReport) IsEmpty() bool {
	return r == DeliveryReport{}
}
