package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrSubmitFreelancerRequestCommandIsNotConstructed = errors.New(
		"SubmitFreelancerRequestCommand must be created via NewSubmitFreelancerRequestCommand constructor",
	)
	ErrResolveFreelancerRequestCommandIsNotConstructed = errors.New(
		"ResolveFreelancerRequestCommand must be created via NewResolveFreelancerRequestCommand constructor",
	)
)

// SubmitFreelancerRequestCommand is a user applying to become a freelancer.
type SubmitFreelancerRequestCommand struct { //nolint:recvcheck //using for validation
	applicant  kernel.Actor
	motivation string

	guard guard.ConstructorGuard
}

// NewSubmitFreelancerRequestCommand creates a submit command.
func NewSubmitFreelancerRequestCommand(applicant kernel.Actor, motivation string) (SubmitFreelancerRequestCommand, error) {
	if err := applicant.Validate(); err != nil {
		return SubmitFreelancerRequestCommand{}, err
	}

	return SubmitFreelancerRequestCommand{
		applicant:  applicant,
		motivation: motivation,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c SubmitFreelancerRequestCommand) Validate() error {
	return c.guard.Validate(ErrSubmitFreelancerRequestCommandIsNotConstructed)
}

func (c SubmitFreelancerRequestCommand) Applicant() kernel.Actor { return c.applicant }
func (c SubmitFreelancerRequestCommand) Motivation() string      { return c.motivation }

// ResolveFreelancerRequestCommand is an admin deciding on an application.
type ResolveFreelancerRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	admin     kernel.Actor
	approved  bool

	guard guard.ConstructorGuard
}

// NewResolveFreelancerRequestCommand creates a resolve command.
func NewResolveFreelancerRequestCommand(
	requestID kernel.UUID,
	admin kernel.Actor,
	approved bool,
) (ResolveFreelancerRequestCommand, error) {
	if err := errors.Join(requestID.Validate(), admin.Validate()); err != nil {
		return ResolveFreelancerRequestCommand{}, err
	}

	return ResolveFreelancerRequestCommand{
		requestID: requestID,
		admin:     admin,
		approved:  approved,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c ResolveFreelancerRequestCommand) Validate() error {
	return c.guard.Validate(ErrResolveFreelancerRequestCommandIsNotConstructed)
}

func (c ResolveFreelancerRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c ResolveFreelancerRequestCommand) Admin() kernel.Actor    { return c.admin }
func (c ResolveFreelancerRequestCommand) Approved() bool         { return c.approved }
