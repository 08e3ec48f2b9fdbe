package commands

import (
	"context"

	"marketplace/internal/core/domain/model/events"
	"marketplace/internal/core/domain/model/freelancer"
	"marketplace/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// SubmitFreelancerRequestCommandHandler stores a pending application to become
// a freelancer.
//
// Example:
//
//	handler := NewSubmitFreelancerRequestCommandHandler(uowFactory, kernel.SystemClock())
//	cmd, _ := NewSubmitFreelancerRequestCommand(applicant, "Five years of logo design")
//
//	req, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("submit freelancer request: %w", err)
//	}
type SubmitFreelancerRequestCommandHandler struct {
	uowFactory FreelancerUoWFactory
	clock      kernel.Clock
}

// NewSubmitFreelancerRequestCommandHandler creates a new SubmitFreelancerRequestCommandHandler.
func NewSubmitFreelancerRequestCommandHandler(
	uowFactory FreelancerUoWFactory,
	clock kernel.Clock,
) SubmitFreelancerRequestCommandHandler {
	return SubmitFreelancerRequestCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the stored request.
func (h SubmitFreelancerRequestCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitFreelancerRequestCommand,
) (*freelancer.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	req, err := freelancer.NewRequest(cmd.Applicant().ID(), cmd.Motivation(), h.clock())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.FreelancerRequestRepository().Add(ctx, req); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return req, nil
}

// ResolveFreelancerRequestCommandHandler approves or rejects an application.
// Only admins may resolve; the applicant gets a system notification.
//
// Example:
//
//	handler := NewResolveFreelancerRequestCommandHandler(uowFactory, publisher, kernel.SystemClock(), logger)
//	cmd, _ := NewResolveFreelancerRequestCommand(requestID, admin, true)
//
//	req, err := handler.Handle(ctx, cmd)
type ResolveFreelancerRequestCommandHandler struct {
	uowFactory FreelancerUoWFactory
	publisher  EventPublisher
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewResolveFreelancerRequestCommandHandler creates a new ResolveFreelancerRequestCommandHandler.
func NewResolveFreelancerRequestCommandHandler(
	uowFactory FreelancerUoWFactory,
	publisher EventPublisher,
	clock kernel.Clock,
	logger *zap.Logger,
) ResolveFreelancerRequestCommandHandler {
	return ResolveFreelancerRequestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// Handle returns the resolved request. A request resolved concurrently
// yields an InvalidTransitionError.
func (h ResolveFreelancerRequestCommandHandler) Handle(
	ctx context.Context,
	cmd ResolveFreelancerRequestCommand,
) (*freelancer.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.FreelancerRequestRepository()
	req, err := repo.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	if err = req.Resolve(cmd.Admin(), cmd.Approved(), h.clock()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, req); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishCommitted(ctx, h.publisher, h.logger, events.FreelancerRequestResolved{
		RequestID: req.ID(),
		UserID:    req.UserID(),
		Approved:  cmd.Approved(),
		At:        *req.ResolvedAt(),
	})

	return req, nil
}
