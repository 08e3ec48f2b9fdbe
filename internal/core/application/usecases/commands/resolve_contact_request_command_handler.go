package commands

import (
	"context"

	"marketplace/internal/core/domain/model/contact"
	"marketplace/internal/core/domain/model/events"
	"marketplace/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// ResolveContactRequestCommandHandler accepts or rejects a pending contact
// request and tells the requester.
//
// Example:
//
//	cmd, _ := NewResolveContactRequestCommand(requestID, addressee, true)
//	req, err := handler.Handle(ctx, cmd)
type ResolveContactRequestCommandHandler struct {
	uowFactory ContactUoWFactory
	publisher  EventPublisher
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewResolveContactRequestCommandHandler creates a new ResolveContactRequestCommandHandler.
func NewResolveContactRequestCommandHandler(
	uowFactory ContactUoWFactory,
	publisher EventPublisher,
	clock kernel.Clock,
	logger *zap.Logger,
) ResolveContactRequestCommandHandler {
	return ResolveContactRequestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// Handle returns the resolved request. Only the addressee or an admin may
// resolve it.
func (h ResolveContactRequestCommandHandler) Handle(
	ctx context.Context,
	cmd ResolveContactRequestCommand,
) (*contact.Request, error) {
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

	repo := uow.ContactRequestRepository()
	req, err := repo.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	if err = req.Resolve(cmd.Actor(), cmd.Accepted(), h.clock()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, req); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishCommitted(ctx, h.publisher, h.logger, events.ContactRequestResolved{
		RequestID:  req.ID(),
		FromUserID: req.FromUserID(),
		ToUserID:   req.ToUserID(),
		Accepted:   cmd.Accepted(),
		At:         *req.ResolvedAt(),
	})

	return req, nil
}
