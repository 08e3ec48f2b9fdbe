package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/contact"
	"marketplace/internal/core/domain/model/events"
	"marketplace/internal/core/domain/model/kernel"
)

// ErrNoNotificationCreated means the contact request was stored but its
// notification could not be.
var ErrNoNotificationCreated = errors.New("contact request stored but no notification was created")

// RaiseContactRequestCommandHandler stores a pending contact request and
// notifies its addressee. It returns the ID of that notification.
//
// Example:
//
//	handler := NewRaiseContactRequestCommandHandler(uowFactory, publisher, kernel.SystemClock())
//	cmd, _ := NewRaiseContactRequestCommand(client, freelancerID, "Are you free next week?")
//
//	notificationID, err := handler.Handle(ctx, cmd)
type RaiseContactRequestCommandHandler struct {
	uowFactory ContactUoWFactory
	publisher  EventPublisher
	clock      kernel.Clock
}

// NewRaiseContactRequestCommandHandler creates a new RaiseContactRequestCommandHandler.
func NewRaiseContactRequestCommandHandler(
	uowFactory ContactUoWFactory,
	publisher EventPublisher,
	clock kernel.Clock,
) RaiseContactRequestCommandHandler {
	return RaiseContactRequestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle stores the request. The addressee must exist and differ from the
// requester.
func (h RaiseContactRequestCommandHandler) Handle(ctx context.Context, cmd RaiseContactRequestCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.UserRepository().Get(ctx, cmd.ToUserID()); err != nil {
		return kernel.UUID{}, err
	}

	req, err := contact.NewRequest(cmd.From().ID(), cmd.ToUserID(), cmd.Message(), h.clock())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.ContactRequestRepository().Add(ctx, req); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	created, err := h.publisher.Publish(ctx, events.ContactRequestRaised{
		RequestID:  req.ID(),
		FromUserID: req.FromUserID(),
		ToUserID:   req.ToUserID(),
		Message:    req.Message(),
		At:         req.CreatedAt(),
	})
	if len(created) == 0 {
		return kernel.UUID{}, errors.Join(ErrNoNotificationCreated, err)
	}

	return created[0].ID(), nil
}
