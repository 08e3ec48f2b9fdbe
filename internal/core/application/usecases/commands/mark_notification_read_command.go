package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/pkg/guard"
)

// ErrMarkNotificationReadCommandIsNotConstructed is returned when the command was built as a literal.
var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand marks one notification as read.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	actor          kernel.Actor

	guard guard.ConstructorGuard
}

// NewMarkNotificationReadCommand creates a mark-read command.
func NewMarkNotificationReadCommand(notificationID kernel.UUID, actor kernel.Actor) (MarkNotificationReadCommand, error) {
	if err := errors.Join(notificationID.Validate(), actor.Validate()); err != nil {
		return MarkNotificationReadCommand{}, err
	}

	return MarkNotificationReadCommand{
		notificationID: notificationID,
		actor:          actor,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command came from its constructor.
func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) NotificationID() kernel.UUID { return c.notificationID }
func (c MarkNotificationReadCommand) Actor() kernel.Actor         { return c.actor }

// MarkNotificationReadCommandHandler sets the read flag of a live notification.
// Archived notifications are not found.
//
// Example:
//
//	handler := NewMarkNotificationReadCommandHandler(uowFactory)
//	cmd, _ := NewMarkNotificationReadCommand(notificationID, actor)
//
//	n, err := handler.Handle(ctx, cmd)
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationReadCommandHandler creates a new MarkNotificationReadCommandHandler.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{uowFactory: uowFactory}
}

// Handle sets the read flag. Only the recipient may, admins are no exception.
func (h MarkNotificationReadCommandHandler) Handle(
	ctx context.Context,
	cmd MarkNotificationReadCommand,
) (*notification.Notification, error) {
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

	repo := uow.NotificationRepository()
	n, err := repo.Get(ctx, cmd.NotificationID())
	if err != nil {
		return nil, err
	}

	if err = n.MarkRead(cmd.Actor()); err != nil {
		return nil, err
	}

	if err = repo.UpdateRead(ctx, n); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return n, nil
}
