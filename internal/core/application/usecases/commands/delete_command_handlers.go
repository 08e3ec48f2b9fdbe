package commands

import (
	"context"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// DeleteUserCommandHandler removes a user in dependency order inside one
// transaction: reviews on their orders, their orders, their own reviews,
// contact and freelancer requests, services, notifications and history, and
// finally the user row. Only the user or an admin may do this.
//
// Example:
//
//	handler := NewDeleteUserCommandHandler(uowFactory)
//	cmd, _ := NewDeleteUserCommand(userID, admin)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("delete user: %w", err)
//	}
type DeleteUserCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteUserCommandHandler creates a new DeleteUserCommandHandler.
func NewDeleteUserCommandHandler(uowFactory UoWFactory) DeleteUserCommandHandler {
	return DeleteUserCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the user and all dependent rows, or nothing.
func (h DeleteUserCommandHandler) Handle(ctx context.Context, cmd DeleteUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	userID := cmd.UserID()
	if !cmd.Actor().Is(userID) && !cmd.Actor().IsAdmin() {
		return errs.NewForbiddenError(cmd.Actor().ID().String(), fmt.Sprintf("delete user %s", userID))
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.UserRepository().Get(ctx, userID); err != nil {
		return err
	}

	orderIDs, err := uow.OrderRepository().ListIDsByParticipant(ctx, userID)
	if err != nil {
		return err
	}

	for _, orderID := range orderIDs {
		if err = uow.ReviewRepository().DeleteByOrder(ctx, orderID); err != nil {
			return err
		}
		if err = uow.OrderRepository().Delete(ctx, orderID); err != nil {
			return err
		}
	}

	steps := []func(context.Context) error{
		func(ctx context.Context) error {
			return uow.ReviewRepository().DeleteByReviewer(ctx, userID)
		},
		func(ctx context.Context) error {
			return uow.ContactRequestRepository().DeleteByUser(ctx, userID)
		},
		func(ctx context.Context) error {
			return uow.FreelancerRequestRepository().DeleteByUser(ctx, userID)
		},
		func(ctx context.Context) error {
			return uow.ServiceRepository().DeleteByFreelancer(ctx, userID)
		},
		func(ctx context.Context) error {
			return uow.NotificationRepository().DeleteByRecipient(ctx, userID)
		},
		func(ctx context.Context) error {
			return uow.NotificationHistoryRepository().DeleteByRecipient(ctx, userID)
		},
		func(ctx context.Context) error {
			return uow.UserRepository().Delete(ctx, userID)
		},
	}
	for _, step := range steps {
		if err = step(ctx); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// DeleteOrderCommandHandler removes an order. Admin only.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteOrderCommandHandler creates a new DeleteOrderCommandHandler.
func NewDeleteOrderCommandHandler(uowFactory UoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

// Handle deletes the order with its reviews and deliveries.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Admin().IsAdmin() {
		return errs.NewForbiddenError(cmd.Admin().ID().String(), fmt.Sprintf("delete order %s", cmd.OrderID()))
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err := uow.ReviewRepository().DeleteByOrder(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err := uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
