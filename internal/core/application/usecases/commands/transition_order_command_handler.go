package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/events"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ErrDeliveryRequired rejects a plain status change to delivered. An order is
// delivered by DeliverOrderCommand, which stores the OrderDelivery with it.
var ErrDeliveryRequired = errors.New("order must be delivered with a delivery record")

// TransitionOrderCommandHandler applies status changes that carry no payload.
//
// The stored status is replaced with a compare-and-swap on the status that
// was read, so of two concurrent requests on the same order at most one
// commits; the other gets an InvalidTransitionError. Exactly one
// OrderTransitioned event is published per committed change, after commit.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, publisher, kernel.SystemClock(), logger)
//	cmd, _ := NewTransitionOrderCommand(orderID, order.InProgress, freelancer)
//
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // stale or illegal move, reload and retry
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewTransitionOrderCommandHandler creates a new TransitionOrderCommandHandler.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher EventPublisher,
	clock kernel.Clock,
	logger *zap.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// Handle returns the updated order, or one of ObjectNotFoundError,
// ForbiddenError and InvalidTransitionError with the order unchanged.
// A participant asking for order.Delivered gets an InvalidTransitionError
// wrapping ErrDeliveryRequired.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	if cmd.To() == order.Delivered && o.IsParticipant(cmd.Actor()) {
		return nil, errs.NewInvalidTransitionErrorWithCause(
			"order", from.String(), order.Delivered.String(), ErrDeliveryRequired,
		)
	}

	transition, err := o.Transition(cmd.To(), cmd.Actor(), h.clock())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.UpdateStatus(ctx, o, from); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(from.String(), transition.To.String()).Inc()
	publishCommitted(ctx, h.publisher, h.logger, events.OrderTransitioned{Transition: transition})

	return o, nil
}
