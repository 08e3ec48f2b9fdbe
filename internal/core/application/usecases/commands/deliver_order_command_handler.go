package commands

import (
	"context"

	"marketplace/internal/core/domain/model/events"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/metrics"

	"go.uber.org/zap"
)

// DeliverOrderCommandHandler stores a delivery and moves the order from
// in_progress to delivered in the same transaction.
//
// Example:
//
//	handler := NewDeliverOrderCommandHandler(uowFactory, publisher, kernel.SystemClock(), logger)
//	cmd, _ := NewDeliverOrderCommand(orderID, freelancer, "Final files", "https://files.example.com/logo.zip")
//
//	delivery, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("deliver order: %w", err)
//	}
type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewDeliverOrderCommandHandler creates a new DeliverOrderCommandHandler.
func NewDeliverOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher EventPublisher,
	clock kernel.Clock,
	logger *zap.Logger,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// Handle returns the stored delivery. Only the order's freelancer (or an
// admin) may deliver, and only from in_progress.
func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*order.Delivery, error) {
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

	now := h.clock()
	from := o.Status()
	transition, err := o.Transition(order.Delivered, cmd.Actor(), now)
	if err != nil {
		return nil, err
	}

	delivery, err := order.NewDelivery(o.ID(), o.FreelancerID(), cmd.Message(), cmd.ArtifactURL(), now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.AddDelivery(ctx, delivery); err != nil {
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

	return delivery, nil
}
