package commands

import (
	"context"

	"marketplace/internal/core/domain/model/events"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"go.uber.org/zap"
)

// CreateOrderCommandHandler places a pending order for a service. The
// freelancer and price are copied from the service so later catalog edits do
// not touch existing orders.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  EventPublisher
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewCreateOrderCommandHandler creates a new CreateOrderCommandHandler.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher EventPublisher,
	clock kernel.Clock,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// Handle places the order and publishes OrderPlaced after commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	service, err := uow.ServiceRepository().Get(ctx, cmd.ServiceID())
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		service.ID(),
		cmd.Client().ID(),
		service.FreelancerID(),
		service.Price(),
		h.clock(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishCommitted(ctx, h.publisher, h.logger, events.OrderPlaced{
		OrderID:      o.ID(),
		ServiceID:    o.ServiceID(),
		ClientID:     o.ClientID(),
		FreelancerID: o.FreelancerID(),
		TotalPrice:   o.TotalPrice(),
		At:           o.OrderedAt(),
	})

	return o, nil
}
