package commands

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/events"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/pkg/errs"

	"go.uber.org/zap"
)

// CreateReviewCommandHandler lets the client of a completed order review the
// service. The reviewed freelancer is notified.
type CreateReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
	publisher  EventPublisher
	clock      kernel.Clock
	logger     *zap.Logger
}

// NewCreateReviewCommandHandler creates a new CreateReviewCommandHandler.
func NewCreateReviewCommandHandler(
	uowFactory ReviewUoWFactory,
	publisher EventPublisher,
	clock kernel.Clock,
	logger *zap.Logger,
) CreateReviewCommandHandler {
	return CreateReviewCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// Handle stores the review. The order must be completed and the reviewer
// must be its client.
func (h CreateReviewCommandHandler) Handle(ctx context.Context, cmd CreateReviewCommand) (*review.Review, error) {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !cmd.Reviewer().Is(o.ClientID()) {
		return nil, errs.NewForbiddenError(cmd.Reviewer().ID().String(), fmt.Sprintf("review order %s", o.ID()))
	}

	if o.Status() != order.Completed {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("order %s is %s, only completed orders can be reviewed", o.ID(), o.Status()),
		)
	}

	r, err := review.NewReview(o.ID(), o.ServiceID(), cmd.Reviewer().ID(), cmd.Rating(), cmd.Comment(), h.clock())
	if err != nil {
		return nil, err
	}

	if err = uow.ReviewRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishCommitted(ctx, h.publisher, h.logger, events.ReviewCreated{
		ReviewID:     r.ID(),
		OrderID:      o.ID(),
		ServiceID:    o.ServiceID(),
		ReviewerID:   r.ReviewerID(),
		FreelancerID: o.FreelancerID(),
		Rating:       r.Rating(),
		At:           r.CreatedAt(),
	})

	return r, nil
}
