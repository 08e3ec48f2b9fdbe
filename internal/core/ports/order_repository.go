// Package ports defines the persistence and transport contracts the
// application layer depends on. Adapters under internal/adapters implement
// them.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus writes the aggregate's current status only if the stored
	// status still equals expected. A lost race returns an
	// InvalidTransitionError and changes nothing.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// AddDelivery appends a freelancer delivery.
	AddDelivery(ctx context.Context, delivery *order.Delivery) error

	// ListIDsByParticipant returns the IDs of orders where the user is the
	// client or the freelancer.
	ListIDsByParticipant(ctx context.Context, userID kernel.UUID) ([]kernel.UUID, error)

	// Delete removes the order and its deliveries.
	Delete(ctx context.Context, id kernel.UUID) error
}
