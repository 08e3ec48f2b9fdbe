package orderrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/dberr"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errStatusChanged = errors.New("stored status changed concurrently")

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return dberr.Translate("add order", r.db.WithContext(ctx).Create(&dto).Error)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, dberr.Translate("get order", err)
	}

	return toDomain(dto)
}

// UpdateStatus is a compare-and-swap on the status column.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), expected.String()).
		UpdateColumns(map[string]any{
			"status":     aggregate.Status().String(),
			"updated_at": aggregate.UpdatedAt().UTC(),
		})
	if result.Error != nil {
		return dberr.Translate("update order status", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewInvalidTransitionErrorWithCause(
			"order", expected.String(), aggregate.Status().String(), errStatusChanged,
		)
	}
	return nil
}

// AddDelivery saves a submitted delivery of an order.
func (r *GormOrderRepository) AddDelivery(ctx context.Context, delivery *order.Delivery) error {
	if err := delivery.Validate(); err != nil {
		return err
	}

	dto := deliveryFromDomain(delivery)
	return dberr.Translate("add order delivery", r.db.WithContext(ctx).Create(&dto).Error)
}

// ListIDsByParticipant returns the IDs of orders where the user is the client
// or the freelancer, oldest first.
func (r *GormOrderRepository) ListIDsByParticipant(ctx context.Context, userID kernel.UUID) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("client_id = ? OR freelancer_id = ?", userID.Bytes(), userID.Bytes()).
		Order("ordered_at").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, dberr.Translate("list orders by participant", err)
	}

	return uuids(raw...)
}

// Delete removes the order and its deliveries.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id.Bytes()).Delete(&DeliveryDTO{}).Error; err != nil {
		return dberr.Translate("delete order deliveries", err)
	}
	return dberr.Translate("delete order", db.Where("id = ?", id.Bytes()).Delete(&OrderDTO{}).Error)
}
