// Package orderrepo persists order aggregates and their deliveries with GORM.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders table row.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID     uuid.UUID `gorm:"type:uuid;index;not null"`
	FreelancerID uuid.UUID `gorm:"type:uuid;index;not null"`
	TotalPrice   MoneyDTO  `gorm:"embedded;embeddedPrefix:total_price_"`
	Status       string    `gorm:"size:32;index;not null"`
	OrderedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for orders.
func (OrderDTO) TableName() string {
	return "orders"
}

// MoneyDTO stores an amount in minor units next to its currency code.
type MoneyDTO struct {
	Amount   int64  `gorm:"not null"`
	Currency string `gorm:"size:3;not null"`
}

// DeliveryDTO is one freelancer submission for an order.
type DeliveryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index;not null"`
	FreelancerID uuid.UUID `gorm:"type:uuid;not null"`
	Message      string    `gorm:"type:text"`
	ArtifactURL  string    `gorm:"size:2048"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
}

// TableName returns the table name for order deliveries.
func (DeliveryDTO) TableName() string {
	return "order_deliveries"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:           o.ID().Bytes(),
		ServiceID:    o.ServiceID().Bytes(),
		ClientID:     o.ClientID().Bytes(),
		FreelancerID: o.FreelancerID().Bytes(),
		TotalPrice: MoneyDTO{
			Amount:   o.TotalPrice().Amount(),
			Currency: o.TotalPrice().Currency(),
		},
		Status:    o.Status().String(),
		OrderedAt: o.OrderedAt().UTC(),
		UpdatedAt: o.UpdatedAt().UTC(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	ids, err := uuids(dto.ID, dto.ServiceID, dto.ClientID, dto.FreelancerID)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.TotalPrice.Amount, dto.TotalPrice.Currency)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(ids[0], ids[1], ids[2], ids[3], price, status, dto.OrderedAt.UTC(), dto.UpdatedAt.UTC())
}

func deliveryFromDomain(d *order.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:           d.ID().Bytes(),
		OrderID:      d.OrderID().Bytes(),
		FreelancerID: d.FreelancerID().Bytes(),
		Message:      d.Message(),
		ArtifactURL:  d.ArtifactURL(),
		CreatedAt:    d.CreatedAt().UTC(),
	}
}

func uuids(raw ...uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
