package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/dberr"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler reads order status straight from the database.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a new GetOrderStatusQueryHandler.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle returns the committed status or an ObjectNotFoundError.
func (h GetOrderStatusQueryHandler) Handle(ctx context.Context, query GetOrderStatusQuery) (order.Status, error) {
	if err := query.Validate(); err != nil {
		return order.Unknown, err
	}

	var raw string
	err := h.db.WithContext(ctx).
		Raw(`SELECT status FROM orders WHERE id = ?`, query.OrderID().Bytes()).
		Row().
		Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return order.Unknown, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return order.Unknown, dberr.Translate("get order status", err)
	}

	return order.ParseStatus(raw)
}
