// Package reviewrepo persists reviews. Several reviews per order and reviewer
// are allowed.
package reviewrepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/pkg/dberr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewDTO is the database row of a review.
type ReviewDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ReviewerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime:false"`
}

// TableName returns the table name for reviews.
func (ReviewDTO) TableName() string {
	return "reviews"
}

// GormReviewRepository stores reviews with GORM.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GORM review repository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Add saves a new review to the database.
func (r *GormReviewRepository) Add(ctx context.Context, rv *review.Review) error {
	if err := rv.Validate(); err != nil {
		return err
	}

	dto := ReviewDTO{
		ID:         rv.ID().Bytes(),
		OrderID:    rv.OrderID().Bytes(),
		ServiceID:  rv.ServiceID().Bytes(),
		ReviewerID: rv.ReviewerID().Bytes(),
		Rating:     rv.Rating(),
		Comment:    rv.Comment(),
		CreatedAt:  rv.CreatedAt().UTC(),
	}
	return dberr.Translate("add review", r.db.WithContext(ctx).Create(&dto).Error)
}

// DeleteByOrder removes all reviews of an order.
func (r *GormReviewRepository) DeleteByOrder(ctx context.Context, orderID kernel.UUID) error {
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()).Delete(&ReviewDTO{}).Error
	return dberr.Translate("delete order reviews", err)
}

// DeleteByReviewer removes all reviews written by a user.
func (r *GormReviewRepository) DeleteByReviewer(ctx context.Context, reviewerID kernel.UUID) error {
	err := r.db.WithContext(ctx).Where("reviewer_id = ?", reviewerID.Bytes()).Delete(&ReviewDTO{}).Error
	return dberr.Translate("delete reviewer reviews", err)
}
