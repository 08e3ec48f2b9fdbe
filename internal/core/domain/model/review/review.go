// Package review models client feedback on a finished order.
//
// Several reviews may exist for the same (order, reviewer) pair.
package review

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ErrReviewIsNotConstructed is returned for a Review built as a literal.
var ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")

// Review is a client's rating of a service, tied to the completed order.
type Review struct {
	id         kernel.UUID
	orderID    kernel.UUID
	serviceID  kernel.UUID
	reviewerID kernel.UUID
	rating     int
	comment    string
	createdAt  time.Time

	isConstructed bool
}

// NewReview creates a review. Rating must be between 1 and 5.
func NewReview(orderID, serviceID, reviewerID kernel.UUID, rating int, comment string, at time.Time) (*Review, error) {
	return RestoreReview(kernel.NewUUID(), orderID, serviceID, reviewerID, rating, comment, at)
}

// RestoreReview rebuilds a review from storage.
func RestoreReview(
	id, orderID, serviceID, reviewerID kernel.UUID,
	rating int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	var ratingErr error
	if rating < MinRating || rating > MaxRating {
		ratingErr = errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		serviceID.Validate(),
		reviewerID.Validate(),
		ratingErr,
	); err != nil {
		return nil, err
	}

	return &Review{
		id:            id,
		orderID:       orderID,
		serviceID:     serviceID,
		reviewerID:    reviewerID,
		rating:        rating,
		comment:       strings.TrimSpace(comment),
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate reports whether the review came from a constructor.
func (r *Review) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReviewIsNotConstructed
	}
	return nil
}

func (r *Review) ID() kernel.UUID         { return r.id }
func (r *Review) OrderID() kernel.UUID    { return r.orderID }
func (r *Review) ServiceID() kernel.UUID  { return r.serviceID }
func (r *Review) ReviewerID() kernel.UUID { return r.reviewerID }
func (r *Review) Rating() int             { return r.rating }
func (r *Review) Comment() string         { return r.comment }
func (r *Review) CreatedAt() time.Time    { return r.createdAt }
