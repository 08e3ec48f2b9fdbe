package ports

import (
	"context"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/contact"
	"marketplace/internal/core/domain/model/freelancer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/core/domain/model/user"
)

// UserRepository persists users.
type UserRepository interface {
	Add(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
	Delete(ctx context.Context, id kernel.UUID) error
}

// ServiceRepository persists services and their categories.
type ServiceRepository interface {
	AddCategory(ctx context.Context, c catalog.Category) error
	Add(ctx context.Context, s *catalog.Service) error
	Get(ctx context.Context, id kernel.UUID) (*catalog.Service, error)
	DeleteByFreelancer(ctx context.Context, freelancerID kernel.UUID) error
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	Add(ctx context.Context, r *review.Review) error
	DeleteByOrder(ctx context.Context, orderID kernel.UUID) error
	DeleteByReviewer(ctx context.Context, reviewerID kernel.UUID) error
}

// ContactRequestRepository persists contact requests.
type ContactRequestRepository interface {
	Add(ctx context.Context, r *contact.Request) error
	Get(ctx context.Context, id kernel.UUID) (*contact.Request, error)

	// Update persists the resolution of a request that was still pending.
	// A request resolved concurrently yields an InvalidTransitionError.
	Update(ctx context.Context, r *contact.Request) error

	DeleteByUser(ctx context.Context, userID kernel.UUID) error
}

// FreelancerRequestRepository persists freelancer applications.
type FreelancerRequestRepository interface {
	Add(ctx context.Context, r *freelancer.Request) error
	Get(ctx context.Context, id kernel.UUID) (*freelancer.Request, error)

	// Update persists the resolution of a request that was still pending.
	Update(ctx context.Context, r *freelancer.Request) error

	DeleteByUser(ctx context.Context, userID kernel.UUID) error
}
