// Package commands contains the operations that change marketplace state.
// Every handler follows the same shape: validate the command, run the change
// inside a unit of work, commit, then publish the resulting domain event.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces give each handler exactly the repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UserRepoFactory provides access to the user repository.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// ServiceRepoFactory provides access to the service repository.
	ServiceRepoFactory interface {
		ServiceRepository() ports.ServiceRepository
	}

	// OrderRepoFactory provides access to the order repository.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ReviewRepoFactory provides access to the review repository.
	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// ContactRequestRepoFactory provides access to the contact request repository.
	ContactRequestRepoFactory interface {
		ContactRequestRepository() ports.ContactRequestRepository
	}

	// FreelancerRequestRepoFactory provides access to the freelancer request repository.
	FreelancerRequestRepoFactory interface {
		FreelancerRequestRepository() ports.FreelancerRequestRepository
	}

	// NotificationRepoFactory provides access to the live notification repository.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// NotificationHistoryRepoFactory provides access to the notification history repository.
	NotificationHistoryRepoFactory interface {
		NotificationHistoryRepository() ports.NotificationHistoryRepository
	}

	// OrderUoW serves the order lifecycle commands.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ServiceRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReviewUoW serves review creation, which reads the reviewed order.
	ReviewUoW interface {
		TxManager
		OrderRepoFactory
		ReviewRepoFactory
	}

	// ReviewUoWFactory creates new review unit of work instances.
	ReviewUoWFactory interface {
		Create() ReviewUoW
	}

	// ContactUoW serves contact requests, which check the addressee exists.
	ContactUoW interface {
		TxManager
		UserRepoFactory
		ContactRequestRepoFactory
	}

	// ContactUoWFactory creates new contact unit of work instances.
	ContactUoWFactory interface {
		Create() ContactUoW
	}

	// FreelancerUoW serves freelancer applications.
	FreelancerUoW interface {
		TxManager
		FreelancerRequestRepoFactory
	}

	// FreelancerUoWFactory creates new freelancer unit of work instances.
	FreelancerUoWFactory interface {
		Create() FreelancerUoW
	}

	// NotificationUoW serves notification creation, reads and delivery.
	NotificationUoW interface {
		TxManager
		UserRepoFactory
		NotificationRepoFactory
		NotificationHistoryRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	// UoW spans every aggregate. Used by the cascading deletes.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   ids, err := uow.OrderRepository().ListIDsByParticipant(ctx, userID)
	//   // ... delete dependents
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		UserRepoFactory
		ServiceRepoFactory
		OrderRepoFactory
		ReviewRepoFactory
		ContactRequestRepoFactory
		FreelancerRequestRepoFactory
		NotificationRepoFactory
		NotificationHistoryRepoFactory
	}

	// UoWFactory creates unit of work instances spanning every aggregate.
	UoWFactory interface {
		Create() UoW
	}
)
