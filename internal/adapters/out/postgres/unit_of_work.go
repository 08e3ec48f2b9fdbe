// Package postgres provides the GORM-based Unit of Work and the database
// bootstrap shared by every repository.
//
// Repositories handed out before Begin (or after Commit/Rollback) run
// directly against the pool. Repositories handed out between Begin and
// Commit share the transaction:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().UpdateStatus(ctx, o, from); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork holds at most one transaction and must not be shared
// between goroutines.
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/contactrepo"
	"marketplace/internal/adapters/out/postgres/freelancerrepo"
	"marketplace/internal/adapters/out/postgres/notificationrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/reviewrepo"
	"marketplace/internal/adapters/out/postgres/servicerepo"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/dberr"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances bound to one *gorm.DB.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := postgres.Open(cfg)
//	if err != nil {
//	    return err
//	}
//	factory := postgres.NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with no transaction open.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return dberr.Translate("begin transaction", tx.Error)
	}
	uow.tx = tx
	return nil
}

// Commit finalizes the open transaction. Without one it returns
// gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return dberr.Translate("commit transaction", err)
}

// Rollback discards the open transaction. Handlers defer it unconditionally,
// so after a Commit it returns gorm.ErrInvalidTransaction and changes nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// UserRepository returns the user repository bound to the current transaction.
func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

// ServiceRepository returns the service repository bound to the current transaction.
func (uow *GormUnitOfWork) ServiceRepository() ports.ServiceRepository {
	return servicerepo.NewGormServiceRepository(uow.conn())
}

// OrderRepository returns the order repository bound to the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// ReviewRepository returns the review repository bound to the current transaction.
func (uow *GormUnitOfWork) ReviewRepository() ports.ReviewRepository {
	return reviewrepo.NewGormReviewRepository(uow.conn())
}

// ContactRequestRepository returns the contact request repository bound to
// the current transaction.
func (uow *GormUnitOfWork) ContactRequestRepository() ports.ContactRequestRepository {
	return contactrepo.NewGormContactRequestRepository(uow.conn())
}

// FreelancerRequestRepository returns the freelancer request repository bound
// to the current transaction.
func (uow *GormUnitOfWork) FreelancerRequestRepository() ports.FreelancerRequestRepository {
	return freelancerrepo.NewGormFreelancerRequestRepository(uow.conn())
}

// NotificationRepository returns the notification repository bound to the
// current transaction.
func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

// NotificationHistoryRepository returns the history repository bound to the
// current transaction.
func (uow *GormUnitOfWork) NotificationHistoryRepository() ports.NotificationHistoryRepository {
	return notificationrepo.NewGormHistoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
