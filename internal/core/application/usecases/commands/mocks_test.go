package commands_test

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/contact"
	"marketplace/internal/core/domain/model/events"
	"marketplace/internal/core/domain/model/freelancer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/review"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) AddDelivery(ctx context.Context, d *order.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockOrderRepository) ListIDsByParticipant(ctx context.Context, userID kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockServiceRepository struct{ mock.Mock }

func (m *MockServiceRepository) AddCategory(ctx context.Context, c catalog.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockServiceRepository) Add(ctx context.Context, s *catalog.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockServiceRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Service, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*catalog.Service)
	return s, args.Error(1)
}

func (m *MockServiceRepository) DeleteByFreelancer(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Add(ctx context.Context, r *review.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewRepository) DeleteByOrder(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewRepository) DeleteByReviewer(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockContactRequestRepository struct{ mock.Mock }

func (m *MockContactRequestRepository) Add(ctx context.Context, r *contact.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockContactRequestRepository) Get(ctx context.Context, id kernel.UUID) (*contact.Request, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*contact.Request)
	return r, args.Error(1)
}

func (m *MockContactRequestRepository) Update(ctx context.Context, r *contact.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockContactRequestRepository) DeleteByUser(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockFreelancerRequestRepository struct{ mock.Mock }

func (m *MockFreelancerRequestRepository) Add(ctx context.Context, r *freelancer.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockFreelancerRequestRepository) Get(ctx context.Context, id kernel.UUID) (*freelancer.Request, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*freelancer.Request)
	return r, args.Error(1)
}

func (m *MockFreelancerRequestRepository) Update(ctx context.Context, r *freelancer.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockFreelancerRequestRepository) DeleteByUser(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationRepository) UpdateRead(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) ListDeliverable(ctx context.Context, now time.Time, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, now, limit)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

func (m *MockNotificationRepository) Claim(
	ctx context.Context,
	id kernel.UUID,
	worker string,
	now time.Time,
	ttl time.Duration,
) (bool, error) {
	args := m.Called(ctx, id, worker, now, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) UpdateDelivery(ctx context.Context, n *notification.Notification, worker string) error {
	return m.Called(ctx, n, worker).Error(0)
}

func (m *MockNotificationRepository) Release(ctx context.Context, id kernel.UUID, worker string) error {
	return m.Called(ctx, id, worker).Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNotificationRepository) DeleteArchived(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) DeleteOrphaned(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) DeleteByRecipient(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockNotificationHistoryRepository struct{ mock.Mock }

func (m *MockNotificationHistoryRepository) Add(ctx context.Context, e notification.HistoryEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockNotificationHistoryRepository) DeleteOrphaned(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationHistoryRepository) DeleteByRecipient(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) ServiceRepository() ports.ServiceRepository {
	return m.Called().Get(0).(ports.ServiceRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ReviewRepository() ports.ReviewRepository {
	return m.Called().Get(0).(ports.ReviewRepository)
}

func (m *MockUoW) ContactRequestRepository() ports.ContactRequestRepository {
	return m.Called().Get(0).(ports.ContactRequestRepository)
}

func (m *MockUoW) FreelancerRequestRepository() ports.FreelancerRequestRepository {
	return m.Called().Get(0).(ports.FreelancerRequestRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	return m.Called().Get(0).(ports.NotificationRepository)
}

func (m *MockUoW) NotificationHistoryRepository() ports.NotificationHistoryRepository {
	return m.Called().Get(0).(ports.NotificationHistoryRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockReviewUoWFactory struct{ mock.Mock }

func (m *MockReviewUoWFactory) Create() commands.ReviewUoW {
	return m.Called().Get(0).(commands.ReviewUoW)
}

type MockContactUoWFactory struct{ mock.Mock }

func (m *MockContactUoWFactory) Create() commands.ContactUoW {
	return m.Called().Get(0).(commands.ContactUoW)
}

type MockFreelancerUoWFactory struct{ mock.Mock }

func (m *MockFreelancerUoWFactory) Create() commands.FreelancerUoW {
	return m.Called().Get(0).(commands.FreelancerUoW)
}

type MockNotificationUoWFactory struct{ mock.Mock }

func (m *MockNotificationUoWFactory) Create() commands.NotificationUoW {
	return m.Called().Get(0).(commands.NotificationUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event events.Event) ([]*notification.Notification, error) {
	args := m.Called(ctx, event)
	created, _ := args.Get(0).([]*notification.Notification)
	return created, args.Error(1)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type MockSendRegistry struct{ mock.Mock }

func (m *MockSendRegistry) WasSent(ctx context.Context, id string) bool {
	return m.Called(ctx, id).Bool(0)
}

func (m *MockSendRegistry) MarkSent(ctx context.Context, id string, ttl time.Duration) {
	m.Called(ctx, id, ttl)
}
