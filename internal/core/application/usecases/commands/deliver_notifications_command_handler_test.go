package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const testWorker = "worker-1"

type DeliverNotificationsSuite struct {
	suite.Suite

	notifications *MockNotificationRepository
	history       *MockNotificationHistoryRepository
	users         *MockUserRepository
	uow           *MockUoW
	factory       *MockNotificationUoWFactory
	mailer        *MockMailer
	registry      *MockSendRegistry
	policy        notification.RetryPolicy
	settings      commands.DeliverySettings
}

func TestDeliverNotificationsSuite(t *testing.T) {
	suite.Run(t, new(DeliverNotificationsSuite))
}

func (s *DeliverNotificationsSuite) SetupTest() {
	s.notifications = new(MockNotificationRepository)
	s.history = new(MockNotificationHistoryRepository)
	s.users = new(MockUserRepository)
	s.uow = new(MockUoW)
	s.uow.On("NotificationRepository").Return(s.notifications)
	s.uow.On("NotificationHistoryRepository").Return(s.history)
	s.uow.On("UserRepository").Return(s.users)
	s.factory = new(MockNotificationUoWFactory)
	s.factory.On("Create").Return(s.uow)
	s.mailer = new(MockMailer)
	s.registry = new(MockSendRegistry)

	policy, err := notification.NewRetryPolicy(3, time.Minute, 10*time.Minute)
	s.Require().NoError(err)
	s.policy = policy
	s.settings = commands.DeliverySettings{
		Worker:      testWorker,
		BatchSize:   50,
		Workers:     4,
		ClaimTTL:    time.Minute,
		SendTimeout: 5 * time.Second,
		RegistryTTL: time.Hour,
	}
}

func (s *DeliverNotificationsSuite) handler() commands.DeliverNotificationsCommandHandler {
	return commands.NewDeliverNotificationsCommandHandler(
		s.factory, s.mailer, s.registry, s.policy, kernel.FixedClock(testNow), s.settings, zap.NewNop(),
	)
}

// due registers n as the only deliverable, claimed notification.
func (s *DeliverNotificationsSuite) due(n *notification.Notification) {
	ctx := s.T().Context()
	s.notifications.On("ListDeliverable", ctx, testNow, 50).Return([]kernel.UUID{n.ID()}, nil).Once()
	s.notifications.On("Claim", ctx, n.ID(), testWorker, testNow, time.Minute).Return(true, nil).Once()
	s.notifications.On("Get", ctx, n.ID()).Return(n, nil).Once()
}

func (s *DeliverNotificationsSuite) recipient(n *notification.Notification) {
	s.users.On("Get", s.T().Context(), n.RecipientID()).
		Return(newUser(s.T(), n.RecipientID(), "ada@example.com"), nil).Once()
}

func (s *DeliverNotificationsSuite) expectArchive(n *notification.Notification, delivered bool) {
	ctx := s.T().Context()
	s.uow.On("Begin", ctx).Return(nil).Once()
	s.history.On("Add", ctx, mock.MatchedBy(func(e notification.HistoryEntry) bool {
		return e.NotificationID.IsEqual(n.ID()) && e.Delivered == delivered
	})).Return(nil).Once()
	s.notifications.On("Delete", ctx, n.ID()).Return(nil).Once()
	s.uow.On("Commit", ctx).Return(nil).Once()
	s.uow.On("Rollback", ctx).Return(nil).Once()
}

func (s *DeliverNotificationsSuite) run() (commands.DeliveryReport, error) {
	return s.handler().Handle(s.T().Context(), commands.NewDeliverNotificationsCommand())
}

func (s *DeliverNotificationsSuite) TestSentEmailIsArchivedAsDelivered() {
	n := newPendingNotification(s.T(), kernel.NewUUID())
	id := n.ID().String()
	s.due(n)
	s.recipient(n)
	s.registry.On("WasSent", mock.Anything, id).Return(false).Once()
	s.mailer.On("Send", mock.Anything, ports.EmailMessage{
		To:      "ada@example.com",
		Subject: notification.StatusOrderDelivered.Subject(),
		Body:    n.Content(),
	}).Return(nil).Once()
	s.registry.On("MarkSent", mock.Anything, id, time.Hour).Once()
	s.notifications.On("UpdateDelivery", mock.Anything, n, testWorker).Return(nil).Once()
	s.expectArchive(n, true)

	report, err := s.run()

	s.Require().NoError(err)
	s.Equal(commands.DeliveryReport{Claimed: 1, Sent: 1, Archived: 1}, report)
	s.True(n.EmailSent())
	s.Equal(1, n.Attempts())
	s.mailer.AssertExpectations(s.T())
	s.history.AssertExpectations(s.T())
	s.notifications.AssertExpectations(s.T())
}

func (s *DeliverNotificationsSuite) TestTransientFailureIsRescheduled() {
	n := newPendingNotification(s.T(), kernel.NewUUID())
	s.due(n)
	s.recipient(n)
	s.registry.On("WasSent", mock.Anything, n.ID().String()).Return(false).Once()
	s.mailer.On("Send", mock.Anything, mock.Anything).
		Return(errs.NewDeliveryTransientError("smtp send", errors.New("421 service not available"))).Once()
	s.notifications.On("UpdateDelivery", mock.Anything, n, testWorker).Return(nil).Once()
	s.notifications.On("Release", mock.Anything, n.ID(), testWorker).Return(nil).Once()

	report, err := s.run()

	s.Require().NoError(err)
	s.Equal(commands.DeliveryReport{Claimed: 1, Retrying: 1}, report)
	s.Equal(notification.DeliveryPending, n.DeliveryStatus())
	s.Equal(1, n.Attempts())
	s.Equal(testNow.Add(time.Minute), n.NextAttemptAt())
	s.Contains(n.LastError(), "421")
	s.history.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything)
}

func (s *DeliverNotificationsSuite) TestLastTransientFailureArchivesUndelivered() {
	pending := newPendingNotification(s.T(), kernel.NewUUID())
	n, err := notification.RestoreNotification(notification.Snapshot{
		ID:             pending.ID(),
		RecipientID:    pending.RecipientID(),
		Content:        pending.Content(),
		Type:           pending.Type(),
		Status:         pending.Status(),
		DeliveryStatus: notification.DeliveryPending,
		Attempts:       2,
		NextAttemptAt:  testNow,
		CreatedAt:      pending.CreatedAt(),
	})
	s.Require().NoError(err)

	s.due(n)
	s.recipient(n)
	s.registry.On("WasSent", mock.Anything, n.ID().String()).Return(false).Once()
	s.mailer.On("Send", mock.Anything, mock.Anything).Return(errs.NewDeliveryTransientError("smtp dial", errors.New("refused"))).Once()
	s.notifications.On("UpdateDelivery", mock.Anything, n, testWorker).Return(nil).Once()
	s.expectArchive(n, false)

	report, err := s.run()

	s.Require().NoError(err)
	s.Equal(commands.DeliveryReport{Claimed: 1, Failed: 1, Archived: 1}, report)
	s.Equal(3, n.Attempts())
}

func (s *DeliverNotificationsSuite) TestPermanentFailureArchivesImmediately() {
	n := newPendingNotification(s.T(), kernel.NewUUID())
	s.due(n)
	s.recipient(n)
	s.registry.On("WasSent", mock.Anything, n.ID().String()).Return(false).Once()
	s.mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("550 mailbox unavailable")).Once()
	s.notifications.On("UpdateDelivery", mock.Anything, n, testWorker).Return(nil).Once()
	s.expectArchive(n, false)

	report, err := s.run()

	s.Require().NoError(err)
	s.Equal(commands.DeliveryReport{Claimed: 1, Failed: 1, Archived: 1}, report)
	s.Equal(notification.DeliveryFailed, n.DeliveryStatus())
}

func (s *DeliverNotificationsSuite) TestMissingRecipientFailsWithoutSending() {
	n := newPendingNotification(s.T(), kernel.NewUUID())
	s.due(n)
	s.users.On("Get", s.T().Context(), n.RecipientID()).
		Return(nil, errs.NewObjectNotFoundError("userID", n.RecipientID())).Once()
	s.notifications.On("UpdateDelivery", mock.Anything, n, testWorker).Return(nil).Once()
	s.expectArchive(n, false)

	report, err := s.run()

	s.Require().NoError(err)
	s.Equal(1, report.Failed)
	s.mailer.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *DeliverNotificationsSuite) TestRegistrySkipsDuplicateSend() {
	n := newPendingNotification(s.T(), kernel.NewUUID())
	s.due(n)
	s.recipient(n)
	s.registry.On("WasSent", mock.Anything, n.ID().String()).Return(true).Once()
	s.notifications.On("UpdateDelivery", mock.Anything, n, testWorker).Return(nil).Once()
	s.expectArchive(n, true)

	report, err := s.run()

	s.Require().NoError(err)
	s.Equal(commands.DeliveryReport{Claimed: 1, Sent: 1, Archived: 1}, report)
	s.mailer.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
}

func (s *DeliverNotificationsSuite) TestAlreadySentIsOnlyArchived() {
	pending := newPendingNotification(s.T(), kernel.NewUUID())
	sentAt := testNow.Add(-time.Minute)
	n, err := notification.RestoreNotification(notification.Snapshot{
		ID:             pending.ID(),
		RecipientID:    pending.RecipientID(),
		Content:        pending.Content(),
		Type:           pending.Type(),
		Status:         pending.Status(),
		DeliveryStatus: notification.DeliverySent,
		EmailSentAt:    &sentAt,
		Attempts:       1,
		CreatedAt:      pending.CreatedAt(),
	})
	s.Require().NoError(err)
	s.due(n)
	s.expectArchive(n, true)

	report, err := s.run()

	s.Require().NoError(err)
	s.Equal(commands.DeliveryReport{Claimed: 1, Archived: 1}, report)
	s.mailer.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything)
	s.notifications.AssertNotCalled(s.T(), "UpdateDelivery", mock.Anything, mock.Anything, mock.Anything)
}

func (s *DeliverNotificationsSuite) TestClaimHeldElsewhereIsSkipped() {
	ctx := s.T().Context()
	id := kernel.NewUUID()
	s.notifications.On("ListDeliverable", ctx, testNow, 50).Return([]kernel.UUID{id}, nil).Once()
	s.notifications.On("Claim", ctx, id, testWorker, testNow, time.Minute).Return(false, nil).Once()

	report, err := s.run()

	s.Require().NoError(err)
	s.Equal(commands.DeliveryReport{Skipped: 1}, report)
	s.notifications.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything)
}

func (s *DeliverNotificationsSuite) TestLostClaimAfterSendIsSkipped() {
	n := newPendingNotification(s.T(), kernel.NewUUID())
	s.due(n)
	s.recipient(n)
	s.registry.On("WasSent", mock.Anything, n.ID().String()).Return(false).Once()
	s.mailer.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	s.registry.On("MarkSent", mock.Anything, n.ID().String(), time.Hour).Once()
	s.notifications.On("UpdateDelivery", mock.Anything, n, testWorker).Return(ports.ErrClaimLost).Once()

	report, err := s.run()

	s.Require().NoError(err)
	s.Equal(commands.DeliveryReport{Claimed: 1, Sent: 1, Skipped: 1}, report)
	s.history.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything)
}

func (s *DeliverNotificationsSuite) TestStoreFailureIsReportedAndOthersContinue() {
	ctx := s.T().Context()
	broken, ok := kernel.NewUUID(), newPendingNotification(s.T(), kernel.NewUUID())
	storeErr := errs.NewStoreUnavailableError("claim notification", errors.New("connection reset"))

	s.notifications.On("ListDeliverable", ctx, testNow, 50).Return([]kernel.UUID{broken, ok.ID()}, nil).Once()
	s.notifications.On("Claim", ctx, broken, testWorker, testNow, time.Minute).Return(false, storeErr).Once()
	s.notifications.On("Claim", ctx, ok.ID(), testWorker, testNow, time.Minute).Return(true, nil).Once()
	s.notifications.On("Get", ctx, ok.ID()).Return(ok, nil).Once()
	s.recipient(ok)
	s.registry.On("WasSent", mock.Anything, ok.ID().String()).Return(false).Once()
	s.mailer.On("Send", mock.Anything, mock.Anything).Return(nil).Once()
	s.registry.On("MarkSent", mock.Anything, ok.ID().String(), time.Hour).Once()
	s.notifications.On("UpdateDelivery", mock.Anything, ok, testWorker).Return(nil).Once()
	s.expectArchive(ok, true)

	report, err := s.run()

	s.Require().ErrorIs(err, errs.ErrStoreUnavailable)
	s.Equal(commands.DeliveryReport{Claimed: 1, Sent: 1, Archived: 1}, report)
}

func (s *DeliverNotificationsSuite) TestNothingDue() {
	s.notifications.On("ListDeliverable", s.T().Context(), testNow, 50).Return(nil, nil).Once()

	report, err := s.run()

	s.Require().NoError(err)
	s.True(report.IsEmpty())
}

func TestDeliverNotificationsCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewDeliverNotificationsCommandHandler(
		new(MockNotificationUoWFactory), new(MockMailer), nil,
		notification.RetryPolicy{MaxAttempts: 1}, kernel.SystemClock(), commands.DeliverySettings{}, zap.NewNop(),
	)

	_, err := h.Handle(t.Context(), commands.DeliverNotificationsCommand{})
	require.ErrorIs(t, err, commands.ErrDeliverNotificationsCommandIsNotConstructed)
}

func TestRecoverArchivesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	repo := new(MockNotificationRepository)
	history := new(MockNotificationHistoryRepository)
	mock.InOrder(
		repo.On("DeleteArchived", ctx).Return(int64(2), nil).Once(),
		repo.On("DeleteOrphaned", ctx).Return(int64(0), nil).Once(),
		history.On("DeleteOrphaned", ctx).Return(int64(1), nil).Once(),
	)
	uow := new(MockUoW)
	uow.On("NotificationRepository").Return(repo).Once()
	uow.On("NotificationHistoryRepository").Return(history).Once()
	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecoverArchivesCommandHandler(factory, zap.NewNop())
	removed, err := h.Handle(ctx, commands.NewRecoverArchivesCommand())

	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	repo.AssertExpectations(t)
	history.AssertExpectations(t)
}

func TestRecoverArchivesCommandHandler_Handle_StopsOnError(t *testing.T) {
	ctx := t.Context()
	storeErr := errors.New("connection refused")
	repo := new(MockNotificationRepository)
	history := new(MockNotificationHistoryRepository)
	repo.On("DeleteArchived", ctx).Return(int64(1), nil).Once()
	repo.On("DeleteOrphaned", ctx).Return(int64(0), storeErr).Once()
	uow := new(MockUoW)
	uow.On("NotificationRepository").Return(repo).Once()
	uow.On("NotificationHistoryRepository").Return(history).Once()
	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecoverArchivesCommandHandler(factory, zap.NewNop())
	removed, err := h.Handle(ctx, commands.NewRecoverArchivesCommand())

	require.ErrorIs(t, err, storeErr)
	assert.Equal(t, int64(1), removed)
	history.AssertNotCalled(t, "DeleteOrphaned", mock.Anything)
}
