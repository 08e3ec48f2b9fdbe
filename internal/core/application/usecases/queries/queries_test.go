package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/notificationrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/testutil"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type QueriesTestSuite struct {
	suite.Suite
	db        *gorm.DB
	recipient *user.User
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) SetupTest() {
	s.db = testutil.MustOpenTestDB(s.T(), testutil.WithAutoMigrate())
	s.recipient = testutil.SeedUser(s.T(), s.db, user.RoleClient)
}

func (s *QueriesTestSuite) addNotification(content string, at time.Time) *notification.Notification {
	n, err := notification.NewNotification(notification.Draft{
		RecipientID: s.recipient.ID(),
		Type:        notification.TypeOrder,
		Status:      notification.StatusOrderInProgress,
		Content:     content,
		Payload:     map[string]any{"orderId": "o-1"},
	}, at)
	s.Require().NoError(err)
	s.Require().NoError(notificationrepo.NewGormNotificationRepository(s.db).Add(context.Background(), n))
	return n
}

func (s *QueriesTestSuite) TestListNotifications_NewestFirst() {
	older := s.addNotification("older", testutil.Now)
	newer := s.addNotification("newer", testutil.Now.Add(time.Minute))

	query, err := queries.NewListNotificationsQuery(s.recipient.ID(), false)
	s.Require().NoError(err)

	views, err := queries.NewListNotificationsQueryHandler(s.db).Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.True(views[0].ID.IsEqual(newer.ID()))
	s.True(views[1].ID.IsEqual(older.ID()))
	s.Equal("o-1", views[0].Payload["orderId"])
	s.False(views[0].EmailSent)
	s.Nil(views[0].EmailSentAt)
}

func (s *QueriesTestSuite) TestListNotifications_OnlyUnread() {
	read := s.addNotification("read", testutil.Now)
	unread := s.addNotification("unread", testutil.Now)

	s.Require().NoError(read.MarkRead(s.recipient.Actor()))
	s.Require().NoError(notificationrepo.NewGormNotificationRepository(s.db).UpdateRead(context.Background(), read))

	query, err := queries.NewListNotificationsQuery(s.recipient.ID(), true)
	s.Require().NoError(err)

	views, err := queries.NewListNotificationsQueryHandler(s.db).Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.True(views[0].ID.IsEqual(unread.ID()))
}

func (s *QueriesTestSuite) TestListNotifications_OtherRecipientsHidden() {
	s.addNotification("mine", testutil.Now)
	stranger := testutil.SeedUser(s.T(), s.db, user.RoleFreelancer)

	query, err := queries.NewListNotificationsQuery(stranger.ID(), false)
	s.Require().NoError(err)

	views, err := queries.NewListNotificationsQueryHandler(s.db).Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Empty(views)
}

func (s *QueriesTestSuite) TestListHistory() {
	ctx := context.Background()
	history := notificationrepo.NewGormHistoryRepository(s.db)

	first := s.addNotification("first", testutil.Now)
	second := s.addNotification("second", testutil.Now)
	s.Require().NoError(first.MarkEmailSent(testutil.Now))
	policy, err := notification.NewRetryPolicy(1, time.Minute, time.Minute)
	s.Require().NoError(err)
	s.Require().NoError(second.RecordFailure(errs.ErrDeliveryTransient, true, testutil.Now, policy))

	for i, n := range []*notification.Notification{first, second} {
		entry, err := n.ToHistory(testutil.Now.Add(time.Duration(i+1) * time.Minute))
		s.Require().NoError(err)
		s.Require().NoError(history.Add(ctx, entry))
	}

	query, err := queries.NewListHistoryQuery(s.recipient.ID())
	s.Require().NoError(err)

	views, err := queries.NewListHistoryQueryHandler(s.db).Handle(ctx, query)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.True(views[0].NotificationID.IsEqual(second.ID()))
	s.False(views[0].Delivered)
	s.True(views[1].NotificationID.IsEqual(first.ID()))
	s.True(views[1].Delivered)
	s.Require().NotNil(views[1].SentAt)
}

func (s *QueriesTestSuite) TestGetOrderStatus() {
	ctx := context.Background()
	o, client, _ := testutil.SeedOrder(s.T(), s.db)
	handler := queries.NewGetOrderStatusQueryHandler(s.db)

	query, err := queries.NewGetOrderStatusQuery(o.ID())
	s.Require().NoError(err)

	status, err := handler.Handle(ctx, query)
	s.Require().NoError(err)
	s.Equal(order.Pending, status)

	_, err = o.Transition(order.Cancelled, client.Actor(), testutil.Now.Add(time.Hour))
	s.Require().NoError(err)
	s.Require().NoError(orderrepo.NewGormOrderRepository(s.db).UpdateStatus(ctx, o, order.Pending))

	status, err = handler.Handle(ctx, query)
	s.Require().NoError(err)
	s.Equal(order.Cancelled, status)

	missing, err := queries.NewGetOrderStatusQuery(kernel.NewUUID())
	s.Require().NoError(err)
	_, err = handler.Handle(ctx, missing)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestQueries_RequireConstructor(t *testing.T) {
	_, err := queries.NewListNotificationsQueryHandler(nil).Handle(context.Background(), queries.ListNotificationsQuery{})
	require.ErrorIs(t, err, queries.ErrListNotificationsQueryIsNotConstructed)

	_, err = queries.NewListHistoryQueryHandler(nil).Handle(context.Background(), queries.ListHistoryQuery{})
	require.ErrorIs(t, err, queries.ErrListHistoryQueryIsNotConstructed)

	_, err = queries.NewGetOrderStatusQueryHandler(nil).Handle(context.Background(), queries.GetOrderStatusQuery{})
	require.ErrorIs(t, err, queries.ErrGetOrderStatusQueryIsNotConstructed)

	_, err = queries.NewListHistoryQuery(kernel.UUID{})
	assert.Error(t, err)
}
