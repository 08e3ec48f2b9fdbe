package cmd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/notificationrepo"
	"marketplace/internal/adapters/out/postgres/testutil"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const testJWTSecret = "pipeline-secret"

var errSimulatedCrash = errors.New("process died before storing the result")

type recordingMailer struct {
	mu   sync.Mutex
	sent []ports.EmailMessage
}

func (m *recordingMailer) Send(_ context.Context, msg ports.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// crashingUoW makes the first UpdateDelivery calls fail as if the process had
// died right after the email went out.
type crashingUoW struct {
	ports.UnitOfWork
	failures *atomic.Int32
}

func (u crashingUoW) NotificationRepository() ports.NotificationRepository {
	return crashingNotificationRepository{NotificationRepository: u.UnitOfWork.NotificationRepository(), failures: u.failures}
}

type crashingNotificationRepository struct {
	ports.NotificationRepository
	failures *atomic.Int32
}

func (r crashingNotificationRepository) UpdateDelivery(
	ctx context.Context,
	n *notification.Notification,
	worker string,
) error {
	if r.failures.Add(-1) >= 0 {
		return errSimulatedCrash
	}
	return r.NotificationRepository.UpdateDelivery(ctx, n, worker)
}

func testConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Auth:     AuthConfig{JWTSecret: testJWTSecret},
		Database: postgres.Config{Driver: postgres.DriverSQLite},
		Delivery: DeliveryConfig{
			Schedule:    "@every 1h",
			Worker:      "test-worker",
			BatchSize:   10,
			Workers:     2,
			ClaimTTL:    2 * time.Minute,
			SendTimeout: 5 * time.Second,
			RegistryTTL: time.Hour,
			MaxAttempts: 3,
			BaseBackoff: time.Second,
			MaxBackoff:  time.Minute,
		},
		Recovery: RecoveryConfig{Schedule: "@every 1h"},
	}
}

func newTestRoot(t *testing.T, db *gorm.DB, mailer ports.Mailer, clock *testClock) CompositionRoot {
	t.Helper()
	return NewCompositionRoot(testConfig(), db, mailer, zaptest.NewLogger(t), WithClock(clock.Now))
}

func mustActor(t *testing.T, id kernel.UUID, admin bool) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(id, admin)
	require.NoError(t, err)
	return actor
}

func placeOrder(t *testing.T, db *gorm.DB, root CompositionRoot) (o *order.Order, client, freelancer *user.User) {
	t.Helper()

	client = testutil.SeedUser(t, db, user.RoleClient)
	freelancer = testutil.SeedUser(t, db, user.RoleFreelancer)
	service := testutil.SeedService(t, db, freelancer.ID())

	cmd, err := commands.NewCreateOrderCommand(service.ID(), mustActor(t, client.ID(), false))
	require.NoError(t, err)
	o, err = root.CreateCreateOrderCommandHandler().Handle(context.Background(), cmd)
	require.NoError(t, err)
	return o, client, freelancer
}

func listNotifications(t *testing.T, root CompositionRoot, userID kernel.UUID) []queries.NotificationView {
	t.Helper()
	q, err := queries.NewListNotificationsQuery(userID, false)
	require.NoError(t, err)
	views, err := root.CreateListNotificationsQueryHandler().Handle(context.Background(), q)
	require.NoError(t, err)
	return views
}

func listHistory(t *testing.T, root CompositionRoot, userID kernel.UUID) []queries.HistoryView {
	t.Helper()
	q, err := queries.NewListHistoryQuery(userID)
	require.NoError(t, err)
	views, err := root.CreateListHistoryQueryHandler().Handle(context.Background(), q)
	require.NoError(t, err)
	return views
}

func TestConcurrentAcceptExactlyOneWins(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	clock := &testClock{now: testutil.Now}
	root := newTestRoot(t, db, &recordingMailer{}, clock)

	o, client, freelancer := placeOrder(t, db, root)
	handler := root.CreateTransitionOrderCommandHandler()
	actor := mustActor(t, freelancer.ID(), false)

	results := make([]error, 2)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.InProgress, actor)
			if err != nil {
				return err
			}
			_, results[i] = handler.Handle(context.Background(), cmd)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrInvalidTransition):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	q, err := queries.NewGetOrderStatusQuery(o.ID())
	require.NoError(t, err)
	status, err := root.CreateGetOrderStatusQueryHandler().Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, order.InProgress, status)

	// Only the committed transition notifies the client.
	views := listNotifications(t, root, client.ID())
	require.Len(t, views, 1)
	assert.Equal(t, notification.StatusOrderInProgress, views[0].Status)
}

func TestDeliveryAfterCrashResendsAndArchivesOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	clock := &testClock{now: testutil.Now}
	mailer := &recordingMailer{}
	root := newTestRoot(t, db, mailer, clock)

	_, _, freelancer := placeOrder(t, db, root)
	require.Len(t, listNotifications(t, root, freelancer.ID()), 1)

	failures := &atomic.Int32{}
	failures.Store(1)
	factory := FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return crashingUoW{UnitOfWork: root.uowFactory.Create(), failures: failures}
	})

	cfg := testConfig().Delivery
	policy, err := notification.NewRetryPolicy(cfg.MaxAttempts, cfg.BaseBackoff, cfg.MaxBackoff)
	require.NoError(t, err)
	handler := commands.NewDeliverNotificationsCommandHandler(factory, mailer, nil, policy, clock.Now,
		commands.DeliverySettings{
			Worker:      cfg.Worker,
			BatchSize:   cfg.BatchSize,
			Workers:     cfg.Workers,
			ClaimTTL:    cfg.ClaimTTL,
			SendTimeout: cfg.SendTimeout,
		},
		zaptest.NewLogger(t),
	)

	report, err := handler.Handle(ctx, commands.NewDeliverNotificationsCommand())
	require.ErrorIs(t, err, errSimulatedCrash)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 0, report.Archived)
	assert.Equal(t, 1, mailer.count())

	// The dead worker's claim still protects the row.
	report, err = handler.Handle(ctx, commands.NewDeliverNotificationsCommand())
	require.NoError(t, err)
	assert.True(t, report.IsEmpty())

	clock.Advance(cfg.ClaimTTL + time.Second)

	report, err = handler.Handle(ctx, commands.NewDeliverNotificationsCommand())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Archived)
	assert.Equal(t, 2, mailer.count())

	report, err = handler.Handle(ctx, commands.NewDeliverNotificationsCommand())
	require.NoError(t, err)
	assert.True(t, report.IsEmpty())

	assert.Empty(t, listNotifications(t, root, freelancer.ID()))
	history := listHistory(t, root, freelancer.ID())
	require.Len(t, history, 1)
	assert.True(t, history[0].Delivered)
	assert.Equal(t, notification.StatusOrderPlaced, history[0].Status)
}

func TestRecoverySweepRemovesAlreadyArchivedRows(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	clock := &testClock{now: testutil.Now}
	mailer := &recordingMailer{}
	root := newTestRoot(t, db, mailer, clock)

	_, _, freelancer := placeOrder(t, db, root)
	views := listNotifications(t, root, freelancer.ID())
	require.Len(t, views, 1)

	// History got the row but the live copy survived.
	n, err := notificationrepo.NewGormNotificationRepository(db).Get(ctx, views[0].ID)
	require.NoError(t, err)
	require.NoError(t, n.MarkEmailSent(clock.Now()))
	entry, err := n.ToHistory(clock.Now())
	require.NoError(t, err)
	require.NoError(t, notificationrepo.NewGormHistoryRepository(db).Add(ctx, entry))

	removed, err := root.CreateRecoverArchivesCommandHandler().Handle(ctx, commands.NewRecoverArchivesCommand())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	assert.Empty(t, listNotifications(t, root, freelancer.ID()))
	assert.Len(t, listHistory(t, root, freelancer.ID()), 1)

	deliver, err := root.CreateDeliverNotificationsCommandHandler()
	require.NoError(t, err)
	report, err := deliver.Handle(ctx, commands.NewDeliverNotificationsCommand())
	require.NoError(t, err)
	assert.True(t, report.IsEmpty())
	assert.Zero(t, mailer.count())
}

func TestRecoverySweepDropsHistoryArchivedAfterUserDeletion(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	clock := &testClock{now: testutil.Now}
	root := newTestRoot(t, db, &recordingMailer{}, clock)

	_, _, freelancer := placeOrder(t, db, root)
	views := listNotifications(t, root, freelancer.ID())
	require.Len(t, views, 1)

	// A worker has the sent notification in hand while the user goes away.
	n, err := notificationrepo.NewGormNotificationRepository(db).Get(ctx, views[0].ID)
	require.NoError(t, err)
	require.NoError(t, n.MarkEmailSent(clock.Now()))

	del, err := commands.NewDeleteUserCommand(freelancer.ID(), mustActor(t, kernel.NewUUID(), true))
	require.NoError(t, err)
	require.NoError(t, root.CreateDeleteUserCommandHandler().Handle(ctx, del))

	entry, err := n.ToHistory(clock.Now())
	require.NoError(t, err)
	require.NoError(t, notificationrepo.NewGormHistoryRepository(db).Add(ctx, entry))
	require.Len(t, listHistory(t, root, freelancer.ID()), 1)

	removed, err := root.CreateRecoverArchivesCommandHandler().Handle(ctx, commands.NewRecoverArchivesCommand())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Empty(t, listHistory(t, root, freelancer.ID()))
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	clock := &testClock{now: testutil.Now}
	root := newTestRoot(t, db, &recordingMailer{}, clock)

	e, err := httpin.NewRouter(root.CreateHTTPServer(), root.CreateRouterConfig())
	require.NoError(t, err)

	client := testutil.SeedUser(t, db, user.RoleClient)
	freelancer := testutil.SeedUser(t, db, user.RoleFreelancer)
	service := testutil.SeedService(t, db, freelancer.ID())

	do := func(method, path string, as kernel.UUID, body string) *httptest.ResponseRecorder {
		claims := httpin.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: as.String()}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
		require.NoError(t, err)

		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/api/v1/orders", client.ID(), `{"serviceId":"`+service.ID().String()+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	views := listNotifications(t, root, freelancer.ID())
	require.Len(t, views, 1)
	orderID, ok := views[0].Payload["orderId"].(string)
	require.True(t, ok)
	base := "/api/v1/orders/" + orderID

	rec = do(http.MethodPost, base+"/transitions", client.ID(), `{"status":"in_progress"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code, "only the freelancer accepts")

	rec = do(http.MethodPost, base+"/transitions", freelancer.ID(), `{"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(http.MethodPost, base+"/transitions", client.ID(), `{"status":"completed"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, "in_progress cannot jump to completed")

	rec = do(http.MethodPost, base+"/transitions", freelancer.ID(), `{"status":"delivered"}`)
	assert.Equal(t, http.StatusConflict, rec.Code, "delivering goes through /deliveries")
	assert.Contains(t, rec.Body.String(), "delivery record")

	rec = do(http.MethodPost, base+"/deliveries", freelancer.ID(), `{"message":"Final logo attached","artifactUrl":"https://files.example.com/logo.svg"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(http.MethodGet, base+"/status", client.ID(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"delivered"}`, rec.Body.String())

	rec = do(http.MethodGet, "/api/v1/notifications?onlyUnread=true", client.ID(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(notification.StatusOrderInProgress))
	assert.Contains(t, rec.Body.String(), string(notification.StatusOrderDelivered))

	rec = do(http.MethodDelete, base, client.ID(), "")
	assert.Equal(t, http.StatusForbidden, rec.Code, "deleting orders is for admins")
}

func TestCreateJobManagerRejectsBadRetryPolicy(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	cfg := testConfig()
	cfg.Delivery.MaxAttempts = 0

	root := NewCompositionRoot(cfg, db, &recordingMailer{}, nil)
	_, err := root.CreateJobManager()

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSeedCategoriesIsIdempotent(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	cfg := testConfig()
	cfg.Database.SeedCategories = []string{"Design", " Writing ", "", "Design"}
	root := NewCompositionRoot(cfg, db, &recordingMailer{}, zaptest.NewLogger(t))

	require.NoError(t, root.SeedCategories(context.Background()))
	require.NoError(t, root.SeedCategories(context.Background()))

	var names []string
	require.NoError(t, db.Table("categories").Order("name").Pluck("name", &names).Error)
	assert.Equal(t, []string{"Design", "Writing"}, names)
}
