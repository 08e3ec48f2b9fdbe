package notificationrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/notificationrepo"
	"marketplace/internal/adapters/out/postgres/testutil"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const claimTTL = 5 * time.Minute

func addNotification(t *testing.T, db *gorm.DB, recipient kernel.UUID, at time.Time) *notification.Notification {
	t.Helper()

	n, err := notification.NewNotification(notification.Draft{
		RecipientID: recipient,
		Type:        notification.TypeOrder,
		Status:      notification.StatusOrderPlaced,
		Content:     "You have a new order",
		Payload:     map[string]any{"orderId": "o-1", "amount": float64(15050)},
	}, at)
	require.NoError(t, err)
	require.NoError(t, notificationrepo.NewGormNotificationRepository(db).Add(context.Background(), n))
	return n
}

func TestGormNotificationRepository_AddAndGet(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	recipient := testutil.SeedUser(t, db, user.RoleFreelancer)
	n := addNotification(t, db, recipient.ID(), testutil.Now)

	got, err := notificationrepo.NewGormNotificationRepository(db).Get(context.Background(), n.ID())
	require.NoError(t, err)

	assert.Equal(t, notification.StatusOrderPlaced, got.Status())
	assert.Equal(t, notification.DeliveryPending, got.DeliveryStatus())
	assert.Equal(t, map[string]any{"orderId": "o-1", "amount": float64(15050)}, got.Payload())
	assert.True(t, got.NextAttemptAt().Equal(testutil.Now))

	_, err = notificationrepo.NewGormNotificationRepository(db).Get(context.Background(), kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormNotificationRepository_UpdateRead(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	repo := notificationrepo.NewGormNotificationRepository(db)
	recipient := testutil.SeedUser(t, db, user.RoleClient)
	n := addNotification(t, db, recipient.ID(), testutil.Now)

	require.NoError(t, n.MarkRead(recipient.Actor()))
	require.NoError(t, repo.UpdateRead(ctx, n))

	got, err := repo.Get(ctx, n.ID())
	require.NoError(t, err)
	assert.True(t, got.IsRead())

	require.NoError(t, repo.Delete(ctx, n.ID()))
	require.ErrorIs(t, repo.UpdateRead(ctx, n), errs.ErrObjectNotFound)
}

func TestGormNotificationRepository_ListDeliverable(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	repo := notificationrepo.NewGormNotificationRepository(db)
	recipient := testutil.SeedUser(t, db, user.RoleClient)

	due := addNotification(t, db, recipient.ID(), testutil.Now)
	later := addNotification(t, db, recipient.ID(), testutil.Now.Add(time.Hour))
	claimed := addNotification(t, db, recipient.ID(), testutil.Now.Add(-time.Minute))

	ok, err := repo.Claim(ctx, claimed.ID(), "worker-a", testutil.Now, claimTTL)
	require.NoError(t, err)
	require.True(t, ok)

	ids, err := repo.ListDeliverable(ctx, testutil.Now, 10)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.True(t, ids[0].IsEqual(due.ID()))

	// Once the claim expires the row is eligible again, oldest first.
	ids, err = repo.ListDeliverable(ctx, testutil.Now.Add(claimTTL+time.Second), 10)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.True(t, ids[0].IsEqual(claimed.ID()))
	assert.True(t, ids[1].IsEqual(due.ID()))

	ids, err = repo.ListDeliverable(ctx, testutil.Now.Add(2*time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.False(t, ids[0].IsEqual(later.ID()))
}

func TestGormNotificationRepository_ListDeliverableIncludesFinished(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	repo := notificationrepo.NewGormNotificationRepository(db)
	recipient := testutil.SeedUser(t, db, user.RoleClient)

	policy, err := notification.NewRetryPolicy(3, time.Minute, time.Hour)
	require.NoError(t, err)

	// A failed row whose archive step never ran is picked up even though its
	// next attempt lies in the future.
	n := addNotification(t, db, recipient.ID(), testutil.Now)
	ok, err := repo.Claim(ctx, n.ID(), "worker-a", testutil.Now, claimTTL)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, n.RecordFailure(errors.New("mailbox unavailable"), false, testutil.Now, policy))
	require.NoError(t, repo.UpdateDelivery(ctx, n, "worker-a"))
	require.NoError(t, repo.Release(ctx, n.ID(), "worker-a"))

	ids, err := repo.ListDeliverable(ctx, testutil.Now, 10)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.True(t, ids[0].IsEqual(n.ID()))
}

func TestGormNotificationRepository_Claims(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	repo := notificationrepo.NewGormNotificationRepository(db)
	recipient := testutil.SeedUser(t, db, user.RoleClient)
	n := addNotification(t, db, recipient.ID(), testutil.Now)

	ok, err := repo.Claim(ctx, n.ID(), "worker-a", testutil.Now, claimTTL)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Claim(ctx, n.ID(), "worker-b", testutil.Now.Add(time.Minute), claimTTL)
	require.NoError(t, err)
	assert.False(t, ok, "live claim must not be stolen")

	ok, err = repo.Claim(ctx, n.ID(), "worker-b", testutil.Now.Add(claimTTL+time.Second), claimTTL)
	require.NoError(t, err)
	assert.True(t, ok, "expired claim may be taken over")

	require.NoError(t, n.MarkEmailSent(testutil.Now))
	require.ErrorIs(t, repo.UpdateDelivery(ctx, n, "worker-a"), ports.ErrClaimLost)
	require.NoError(t, repo.UpdateDelivery(ctx, n, "worker-b"))

	// Releasing someone else's claim is a no-op.
	require.NoError(t, repo.Release(ctx, n.ID(), "worker-a"))
	ok, err = repo.Claim(ctx, n.ID(), "worker-c", testutil.Now.Add(claimTTL+2*time.Second), claimTTL)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Release(ctx, n.ID(), "worker-b"))
	ok, err = repo.Claim(ctx, n.ID(), "worker-c", testutil.Now.Add(claimTTL+2*time.Second), claimTTL)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.Get(ctx, n.ID())
	require.NoError(t, err)
	assert.Equal(t, notification.DeliverySent, got.DeliveryStatus())
	assert.Equal(t, 1, got.Attempts())

	ok, err = repo.Claim(ctx, kernel.NewUUID(), "worker-a", testutil.Now, claimTTL)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGormHistoryRepository_ArchiveOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	notifications := notificationrepo.NewGormNotificationRepository(db)
	history := notificationrepo.NewGormHistoryRepository(db)
	recipient := testutil.SeedUser(t, db, user.RoleClient)

	n := addNotification(t, db, recipient.ID(), testutil.Now)
	kept := addNotification(t, db, recipient.ID(), testutil.Now)
	require.NoError(t, n.MarkEmailSent(testutil.Now))

	first, err := n.ToHistory(testutil.Now)
	require.NoError(t, err)
	second, err := n.ToHistory(testutil.Now.Add(time.Minute))
	require.NoError(t, err)

	require.NoError(t, history.Add(ctx, first))
	require.NoError(t, history.Add(ctx, second), "duplicate archive is ignored")

	var rows int64
	require.NoError(t, db.Model(&notificationrepo.HistoryDTO{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	removed, err := notifications.DeleteArchived(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	_, err = notifications.Get(ctx, n.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = notifications.Get(ctx, kept.ID())
	require.NoError(t, err)

	removed, err = notifications.DeleteArchived(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRepositories_DeleteOrphaned(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	notifications := notificationrepo.NewGormNotificationRepository(db)
	history := notificationrepo.NewGormHistoryRepository(db)
	stays := testutil.SeedUser(t, db, user.RoleClient)
	leaves := testutil.SeedUser(t, db, user.RoleFreelancer)

	live := addNotification(t, db, stays.ID(), testutil.Now)
	orphan := addNotification(t, db, leaves.ID(), testutil.Now)
	archived := addNotification(t, db, leaves.ID(), testutil.Now)
	kept := addNotification(t, db, stays.ID(), testutil.Now)
	for _, n := range []*notification.Notification{archived, kept} {
		require.NoError(t, n.MarkEmailSent(testutil.Now))
		entry, err := n.ToHistory(testutil.Now)
		require.NoError(t, err)
		require.NoError(t, history.Add(ctx, entry))
	}

	require.NoError(t, userrepo.NewGormUserRepository(db).Delete(ctx, leaves.ID()))

	removed, err := notifications.DeleteOrphaned(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)
	_, err = notifications.Get(ctx, orphan.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = notifications.Get(ctx, live.ID())
	require.NoError(t, err)

	removed, err = history.DeleteOrphaned(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	var remaining int64
	require.NoError(t, db.Model(&notificationrepo.HistoryDTO{}).Where("notification_id = ?", kept.ID().Bytes()).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)
	require.NoError(t, db.Model(&notificationrepo.HistoryDTO{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)

	removed, err = history.DeleteOrphaned(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRepositories_DeleteByRecipient(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	notifications := notificationrepo.NewGormNotificationRepository(db)
	history := notificationrepo.NewGormHistoryRepository(db)
	gone := testutil.SeedUser(t, db, user.RoleClient)
	stays := testutil.SeedUser(t, db, user.RoleClient)

	archived := addNotification(t, db, gone.ID(), testutil.Now)
	require.NoError(t, archived.MarkEmailSent(testutil.Now))
	entry, err := archived.ToHistory(testutil.Now)
	require.NoError(t, err)
	require.NoError(t, history.Add(ctx, entry))
	addNotification(t, db, gone.ID(), testutil.Now)
	other := addNotification(t, db, stays.ID(), testutil.Now)

	require.NoError(t, notifications.DeleteByRecipient(ctx, gone.ID()))
	require.NoError(t, history.DeleteByRecipient(ctx, gone.ID()))

	var live, archivedRows int64
	require.NoError(t, db.Model(&notificationrepo.NotificationDTO{}).Count(&live).Error)
	require.NoError(t, db.Model(&notificationrepo.HistoryDTO{}).Count(&archivedRows).Error)
	assert.EqualValues(t, 1, live)
	assert.Zero(t, archivedRows)

	_, err = notifications.Get(ctx, other.ID())
	require.NoError(t, err)
}
