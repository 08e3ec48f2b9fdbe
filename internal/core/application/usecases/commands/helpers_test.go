package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newActor(t *testing.T, id kernel.UUID, admin bool) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, admin)
	require.NoError(t, err)
	return a
}

func newPrice(t *testing.T) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(15050, "USD")
	require.NoError(t, err)
	return m
}

func newService(t *testing.T, freelancerID kernel.UUID) *catalog.Service {
	t.Helper()
	s, err := catalog.NewService(kernel.NewUUID(), freelancerID, kernel.NewUUID(), "Logo design", newPrice(t), 3)
	require.NoError(t, err)
	return s
}

func restoreOrder(t *testing.T, clientID, freelancerID kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), clientID, freelancerID,
		newPrice(t), status, testNow.Add(-time.Hour), testNow.Add(-time.Hour),
	)
	require.NoError(t, err)
	return o
}

func newUser(t *testing.T, id kernel.UUID, email string) *user.User {
	t.Helper()
	u, err := user.NewUser(id, "Ada", email, user.RoleClient, true, false, testNow)
	require.NoError(t, err)
	return u
}

func newPendingNotification(t *testing.T, recipientID kernel.UUID) *notification.Notification {
	t.Helper()
	n, err := notification.NewNotification(notification.Draft{
		RecipientID: recipientID,
		Type:        notification.TypeOrder,
		Status:      notification.StatusOrderDelivered,
		Content:     "Your order has been delivered",
	}, testNow.Add(-time.Minute))
	require.NoError(t, err)
	return n
}
