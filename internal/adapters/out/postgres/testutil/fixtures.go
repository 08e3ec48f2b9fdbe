package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/servicerepo"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Now is the reference instant fixtures are stamped with.
var Now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// SeedUser stores an active user with the given role.
func SeedUser(t *testing.T, db *gorm.DB, role user.Role) *user.User {
	t.Helper()

	id := kernel.NewUUID()
	u, err := user.NewUser(id, "User "+id.String()[:8], fmt.Sprintf("%s@example.com", id), role, true, false, Now)
	require.NoError(t, err)
	require.NoError(t, userrepo.NewGormUserRepository(db).Add(context.Background(), u))
	return u
}

// SeedService stores a service of the freelancer in a fresh category.
func SeedService(t *testing.T, db *gorm.DB, freelancerID kernel.UUID) *catalog.Service {
	t.Helper()

	price, err := kernel.NewMoney(15050, "USD")
	require.NoError(t, err)

	category := catalog.Category{ID: kernel.NewUUID(), Name: "Design " + kernel.NewUUID().String()[:8]}
	repo := servicerepo.NewGormServiceRepository(db)
	require.NoError(t, repo.AddCategory(context.Background(), category))

	s, err := catalog.NewService(kernel.NewUUID(), freelancerID, category.ID, "Logo design", price, 3)
	require.NoError(t, err)
	require.NoError(t, repo.Add(context.Background(), s))
	return s
}

// SeedOrder stores a pending order between a fresh client and freelancer.
func SeedOrder(t *testing.T, db *gorm.DB) (o *order.Order, client, freelancer *user.User) {
	t.Helper()

	client = SeedUser(t, db, user.RoleClient)
	freelancer = SeedUser(t, db, user.RoleFreelancer)
	s := SeedService(t, db, freelancer.ID())

	o, err := order.NewOrder(kernel.NewUUID(), s.ID(), client.ID(), freelancer.ID(), s.Price(), Now)
	require.NoError(t, err)
	require.NoError(t, orderrepo.NewGormOrderRepository(db).Add(context.Background(), o))
	return o, client, freelancer
}
