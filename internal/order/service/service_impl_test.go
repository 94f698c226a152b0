package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/storeadmin/internal/clock"
	"github.com/smallbiznis/storeadmin/internal/identity"
	"github.com/smallbiznis/storeadmin/internal/migration/migrationtest"
	"github.com/smallbiznis/storeadmin/internal/order/domain"
	"github.com/smallbiznis/storeadmin/internal/order/repository"
	"github.com/smallbiznis/storeadmin/internal/ownership/ownershiptest"
	"github.com/smallbiznis/storeadmin/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// Store 1001 (user_a) sells products 50 (10.00), 51 (2.50), 53 (0.10) and
// 54 (0.20); store 2002 (user_b) sells product 52.
func newService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	conn := migrationtest.NewDB(t)
	migrationtest.SeedStore(t, conn, 1001, "user_a")
	migrationtest.SeedStore(t, conn, 2002, "user_b")
	for _, store := range []int64{1001, 2002} {
		require.NoError(t, conn.Exec(`INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at) VALUES (?, ?, 'b', 'u', ?, ?)`, store+1, store, epoch, epoch).Error)
		require.NoError(t, conn.Exec(`INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at) VALUES (?, ?, ?, 'c', ?, ?)`, store+2, store, store+1, epoch, epoch).Error)
		require.NoError(t, conn.Exec(`INSERT INTO sizes (id, store_id, name, value, created_at, updated_at) VALUES (?, ?, 'L', 'L', ?, ?)`, store+3, store, epoch, epoch).Error)
		require.NoError(t, conn.Exec(`INSERT INTO colors (id, store_id, name, value, created_at, updated_at) VALUES (?, ?, 'Red', '#f00', ?, ?)`, store+4, store, epoch, epoch).Error)
	}
	for _, p := range []struct {
		id, store int64
		name      string
		price     string
	}{
		{50, 1001, "Tee", "10.00"},
		{51, 1001, "Socks", "2.50"},
		{52, 2002, "Theirs", "1.00"},
		{53, 1001, "Sticker", "0.10"},
		{54, 1001, "Pin", "0.20"},
	} {
		require.NoError(t, conn.Exec(
			`INSERT INTO products (id, store_id, category_id, size_id, color_id, name, price, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.id, p.store, p.store+2, p.store+3, p.store+4, p.name, p.price, epoch, epoch,
		).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFake(epoch),
		Guard: ownershiptest.NewGuard(t, conn),
		Repo:  repository.Provide(),
	}), conn
}

func as(userID string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: userID})
}

func order(products ...string) domain.CreateRequest {
	return domain.CreateRequest{StoreID: "1001", Fields: domain.Fields{
		Phone:      "+1 555 0100",
		Address:    "1 Main St",
		ProductIDs: products,
	}}
}

func TestCreateOrder(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(as("user_a"), order("50", "51", "50"))
	require.NoError(t, err)
	require.Len(t, created.OrderItems, 3)
	assert.Equal(t, "22.5", created.TotalPrice.String())
	assert.Equal(t, "10", created.OrderItems[0].Product.Price.String())
	assert.Equal(t, "Tee", created.OrderItems[0].Product.Name)
	assert.False(t, created.IsPaid)

	got, err := svc.Get(as("user_a"), "1001", created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)
}

func TestOrderTotalIsExact(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(as("user_a"), order("53", "54"))
	require.NoError(t, err)
	assert.Equal(t, "0.3", created.TotalPrice.String())

	got, err := svc.Get(as("user_a"), "1001", created.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.30").Equal(got.TotalPrice))
}

func TestCreateOrderRejections(t *testing.T) {
	svc, conn := newService(t)

	_, err := svc.Create(context.Background(), order("50"))
	assert.ErrorIs(t, err, resource.ErrUnauthenticated)

	req := order("50")
	req.Phone = ""
	_, err = svc.Create(as("user_a"), req)
	assert.EqualError(t, err, "Phone is required")

	_, err = svc.Create(as("user_a"), order())
	assert.EqualError(t, err, "Product IDs are required")

	_, err = svc.Create(as("user_b"), order("50"))
	assert.ErrorIs(t, err, resource.ErrForbidden)

	_, err = svc.Create(as("user_a"), order("50", "52"))
	assert.True(t, resource.IsConflict(err))
	assert.EqualError(t, err, "Product does not belong to this store")

	var n int64
	require.NoError(t, conn.Raw(`SELECT COUNT(1) FROM orders`).Scan(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, conn.Raw(`SELECT COUNT(1) FROM order_items`).Scan(&n).Error)
	assert.Zero(t, n)
}

func TestOrdersAreOwnerOnly(t *testing.T) {
	svc, _ := newService(t)
	created, err := svc.Create(as("user_a"), order("50"))
	require.NoError(t, err)

	_, err = svc.List(context.Background(), "1001")
	assert.ErrorIs(t, err, resource.ErrUnauthenticated)

	_, err = svc.List(as("user_b"), "1001")
	assert.ErrorIs(t, err, resource.ErrForbidden)

	_, err = svc.Get(as("user_b"), "1001", created.ID)
	assert.ErrorIs(t, err, resource.ErrForbidden)

	list, err := svc.List(as("user_a"), "1001")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	missing, err := svc.Get(as("user_a"), "1001", "31337")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateOrderPatchesFields(t *testing.T) {
	svc, _ := newService(t)
	created, err := svc.Create(as("user_a"), order("50"))
	require.NoError(t, err)

	paid := true
	updated, err := svc.Update(as("user_a"), domain.UpdateRequest{StoreID: "1001", ID: created.ID, Patch: domain.Patch{IsPaid: &paid}})
	require.NoError(t, err)
	assert.True(t, updated.IsPaid)
	assert.Equal(t, created.Phone, updated.Phone)
	assert.Len(t, updated.OrderItems, 1)

	blank := " "
	_, err = svc.Update(as("user_a"), domain.UpdateRequest{StoreID: "1001", ID: created.ID, Patch: domain.Patch{Phone: &blank}})
	assert.EqualError(t, err, "Phone is required")

	_, err = svc.Update(as("user_a"), domain.UpdateRequest{StoreID: "1001", Patch: domain.Patch{IsPaid: &paid}})
	assert.EqualError(t, err, "Order ID is required")

	_, err = svc.Update(as("user_a"), domain.UpdateRequest{StoreID: "1001", ID: "777", Patch: domain.Patch{IsPaid: &paid}})
	assert.EqualError(t, err, "Order not found")
}

func TestDeleteOrderUnblocksProduct(t *testing.T) {
	svc, conn := newService(t)
	created, err := svc.Create(as("user_a"), order("50", "51"))
	require.NoError(t, err)

	_, err = svc.Delete(as("user_b"), domain.DeleteRequest{StoreID: "1001", ID: created.ID})
	assert.ErrorIs(t, err, resource.ErrForbidden)

	deleted, err := svc.Delete(as("user_a"), domain.DeleteRequest{StoreID: "1001", ID: created.ID})
	require.NoError(t, err)
	assert.Len(t, deleted.OrderItems, 2)

	var n int64
	require.NoError(t, conn.Raw(`SELECT COUNT(1) FROM order_items`).Scan(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, conn.Exec(`DELETE FROM products WHERE id = 50`).Error)
}
