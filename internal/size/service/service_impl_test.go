package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storeadmin/internal/clock"
	"github.com/smallbiznis/storeadmin/internal/identity"
	"github.com/smallbiznis/storeadmin/internal/migration/migrationtest"
	"github.com/smallbiznis/storeadmin/internal/ownership/ownershiptest"
	"github.com/smallbiznis/storeadmin/internal/resource"
	"github.com/smallbiznis/storeadmin/internal/size/domain"
	"github.com/smallbiznis/storeadmin/internal/size/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (domain.Service, *gorm.DB, *clock.Fake) {
	t.Helper()
	conn := migrationtest.NewDB(t)
	migrationtest.SeedStore(t, conn, 1001, "user_a")

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFake(epoch)
	return New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Guard: ownershiptest.NewGuard(t, conn),
		Repo:  repository.Provide(),
	}), conn, clk
}

func as(userID string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: userID})
}

func TestSizeLifecycle(t *testing.T) {
	svc, _, clk := newService(t)
	ctx := as("user_a")

	_, err := svc.Create(ctx, domain.CreateRequest{StoreID: "1001", Fields: domain.Fields{Name: "Large"}})
	assert.EqualError(t, err, "Value is required")

	created, err := svc.Create(ctx, domain.CreateRequest{StoreID: "1001", Fields: domain.Fields{Name: "Large", Value: "L"}})
	require.NoError(t, err)

	clk.Advance(time.Minute)
	updated, err := svc.Update(ctx, domain.UpdateRequest{StoreID: "1001", ID: created.ID, Fields: domain.Fields{Name: "Extra large", Value: "XL"}})
	require.NoError(t, err)
	assert.Equal(t, "XL", updated.Value)
	assert.Equal(t, epoch.Add(time.Minute), updated.UpdatedAt)

	got, err := svc.Get(context.Background(), "1001", created.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	_, err = svc.Delete(as("user_b"), domain.DeleteRequest{StoreID: "1001", ID: created.ID})
	assert.ErrorIs(t, err, resource.ErrForbidden)

	_, err = svc.Delete(ctx, domain.DeleteRequest{StoreID: "1001", ID: created.ID})
	require.NoError(t, err)

	items, err := svc.List(context.Background(), "1001")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteSizeInUse(t *testing.T) {
	svc, conn, _ := newService(t)
	ctx := as("user_a")
	created, err := svc.Create(ctx, domain.CreateRequest{StoreID: "1001", Fields: domain.Fields{Name: "Large", Value: "L"}})
	require.NoError(t, err)

	for _, stmt := range []string{
		`INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at) VALUES (1, 1001, 'b', 'u', ?, ?)`,
		`INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at) VALUES (2, 1001, 1, 'c', ?, ?)`,
		`INSERT INTO colors (id, store_id, name, value, created_at, updated_at) VALUES (3, 1001, 'Red', '#f00', ?, ?)`,
	} {
		require.NoError(t, conn.Exec(stmt, epoch, epoch).Error)
	}
	require.NoError(t, conn.Exec(
		`INSERT INTO products (id, store_id, category_id, size_id, color_id, name, price, created_at, updated_at)
		 VALUES (4, 1001, 2, ?, 3, 'Tee', 10, ?, ?)`,
		created.ID, epoch, epoch,
	).Error)

	_, err = svc.Delete(ctx, domain.DeleteRequest{StoreID: "1001", ID: created.ID})
	assert.EqualError(t, err, "Make sure you removed all products using this size first.")

	got, err := svc.Get(context.Background(), "1001", created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
