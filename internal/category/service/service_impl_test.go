package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storeadmin/internal/category/domain"
	"github.com/smallbiznis/storeadmin/internal/category/repository"
	"github.com/smallbiznis/storeadmin/internal/clock"
	"github.com/smallbiznis/storeadmin/internal/identity"
	"github.com/smallbiznis/storeadmin/internal/migration/migrationtest"
	"github.com/smallbiznis/storeadmin/internal/ownership/ownershiptest"
	"github.com/smallbiznis/storeadmin/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// Store 1001 (user_a) has billboards 11 and 12; store 2002 (user_b) has 21.
func newService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	conn := migrationtest.NewDB(t)
	migrationtest.SeedStore(t, conn, 1001, "user_a")
	migrationtest.SeedStore(t, conn, 2002, "user_b")
	for _, b := range []struct {
		id, store int64
		label     string
	}{{11, 1001, "Summer"}, {12, 1001, "Winter"}, {21, 2002, "Theirs"}} {
		require.NoError(t, conn.Exec(
			`INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at) VALUES (?, ?, ?, 'https://img', ?, ?)`,
			b.id, b.store, b.label, epoch, epoch,
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

func categories(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Raw(`SELECT COUNT(1) FROM categories`).Scan(&n).Error)
	return n
}

func TestCreateRequiresBillboardID(t *testing.T) {
	svc, conn := newService(t)

	_, err := svc.Create(as("user_a"), domain.CreateRequest{StoreID: "1001", Fields: domain.Fields{Name: "Shoes", BillboardID: ""}})
	assert.True(t, resource.IsValidation(err))
	assert.EqualError(t, err, "Billboard ID is required")
	assert.Zero(t, categories(t, conn))
}

func TestCreateRejectsForeignBillboard(t *testing.T) {
	svc, conn := newService(t)

	for _, billboardID := range []string{"21", "999", "abc"} {
		_, err := svc.Create(as("user_a"), domain.CreateRequest{StoreID: "1001", Fields: domain.Fields{Name: "Shoes", BillboardID: billboardID}})
		assert.True(t, resource.IsConflict(err), billboardID)
		assert.EqualError(t, err, "Billboard does not belong to this store")
	}
	assert.Zero(t, categories(t, conn))
}

func TestCreateAndGetIncludesBillboard(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(as("user_a"), domain.CreateRequest{StoreID: "1001", Fields: domain.Fields{Name: "Shoes", BillboardID: "11"}})
	require.NoError(t, err)
	assert.Equal(t, "11", created.BillboardID)
	assert.Nil(t, created.Billboard)

	got, err := svc.Get(context.Background(), "1001", created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Shoes", got.Name)
	require.NotNil(t, got.Billboard)
	assert.Equal(t, "Summer", got.Billboard.Label)

	list, err := svc.List(context.Background(), "1001")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	missing, err := svc.Get(context.Background(), "2002", created.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateMovesBillboard(t *testing.T) {
	svc, _ := newService(t)
	created, err := svc.Create(as("user_a"), domain.CreateRequest{StoreID: "1001", Fields: domain.Fields{Name: "Shoes", BillboardID: "11"}})
	require.NoError(t, err)

	_, err = svc.Update(as("user_a"), domain.UpdateRequest{StoreID: "1001", ID: created.ID, Fields: domain.Fields{Name: "Boots", BillboardID: "21"}})
	assert.EqualError(t, err, "Billboard does not belong to this store")

	_, err = svc.Update(as("user_b"), domain.UpdateRequest{StoreID: "1001", ID: created.ID, Fields: domain.Fields{Name: "Boots", BillboardID: "12"}})
	assert.ErrorIs(t, err, resource.ErrForbidden)

	updated, err := svc.Update(as("user_a"), domain.UpdateRequest{StoreID: "1001", ID: created.ID, Fields: domain.Fields{Name: "Boots", BillboardID: "12"}})
	require.NoError(t, err)
	assert.Equal(t, "12", updated.BillboardID)
	assert.Equal(t, "Boots", updated.Name)
}

func TestDeleteCategory(t *testing.T) {
	svc, conn := newService(t)
	created, err := svc.Create(as("user_a"), domain.CreateRequest{StoreID: "1001", Fields: domain.Fields{Name: "Shoes", BillboardID: "11"}})
	require.NoError(t, err)

	require.NoError(t, conn.Exec(`INSERT INTO sizes (id, store_id, name, value, created_at, updated_at) VALUES (31, 1001, 'L', 'L', ?, ?)`, epoch, epoch).Error)
	require.NoError(t, conn.Exec(`INSERT INTO colors (id, store_id, name, value, created_at, updated_at) VALUES (41, 1001, 'Red', '#f00', ?, ?)`, epoch, epoch).Error)
	require.NoError(t, conn.Exec(
		`INSERT INTO products (id, store_id, category_id, size_id, color_id, name, price, created_at, updated_at) VALUES (51, 1001, ?, 31, 41, 'Tee', 10, ?, ?)`,
		created.ID, epoch, epoch,
	).Error)

	_, err = svc.Delete(as("user_a"), domain.DeleteRequest{StoreID: "1001", ID: created.ID})
	assert.EqualError(t, err, "Make sure you removed all products using this category first.")
	assert.Equal(t, int64(1), categories(t, conn))

	require.NoError(t, conn.Exec(`DELETE FROM products WHERE id = 51`).Error)
	_, err = svc.Delete(as("user_a"), domain.DeleteRequest{StoreID: "1001", ID: created.ID})
	require.NoError(t, err)
	assert.Zero(t, categories(t, conn))
}
