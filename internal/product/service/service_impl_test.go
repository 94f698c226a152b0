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
	"github.com/smallbiznis/storeadmin/internal/ownership/ownershiptest"
	"github.com/smallbiznis/storeadmin/internal/product/domain"
	"github.com/smallbiznis/storeadmin/internal/product/repository"
	"github.com/smallbiznis/storeadmin/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc   domain.Service
	db    *gorm.DB
	clock *clock.Fake
}

// Store 1001 (user_a) owns category 20/21, size 30, color 40.
// Store 2002 (user_b) owns category 22, size 32, color 42.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := migrationtest.NewDB(t)
	migrationtest.SeedStore(t, conn, 1001, "user_a")
	migrationtest.SeedStore(t, conn, 2002, "user_b")
	stmts := []string{
		`INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at) VALUES (10, 1001, 'b', 'u', ?, ?)`,
		`INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at) VALUES (12, 2002, 'b', 'u', ?, ?)`,
		`INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at) VALUES (20, 1001, 10, 'Shirts', ?, ?)`,
		`INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at) VALUES (21, 1001, 10, 'Pants', ?, ?)`,
		`INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at) VALUES (22, 2002, 12, 'Theirs', ?, ?)`,
		`INSERT INTO sizes (id, store_id, name, value, created_at, updated_at) VALUES (30, 1001, 'Large', 'L', ?, ?)`,
		`INSERT INTO sizes (id, store_id, name, value, created_at, updated_at) VALUES (32, 2002, 'Large', 'L', ?, ?)`,
		`INSERT INTO colors (id, store_id, name, value, created_at, updated_at) VALUES (40, 1001, 'Red', '#f00', ?, ?)`,
		`INSERT INTO colors (id, store_id, name, value, created_at, updated_at) VALUES (42, 2002, 'Red', '#f00', ?, ?)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, conn.Exec(stmt, epoch, epoch).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFake(epoch)
	return &fixture{
		svc: New(Params{
			DB:    conn,
			Log:   zap.NewNop(),
			GenID: node,
			Clock: clk,
			Guard: ownershiptest.NewGuard(t, conn),
			Repo:  repository.Provide(),
		}),
		db:    conn,
		clock: clk,
	}
}

func as(userID string) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: userID})
}

func price(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func valid(name string) domain.Fields {
	return domain.Fields{
		Name:       name,
		Images:     []domain.ImageInput{{URL: "https://img/1.png"}, {URL: "https://img/2.png"}},
		Price:      price("19.5"),
		CategoryID: "20",
		SizeID:     "30",
		ColorID:    "40",
	}
}

func (f *fixture) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Raw(`SELECT COUNT(1) FROM ` + table).Scan(&n).Error)
	return n
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name   string
		mutate func(*domain.Fields)
		want   string
	}{
		{"name", func(p *domain.Fields) { p.Name = "" }, "Name is required"},
		{"images", func(p *domain.Fields) { p.Images = nil }, "Images are required"},
		{"blank image", func(p *domain.Fields) { p.Images = []domain.ImageInput{{URL: " "}} }, "Images are required"},
		{"price", func(p *domain.Fields) { p.Price = nil }, "Price is required"},
		{"negative price", func(p *domain.Fields) { p.Price = price("-1") }, "Price must not be negative"},
		{"fractional cents", func(p *domain.Fields) { p.Price = price("1.005") }, "Price must have at most 2 decimal places"},
		{"category", func(p *domain.Fields) { p.CategoryID = "" }, "Category ID is required"},
		{"size", func(p *domain.Fields) { p.SizeID = "" }, "Size ID is required"},
		{"color", func(p *domain.Fields) { p.ColorID = "" }, "Color ID is required"},
		{"first missing wins", func(p *domain.Fields) { p.Name, p.ColorID = "", "" }, "Name is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := valid("Tee")
			tc.mutate(&fields)
			_, err := f.svc.Create(as("user_a"), domain.CreateRequest{StoreID: "1001", Fields: fields})
			assert.True(t, resource.IsValidation(err))
			assert.EqualError(t, err, tc.want)
		})
	}
	assert.Zero(t, f.count(t, "products"))
}

func TestCreateRejectsForeignReferences(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		mutate func(*domain.Fields)
		want   string
	}{
		{func(p *domain.Fields) { p.CategoryID = "22" }, "Category does not belong to this store"},
		{func(p *domain.Fields) { p.SizeID = "32" }, "Size does not belong to this store"},
		{func(p *domain.Fields) { p.ColorID = "nope" }, "Color does not belong to this store"},
	}
	for _, tc := range cases {
		fields := valid("Tee")
		tc.mutate(&fields)
		_, err := f.svc.Create(as("user_a"), domain.CreateRequest{StoreID: "1001", Fields: fields})
		assert.True(t, resource.IsConflict(err))
		assert.EqualError(t, err, tc.want)
	}
	assert.Zero(t, f.count(t, "products"))
	assert.Zero(t, f.count(t, "images"))
}

func TestCreateAndGet(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(as("user_a"), domain.CreateRequest{StoreID: "1001", Fields: valid("Tee")})
	require.NoError(t, err)
	require.Len(t, created.Images, 2)

	got, err := f.svc.Get(context.Background(), "1001", created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Tee", got.Name)
	assert.Equal(t, "19.5", got.Price.String())
	assert.Equal(t, created.Images, got.Images)
	assert.Equal(t, "Shirts", got.Category.Name)
	assert.Equal(t, "L", got.Size.Value)
	assert.Equal(t, "#f00", got.Color.Value)
	assert.Equal(t, epoch, got.CreatedAt)
}

func TestPriceKeepsCents(t *testing.T) {
	f := newFixture(t)

	for _, v := range []string{"0.1", "19.99", "1234567.89"} {
		fields := valid("Tee " + v)
		fields.Price = price(v)
		created, err := f.svc.Create(as("user_a"), domain.CreateRequest{StoreID: "1001", Fields: fields})
		require.NoError(t, err)

		got, err := f.svc.Get(context.Background(), "1001", created.ID)
		require.NoError(t, err)
		assert.Equal(t, v, got.Price.String())
	}
}

func TestUpdateReplacesImages(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create(as("user_a"), domain.CreateRequest{StoreID: "1001", Fields: valid("Tee")})
	require.NoError(t, err)

	fields := valid("Polo")
	fields.Images = []domain.ImageInput{{URL: "https://img/3.png"}}
	fields.CategoryID = "21"
	fields.IsArchived = true
	f.clock.Advance(time.Hour)

	updated, err := f.svc.Update(as("user_a"), domain.UpdateRequest{StoreID: "1001", ID: created.ID, Fields: fields})
	require.NoError(t, err)
	assert.Equal(t, "Polo", updated.Name)
	assert.Equal(t, "21", updated.CategoryID)
	assert.True(t, updated.IsArchived)
	require.Len(t, updated.Images, 1)
	assert.Equal(t, int64(1), f.count(t, "images"))

	_, err = f.svc.Update(as("user_b"), domain.UpdateRequest{StoreID: "1001", ID: created.ID, Fields: fields})
	assert.ErrorIs(t, err, resource.ErrForbidden)

	_, err = f.svc.Update(as("user_a"), domain.UpdateRequest{StoreID: "1001", ID: "424242", Fields: fields})
	assert.EqualError(t, err, "Product not found")
}

func TestListFiltersAndHidesArchived(t *testing.T) {
	f := newFixture(t)
	ctx := as("user_a")

	shirt := valid("Shirt")
	shirt.IsFeatured = true
	_, err := f.svc.Create(ctx, domain.CreateRequest{StoreID: "1001", Fields: shirt})
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	pants := valid("Pants")
	pants.CategoryID = "21"
	pants.Price = price("5")
	_, err = f.svc.Create(ctx, domain.CreateRequest{StoreID: "1001", Fields: pants})
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	archived := valid("Old")
	archived.IsArchived = true
	_, err = f.svc.Create(ctx, domain.CreateRequest{StoreID: "1001", Fields: archived})
	require.NoError(t, err)

	all, err := f.svc.List(context.Background(), domain.ListRequest{StoreID: "1001"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Pants", all[0].Name)
	assert.Equal(t, "Shirt", all[1].Name)
	assert.Len(t, all[1].Images, 2)

	byCategory, err := f.svc.List(context.Background(), domain.ListRequest{StoreID: "1001", CategoryID: "21"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Pants", byCategory[0].Name)

	featured, err := f.svc.List(context.Background(), domain.ListRequest{StoreID: "1001", IsFeatured: "true"})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Shirt", featured[0].Name)

	byPrice, err := f.svc.List(context.Background(), domain.ListRequest{StoreID: "1001", SortBy: "price", OrderBy: "asc"})
	require.NoError(t, err)
	require.Len(t, byPrice, 2)
	assert.Equal(t, "Pants", byPrice[0].Name)

	none, err := f.svc.List(context.Background(), domain.ListRequest{StoreID: "1001", SizeID: "bogus"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create(as("user_a"), domain.CreateRequest{StoreID: "1001", Fields: valid("Tee")})
	require.NoError(t, err)

	require.NoError(t, f.db.Exec(`INSERT INTO orders (id, store_id, is_paid, phone, address, created_at, updated_at) VALUES (60, 1001, FALSE, '555', '', ?, ?)`, epoch, epoch).Error)
	require.NoError(t, f.db.Exec(`INSERT INTO order_items (id, order_id, product_id) VALUES (61, 60, ?)`, created.ID).Error)

	_, err = f.svc.Delete(as("user_a"), domain.DeleteRequest{StoreID: "1001", ID: created.ID})
	assert.EqualError(t, err, "Make sure you removed all orders using this product first.")
	assert.Equal(t, int64(2), f.count(t, "images"))

	require.NoError(t, f.db.Exec(`DELETE FROM orders WHERE id = 60`).Error)

	deleted, err := f.svc.Delete(as("user_a"), domain.DeleteRequest{StoreID: "1001", ID: created.ID})
	require.NoError(t, err)
	assert.Len(t, deleted.Images, 2)
	assert.Zero(t, f.count(t, "products"))
	assert.Zero(t, f.count(t, "images"))
}
