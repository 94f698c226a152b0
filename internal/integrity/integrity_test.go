package integrity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storeadmin/internal/migration/migrationtest"
	"github.com/smallbiznis/storeadmin/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seed(t *testing.T) *gorm.DB {
	t.Helper()
	conn := migrationtest.NewDB(t)
	now := time.Now().UTC()
	stmts := []string{
		`INSERT INTO stores (id, user_id, name, created_at, updated_at) VALUES (1, 'u1', 'Shop', ?, ?)`,
		`INSERT INTO stores (id, user_id, name, created_at, updated_at) VALUES (2, 'u1', 'Empty', ?, ?)`,
		`INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at) VALUES (10, 1, 'Used', 'u', ?, ?)`,
		`INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at) VALUES (11, 1, 'Free', 'u', ?, ?)`,
		`INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at) VALUES (20, 1, 10, 'Shirts', ?, ?)`,
		`INSERT INTO sizes (id, store_id, name, value, created_at, updated_at) VALUES (30, 1, 'Large', 'L', ?, ?)`,
		`INSERT INTO colors (id, store_id, name, value, created_at, updated_at) VALUES (40, 1, 'Red', '#f00', ?, ?)`,
		`INSERT INTO products (id, store_id, category_id, size_id, color_id, name, price, created_at, updated_at) VALUES (50, 1, 20, 30, 40, 'Tee', 10, ?, ?)`,
		`INSERT INTO orders (id, store_id, is_paid, phone, address, created_at, updated_at) VALUES (60, 1, FALSE, '555', '', ?, ?)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, conn.Exec(stmt, now, now).Error)
	}
	require.NoError(t, conn.Exec(`INSERT INTO order_items (id, order_id, product_id) VALUES (70, 60, 50)`).Error)
	return conn
}

func TestCanDelete(t *testing.T) {
	conn := seed(t)
	ctx := context.Background()

	cases := []struct {
		kind      string
		id        snowflake.ID
		allowed   bool
		dependent string
	}{
		{kind: Billboard, id: 10, allowed: false, dependent: "category"},
		{kind: Billboard, id: 11, allowed: true},
		{kind: Category, id: 20, allowed: false, dependent: "product"},
		{kind: Size, id: 30, allowed: false, dependent: "product"},
		{kind: Color, id: 40, allowed: false, dependent: "product"},
		{kind: Product, id: 50, allowed: false, dependent: "order"},
		{kind: Order, id: 60, allowed: true},
		{kind: Store, id: 1, allowed: false, dependent: "billboard"},
		{kind: Store, id: 2, allowed: true},
	}

	for _, tc := range cases {
		t.Run(tc.kind+"/"+tc.id.String(), func(t *testing.T) {
			decision, err := CanDelete(ctx, conn, tc.kind, tc.id)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, decision.Allowed)
			assert.Equal(t, tc.dependent, decision.Dependent)
			if !tc.allowed {
				assert.Equal(t, Rules[tc.kind].Message, decision.Reason)
			}
		})
	}
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, Decision{Allowed: true}.Err(Billboard))

	err := Decision{Dependent: "category"}.Err(Billboard)
	var conflict *resource.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Make sure you removed all categories using this billboard first.", conflict.Message)
	assert.Equal(t, "category", conflict.Dependent)
}

func TestTranslateDeleteFromDatabase(t *testing.T) {
	conn := seed(t)

	err := TranslateDelete(Billboard, conn.Exec(`DELETE FROM billboards WHERE id = 10`).Error)
	assert.True(t, resource.IsConflict(err))
	assert.EqualError(t, err, Rules[Billboard].Message)

	other := errors.New("connection reset")
	assert.Same(t, other, TranslateDelete(Billboard, other))
	assert.NoError(t, TranslateDelete(Billboard, nil))
}

func TestTranslateReference(t *testing.T) {
	conn := seed(t)
	now := time.Now().UTC()

	err := conn.Exec(`INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at) VALUES (21, 1, 999, 'Ghost', ?, ?)`, now, now).Error
	err = TranslateReference(err, "Billboard not found in this store")
	assert.True(t, resource.IsConflict(err))
	assert.EqualError(t, err, "Billboard not found in this store")
}
