package migration

import (
	"testing"
	"time"

	"github.com/smallbiznis/storeadmin/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatements(t *testing.T) {
	stmts := Statements("CREATE TABLE a (id BIGINT);\n\n  CREATE INDEX i ON a (id);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id BIGINT)", "CREATE INDEX i ON a (id)"}, stmts)
	assert.Empty(t, Statements(" ;\n; "))
}

func TestUpStepsOrdered(t *testing.T) {
	steps, err := upSteps()
	require.NoError(t, err)
	require.NotEmpty(t, steps)
	for i := 1; i < len(steps); i++ {
		assert.Less(t, steps[i-1].version, steps[i].version)
	}
}

func TestApplySchemaIsIdempotent(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	require.NoError(t, ApplySchema(conn))
	require.NoError(t, ApplySchema(conn))

	steps, err := upSteps()
	require.NoError(t, err)
	var count int64
	require.NoError(t, conn.Raw(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count).Error)
	assert.Equal(t, int64(len(steps)), count)
}

func TestSchemaEnforcesRestrictAndCascade(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, ApplySchema(conn))

	now := time.Now().UTC()
	exec := func(sql string, args ...any) error { return conn.Exec(sql, args...).Error }

	require.NoError(t, exec(`INSERT INTO stores (id, user_id, name, created_at, updated_at) VALUES (1, 'u1', 'Shop', ?, ?)`, now, now))
	require.NoError(t, exec(`INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at) VALUES (2, 1, 'Hero', 'https://img/1.png', ?, ?)`, now, now))
	require.NoError(t, exec(`INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at) VALUES (3, 1, 2, 'Shirts', ?, ?)`, now, now))
	require.NoError(t, exec(`INSERT INTO sizes (id, store_id, name, value, created_at, updated_at) VALUES (4, 1, 'Large', 'L', ?, ?)`, now, now))
	require.NoError(t, exec(`INSERT INTO colors (id, store_id, name, value, created_at, updated_at) VALUES (5, 1, 'Red', '#f00', ?, ?)`, now, now))
	require.NoError(t, exec(`INSERT INTO products (id, store_id, category_id, size_id, color_id, name, price, created_at, updated_at) VALUES (6, 1, 3, 4, 5, 'Tee', 19.99, ?, ?)`, now, now))
	require.NoError(t, exec(`INSERT INTO images (id, product_id, url, created_at, updated_at) VALUES (7, 6, 'https://img/2.png', ?, ?)`, now, now))

	err = exec(`DELETE FROM billboards WHERE id = 2`)
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolation(err))

	err = exec(`INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at) VALUES (8, 1, 999, 'Ghost', ?, ?)`, now, now)
	assert.True(t, db.IsForeignKeyViolation(err))

	require.NoError(t, exec(`DELETE FROM products WHERE id = 6`))
	var images int64
	require.NoError(t, conn.Raw(`SELECT COUNT(*) FROM images`).Scan(&images).Error)
	assert.Zero(t, images)
}
