package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewTestEnforcesForeignKeys(t *testing.T) {
	conn, err := NewTest()
	require.NoError(t, err)
	assert.False(t, conn.Config.TranslateError)

	require.NoError(t, conn.Exec(`CREATE TABLE parents (id INTEGER PRIMARY KEY)`).Error)
	require.NoError(t, conn.Exec(`CREATE TABLE children (
		id INTEGER PRIMARY KEY,
		parent_id INTEGER NOT NULL REFERENCES parents(id) ON DELETE RESTRICT
	)`).Error)
	require.NoError(t, conn.Exec(`INSERT INTO parents (id) VALUES (1)`).Error)
	require.NoError(t, conn.Exec(`INSERT INTO children (id, parent_id) VALUES (1, 1)`).Error)

	err = conn.Exec(`DELETE FROM parents WHERE id = 1`).Error
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))

	err = conn.Exec(`INSERT INTO children (id, parent_id) VALUES (2, 99)`).Error
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestLifecycleHookClosesPool(t *testing.T) {
	conn, err := NewTest()
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)

	hook := lifecycleHook(sqlDB, zap.NewNop())
	require.NoError(t, hook.OnStart(context.Background()))
	require.NoError(t, hook.OnStop(context.Background()))

	assert.Error(t, sqlDB.Ping())
}
