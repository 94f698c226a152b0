package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestVerb(t *testing.T) {
	assert.Equal(t, "SELECT", Verb("select * from stores"))
	assert.Equal(t, "DELETE", Verb("WITH x AS (SELECT 1) DELETE FROM billboards"))
	assert.Equal(t, "INSERT", Verb("  (INSERT INTO sizes VALUES (?))"))
	assert.Equal(t, "OTHER", Verb("PRAGMA foreign_keys = ON"))
	assert.Equal(t, "OTHER", Verb(""))
}

func TestVerbIgnoresNestedKeywords(t *testing.T) {
	cases := []struct {
		statement string
		want      string
	}{
		{statement: "WITH a AS (SELECT 1), b AS (SELECT 2) UPDATE stores SET name = ?", want: "UPDATE"},
		{statement: "WITH RECURSIVE t(n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM t) SELECT n FROM t", want: "SELECT"},
		{statement: "with doomed as (delete from sizes returning id) select count(*) from doomed", want: "SELECT"},
		{statement: "WITH x AS (SELECT 1) INSERT INTO colors SELECT * FROM x", want: "INSERT"},
		{statement: "DELETE FROM products WHERE id IN (SELECT product_id FROM order_items)", want: "DELETE"},
		{statement: "UPDATE stores SET name = 'select' WHERE id = ?", want: "UPDATE"},
		{statement: "WITH x AS (SELECT ')') DELETE FROM colors", want: "DELETE"},
		{statement: "CREATE TABLE t AS SELECT * FROM stores", want: "OTHER"},
		{statement: "WITH x AS (SELECT 1)", want: "OTHER"},
	}
	for _, tc := range cases {
		t.Run(tc.want+" "+tc.statement, func(t *testing.T) {
			assert.Equal(t, tc.want, Verb(tc.statement))
		})
	}
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestGormLoggerTraceLevels(t *testing.T) {
	logs := observe(t)
	l := NewGormLogger(DefaultGormLoggerConfig())
	sql := func() (string, int64) { return "DELETE FROM colors WHERE id = ?", 1 }

	l.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	l.Trace(context.Background(), time.Now(), sql, nil)
	l.Trace(context.Background(), time.Now(), sql, gormlogger.ErrRecordNotFound)

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "DELETE", entries[0].ContextMap()["statement"])
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, true, entries[1].ContextMap()["slow"])
	}
}

func TestGormLoggerSilent(t *testing.T) {
	logs := observe(t)
	l := NewGormLogger(DefaultGormLoggerConfig()).LogMode(gormlogger.Silent)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
	l.Error(context.Background(), "failed %s", "x")

	assert.Zero(t, logs.Len())
}
