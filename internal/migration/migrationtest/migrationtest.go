// Package migrationtest opens migrated in-memory databases for package tests.
package migrationtest

import (
	"testing"
	"time"

	"github.com/smallbiznis/storeadmin/internal/migration"
	"github.com/smallbiznis/storeadmin/pkg/db"
	"gorm.io/gorm"
)

// NewDB returns an isolated sqlite database with the full schema applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := migration.ApplySchema(conn); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

// SeedStore inserts a store owned by owner.
func SeedStore(t testing.TB, conn *gorm.DB, id int64, owner string) {
	t.Helper()
	now := time.Now().UTC()
	err := conn.Exec(
		`INSERT INTO stores (id, user_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, owner, "Shop", now, now,
	).Error
	if err != nil {
		t.Fatalf("seed store %d: %v", id, err)
	}
}
