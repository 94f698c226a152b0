// Package ownershiptest builds a real ownership guard over a test database.
package ownershiptest

import (
	"testing"

	"github.com/smallbiznis/storeadmin/internal/ownership"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewGuard(t testing.TB, conn *gorm.DB) ownership.Guard {
	t.Helper()
	enforcer, err := ownership.NewEnforcer(conn)
	if err != nil {
		t.Fatalf("policy enforcer: %v", err)
	}
	return ownership.New(ownership.Params{DB: conn, Log: zap.NewNop(), Enforcer: enforcer})
}
