// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"financequest/src/database"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// NewSQLite returns a fully migrated private in-memory database, achievement catalog
// included. Each call gets its own database.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := database.Config{GormLogLevel: int(logger.Silent)}
	dsn := fmt.Sprintf("file:dbtest%d?mode=memory&cache=shared", seq.Add(1))
	db, err := database.Open(database.DriverSQLite, dsn, cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
