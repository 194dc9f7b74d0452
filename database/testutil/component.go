// Package testutil opens throwaway in-memory sqlite databases for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"

	"github.com/kbukum/webtoon-api/database"
	"github.com/kbukum/webtoon-api/logger"
)

// MemoryConfig returns a database config for a private in-memory sqlite
// database. A single connection serializes writers so concurrent tests do
// not hit sqlite's shared-cache table locks.
func MemoryConfig() database.Config {
	return database.Config{
		Enabled:      true,
		Driver:       database.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		MaxRetries:   1,
		AutoMigrate:  true,
		LogLevel:     "silent",
	}
}

// NewDB opens an in-memory database, migrates models and closes it when
// the test ends.
func NewDB(t testing.TB, models ...interface{}) *database.DB {
	t.Helper()

	cfg := MemoryConfig()
	db, err := database.NewWithContext(context.Background(), sqlite.Open(cfg.DSN), cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("auto-migrate: %v", err)
		}
	}
	return db
}
