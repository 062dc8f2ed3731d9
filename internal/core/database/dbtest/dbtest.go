// Package dbtest 测试用的临时 SQLite
package dbtest

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"go-gin-watchlist/internal/core/database"
)

// Open 在 t.TempDir 下建库，测试结束自动关闭
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      filepath.Join(t.TempDir(), "data.db"),
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
