// Package dbtest 为单元测试提供基于内存sqlite的数据库, 表结构与线上一致
package dbtest

import (
	"testing"

	"VidTube.com/pkg/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := database.GormConfig()
	cfg.PrepareStmt = false
	DB, err := gorm.Open(sqlite.Open("file::memory:"), cfg)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := DB.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	// 内存库每个连接都是独立的数据库, 只能保留一个连接
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(DB); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return DB
}
