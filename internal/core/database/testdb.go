package database

import (
	"testing"

	"gorm.io/gorm"
)

// NewTestDB 内存 sqlite，迁移给定模型；单连接保证同一个库
func NewTestDB(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("migrating test database: %v", err)
		}
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
