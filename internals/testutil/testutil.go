// Package testutil: database terisolasi + fixture untuk test service/controller.
package testutil

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "schoolku_backend/internals/databases"
)

var seq atomic.Int64

// Logger: zap no-op supaya output test bersih.
func Logger(tb testing.TB) *zap.Logger {
	tb.Helper()
	return zap.NewNop()
}

// DB membuka database baru per test.
// TEST_POSTGRES_DSN di-set → postgres dengan schema terpisah; selain itu sqlite in-memory.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		db = openPostgres(tb, dsn, cfg)
	} else {
		name := fmt.Sprintf("file:schoolku_test_%d_%s?mode=memory&cache=shared&_foreign_keys=off", seq.Add(1), uuid.NewString()[:8])
		db, err = gorm.Open(sqlite.Open(name), cfg)
		if err != nil {
			tb.Fatalf("open sqlite: %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			tb.Fatalf("sqlite handle: %v", err)
		}
		// satu koneksi: DB in-memory hidup selama koneksi ini terbuka
		sqlDB.SetMaxOpenConns(1)
		tb.Cleanup(func() { _ = sqlDB.Close() })
	}

	if err := database.AutoMigrate(db); err != nil {
		tb.Fatalf("automigrate: %v", err)
	}
	return db
}

func openPostgres(tb testing.TB, dsn string, cfg *gorm.Config) *gorm.DB {
	tb.Helper()

	admin, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		tb.Fatalf("open postgres: %v", err)
	}
	schema := fmt.Sprintf("t_%d_%s", seq.Add(1), uuid.NewString()[:8])
	if err := admin.Exec("CREATE SCHEMA " + schema).Error; err != nil {
		tb.Fatalf("create schema: %v", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn + " search_path=" + schema,
		PreferSimpleProtocol: true,
	}), cfg)
	if err != nil {
		tb.Fatalf("open postgres schema: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = admin.Exec("DROP SCHEMA " + schema + " CASCADE").Error
		if sqlDB, err := admin.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Tx: transaksi yang selalu di-rollback di akhir test.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
