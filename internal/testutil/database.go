// Package testutil provides test helpers for setting up storage backends,
// seeding documents, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lifeseed/internal/models"
	"lifeseed/internal/storage"
)

// dbCounter gives each test its own in-memory database.
var dbCounter atomic.Int64

// SetupTestDB creates an isolated in-memory SQLite database with the
// documents table migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Document{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// SetupTestStorage returns an empty in-memory document storage.
func SetupTestStorage(t *testing.T) *storage.Memory {
	t.Helper()
	return storage.NewMemory()
}

// FailingStorage is a storage whose Save always fails. Load reports no
// document so stores start empty.
type FailingStorage struct {
	Err error
}

func (f *FailingStorage) Load(string) ([]byte, error) { return nil, storage.ErrNotFound }
func (f *FailingStorage) Save(string, []byte) error  { return f.Err }
func (f *FailingStorage) Close() error               { return nil }
