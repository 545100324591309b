// Package record owns the persisted row shapes and the sqlite connection.
// Ciphertext columns are plain strings here; the mapper package is the only
// place rows are translated to and from decrypted domain objects, so this
// package never touches the codec.
package record

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open creates a sqlite connection at the given path, creating parent
// directories as needed. Foreign keys are enabled so hard deletes of
// referenced rows fail loud instead of orphaning children.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("Open: creating db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("Open: opening sqlite at %s: %w", path, err)
	}
	return db, nil
}

// OpenMemory creates a private in-memory database, used by tests.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private&_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("OpenMemory: opening in-memory sqlite: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every row type.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&AccountRow{},
		&BalanceRow{},
		&GoalRow{},
		&HoldingRow{},
		&TargetAllocationRow{},
		&BillRow{},
		&BillPaymentRow{},
		&TransactionRow{},
		&NotificationRow{},
		&PriceRow{},
	); err != nil {
		return fmt.Errorf("Migrate: %w", err)
	}
	return nil
}
