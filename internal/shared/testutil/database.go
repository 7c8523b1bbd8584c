package testutil

import (
	"testing"

	"github.com/enslabs/clubs-admin-api/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
// This can be reused across all integration tests
//
// Note: the postgres audit/counter triggers do not exist here; tests assert
// on membership rows directly rather than on trigger-maintained state.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Create in-memory SQLite database
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Silent mode for tests
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Auto-migrate all models
	err = db.AutoMigrate(
		&model.Club{},
		&model.ClubMember{},
		&model.ENSName{},
		&model.AuditLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("Failed to get database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		t.Errorf("Failed to close database: %v", err)
	}
}

// TruncateTable truncates a table for test isolation
func TruncateTable(t *testing.T, db *gorm.DB, tableName string) {
	t.Helper()

	if err := db.Exec("DELETE FROM " + tableName).Error; err != nil {
		t.Fatalf("Failed to truncate table %s: %v", tableName, err)
	}
}

// SeedNameDirectory registers names in the known-ENS-names directory so the
// reconciler's existence gate lets them through.
func SeedNameDirectory(t *testing.T, db *gorm.DB, names ...string) {
	t.Helper()

	for _, name := range names {
		if err := db.Create(&model.ENSName{Name: name}).Error; err != nil {
			t.Fatalf("Failed to seed name %s: %v", name, err)
		}
	}
}

// SeedClub creates a club row for tests.
func SeedClub(t *testing.T, db *gorm.DB, name string) *model.Club {
	t.Helper()

	club := model.NewClub(name, "", "", nil)
	if err := db.Create(club).Error; err != nil {
		t.Fatalf("Failed to seed club %s: %v", name, err)
	}
	return club
}
