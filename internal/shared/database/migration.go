package database

import (
	"fmt"
	"log/slog"

	"github.com/enslabs/clubs-admin-api/internal/config"
	"github.com/enslabs/clubs-admin-api/internal/model"

	"gorm.io/gorm"
)

// Migrate executes database migration based on configuration
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("database migration disabled",
			"auto_migrate", false, "env", cfg.App.Env,
		)
		return nil
	}

	// Safety check: prevent accidental schema changes in production
	if cfg.App.Env == "prod" || cfg.App.Env == "production" {
		return fmt.Errorf("DB_AUTO_MIGRATE=true is not allowed in production")
	}

	slog.Info("running database migration", "env", cfg.App.Env)

	if err := runAutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	// The audit ledger and name_count are owned by database triggers, not
	// application code. Trigger DDL only exists for postgres; the sqlite
	// test database runs without attribution or derived counts.
	if db.Dialector.Name() == "postgres" {
		if err := installTriggers(db); err != nil {
			return fmt.Errorf("failed to install triggers: %w", err)
		}
		slog.Info("audit and counter triggers installed")
	}

	slog.Info("migration complete")
	return nil
}

// runAutoMigrate creates tables based on model definitions
func runAutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		// Independent tables (no foreign keys)
		&model.Club{},
		&model.ClubMember{},
		&model.ENSName{},
		&model.AuditLog{},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
		slog.Debug("table migrated", "model", fmt.Sprintf("%T", m))
	}

	return nil
}

func installTriggers(db *gorm.DB) error {
	for _, ddl := range triggerDDL {
		if err := db.Exec(ddl).Error; err != nil {
			return err
		}
	}
	return nil
}
