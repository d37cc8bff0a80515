package database

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations executes all database migrations
func RunMigrations(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}

	// Create indexes for better performance
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createIndexes creates database indexes
func createIndexes(db *gorm.DB) error {
	// Index for docket entries by filing date
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_docket_entries_date
		ON docket_entries(date_filed)
	`).Error; err != nil {
		return err
	}

	// Index for attorneys looked up by role
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_users_role
		ON users(role)
	`).Error; err != nil {
		return err
	}

	return nil
}
