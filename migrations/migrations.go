// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"jobs-api/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

const activeEmailIndex = "idx_api_keys_active_email"

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_create_api_keys",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.APIKey{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("api_keys")
			},
		},
		{
			// The ingester usually creates these tables first; AutoMigrate only
			// adds what is missing.
			ID: "002_create_job_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.JobListing{}, &models.JobDetails{})
			},
			Rollback: func(tx *gorm.DB) error {
				return nil
			},
		},
		{
			ID: "003_create_favorite_jobs",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.FavoriteJob{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("favorite_jobs")
			},
		},
		{
			ID: "004_create_api_key_events",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.APIKeyEvent{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("api_key_events")
			},
		},
		{
			// At most one active key per email. MySQL has no partial
			// indexes; Issue's locking read covers it there.
			ID: "005_unique_active_email",
			Migrate: func(tx *gorm.DB) error {
				if tx.Dialector.Name() == "mysql" {
					return nil
				}
				return tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS " + activeEmailIndex +
					" ON api_keys (email) WHERE is_active").Error
			},
			Rollback: func(tx *gorm.DB) error {
				if tx.Dialector.Name() == "mysql" {
					return nil
				}
				return tx.Exec("DROP INDEX IF EXISTS " + activeEmailIndex).Error
			},
		},
	}
}

func Run(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, List())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
