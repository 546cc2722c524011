// SPDX-License-Identifier: GPL-3.0-only

package migrations_test

import (
	"jobs-api/migrations"
	"jobs-api/models"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRunCreatesEveryTable(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "m.db")), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(conn))
	// Re-running applies nothing new.
	require.NoError(t, migrations.Run(conn))

	for _, model := range models.AllModels {
		assert.True(t, conn.Migrator().HasTable(model), "%T", model)
	}
	assert.True(t, conn.Migrator().HasIndex(&models.FavoriteJob{}, "idx_favorite_key_job"))
	assert.True(t, conn.Migrator().HasIndex(&models.APIKey{}, "idx_api_keys_active_email"))

	var applied int64
	require.NoError(t, conn.Table("migrations").Count(&applied).Error)
	assert.EqualValues(t, len(migrations.List()), applied)
}
