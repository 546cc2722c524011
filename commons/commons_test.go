// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePage(t *testing.T) {
	assert.NoError(t, ValidatePage(0, 1))
	assert.NoError(t, ValidatePage(10, MaxLimit))

	for _, tt := range []struct {
		skip, limit int
		field       string
	}{
		{-1, 10, "skip"},
		{0, 0, "limit"},
		{0, MaxLimit + 1, "limit"},
	} {
		err := ValidatePage(tt.skip, tt.limit)
		var invalid *InvalidInputError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, tt.field, invalid.Field)
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("JOBS_TEST_INT", "42")
	t.Setenv("JOBS_TEST_BAD_INT", "forty-two")
	t.Setenv("JOBS_TEST_BOOL", "true")
	t.Setenv("JOBS_TEST_DURATION", "90s")

	assert.Equal(t, "fallback", GetEnv("JOBS_TEST_UNSET", "fallback"))
	assert.Equal(t, "", GetEnv("JOBS_TEST_UNSET"))
	assert.Equal(t, 42, GetEnvInt("JOBS_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvInt("JOBS_TEST_BAD_INT", 1))
	assert.True(t, GetEnvBool("JOBS_TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, GetEnvDuration("JOBS_TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, GetEnvDuration("JOBS_TEST_UNSET", time.Minute))
}

func TestLoadEnvFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "# comment\nJOBS_TEST_PORT=9090\nJOBS_TEST_QUOTED=\"sk_test\"\nnot a pair\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("JOBS_TEST_PORT", "")
	t.Setenv("JOBS_TEST_QUOTED", "")
	require.NoError(t, loadEnvFrom(path))

	assert.Equal(t, "9090", os.Getenv("JOBS_TEST_PORT"))
	assert.Equal(t, "sk_test", os.Getenv("JOBS_TEST_QUOTED"))

	assert.Error(t, loadEnvFrom(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DIALECT", "Postgres")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("CATALOG_CACHE_TTL", "0s")

	cfg := LoadConfig()
	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDialect)
	assert.Equal(t, "X-API-Key", cfg.APIKeyHeader)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Zero(t, cfg.CatalogCacheTTL)
	assert.EqualValues(t, 64*1024, cfg.ArgonMemory)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, ParseLogLevel("debug"))
	assert.Equal(t, log.WARN, ParseLogLevel(" WARN "))
	assert.Equal(t, log.INFO, ParseLogLevel("verbose"))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Job with ID 'J1' not found", (&NotFoundError{Resource: "Job", ID: "J1"}).Error())
	assert.Nil(t, NewStoreError("noop", nil))

	cause := os.ErrClosed
	err := NewStoreError("ping", cause)
	assert.ErrorIs(t, err, cause)
}
