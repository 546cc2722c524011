// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"strings"
	"time"
)

// Config is the runtime configuration shared by the server and the admin CLI.
type Config struct {
	Port string

	DBDialect   string
	DBPath      string
	PostgresDSN string
	MySQLDSN    string

	APIKeyHeader       string
	APIKeyPrefix       string
	RequireAuthForJobs bool

	ArgonTime    uint32
	ArgonMemory  uint32
	ArgonThreads uint8
	ArgonKeyLen  uint32
	ArgonSaltLen uint32

	CatalogCacheTTL    time.Duration
	RateLimitEnabled   bool
	RateLimitCacheSize int
	MetricsEnabled     bool
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	if port[0] != ':' {
		port = ":" + port
	}

	return &Config{
		Port:               port,
		DBDialect:          strings.ToLower(GetEnv("DB_DIALECT", "sqlite")),
		DBPath:             GetEnv("DB_PATH", "jobs.db"),
		PostgresDSN:        GetEnv("POSTGRES_DSN"),
		MySQLDSN:           GetEnv("MYSQL_DSN"),
		APIKeyHeader:       GetEnv("API_KEY_HEADER", "X-API-Key"),
		APIKeyPrefix:       GetEnv("API_KEY_PREFIX", "sk_live"),
		RequireAuthForJobs: GetEnvBool("REQUIRE_AUTH_FOR_JOBS", false),
		ArgonTime:          uint32(GetEnvInt("ARGON2_TIME", 1)),
		ArgonMemory:        uint32(GetEnvInt("ARGON2_MEMORY", 64*1024)),
		ArgonThreads:       uint8(GetEnvInt("ARGON2_THREADS", 2)),
		ArgonKeyLen:        uint32(GetEnvInt("ARGON2_KEYLEN", 32)),
		ArgonSaltLen:       uint32(GetEnvInt("ARGON2_SALTLEN", 16)),
		CatalogCacheTTL:    GetEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		RateLimitEnabled:   GetEnvBool("RATE_LIMIT_ENABLED", false),
		RateLimitCacheSize: GetEnvInt("RATE_LIMIT_CACHE_SIZE", 10000),
		MetricsEnabled:     GetEnvBool("METRICS_ENABLED", true),
	}
}
