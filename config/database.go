package config

import "time"

// DBConfig contains PostgreSQL database configuration for the job record store.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"calib"`
	Password string `env:"PASSWORD"                envDefault:"calib"`
	Name     string `env:"NAME"                    envDefault:"calib"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// CacheConfig controls the short-lived latest-result cache.
type CacheConfig struct {
	// LatestResultTTL bounds staleness between explicit invalidations.
	LatestResultTTL time.Duration `env:"CACHE_LATEST_RESULT_TTL" envDefault:"30s"`

	// ScanLimit caps how many successful records a latest-result lookup scans.
	ScanLimit int `env:"CACHE_SCAN_LIMIT" envDefault:"200"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.LatestResultTTL <= 0 {
		c.LatestResultTTL = 30 * time.Second
	}
	if c.ScanLimit < 1 {
		c.ScanLimit = 200
	}
}
