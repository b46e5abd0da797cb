package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for authentication
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string

	// TrustedProxies lists peer IPs whose X-Forwarded-For header is honored
	TrustedProxies []string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int

	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	CatalogPath       string
	TickInterval      time.Duration
	AutosaveInterval  time.Duration
	RecoveryInterval  time.Duration
	WorkerCount       int
	SnapshotCacheSize int
	SnapshotCacheTTL  time.Duration

	EventLogRetention       time.Duration
	EventLogCleanupInterval time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv(EnvAPIKey, ""),
		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:      getEnv(EnvLogDir, DefaultLogDir),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),

		TrustedProxies: getEnvAsList(EnvTrustedProxies),

		DBUser:     getEnv(EnvDBUser, DefaultDBUser),
		DBPassword: getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:     getEnv(EnvDBHost, DefaultDBHost),
		DBPort:     getEnv(EnvDBPort, DefaultDBPort),
		DBName:     getEnv(EnvDBName, DefaultDBName),
		DBMaxConns: getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),

		DBMaxConnIdleTime: getEnvAsDuration(EnvDBMaxConnIdle, DefaultDBMaxConnIdle),
		DBMaxConnLifetime: getEnvAsDuration(EnvDBMaxConnLifetime, DefaultDBMaxConnLifetime),

		CatalogPath:       getEnv(EnvCatalogPath, DefaultCatalogPath),
		TickInterval:      getEnvAsDuration(EnvTickInterval, DefaultTickInterval),
		AutosaveInterval:  getEnvAsDuration(EnvAutosaveInterval, DefaultAutosaveInterval),
		RecoveryInterval:  getEnvAsDuration(EnvRecoveryInterval, DefaultRecoveryInterval),
		WorkerCount:       getEnvAsInt(EnvWorkerCount, DefaultWorkerCount),
		SnapshotCacheSize: getEnvAsInt(EnvSnapshotCacheSize, DefaultSnapshotCacheSize),
		SnapshotCacheTTL:  getEnvAsDuration(EnvSnapshotCacheTTL, DefaultSnapshotCacheTTL),

		EventLogRetention:       getEnvAsDuration(EnvEventLogRetention, DefaultEventLogRetention),
		EventLogCleanupInterval: getEnvAsDuration(EnvEventLogCleanup, DefaultEventLogCleanup),
	}

	port, err := strconv.Atoi(getEnv(EnvPort, strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, errors.New(ErrMsgAPIKeyRequired))
	}
	if c.Port < 1 || c.Port > MaxPort {
		errs = append(errs, fmt.Errorf("%s: %d", ErrMsgInvalidPort, c.Port))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("%s: %q", ErrMsgInvalidLogFormat, c.LogFormat))
	}
	if c.TickInterval < MinTickInterval {
		errs = append(errs, fmt.Errorf("%s: %s < %s", ErrMsgTickTooShort, c.TickInterval, MinTickInterval))
	}
	for name, d := range map[string]time.Duration{
		EnvAutosaveInterval:  c.AutosaveInterval,
		EnvRecoveryInterval:  c.RecoveryInterval,
		EnvSnapshotCacheTTL:  c.SnapshotCacheTTL,
		EnvDBMaxConnIdle:     c.DBMaxConnIdleTime,
		EnvDBMaxConnLifetime: c.DBMaxConnLifetime,
		EnvEventLogRetention: c.EventLogRetention,
		EnvEventLogCleanup:   c.EventLogCleanupInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s: %s", name, ErrMsgIntervalNotPositive))
		}
	}
	for name, n := range map[string]int{
		EnvDBMaxConns:        c.DBMaxConns,
		EnvWorkerCount:       c.WorkerCount,
		EnvSnapshotCacheSize: c.SnapshotCacheSize,
	} {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("%s: %s", name, ErrMsgCountNotPositive))
		}
	}
	return errors.Join(errs...)
}

// getEnv retrieves an environment variable or returns a default value when
// it is unset or empty
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when
// it is unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping blank entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsDuration parses a Go duration such as "250ms" or "5m"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
