package config

import "time"

// Environment variable names
const (
	EnvPort              = "PORT"
	EnvAPIKey            = "API_KEY"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
	EnvLogDir            = "LOG_DIR"
	EnvEnvironment       = "ENVIRONMENT"
	EnvDBHost            = "DB_HOST"
	EnvDBPort            = "DB_PORT"
	EnvDBUser            = "DB_USER"
	EnvDBPassword        = "DB_PASSWORD"
	EnvDBName            = "DB_NAME"
	EnvDBMaxConns        = "DB_MAX_CONNS"
	EnvDBMaxConnIdle     = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime = "DB_MAX_CONN_LIFETIME"
	EnvCatalogPath       = "CATALOG_PATH"
	EnvTickInterval      = "TICK_INTERVAL"
	EnvAutosaveInterval  = "AUTOSAVE_INTERVAL"
	EnvRecoveryInterval  = "RECOVERY_INTERVAL"
	EnvWorkerCount       = "WORKER_COUNT"
	EnvSnapshotCacheSize = "SNAPSHOT_CACHE_SIZE"
	EnvSnapshotCacheTTL  = "SNAPSHOT_CACHE_TTL"
	EnvEventLogRetention = "EVENT_LOG_RETENTION"
	EnvEventLogCleanup   = "EVENT_LOG_CLEANUP_INTERVAL"
	EnvTrustedProxies    = "TRUSTED_PROXIES"
)

// Defaults
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultLogDir            = "logs"
	DefaultEnvironment       = "dev"
	DefaultDBHost            = "localhost"
	DefaultDBPort            = "5432"
	DefaultDBUser            = "postgres"
	DefaultDBPassword        = "postgres"
	DefaultDBName            = "ummorpg"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdle     = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultCatalogPath       = "configs/catalog.json"
	DefaultTickInterval      = 100 * time.Millisecond
	DefaultAutosaveInterval  = 5 * time.Minute
	DefaultRecoveryInterval  = time.Second
	DefaultWorkerCount       = 2
	DefaultSnapshotCacheSize = 1000
	DefaultSnapshotCacheTTL  = 10 * time.Minute
	DefaultEventLogRetention = 30 * 24 * time.Hour
	DefaultEventLogCleanup   = time.Hour
)

// Limits
const (
	MinTickInterval = 10 * time.Millisecond
	MaxPort         = 65535
)

// Error messages
const (
	ErrMsgAPIKeyRequired      = "API_KEY environment variable must be set for security"
	ErrMsgInvalidPort         = "invalid PORT value"
	ErrMsgInvalidLogFormat    = "LOG_FORMAT must be json or text"
	ErrMsgTickTooShort        = "TICK_INTERVAL is below the minimum"
	ErrMsgIntervalNotPositive = "interval must be positive"
	ErrMsgCountNotPositive    = "count must be positive"
)
