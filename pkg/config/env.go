package config

const (
	EnvPrefix = "STYLIN"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	EnvAppEnv        = "STYLIN_APP_ENV"
	EnvPort          = "STYLIN_APP_PORT"
	EnvDBDSN         = "STYLIN_DB_DSN"
	EnvDBDriver      = "STYLIN_DB_DRIVER"
	EnvRedisURL      = "STYLIN_REDIS_URL"
	EnvSwipeH        = "STYLIN_SWIPE_HORIZONTAL_THRESHOLD"
	EnvSwipeV        = "STYLIN_SWIPE_VERTICAL_THRESHOLD"
	EnvEventsBrokers = "STYLIN_EVENTS_BROKERS"
	EnvSessionTTL    = "STYLIN_SESSION_IDLE_TTL"
)
