package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Swipe    SwipeConfig
	Checkout CheckoutConfig
	Events   EventsConfig
	Sessions SessionsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Swipe.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STYLIN_APP_ENV" required:"true"`
	Port         string `envconfig:"STYLIN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STYLIN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STYLIN_LOG_WARN_STACK" default:"false"`

	CORSOrigins     []string      `envconfig:"STYLIN_CORS_ORIGINS"`
	ShutdownTimeout time.Duration `envconfig:"STYLIN_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig points at the optional catalog database. An empty DSN means the
// embedded seed catalog is served instead.
type DBConfig struct {
	DSN         string `envconfig:"STYLIN_DB_DSN"`
	Driver      string `envconfig:"STYLIN_DB_DRIVER" default:"postgres"`
	AutoMigrate bool   `envconfig:"STYLIN_DB_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"STYLIN_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STYLIN_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STYLIN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STYLIN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Enabled reports whether a catalog database is configured.
func (db DBConfig) Enabled() bool {
	return strings.TrimSpace(db.DSN) != ""
}

func (db DBConfig) validate() error {
	switch strings.ToLower(db.Driver) {
	case DBDriverPostgres, DBDriverSQLite:
		return nil
	}
	return fmt.Errorf("%s must be one of %q or %q", EnvDBDriver, DBDriverPostgres, DBDriverSQLite)
}

// RedisConfig is optional; without an address idempotent order placement is disabled.
type RedisConfig struct {
	URL          string        `envconfig:"STYLIN_REDIS_URL"`
	Address      string        `envconfig:"STYLIN_REDIS_ADDR"`
	Password     string        `envconfig:"STYLIN_REDIS_PASSWORD"`
	DB           int           `envconfig:"STYLIN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STYLIN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STYLIN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STYLIN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STYLIN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STYLIN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// SwipeConfig carries the discovery deck gesture thresholds, in points.
type SwipeConfig struct {
	HorizontalThreshold float64 `envconfig:"STYLIN_SWIPE_HORIZONTAL_THRESHOLD" default:"120"`
	VerticalThreshold   float64 `envconfig:"STYLIN_SWIPE_VERTICAL_THRESHOLD" default:"100"`
	TossDamping         float64 `envconfig:"STYLIN_SWIPE_TOSS_DAMPING" default:"0.1"`
	ScreenWidth         float64 `envconfig:"STYLIN_SWIPE_SCREEN_WIDTH" default:"390"`
	TapSlop             float64 `envconfig:"STYLIN_SWIPE_TAP_SLOP" default:"10"`
}

func (s SwipeConfig) validate() error {
	if s.HorizontalThreshold <= 0 || s.VerticalThreshold <= 0 || s.ScreenWidth <= 0 {
		return fmt.Errorf("swipe thresholds and screen width must be positive")
	}
	if s.TossDamping < 0 || s.TapSlop < 0 {
		return fmt.Errorf("swipe toss damping and tap slop must be non-negative")
	}
	return nil
}

type CheckoutConfig struct {
	TaxRate  string `envconfig:"STYLIN_CHECKOUT_TAX_RATE" default:"0.05"`
	Currency string `envconfig:"STYLIN_CHECKOUT_CURRENCY" default:"BDT"`
}

// EventsConfig configures the Kafka domain event feed. No brokers means events are dropped.
type EventsConfig struct {
	Brokers  []string      `envconfig:"STYLIN_EVENTS_BROKERS"`
	Topic    string        `envconfig:"STYLIN_EVENTS_TOPIC" default:"stylin.shopper-events"`
	Timeout  time.Duration `envconfig:"STYLIN_EVENTS_WRITE_TIMEOUT" default:"5s"`
	ClientID string        `envconfig:"STYLIN_EVENTS_CLIENT_ID" default:"stylin-api"`
}

// Enabled reports whether at least one broker is configured.
func (e EventsConfig) Enabled() bool {
	return len(e.Brokers) > 0
}

type SessionsConfig struct {
	IdleTTL       time.Duration `envconfig:"STYLIN_SESSION_IDLE_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"STYLIN_SESSION_SWEEP_INTERVAL" default:"10m"`
}
