package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Storage drivers
const (
	DriverMemory     = "memory"
	DriverClickHouse = "clickhouse"
	DriverPostgres   = "postgres"
	DriverSQLite     = "sqlite"
)

// Config groups are embedded without a tag so envconfig reads each
// field's full variable name (SERVICE_ENVIRONMENT, CLICKHOUSE_HOST, ...)
type Config struct {
	Service
	Storage
	ClickHouse
	Postgres
	SQLite
	SQS
	Archive
	Consumer
}

type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
	// MaxLogBytes caps the size of an ingested combat log body
	MaxLogBytes int64 `envconfig:"SERVICE_MAX_LOG_BYTES" default:"33554432"`
}

type Storage struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"memory"`
}

type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST"`
	Port            string `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	Database        string `envconfig:"CLICKHOUSE_DB" default:"default"`
	User            string `envconfig:"CLICKHOUSE_USER" default:""`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

type Postgres struct {
	URL      string `envconfig:"POSTGRES_URL"`
	MaxConns int32  `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
}

type SQLite struct {
	Path string `envconfig:"SQLITE_PATH" default:"combatlog.db"`
}

type SQS struct {
	Endpoint string `envconfig:"SQS_ENDPOINT"`
	QueueURL string `envconfig:"SQS_QUEUE_URL"`
	Region   string `envconfig:"SQS_REGION" default:"eu-central-1"`
}

// Enabled reports whether the async ingestion queue is configured
func (s SQS) Enabled() bool {
	return s.QueueURL != ""
}

type Archive struct {
	Bucket       string `envconfig:"ARCHIVE_BUCKET"`
	Prefix       string `envconfig:"ARCHIVE_PREFIX" default:"combat-logs"`
	Region       string `envconfig:"ARCHIVE_REGION" default:"eu-central-1"`
	Endpoint     string `envconfig:"ARCHIVE_ENDPOINT"`
	UsePathStyle bool   `envconfig:"ARCHIVE_USE_PATH_STYLE" default:"false"`
	TimeoutSec   int    `envconfig:"ARCHIVE_TIMEOUT_SEC" default:"10"`
}

// Enabled reports whether raw logs should be archived to S3
func (a Archive) Enabled() bool {
	return a.Bucket != ""
}

type Consumer struct {
	BatchSizeMax    int    `envconfig:"CONSUMER_BATCH_SIZE_MAX" default:"25"`
	BatchTimeoutSec int    `envconfig:"CONSUMER_BATCH_TIMEOUT_SEC" default:"5"`
	HealthCheckPort string `envconfig:"CONSUMER_HEALTH_CHECK_PORT" default:"8081"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings that depend on each other
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverClickHouse:
		if c.ClickHouse.Host == "" {
			errs = append(errs, errors.New("CLICKHOUSE_HOST is required for the clickhouse driver"))
		}
	case DriverPostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, errors.New("POSTGRES_URL is required for the postgres driver"))
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE_DRIVER %q (supported: memory, clickhouse, postgres, sqlite)", c.Storage.Driver))
	}

	if c.Service.MaxLogBytes <= 0 {
		errs = append(errs, errors.New("SERVICE_MAX_LOG_BYTES must be positive"))
	}
	if c.Consumer.BatchSizeMax <= 0 {
		errs = append(errs, errors.New("CONSUMER_BATCH_SIZE_MAX must be positive"))
	}
	if c.Consumer.BatchTimeoutSec <= 0 {
		errs = append(errs, errors.New("CONSUMER_BATCH_TIMEOUT_SEC must be positive"))
	}

	return errors.Join(errs...)
}
