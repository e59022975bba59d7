package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Service.Environment)
	assert.Equal(t, "8080", cfg.Service.APIPort)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, int64(33554432), cfg.Service.MaxLogBytes)
	assert.False(t, cfg.SQS.Enabled())
	assert.False(t, cfg.Archive.Enabled())
}

func TestLoad_NestedVariables(t *testing.T) {
	t.Setenv("SERVICE_ENVIRONMENT", "production")
	t.Setenv("STORAGE_DRIVER", "clickhouse")
	t.Setenv("CLICKHOUSE_HOST", "clickhouse")
	t.Setenv("SQS_QUEUE_URL", "http://localhost:9324/000000000000/combat-logs")
	t.Setenv("ARCHIVE_BUCKET", "raw-logs")
	t.Setenv("CONSUMER_BATCH_SIZE_MAX", "7")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Service.Environment)
	assert.Equal(t, DriverClickHouse, cfg.Storage.Driver)
	assert.Equal(t, "clickhouse", cfg.ClickHouse.Host)
	assert.True(t, cfg.SQS.Enabled())
	assert.True(t, cfg.Archive.Enabled())
	assert.Equal(t, 7, cfg.Consumer.BatchSizeMax)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Service:  Service{MaxLogBytes: 1024},
			Storage:  Storage{Driver: DriverMemory},
			SQLite:   SQLite{Path: "test.db"},
			Consumer: Consumer{BatchSizeMax: 1, BatchTimeoutSec: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "memory is valid", mutate: func(c *Config) {}},
		{name: "sqlite is valid", mutate: func(c *Config) { c.Storage.Driver = DriverSQLite }},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }, wantErr: "unsupported STORAGE_DRIVER"},
		{name: "clickhouse without host", mutate: func(c *Config) { c.Storage.Driver = DriverClickHouse }, wantErr: "CLICKHOUSE_HOST"},
		{name: "postgres without url", mutate: func(c *Config) { c.Storage.Driver = DriverPostgres }, wantErr: "POSTGRES_URL"},
		{name: "non-positive body limit", mutate: func(c *Config) { c.Service.MaxLogBytes = 0 }, wantErr: "SERVICE_MAX_LOG_BYTES"},
		{name: "non-positive batch size", mutate: func(c *Config) { c.Consumer.BatchSizeMax = 0 }, wantErr: "CONSUMER_BATCH_SIZE_MAX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
