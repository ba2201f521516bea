package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				// Verify some key fields are populated
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "ranker_db", cfg.Database.Database)
				assert.True(t, cfg.RabbitMQ.Enabled)
				assert.Equal(t, "ranking_events", cfg.RabbitMQ.Exchange.Name)
				assert.Equal(t, "cv-ranker", cfg.App.Name)
				assert.Equal(t, 8, cfg.Pipeline.MaxConcurrentCVs)
				assert.True(t, cfg.Pipeline.CleanupFiles)
				assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Store:  StoreConfig{Driver: StoreDriverPostgres},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "ranker_db",
		},
		RabbitMQ: RabbitMQConfig{
			Enabled: true,
			Host:    "localhost",
			Port:    5672,
			Exchange: ExchangeConfig{
				Name: "ranking_events",
			},
		},
		Pipeline: PipelineConfig{MaxConcurrentCVs: 8},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		errString string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:      "invalid server port - too low",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "invalid server port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "unknown store driver",
			mutate:    func(c *Config) { c.Store.Driver = "redis" },
			wantErr:   true,
			errString: "invalid store driver",
		},
		{
			name: "memory driver needs no database",
			mutate: func(c *Config) {
				c.Store.Driver = StoreDriverMemory
				c.Database = DatabaseConfig{}
			},
		},
		{
			name:      "postgres driver requires database host",
			mutate:    func(c *Config) { c.Database.Host = "" },
			wantErr:   true,
			errString: "database host is required",
		},
		{
			name:      "postgres driver requires database name",
			mutate:    func(c *Config) { c.Database.Database = "" },
			wantErr:   true,
			errString: "database name is required",
		},
		{
			name:      "invalid database port",
			mutate:    func(c *Config) { c.Database.Port = 0 },
			wantErr:   true,
			errString: "invalid database port",
		},
		{
			name:      "enabled rabbitmq requires host",
			mutate:    func(c *Config) { c.RabbitMQ.Host = "" },
			wantErr:   true,
			errString: "rabbitmq host is required",
		},
		{
			name:      "enabled rabbitmq requires exchange name",
			mutate:    func(c *Config) { c.RabbitMQ.Exchange.Name = "" },
			wantErr:   true,
			errString: "rabbitmq exchange name is required",
		},
		{
			name: "disabled rabbitmq skips broker validation",
			mutate: func(c *Config) {
				c.RabbitMQ = RabbitMQConfig{Enabled: false}
			},
		},
		{
			name:      "negative concurrency",
			mutate:    func(c *Config) { c.Pipeline.MaxConcurrentCVs = -1 },
			wantErr:   true,
			errString: "max_concurrent_cvs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
