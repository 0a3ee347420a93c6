package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DefaultDatasetFile, cfg.Dataset.Path)
	assert.Equal(t, DefaultTopDeliverers, cfg.Dataset.TopDeliverers)
	assert.Equal(t, DefaultCities, cfg.Dataset.Cities)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "missing dataset path",
			mutate:  func(c *Config) { c.Dataset.Path = "" },
			wantErr: "dataset path",
		},
		{
			name:    "non-positive top deliverers",
			mutate:  func(c *Config) { c.Dataset.TopDeliverers = -1 },
			wantErr: "top deliverers",
		},
		{
			name:    "no allowed origins",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: "allowed origin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_FillsCityDefault(t *testing.T) {
	cfg := Default()
	cfg.Dataset.Cities = nil

	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultCities, cfg.Dataset.Cities)
}

func TestValidate_ForcesJSONLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestMergeConfigs(t *testing.T) {
	file := *Default()
	file.Server.Port = 9090
	file.Dataset.Path = "data/deliveries.xlsx"
	file.Dataset.Sheet = "Orders"

	var env Config
	env.Server.ReadTimeout = 5 * time.Second

	merged := mergeConfigs(file, env)

	assert.Equal(t, 9090, merged.Server.Port)
	assert.Equal(t, "data/deliveries.xlsx", merged.Dataset.Path)
	assert.Equal(t, "Orders", merged.Dataset.Sheet)
	// Env-provided values win over the file.
	assert.Equal(t, 5*time.Second, merged.Server.ReadTimeout)
}
