package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5001/api", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "image", cfg.AdFormat)
	assert.Equal(t, int64(-1), cfg.AdID)
	assert.Equal(t, 0.2, cfg.ShowRewardProbability)
	assert.Equal(t, 64, cfg.TelemetryQueueSize)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, 5001, cfg.SimPort)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("AD_API_BASE_URL", "https://ads.example.com/api")
	t.Setenv("AD_FORMAT", "video")
	t.Setenv("AD_ID", "101")
	t.Setenv("SHOW_REWARD_PROBABILITY", "1")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("AD_HTTP_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://ads.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, "video", cfg.AdFormat)
	assert.Equal(t, int64(101), cfg.AdID)
	assert.Equal(t, 1.0, cfg.ShowRewardProbability)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty base URL",
			mutate:  func(c *Config) { c.APIBaseURL = "" },
			wantErr: "AD_API_BASE_URL",
		},
		{
			name:    "probability above one",
			mutate:  func(c *Config) { c.ShowRewardProbability = 1.5 },
			wantErr: "SHOW_REWARD_PROBABILITY",
		},
		{
			name:    "negative probability",
			mutate:  func(c *Config) { c.ShowRewardProbability = -0.1 },
			wantErr: "SHOW_REWARD_PROBABILITY",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.HTTPTimeout = 0 },
			wantErr: "AD_HTTP_TIMEOUT",
		},
		{
			name:    "zero queue size",
			mutate:  func(c *Config) { c.TelemetryQueueSize = 0 },
			wantErr: "TELEMETRY_QUEUE_SIZE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
