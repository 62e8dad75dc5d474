package infra

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Ad network API
	APIBaseURL  string        `env:"AD_API_BASE_URL" envDefault:"http://localhost:5001/api"`
	HTTPTimeout time.Duration `env:"AD_HTTP_TIMEOUT" envDefault:"10s"`

	// Placement defaults
	AdFormat              string  `env:"AD_FORMAT" envDefault:"image"`
	AdMediaFormat         string  `env:"AD_MEDIA_FORMAT" envDefault:"regular"`
	AdID                  int64   `env:"AD_ID" envDefault:"-1"`
	ShowRewardProbability float64 `env:"SHOW_REWARD_PROBABILITY" envDefault:"0.2"`

	// Session cache (token + cached user profile)
	SessionFile string `env:"SESSION_FILE" envDefault:"session.json"`

	// Telemetry
	TelemetryQueueSize int `env:"TELEMETRY_QUEUE_SIZE" envDefault:"64"`

	// Kafka mirror sink
	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled bool   `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaTopic   string `env:"KAFKA_TELEMETRY_TOPIC" envDefault:"adnet.interactions"`

	// Ad server simulator
	SimPort      int    `env:"SIM_PORT" envDefault:"5001"`
	SimJWTSecret string `env:"SIM_JWT_SECRET" envDefault:"local-dev-only-secret"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for configuration that cannot produce a working widget.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("AD_API_BASE_URL must not be empty")
	}
	if c.ShowRewardProbability < 0 || c.ShowRewardProbability > 1 {
		return fmt.Errorf("SHOW_REWARD_PROBABILITY must be in [0,1], got %v", c.ShowRewardProbability)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("AD_HTTP_TIMEOUT must be positive, got %v", c.HTTPTimeout)
	}
	if c.TelemetryQueueSize <= 0 {
		return fmt.Errorf("TELEMETRY_QUEUE_SIZE must be positive, got %d", c.TelemetryQueueSize)
	}
	return nil
}
