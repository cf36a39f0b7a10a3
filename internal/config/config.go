// Package config loads data-layer configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Config is the full data-layer configuration.
type Config struct {
	// BaseURL of the remote barn service.
	BaseURL string `yaml:"base_url" env:"BARN_API_URL"`
	// Token is the bearer token; the dev sentinel forces simulation.
	Token string `yaml:"token" env:"BARN_API_TOKEN"`
	// OrganizationID scopes every multi-tenant call.
	OrganizationID string `yaml:"organization_id" env:"BARN_ORGANIZATION_ID"`
	// Mode is live, simulated, or auto.
	Mode string `yaml:"mode" env:"BARN_MODE"`
	// DevMode is the build-time development signal consulted by auto mode.
	DevMode bool `yaml:"dev_mode" env:"BARN_DEV_MODE"`
	// Hybrid lets simulated no-match calls fall through to the live service.
	Hybrid bool `yaml:"hybrid" env:"BARN_HYBRID"`

	TimeoutSeconds    int     `yaml:"timeout_seconds" env:"BARN_TIMEOUT_SECONDS"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"BARN_REQUESTS_PER_SECOND"`
	// HealthInterval is a cron spec for connectivity probes.
	HealthInterval string `yaml:"health_interval" env:"BARN_HEALTH_INTERVAL"`

	Logging Logging `yaml:"logging"`
}

// Logging configures the structured logger.
type Logging struct {
	Level  string `yaml:"level" env:"BARN_LOG_LEVEL"`
	Format string `yaml:"format" env:"BARN_LOG_FORMAT"`
	Output string `yaml:"output" env:"BARN_LOG_OUTPUT"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Mode:           "auto",
		TimeoutSeconds: 30,
		HealthInterval: "@every 30s",
		Logging:        Logging{Level: "info", Format: "text"},
	}
}

// Load builds configuration from defaults, an optional YAML file, and the
// environment, in that precedence order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// A clean environment is fine; only real decode failures are errors.
	if err := envdecode.Decode(cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return cfg, nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
