// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`
	Addr   string `envconfig:"ADDR" default:":3000" validate:"required"`

	// Both or neither; with both set the server speaks TLS only.
	TLSCert string `envconfig:"TLS_CERT" validate:"required_with=TLSKey"`
	TLSKey  string `envconfig:"TLS_KEY" validate:"required_with=TLSCert"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console" validate:"oneof=console json"`

	MaxBodySize    int64 `envconfig:"MAX_BODY_SIZE" default:"65536" validate:"gt=0"`
	StrictSecurity bool  `envconfig:"STRICT_SECURITY"`

	GenerateLength int `envconfig:"GENERATE_LENGTH" default:"12" validate:"min=4,max=128"`

	RateLimitPerSecond float64 `envconfig:"RATE_LIMIT_PER_SECOND" default:"5" validate:"gt=0"`
	RateLimitBurst     int     `envconfig:"RATE_LIMIT_BURST" default:"20" validate:"gt=0"`
	// Believe X-Forwarded-For / X-Real-IP for rate limiting. Only set behind a proxy that overwrites them.
	TrustProxy bool `envconfig:"TRUST_PROXY"`

	// REDIS_URL wins over the split fields. Neither set means in-process rate limiting.
	RedisURL      string `envconfig:"REDIS_URL"`
	RedisAddr     string `envconfig:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisUser     string `envconfig:"REDIS_USER"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s" validate:"gt=0"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s" validate:"gt=0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s" validate:"gt=0"`
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) UseTLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisAddr != ""
}
