package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa*/

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Retry policy; durations in milliseconds to match the wire defaults
	WebhookMaxAttempts         int   `mapstructure:"WEBHOOK_MAX_ATTEMPTS"`
	WebhookInitialRetryDelayMs int64 `mapstructure:"WEBHOOK_INITIAL_RETRY_DELAY_MS"`
	WebhookMaxRetryDelayMs     int64 `mapstructure:"WEBHOOK_MAX_RETRY_DELAY_MS"`
	WebhookTimeoutMs           int64 `mapstructure:"WEBHOOK_TIMEOUT_MS"`

	RetryWorkerIntervalMs int64 `mapstructure:"RETRY_WORKER_INTERVAL_MS"`

	// Optional pre-provisioned endpoints file, loaded at startup
	EndpointsFile string `mapstructure:"ENDPOINTS_FILE"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("WEBHOOK_MAX_ATTEMPTS", 5)
	viper.SetDefault("WEBHOOK_INITIAL_RETRY_DELAY_MS", 60_000)
	viper.SetDefault("WEBHOOK_MAX_RETRY_DELAY_MS", 3_600_000)
	viper.SetDefault("WEBHOOK_TIMEOUT_MS", 30_000)
	viper.SetDefault("RETRY_WORKER_INTERVAL_MS", 60_000)

	if err := viper.ReadInConfig(); err != nil {
		// The .env file is optional; env vars and defaults still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

// InitialRetryDelay returns the configured initial backoff as a duration
func (c *Config) InitialRetryDelay() time.Duration {
	return time.Duration(c.WebhookInitialRetryDelayMs) * time.Millisecond
}

// MaxRetryDelay returns the configured backoff ceiling as a duration
func (c *Config) MaxRetryDelay() time.Duration {
	return time.Duration(c.WebhookMaxRetryDelayMs) * time.Millisecond
}

// WebhookTimeout returns the per-attempt timeout as a duration
func (c *Config) WebhookTimeout() time.Duration {
	return time.Duration(c.WebhookTimeoutMs) * time.Millisecond
}

// RetryWorkerInterval returns the sweep cadence as a duration
func (c *Config) RetryWorkerInterval() time.Duration {
	return time.Duration(c.RetryWorkerIntervalMs) * time.Millisecond
}
