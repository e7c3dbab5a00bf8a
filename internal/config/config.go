// Package config defines the service configuration and its loaders.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/advancehq/salary-advance/pkg/constants"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration holds all runtime configuration for the advance service.
type Configuration struct {
	Server    ServerConfig    `yaml:"server,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Cache     CacheConfig     `yaml:"cache,omitempty"`
	RateLimit RateLimitConfig `yaml:"rateLimit,omitempty" mapstructure:"ratelimit"`
}

// ServerConfig holds HTTP listener parameters.
type ServerConfig struct {
	Address                string `yaml:"address,omitempty"`
	ReadTimeoutSeconds     int    `yaml:"readTimeoutSeconds,omitempty" mapstructure:"readtimeoutseconds"`
	WriteTimeoutSeconds    int    `yaml:"writeTimeoutSeconds,omitempty" mapstructure:"writetimeoutseconds"`
	IdleTimeoutSeconds     int    `yaml:"idleTimeoutSeconds,omitempty" mapstructure:"idletimeoutseconds"`
	ShutdownTimeoutSeconds int    `yaml:"shutdownTimeoutSeconds,omitempty" mapstructure:"shutdowntimeoutseconds"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputfile"` // optional file output
}

// CacheConfig enables the optional redis read cache for loan lookups.
// The in-memory ledger stays authoritative; an empty address disables
// caching entirely.
type CacheConfig struct {
	RedisAddress string `yaml:"redisAddress,omitempty" mapstructure:"redisaddress"`
	TTLSeconds   int    `yaml:"ttlSeconds,omitempty" mapstructure:"ttlseconds"`
}

// RateLimitConfig gates the per-IP token bucket on the compute endpoint.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled,omitempty"`
	RequestsPerMinute int  `yaml:"requestsPerMinute,omitempty" mapstructure:"requestsperminute"`
}

// LoadConfiguration loads the YAML configuration at the given path via
// viper, honoring environment overrides. A missing file yields defaults
// without error.
func LoadConfiguration(configPath string) (*Configuration, error) {
	var configuration Configuration

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				configuration.ApplyDefaults()
				return &configuration, nil
			}
			return nil, fmt.Errorf("error reading config file, %s", err)
		}

		viper.SetConfigFile(configPath)
		viper.SetConfigType("yml")
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
		if err := viper.Unmarshal(&configuration); err != nil {
			return nil, fmt.Errorf("unable to decode into struct, %s", err)
		}
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ParseConfiguration decodes raw YAML bytes, for callers that already hold
// the config contents.
func ParseConfiguration(data []byte) (*Configuration, error) {
	var configuration Configuration
	if err := yaml.Unmarshal(data, &configuration); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills unset fields with service defaults.
func (conf *Configuration) ApplyDefaults() {
	if conf.Server.Address == "" {
		conf.Server.Address = constants.DefaultServerAddress
	}
	if conf.Server.ReadTimeoutSeconds <= 0 {
		conf.Server.ReadTimeoutSeconds = constants.DefaultReadTimeoutSeconds
	}
	if conf.Server.WriteTimeoutSeconds <= 0 {
		conf.Server.WriteTimeoutSeconds = constants.DefaultWriteTimeoutSeconds
	}
	if conf.Server.IdleTimeoutSeconds <= 0 {
		conf.Server.IdleTimeoutSeconds = constants.DefaultIdleTimeoutSeconds
	}
	if conf.Server.ShutdownTimeoutSeconds <= 0 {
		conf.Server.ShutdownTimeoutSeconds = constants.DefaultShutdownTimeoutSeconds
	}
	if conf.RateLimit.Enabled && conf.RateLimit.RequestsPerMinute <= 0 {
		conf.RateLimit.RequestsPerMinute = 60
	}
}

// ValidateConfiguration checks for questionable settings and returns
// human-readable warnings. None of them prevent startup.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	switch conf.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown logging level %q; falling back to info", conf.Logging.Level))
	}
	switch conf.Logging.Format {
	case "", "json", "console":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown logging format %q; falling back to json", conf.Logging.Format))
	}
	if conf.Cache.RedisAddress == "" && conf.Cache.TTLSeconds > 0 {
		warnings = append(warnings, "cache.ttlSeconds is set but cache.redisAddress is empty; caching is disabled")
	}

	return warnings
}

// ReadTimeout returns the read timeout as a duration.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration.
func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// IdleTimeout returns the idle timeout as a duration.
func (c ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown grace period.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// CacheTTL returns the cache entry lifetime; zero means no expiry.
func (c CacheConfig) CacheTTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}
