// Package config provides configuration management for the web server.
package config

import (
	"fmt"
	"time"

	"github.com/indyteo/WebServerAPI/observability"
)

// Session store kinds.
const (
	SessionStoreMemory = "memory"
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"
)

// Config is the root configuration of the web server.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Sessions  SessionsConfig  `yaml:"sessions"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string   `yaml:"address"`
	ReadTimeout     Duration `yaml:"readTimeout"`
	WriteTimeout    Duration `yaml:"writeTimeout"`
	IdleTimeout     Duration `yaml:"idleTimeout"`
	ShutdownTimeout Duration `yaml:"shutdownTimeout"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ToLogConfig converts to the observability log configuration.
func (c LoggingConfig) ToLogConfig() observability.LogConfig {
	return observability.LogConfig{
		Level:  c.Level,
		Format: c.Format,
		Output: c.Output,
	}
}

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	Enabled          bool     `yaml:"enabled"`
	AllowOrigins     []string `yaml:"allowOrigins"`
	AllowMethods     []string `yaml:"allowMethods"`
	AllowHeaders     []string `yaml:"allowHeaders"`
	ExposeHeaders    []string `yaml:"exposeHeaders"`
	AllowCredentials bool     `yaml:"allowCredentials"`
	MaxAge           int      `yaml:"maxAge"`
}

// RateLimitConfig configures the rate-limit middleware.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
	PerClient         bool    `yaml:"perClient"`
}

// SessionsConfig configures session persistence.
type SessionsConfig struct {
	Store        string   `yaml:"store"`
	Directory    string   `yaml:"directory"`
	RedisAddress string   `yaml:"redisAddress"`
	Timeout      Duration `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			IdleTimeout:     Duration(2 * time.Minute),
			ShutdownTimeout: Duration(15 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Sessions: SessionsConfig{
			Store:   SessionStoreMemory,
			Timeout: Duration(time.Hour),
		},
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts must not be negative")
	}

	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	switch c.Logging.Output {
	case "", "stdout", "stderr":
	default:
		return fmt.Errorf("logging.output must be stdout or stderr, got %q", c.Logging.Output)
	}

	switch c.Sessions.Store {
	case "", SessionStoreMemory:
	case SessionStoreFile:
		if c.Sessions.Directory == "" {
			return fmt.Errorf("sessions.directory is required for the file store")
		}
	case SessionStoreRedis:
		if c.Sessions.RedisAddress == "" {
			return fmt.Errorf("sessions.redisAddress is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown sessions.store %q", c.Sessions.Store)
	}
	if c.Sessions.Timeout < 0 {
		return fmt.Errorf("sessions.timeout must not be negative")
	}

	if c.CORS.Enabled && len(c.CORS.AllowOrigins) == 0 {
		return fmt.Errorf("cors.allowOrigins is required when cors is enabled")
	}
	if c.CORS.MaxAge < 0 {
		return fmt.Errorf("cors.maxAge must not be negative")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("rateLimit.requestsPerSecond must be positive")
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("rateLimit.burst must be positive")
		}
	}

	return nil
}

// applyDefaults fills zero values with the defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = defaults.Server.WriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = defaults.Server.IdleTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if c.Logging.Output == "" {
		c.Logging.Output = defaults.Logging.Output
	}
	if c.Sessions.Store == "" {
		c.Sessions.Store = defaults.Sessions.Store
	}
	if c.Sessions.Timeout == 0 {
		c.Sessions.Timeout = defaults.Sessions.Timeout
	}
}
