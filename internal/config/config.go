package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the Hubgate configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Hub    HubConfig    `mapstructure:"hub"`
	API    APIConfig    `mapstructure:"api"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// HubConfig represents hub database configuration
type HubConfig struct {
	DatabaseURL string `mapstructure:"database_url"`
}

// APIConfig represents API behavior configuration
type APIConfig struct {
	MaxLimit   int  `mapstructure:"max_limit"`
	EnableDocs bool `mapstructure:"enable_docs"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Address returns the host:port pair the server binds to
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load loads the configuration from hubgate.yml or hubgate.yaml, with
// HUBGATE_* environment variables taking precedence over the file
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8081)
	// Registered empty so the env override is visible to Unmarshal
	v.SetDefault("hub.database_url", "")
	v.SetDefault("api.max_limit", 100)
	v.SetDefault("api.enable_docs", false)
	v.SetDefault("log.level", "info")

	// Set config name and paths
	v.SetConfigName("hubgate")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/hubgate")

	// Enable environment variable support (HUBGATE_SERVER_PORT etc.)
	v.SetEnvPrefix("HUBGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", cfg.Server.Port)
	}
	if cfg.API.MaxLimit < 1 {
		return fmt.Errorf("api.max_limit must be at least 1, got: %d", cfg.API.MaxLimit)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got: %s", cfg.Log.Level)
	}
	return nil
}
