package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Store      StoreConfig      `mapstructure:"store"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Permission PermissionConfig `mapstructure:"permission"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // "development" or "production"
}

// StoreConfig holds associative-store configuration
type StoreConfig struct {
	Type       string `mapstructure:"type"`        // "memory" or "valkey"
	ValkeyAddr string `mapstructure:"valkey_addr"` // Valkey address (if type=valkey), e.g., "localhost:6379"
	KeyPrefix  string `mapstructure:"key_prefix"`  // Namespace prefix for every key
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"` // Shared secret the host signs bearer tokens with
	Disabled  bool   `mapstructure:"disabled"`   // Skip token checks (local development only)
}

// PermissionConfig holds external permission-service configuration
type PermissionConfig struct {
	BaseURL        string `mapstructure:"base_url"`        // Empty disables project-permission lookups
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // Per-lookup HTTP timeout
}

// LogConfig holds logging configuration
type LogConfig struct {
	Format string `mapstructure:"format"` // "json" or "text"
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults for local development
	v.SetDefault("server.port", 8470)
	v.SetDefault("server.mode", "development")
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.valkey_addr", "localhost:6379")
	v.SetDefault("store.key_prefix", "issuetpl")
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.disabled", false)
	v.SetDefault("permission.base_url", "")
	v.SetDefault("permission.timeout_seconds", 5)
	v.SetDefault("log.format", "text")
	v.SetDefault("log.level", "info")

	// Read from config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/issuetpl/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, using defaults
	}

	// Environment variables override
	v.SetEnvPrefix("ITPL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
