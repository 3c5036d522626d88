package config

import (
	"os"
	"runtime"
	"strconv"

	"goassoc/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	Database DatabaseConfig
	Ops      OpsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AnalysisConfig holds pipeline tuning settings
type AnalysisConfig struct {
	// BatchSize is the number of association tests dispatched per batch.
	BatchSize int
	// Workers bounds item-level parallelism within a batch.
	Workers int
	// RareShareThreshold folds categories rarer than this share into "Other".
	RareShareThreshold float64
}

// DatabaseConfig holds the optional results-archive connection. An empty
// URL disables archiving entirely.
type DatabaseConfig struct {
	URL string
}

// OpsConfig holds the operational endpoint settings (health, pprof)
type OpsConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Analysis: AnalysisConfig{
			BatchSize:          getEnvIntOrDefault("BATCH_SIZE", 20),
			Workers:            getEnvIntOrDefault("WORKER_COUNT", runtime.NumCPU()),
			RareShareThreshold: getEnvFloatOrDefault("RARE_SHARE_THRESHOLD", 0.05),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Ops: OpsConfig{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Analysis.BatchSize <= 0 {
		return errors.ConfigInvalid("BATCH_SIZE must be positive")
	}
	if config.Analysis.Workers <= 0 {
		return errors.ConfigInvalid("WORKER_COUNT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
