package config

import (
	"os"
	"strconv"

	"coordlab/domain/experiment"
	"coordlab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Batch   BatchConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// ServerConfig holds report viewer settings
type ServerConfig struct {
	Port string
}

// BatchConfig holds batch execution settings
type BatchConfig struct {
	Template string
	Seed     int64
	Workers  int64
}

// OutputConfig holds report output paths; empty values skip that output
type OutputConfig struct {
	ReportJSON     string
	ReportXLSX     string
	ReportMarkdown string
}

// LoggingConfig holds log verbosity settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Batch: BatchConfig{
			Template: getEnvOrDefault("BATCH_TEMPLATE", experiment.TemplateBandwidthSweep),
			Seed:     getEnvInt64OrDefault("BATCH_SEED", 42),
			Workers:  getEnvInt64OrDefault("BATCH_WORKERS", 1),
		},
		Output: OutputConfig{
			ReportJSON:     getEnvOrDefault("REPORT_JSON", "report.json"),
			ReportXLSX:     getEnvOrDefault("REPORT_XLSX", ""),
			ReportMarkdown: getEnvOrDefault("REPORT_MD", ""),
		},
		Logging: LoggingConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "INFO"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if experiment.Template(config.Batch.Template) == nil {
		return errors.ConfigInvalid("unknown BATCH_TEMPLATE " + config.Batch.Template)
	}
	if config.Batch.Workers < 1 {
		return errors.ConfigInvalid("BATCH_WORKERS must be >= 1")
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
