package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"sheetmerge/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Mongo  MongoConfig `validate:"required"`
	Ingest IngestConfig
}

// MongoConfig holds document-store connection settings
type MongoConfig struct {
	URI            string `validate:"required"`
	Database       string `validate:"required"`
	Collection     string `validate:"required"`
	ConnectTimeout time.Duration
}

// IngestConfig holds batch ingestion settings
type IngestConfig struct {
	// GraduationYearWindow is how many years before the current year a
	// graduation year may lie and still be accepted.
	GraduationYearWindow int `validate:"gt=0"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, errors.ConfigInvalid("MONGO_URI is required")
	}

	config := &Config{
		Mongo: MongoConfig{
			URI:            uri,
			Database:       getEnvOrDefault("MONGO_DB", "projettech"),
			Collection:     getEnvOrDefault("MONGO_COLLECTION", "etudiants"),
			ConnectTimeout: getEnvDurationOrDefault("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		Ingest: IngestConfig{
			GraduationYearWindow: getEnvIntOrDefault("GRADUATION_YEAR_WINDOW", 30),
		},
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
