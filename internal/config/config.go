package config

import (
	"os"
	"runtime"
	"strconv"

	"setlstat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Analysis AnalysisConfig
}

// DatabaseConfig holds database connection settings. The database is
// optional: when URL is empty the application runs on in-memory data.
type DatabaseConfig struct {
	URL     string
	Host    string
	Port    int
	User    string
	Name    string
	SSLMode string
}

// AnalysisConfig holds the knobs of the statistical engine.
type AnalysisConfig struct {
	// AlphaLevel is the significance threshold for every test.
	AlphaLevel float64
	// TestRepeats is how many times each significance test is repeated
	// against freshly generated expected data. Must be above 1 or the
	// repeat tallies are meaningless.
	TestRepeats int
	// NormalityAlpha is the threshold for the normality pre-check.
	NormalityAlpha float64
	// RandomSeed seeds the analysis RNG streams when nonzero; zero means
	// seed from the clock.
	RandomSeed int64
	// MaxParallel caps how many analyses a batch run executes at once.
	MaxParallel int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: loadDatabaseConfig(),
		Analysis: loadAnalysisConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:     getEnvOrDefault("DATABASE_URL", ""),
		Host:    getEnvOrDefault("DB_HOST", ""),
		Port:    getEnvIntOrDefault("DB_PORT", 5432),
		User:    getEnvOrDefault("DB_USER", ""),
		Name:    getEnvOrDefault("DB_NAME", ""),
		SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
	}
}

func loadAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		AlphaLevel:     getEnvFloatOrDefault("ALPHA_LEVEL", 0.05),
		TestRepeats:    getEnvIntOrDefault("TEST_REPEATS", 20),
		NormalityAlpha: getEnvFloatOrDefault("NORMALITY_ALPHA", 0.05),
		RandomSeed:     getEnvInt64OrDefault("RANDOM_SEED", 0),
		MaxParallel:    getEnvIntOrDefault("MAX_PARALLEL", runtime.NumCPU()),
	}
}

func validateConfig(config *Config) error {
	a := config.Analysis
	if a.AlphaLevel <= 0 || a.AlphaLevel >= 1 {
		return errors.ConfigInvalid("ALPHA_LEVEL must be strictly between 0 and 1")
	}
	if a.NormalityAlpha <= 0 || a.NormalityAlpha >= 1 {
		return errors.ConfigInvalid("NORMALITY_ALPHA must be strictly between 0 and 1")
	}
	if a.TestRepeats <= 1 {
		return errors.ConfigInvalid("TEST_REPEATS must be greater than 1")
	}
	if a.MaxParallel < 1 {
		return errors.ConfigInvalid("MAX_PARALLEL must be at least 1")
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
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
