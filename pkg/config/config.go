// Package config provides configuration management for the sales
// analytics pipeline. It loads configuration from environment variables
// and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Sales   SalesConfig
	Catalog CatalogConfig
	Debug   bool
}

// SalesConfig represents input/output configuration for the pipeline.
type SalesConfig struct {
	InputPath    string
	OutputDir    string
	DBPath       string
	SettingsPath string
}

// CatalogConfig represents product catalog API configuration.
type CatalogConfig struct {
	APIURL         string
	TimeoutSeconds int64
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	// Load .env file
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	timeout, err := parseInt64Env("CATALOG_API_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_API_TIMEOUT_SECONDS: %w", err)
	}

	config := &Config{
		Sales: SalesConfig{
			InputPath:    getEnvOrDefault("SALES_INPUT_PATH", "data/sales_data.txt"),
			OutputDir:    getEnvOrDefault("SALES_OUTPUT_DIR", "output"),
			DBPath:       os.Getenv("SALES_DB_PATH"),
			SettingsPath: os.Getenv("REPORT_SETTINGS_PATH"),
		},
		Catalog: CatalogConfig{
			APIURL:         getEnvOrDefault("CATALOG_API_URL", "https://dummyjson.com"),
			TimeoutSeconds: timeout,
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "sales":
			switch path[1] {
			case "inputPath":
				value = c.Sales.InputPath
			case "outputDir":
				value = c.Sales.OutputDir
			case "dbPath":
				value = c.Sales.DBPath
			case "settingsPath":
				value = c.Sales.SettingsPath
			}
		case "catalog":
			switch path[1] {
			case "apiUrl":
				value = c.Catalog.APIURL
			case "timeoutSeconds":
				if c.Catalog.TimeoutSeconds > 0 {
					value = "set"
				}
			}
		}

		if value == "" {
			missing = append(missing, joinPath(path))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseInt64Env parses an int64 from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseInt64Env(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}

// joinPath joins a path slice into a dot-separated string.
func joinPath(path []string) string {
	result := ""
	for i, p := range path {
		if i > 0 {
			result += "."
		}
		result += p
	}
	return result
}
