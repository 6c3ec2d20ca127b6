// Package report renders the analytics report and the enriched data
// file.
package report

import (
	"fmt"
	"os"

	"github.com/mtanaka-dev/sales-analytics/pkg/analytics"
	"gopkg.in/yaml.v3"
)

// Settings controls report rendering. All fields are optional in the
// YAML file; zero values fall back to the defaults below.
type Settings struct {
	CurrencySymbol       string `yaml:"currency_symbol"`
	TopProducts          int    `yaml:"top_products"`
	TopCustomers         int    `yaml:"top_customers"`
	LowQuantityThreshold int64  `yaml:"low_quantity_threshold"`
}

// DefaultSettings returns the settings used when no YAML file is
// configured.
func DefaultSettings() Settings {
	return Settings{
		CurrencySymbol:       "₹",
		TopProducts:          analytics.DefaultTopProducts,
		TopCustomers:         analytics.DefaultTopProducts,
		LowQuantityThreshold: analytics.DefaultLowThreshold,
	}
}

// LoadSettings reads report settings from a YAML file, filling missing
// fields with defaults. An empty path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Settings{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if loaded.CurrencySymbol != "" {
		settings.CurrencySymbol = loaded.CurrencySymbol
	}
	if loaded.TopProducts > 0 {
		settings.TopProducts = loaded.TopProducts
	}
	if loaded.TopCustomers > 0 {
		settings.TopCustomers = loaded.TopCustomers
	}
	if loaded.LowQuantityThreshold > 0 {
		settings.LowQuantityThreshold = loaded.LowQuantityThreshold
	}

	return settings, nil
}
