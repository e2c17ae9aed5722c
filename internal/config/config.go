package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tariffscope/internal/tariff"
)

// Anomaly policies for readings with negative or non-finite usage values
const (
	AnomalyWarn   = "warn"   // include in totals, report a warning
	AnomalyReject = "reject" // abort the analysis
)

// Config holds the application configuration
type Config struct {
	Rates         RatesConfig `yaml:"rates,omitempty"`
	MQTT          MQTTConfig  `yaml:"mqtt,omitempty"`
	AnomalyPolicy string      `yaml:"anomaly_policy,omitempty"` // "warn" (default) or "reject"
}

// RatesConfig holds the published tariff prices in $ per kWh
type RatesConfig struct {
	WinterPeak    float64 `yaml:"winter_peak,omitempty"`
	WinterOffPeak float64 `yaml:"winter_off_peak,omitempty"`
	Summer        float64 `yaml:"summer,omitempty"`
	Flat          float64 `yaml:"flat,omitempty"`
}

// MQTTConfig holds the broker settings for publishing analysis summaries
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // e.g., "homeassistant.local:1883"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // default: "tariffscope"
}

// Default rates: the utility's published residential TOU and fixed-rate
// prices at the time of writing. Override in config.yaml when they change.
const (
	defaultWinterPeakRate    = 0.34634
	defaultWinterOffPeakRate = 0.17703
	defaultSummerRate        = 0.12198
	defaultFlatRate          = 0.17703
)

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(configPath string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetRateTable returns the configured rate table, filling unset prices
// with the published defaults
func (c *Config) GetRateTable() tariff.RateTable {
	table := tariff.RateTable{
		PerKWh: map[tariff.Period]float64{
			tariff.WinterPeak:    defaultWinterPeakRate,
			tariff.WinterOffPeak: defaultWinterOffPeakRate,
			tariff.Summer:        defaultSummerRate,
		},
		FlatRate: defaultFlatRate,
	}

	if c.Rates.WinterPeak > 0 {
		table.PerKWh[tariff.WinterPeak] = c.Rates.WinterPeak
	}
	if c.Rates.WinterOffPeak > 0 {
		table.PerKWh[tariff.WinterOffPeak] = c.Rates.WinterOffPeak
	}
	if c.Rates.Summer > 0 {
		table.PerKWh[tariff.Summer] = c.Rates.Summer
	}
	if c.Rates.Flat > 0 {
		table.FlatRate = c.Rates.Flat
	}

	return table
}

// GetAnomalyPolicy returns the configured anomaly policy with a default of warn
func (c *Config) GetAnomalyPolicy() string {
	if c.AnomalyPolicy == AnomalyReject {
		return AnomalyReject
	}
	return AnomalyWarn
}

// GetTopicPrefix returns the MQTT topic prefix with a default of "tariffscope"
func (c *MQTTConfig) GetTopicPrefix() string {
	if c.TopicPrefix == "" {
		return "tariffscope"
	}
	return c.TopicPrefix
}
