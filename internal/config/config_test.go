package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariffscope/internal/tariff"
)

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestRateTableDefaults(t *testing.T) {
	cfg := &Config{}
	table := cfg.GetRateTable()

	assert.InDelta(t, 0.34634, table.PerKWh[tariff.WinterPeak], 1e-9)
	assert.InDelta(t, 0.17703, table.PerKWh[tariff.WinterOffPeak], 1e-9)
	assert.InDelta(t, 0.12198, table.PerKWh[tariff.Summer], 1e-9)
	assert.InDelta(t, 0.17703, table.FlatRate, 1e-9)
}

func TestRateTableOverrides(t *testing.T) {
	cfg := &Config{Rates: RatesConfig{WinterPeak: 0.40, Flat: 0.20}}
	table := cfg.GetRateTable()

	assert.InDelta(t, 0.40, table.PerKWh[tariff.WinterPeak], 1e-9)
	assert.InDelta(t, 0.20, table.FlatRate, 1e-9)
	// Unset prices keep their defaults
	assert.InDelta(t, 0.12198, table.PerKWh[tariff.Summer], 1e-9)
}

func TestAnomalyPolicyDefaultsToWarn(t *testing.T) {
	assert.Equal(t, AnomalyWarn, (&Config{}).GetAnomalyPolicy())
	assert.Equal(t, AnomalyWarn, (&Config{AnomalyPolicy: "bogus"}).GetAnomalyPolicy())
	assert.Equal(t, AnomalyReject, (&Config{AnomalyPolicy: "reject"}).GetAnomalyPolicy())
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `rates:
  winter_peak: 0.35
  flat: 0.18
anomaly_policy: reject
mqtt:
  enabled: true
  broker: homeassistant.local:1883
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.35, cfg.Rates.WinterPeak, 1e-9)
	assert.Equal(t, AnomalyReject, cfg.GetAnomalyPolicy())
	assert.True(t, cfg.MQTT.Enabled)
	assert.Equal(t, "tariffscope", cfg.MQTT.GetTopicPrefix())
}
