package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, DefaultDataDir, cfg.Data.Dir)
	assert.Equal(t, 60.0, cfg.Scenario.CarbonTax)
	assert.Equal(t, 0.15, cfg.Scenario.MarginRate)
	assert.Equal(t, 0.95, cfg.Scenario.CurrentEff)
	assert.Equal(t, 4.2, cfg.Scenario.CellVoltage)
	assert.Equal(t, 0.005, cfg.Scenario.BauxiteFootprint)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.Scenario.CarbonTax)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alufocus.yaml")
	content := `
logging:
  level: debug
data:
  dir: /srv/refdata
scenario:
  carbon_tax: 120
  cell_voltage: 4.5
technology_factors:
  coal:
    lcoe_eur_per_kwh: 0.11
    co2_kg_per_kwh: 0.9
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/refdata", cfg.Data.Dir)
	assert.Equal(t, 120.0, cfg.Scenario.CarbonTax)
	assert.Equal(t, 4.5, cfg.Scenario.CellVoltage)
	// Untouched defaults survive the overlay.
	assert.Equal(t, 0.15, cfg.Scenario.MarginRate)
	assert.Equal(t, "country_electricity_mix.csv", cfg.Data.ElectricityMix)

	require.Contains(t, cfg.Factors, "coal")
	assert.Equal(t, 0.11, cfg.Factors["coal"].LCOE)
	assert.Equal(t, 0.9, cfg.Factors["coal"].CO2)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenario: [not a map"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestTablePath(t *testing.T) {
	d := DataConfig{Dir: "/srv/refdata"}
	assert.Equal(t, filepath.Join("/srv/refdata", "x.csv"), d.TablePath("x.csv"))
	assert.Equal(t, "/abs/x.csv", d.TablePath("/abs/x.csv"))

	empty := DataConfig{}
	assert.Equal(t, filepath.Join(DefaultDataDir, "x.csv"), empty.TablePath("x.csv"))
}
