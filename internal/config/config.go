// Package config loads the alufocus YAML configuration and owns the global
// application logger.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDataDir is where reference CSV tables are looked up when the config
// file and --data-dir flag are both silent.
const DefaultDataDir = "data"

// LoggingConfig holds the logging section of the config file.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// DataConfig names the reference CSV files. Paths are relative to Dir unless
// absolute.
type DataConfig struct {
	Dir              string `yaml:"dir"`
	ElectricityMix   string `yaml:"electricity_mix"`
	ElectricityPrice string `yaml:"electricity_price"`
	AluminaCosts     string `yaml:"alumina_costs"`
	PetcokeCosts     string `yaml:"petcoke_costs"`
	MaterialsTrade   string `yaml:"materials_trade"`
	TradeFlows       string `yaml:"trade_flows"`
}

// ScenarioDefaults carries default scenario parameters applied when the
// corresponding CLI flag is not set.
type ScenarioDefaults struct {
	CarbonTax        float64 `yaml:"carbon_tax"`
	MarginRate       float64 `yaml:"margin_rate"`
	CurrentEff       float64 `yaml:"current_efficiency"`
	CellVoltage      float64 `yaml:"cell_voltage"`
	BauxiteFootprint float64 `yaml:"bauxite_footprint"`
}

// TechnologyFactor overrides one generation technology's cost and CO2 factor.
type TechnologyFactor struct {
	LCOE float64 `yaml:"lcoe_eur_per_kwh"`
	CO2  float64 `yaml:"co2_kg_per_kwh"`
}

// Config is the root of the alufocus configuration file.
type Config struct {
	Logging  LoggingConfig               `yaml:"logging"`
	Data     DataConfig                  `yaml:"data"`
	Scenario ScenarioDefaults            `yaml:"scenario"`
	Factors  map[string]TechnologyFactor `yaml:"technology_factors"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Data: DataConfig{
			Dir:              DefaultDataDir,
			ElectricityMix:   "country_electricity_mix.csv",
			ElectricityPrice: "electricity_price_co2.csv",
			AluminaCosts:     "alumina_costs.csv",
			PetcokeCosts:     "calc_petcoke_costs.csv",
			MaterialsTrade:   "materials_trade.csv",
			TradeFlows:       "total_co2_tot_al.csv",
		},
		Scenario: ScenarioDefaults{
			CarbonTax:        60.0,
			MarginRate:       0.15,
			CurrentEff:       0.95,
			CellVoltage:      4.2,
			BauxiteFootprint: 0.005,
		},
	}
}

// Load reads a YAML config file and merges it over the defaults. A missing
// file is not an error: the defaults are returned unchanged, matching the
// zero-configuration first run.
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the operator's --config flag.
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// TablePath resolves the path for one of the named reference tables.
func (d DataConfig) TablePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	dir := d.Dir
	if dir == "" {
		dir = DefaultDataDir
	}
	return filepath.Join(dir, name)
}
