package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smelterlab/alufocus/internal/config"
	"github.com/smelterlab/alufocus/internal/costing"
	"github.com/smelterlab/alufocus/internal/engine"
	"github.com/smelterlab/alufocus/internal/refdata"
	"github.com/smelterlab/alufocus/internal/scenario"
)

// percentDivisor converts percent-valued flags to fractions.
const percentDivisor = 100.0

// estimateParams holds the flag values of the estimate command.
type estimateParams struct {
	carbonTax    float64
	marginPct    float64
	efficiency   float64
	cellVoltage  float64
	bauxiteCO2   float64
	mix          string
	countries    []string
	output       string
	exportPath   string
	materialMode string
}

// NewEstimateCmd creates the "estimate" subcommand running one scenario over
// the selected countries.
//
// Registered flags:
//   - --carbon-tax: carbon price in EUR per tonne CO₂ (0–500)
//   - --margin: producer margin in percent of operational cost (0–50)
//   - --efficiency: current efficiency as a fraction (0.2–1.0)
//   - --cell-voltage: electrolysis cell voltage in volts (3–10)
//   - --bauxite-co2: bauxite mining footprint in t CO₂ per t bauxite (0–0.4)
//   - --mix: manual generation mix, e.g. "coal=20,hydro=50,wind=30"
//   - --countries: comma-separated country selection (default: all)
//   - --material-cost: material cost formulation: flat, weighted, or trade
//   - --output: table, json, or csv
//   - --export: write the CSV export to a file
func NewEstimateCmd() *cobra.Command {
	var params estimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate per-country production cost and CO₂ footprint",
		Long: `Estimate the cost (€/t) and carbon footprint (kg CO₂/t) of primary
aluminium production for each selected country under one scenario.

Countries missing from any required reference table, or with no resolvable
production balance, are silently excluded from the result set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, params)
		},
	}

	defaults := scenario.Defaults()
	cmd.Flags().Float64Var(&params.carbonTax, "carbon-tax", defaults.CarbonTax,
		"carbon price in €/t CO₂")
	cmd.Flags().Float64Var(&params.marginPct, "margin", defaults.MarginRate*percentDivisor,
		"producer margin in % of operational cost")
	cmd.Flags().Float64Var(&params.efficiency, "efficiency", defaults.CurrentEfficiency,
		"current efficiency (fraction of theoretical yield)")
	cmd.Flags().Float64Var(&params.cellVoltage, "cell-voltage", defaults.CellVoltage,
		"electrolysis cell voltage in volts")
	cmd.Flags().Float64Var(&params.bauxiteCO2, "bauxite-co2", defaults.BauxiteFootprint,
		"bauxite mining footprint in t CO₂/t bauxite")
	cmd.Flags().StringVar(&params.mix, "mix", "",
		"manual generation mix as tech=share pairs, e.g. coal=20,hydro=80")
	cmd.Flags().StringSliceVar(&params.countries, "countries", nil,
		"countries to estimate (default: every country in the reference data)")
	cmd.Flags().StringVar(&params.materialMode, "material-cost", "flat",
		"material cost formulation: flat, weighted, or trade")
	cmd.Flags().StringVar(&params.output, "output", "",
		"output format: table, json, or csv (default: table on a terminal, csv otherwise)")
	cmd.Flags().StringVar(&params.exportPath, "export", "",
		"write the result table as CSV to this path")

	return cmd
}

// runEstimate executes the estimate command: it loads configuration and
// reference data, assembles the scenario, runs the aggregator, renders the
// selected output format, and optionally writes the CSV export.
func runEstimate(cmd *cobra.Command, params estimateParams) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyScenarioDefaults(cmd, cfg, &params)

	scn := scenario.Parameters{
		CarbonTax:         params.carbonTax,
		MarginRate:        params.marginPct / percentDivisor,
		CurrentEfficiency: params.efficiency,
		BauxiteFootprint:  params.bauxiteCO2,
		CellVoltage:       params.cellVoltage,
	}
	if params.mix != "" {
		mix, merr := parseMix(params.mix)
		if merr != nil {
			return merr
		}
		scn.ManualMix = mix
	}

	materialMode, err := costing.ParseMaterialCostMode(params.materialMode)
	if err != nil {
		return err
	}

	format, err := resolveOutputFormat(params.output)
	if err != nil {
		return err
	}

	store, err := loadStore(cmd, cfg)
	if err != nil {
		return err
	}

	factors := factorsFromConfig(cfg)
	eng := engine.New(store, factors, materialMode)

	results, err := eng.EstimateScenario(ctx, scn, selectedCountries(params.countries))
	if err != nil {
		return err
	}

	if err := engine.RenderResults(cmd.OutOrStdout(), results, format); err != nil {
		return err
	}

	if params.exportPath != "" {
		if err := engine.ExportCSV(params.exportPath, results); err != nil {
			return err
		}
		cmd.PrintErrf("Exported %d countries to %s\n", len(results), params.exportPath)
	}
	return nil
}

// applyScenarioDefaults overlays config-file scenario defaults onto flags the
// operator did not set explicitly.
func applyScenarioDefaults(cmd *cobra.Command, cfg *config.Config, params *estimateParams) {
	if !cmd.Flags().Changed("carbon-tax") {
		params.carbonTax = cfg.Scenario.CarbonTax
	}
	if !cmd.Flags().Changed("margin") {
		params.marginPct = cfg.Scenario.MarginRate * percentDivisor
	}
	if !cmd.Flags().Changed("efficiency") {
		params.efficiency = cfg.Scenario.CurrentEff
	}
	if !cmd.Flags().Changed("cell-voltage") {
		params.cellVoltage = cfg.Scenario.CellVoltage
	}
	if !cmd.Flags().Changed("bauxite-co2") {
		params.bauxiteCO2 = cfg.Scenario.BauxiteFootprint
	}
}

// resolveOutputFormat picks the output format, defaulting to a table on an
// interactive terminal and CSV when stdout is piped.
func resolveOutputFormat(flagValue string) (engine.OutputFormat, error) {
	if flagValue != "" {
		return engine.ParseOutputFormat(flagValue)
	}
	if isTerminal(os.Stdout) {
		return engine.OutputTable, nil
	}
	return engine.OutputCSV, nil
}

// parseMix parses a manual mix flag value of the form
// "coal=20,hydro=50,wind=30" into technology shares.
func parseMix(raw string) (map[string]float64, error) {
	mix := make(map[string]float64)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid mix entry %q (expected tech=share)", pair)
		}
		share, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid mix share in %q: %w", pair, err)
		}
		mix[strings.TrimSpace(name)] = share
	}
	if len(mix) == 0 {
		return nil, fmt.Errorf("empty mix specification %q", raw)
	}
	return mix, nil
}

// selectedCountries converts the --countries flag into country keys,
// preserving the operator's order.
func selectedCountries(raw []string) []refdata.CountryKey {
	var keys []refdata.CountryKey
	for _, name := range raw {
		if key := refdata.NormalizeCountry(name); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// factorsFromConfig merges config-file technology factor overrides over the
// built-in defaults.
func factorsFromConfig(cfg *config.Config) scenario.Factors {
	if len(cfg.Factors) == 0 {
		return scenario.DefaultFactors()
	}
	overrides := make(map[string]scenario.Factor, len(cfg.Factors))
	for name, f := range cfg.Factors {
		overrides[name] = scenario.Factor{LCOEEURPerKWh: f.LCOE, CO2KgPerKWh: f.CO2}
	}
	return scenario.DefaultFactors().ApplyOverrides(overrides)
}

// loadStore opens the reference tables named by config and the --data-dir
// flag and loads them into an immutable store.
func loadStore(cmd *cobra.Command, cfg *config.Config) (*refdata.Store, error) {
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.Data.Dir = dir
	}
	paths := refdata.Paths{
		ElectricityMix:   cfg.Data.TablePath(cfg.Data.ElectricityMix),
		ElectricityPrice: cfg.Data.TablePath(cfg.Data.ElectricityPrice),
		AluminaCosts:     cfg.Data.TablePath(cfg.Data.AluminaCosts),
		PetcokeCosts:     cfg.Data.TablePath(cfg.Data.PetcokeCosts),
		MaterialsTrade:   cfg.Data.TablePath(cfg.Data.MaterialsTrade),
		TradeFlows:       cfg.Data.TablePath(cfg.Data.TradeFlows),
	}
	return refdata.Load(cmd.Context(), paths)
}
