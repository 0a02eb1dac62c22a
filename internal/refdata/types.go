// Package refdata loads and serves the per-country reference tables behind
// the aluminium cost and emissions model.
//
// Six flat CSV tables are read once at startup, cleaned, and held immutable
// for the lifetime of the process. Country names are the join key across all
// tables; every lookup is an exact match on the normalized name and a miss is
// reported as absence, never as an error.
package refdata

import "strings"

// CountryKey is a normalized country name used as the join key across all
// reference tables.
type CountryKey string

// NormalizeCountry converts a raw country-name cell into a CountryKey.
// Normalization is a whitespace trim only: the source tables already agree on
// spelling, they just disagree on padding.
func NormalizeCountry(raw string) CountryKey {
	return CountryKey(strings.TrimSpace(raw))
}

// ElectricityProfile describes a country's smelting electricity demand,
// labour cost, and (optionally) its reference generation mix.
type ElectricityProfile struct {
	Country CountryKey

	// EnergyKWhPerT is the average electricity consumption per tonne of
	// aluminium, in kWh/t.
	EnergyKWhPerT float64

	// LabourCostEURPerT is the average labour cost in EUR per tonne.
	LabourCostEURPerT float64

	// MixShares maps a generation technology name to its share of the
	// country's mix. Shares are non-negative and need not pre-sum to 1.
	// Empty when the source table carries no mix columns for the country.
	MixShares map[string]float64
}

// HasMix reports whether the profile carries a usable generation mix.
func (p ElectricityProfile) HasMix() bool {
	return len(p.MixShares) > 0
}

// ElectricityMarket is a country's average electricity price and grid CO2
// intensity, used directly in automated scenario mode.
type ElectricityMarket struct {
	Country CountryKey

	// PriceEURPerKWh is the average electricity price in EUR/kWh.
	PriceEURPerKWh float64

	// CO2KgPerKWh is the average grid CO2 intensity in kg CO2/kWh.
	CO2KgPerKWh float64
}

// MaterialCost is a per-country market price plus transport cost for one raw
// material (alumina or petcoke), both in EUR per tonne of material.
type MaterialCost struct {
	Country              CountryKey
	MarketPriceEURPerT   float64
	TransportCostEURPerT float64
}

// Total returns market price plus transport cost.
func (m MaterialCost) Total() float64 {
	return m.MarketPriceEURPerT + m.TransportCostEURPerT
}

// MaterialsTradeRow is one row of the simplified materials-trade table: an
// observed material shipment into a country with its weight and price.
type MaterialsTradeRow struct {
	Country      CountryKey
	WeightT      float64
	PriceEURPerT float64
}

// TradeFlowRow is one row of the bauxite/alumina trade-flow table. Any field
// may be absent for a given row; absent tonnages are zero and absent country
// fields are the empty key.
type TradeFlowRow struct {
	// Bauxite import flow: tonnes arriving in BauxiteImporter.
	BauxiteImporter CountryKey
	BauxiteImportT  float64

	// Bauxite export flow: tonnes leaving BauxiteExporter.
	BauxiteExporter CountryKey
	BauxiteExportT  float64

	// Domestic bauxite production in BauxiteLocal.
	BauxiteLocal  CountryKey
	BauxiteLocalT float64

	// Alumina import and export flows, same convention as bauxite.
	AluminaImporter CountryKey
	AluminaImportT  float64
	AluminaExporter CountryKey
	AluminaExportT  float64

	// GridCountry (source column country1) keys the row's grid CO2
	// intensity observation, in kg CO2/kWh.
	GridCountry CountryKey
	GridCO2     float64

	// EnergyCountry (source column country2) keys the row's smelting energy
	// intensity observation, in kWh per tonne of aluminium.
	EnergyCountry CountryKey
	EnergyKWhPerT float64
}
