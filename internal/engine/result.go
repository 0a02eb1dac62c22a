// Package engine drives the per-country cost and emissions pipeline over a
// selected country set and renders the aggregated results.
package engine

import "github.com/smelterlab/alufocus/internal/costing"

// CO2Breakdown splits the functional-unit footprint by source, all in
// kg CO2 per tonne of aluminium. Electricity here is the averaged
// electrolysis-energy estimate from the emissions balance.
type CO2Breakdown struct {
	ElectricityKgPerT float64 `json:"electricity_co2_kg_per_t"`
	BauxiteKgPerT     float64 `json:"bauxite_co2_kg_per_t"`
	AluminaKgPerT     float64 `json:"alumina_co2_kg_per_t"`
	AnodeKgPerT       float64 `json:"anode_co2_kg_per_t"`
	ReactionKgPerT    float64 `json:"reaction_co2_kg_per_t"`
}

// CountryResult is one country's scenario outcome. Created fresh on every
// estimation run, never persisted except through CSV export.
type CountryResult struct {
	Country string `json:"country"`

	// ElectricityPrice is the scenario-effective price in EUR/kWh.
	ElectricityPrice float64 `json:"electricity_price_eur_per_kwh"`

	// Costs holds the composed EUR/t cost breakdown.
	Costs costing.Breakdown `json:"costs"`

	// ElectricityCO2 is the smelter electricity footprint in kg CO2/t,
	// priced at the scenario-effective grid intensity.
	ElectricityCO2KgPerT float64 `json:"electricity_co2_kg_per_t"`

	// NonElectricityCO2 is TotalCO2 minus ElectricityCO2, in kg CO2/t.
	NonElectricityCO2KgPerT float64 `json:"non_electricity_co2_kg_per_t"`

	// TotalCO2 is the functional-unit footprint in kg CO2/t from the
	// emissions balance. The carbon cost is derived from this figure and
	// no other.
	TotalCO2KgPerT float64 `json:"total_co2_kg_per_t"`

	// Sources splits the balance footprint by emission source.
	Sources CO2Breakdown `json:"co2_sources"`

	// Absolute country-level figures, in tonnes.
	AluminiumT float64 `json:"aluminium_t"`
	TotalCO2T  float64 `json:"total_co2_t"`
}
