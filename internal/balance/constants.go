// Package balance reconciles the bauxite/alumina trade-flow table into a
// per-country aluminium production estimate and its CO2 components.
package balance

// Canonical formulation constants. This block is the single source for every
// stoichiometric constant and component grouping: change a formulation here,
// never inline.
const (
	// TonneScale reconciles the heterogeneous tonnage columns of the
	// trade-flow table onto a common megatonne scale.
	TonneScale = 1e6

	// BauxiteGrade is the fraction of mined bauxite mass convertible to
	// alumina in the Bayer process.
	BauxiteGrade = 0.5

	// AluminaPerTonneAl is the stoichiometric alumina demand in tonnes per
	// tonne of aluminium (2 Al2O3 -> 4 Al).
	AluminaPerTonneAl = 1.889

	// ReactionCO2PerTonneAl is the Hall-Heroult carbon-anode reaction CO2 in
	// t CO2 per t Al at ideal current efficiency.
	ReactionCO2PerTonneAl = 1.222

	// AnodeCO2PerTonneAl is the prebaked-anode production footprint in
	// t CO2 per t Al.
	AnodeCO2PerTonneAl = 1.5

	// Bayer-process refining CO2 per tonne of alumina, split by energy
	// carrier, all in kg CO2 per t alumina. Kept separate from the
	// bauxite-mining footprint: folding mining into refining double counts.
	BayerFuelOilKgPerT     = 60.0
	BayerGasKgPerT         = 60.0
	BayerElectricityKgPerT = 30.0

	// VoltageEnergyMWhPerVolt converts cell voltage to specific electrolysis
	// energy: energy [MWh/t] = VoltageEnergyMWhPerVolt x V / CE.
	VoltageEnergyMWhPerVolt = 2.9806

	// Unit conversions.
	KgPerTonne = 1000.0
	KWhPerMWh  = 1000.0
)

// BayerCO2KgPerT is the combined Bayer-process footprint in kg CO2 per tonne
// of alumina.
const BayerCO2KgPerT = BayerFuelOilKgPerT + BayerGasKgPerT + BayerElectricityKgPerT
