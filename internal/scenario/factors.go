// Package scenario validates scenario parameters and resolves the effective
// electricity supply (price and grid CO2 intensity) for a country, either
// from reference market data or from a manually specified generation mix.
package scenario

// Generation technology names recognized in manual mixes and in the
// electricity-mix reference table's share columns.
const (
	TechCoal            = "coal"
	TechGas             = "gas"
	TechOtherFossil     = "other_fossil"
	TechNuclear         = "nuclear"
	TechBioenergy       = "bioenergy"
	TechHydro           = "hydro"
	TechSolar           = "solar"
	TechWind            = "wind"
	TechOtherRenewables = "other_renewables"
)

// Technologies lists every recognized generation technology.
//
//nolint:gochecknoglobals // Fixed technology catalogue, never mutated.
var Technologies = []string{
	TechCoal, TechGas, TechOtherFossil, TechNuclear, TechBioenergy,
	TechHydro, TechSolar, TechWind, TechOtherRenewables,
}

// Factor is one generation technology's levelized cost of electricity and
// lifecycle CO2 intensity.
type Factor struct {
	// LCOEEURPerKWh is the levelized cost in EUR per kWh.
	LCOEEURPerKWh float64

	// CO2KgPerKWh is the lifecycle CO2 intensity in kg CO2 per kWh.
	CO2KgPerKWh float64
}

// Factors maps a technology name to its cost and CO2 factor. Treated as
// configuration: values may be overridden from the config file but never
// derived from data.
type Factors map[string]Factor

// DefaultFactors returns the built-in technology factor set.
//
// LCOE values are rounded European-market levelized costs; lifecycle CO2
// intensities follow IPCC AR5 median estimates.
func DefaultFactors() Factors {
	return Factors{
		TechCoal:            {LCOEEURPerKWh: 0.09, CO2KgPerKWh: 0.820},
		TechGas:             {LCOEEURPerKWh: 0.07, CO2KgPerKWh: 0.490},
		TechOtherFossil:     {LCOEEURPerKWh: 0.10, CO2KgPerKWh: 0.700},
		TechNuclear:         {LCOEEURPerKWh: 0.10, CO2KgPerKWh: 0.012},
		TechBioenergy:       {LCOEEURPerKWh: 0.08, CO2KgPerKWh: 0.230},
		TechHydro:           {LCOEEURPerKWh: 0.05, CO2KgPerKWh: 0.024},
		TechSolar:           {LCOEEURPerKWh: 0.06, CO2KgPerKWh: 0.045},
		TechWind:            {LCOEEURPerKWh: 0.05, CO2KgPerKWh: 0.011},
		TechOtherRenewables: {LCOEEURPerKWh: 0.08, CO2KgPerKWh: 0.038},
	}
}

// ApplyOverrides returns a copy of f with the given technology factors
// replaced. Unknown technology names in overrides are added as-is so that a
// config file can extend the catalogue.
func (f Factors) ApplyOverrides(overrides map[string]Factor) Factors {
	out := make(Factors, len(f)+len(overrides))
	for name, factor := range f {
		out[name] = factor
	}
	for name, factor := range overrides {
		out[name] = factor
	}
	return out
}
