package scenario

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for scenario validation.
var (
	// ErrParameterRange indicates a scenario parameter outside its allowed range.
	ErrParameterRange = constError("parameter out of range")

	// ErrUnknownTechnology indicates a manual mix naming a technology that has
	// no configured factor.
	ErrUnknownTechnology = constError("unknown generation technology")

	// ErrZeroMix indicates that both the manual mix and the reference mix sum
	// to zero, so no electricity supply can be derived.
	ErrZeroMix = constError("generation mix sums to zero")
)

// Allowed parameter ranges.
const (
	MinCarbonTax = 0.0
	MaxCarbonTax = 500.0

	MinMarginRate = 0.0
	MaxMarginRate = 0.5

	MinEfficiency = 0.2
	MaxEfficiency = 1.0

	MinBauxiteFootprint = 0.0
	MaxBauxiteFootprint = 0.4

	MinCellVoltage = 3.0
	MaxCellVoltage = 10.0

	// MaxMixShare bounds a single manual mix share, expressed in percent.
	MaxMixShare = 100.0
)

// Parameters are the adjustable policy and technology inputs of one scenario.
type Parameters struct {
	// CarbonTax is the carbon price in EUR per tonne of CO2.
	CarbonTax float64

	// MarginRate is the producer margin as a fraction of operational cost.
	MarginRate float64

	// CurrentEfficiency is the fraction of theoretical electrolytic yield
	// actually achieved.
	CurrentEfficiency float64

	// BauxiteFootprint is the mining footprint in t CO2 per t bauxite.
	BauxiteFootprint float64

	// CellVoltage is the electrolysis cell voltage in volts.
	CellVoltage float64

	// ManualMix optionally overrides the electricity generation mix with
	// per-technology shares (percent or fractions; normalized before use).
	// Nil selects automated mode, where reference market data is used.
	ManualMix map[string]float64
}

// Defaults returns the baseline scenario used when the operator sets nothing.
func Defaults() Parameters {
	return Parameters{
		CarbonTax:         60.0,
		MarginRate:        0.15,
		CurrentEfficiency: 0.95,
		BauxiteFootprint:  0.005,
		CellVoltage:       4.2,
	}
}

// Validate checks every parameter against its allowed range and, when a
// manual mix is present, checks each share against the configured factors.
func (p Parameters) Validate(factors Factors) error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"carbon_tax", p.CarbonTax, MinCarbonTax, MaxCarbonTax},
		{"margin_rate", p.MarginRate, MinMarginRate, MaxMarginRate},
		{"current_efficiency", p.CurrentEfficiency, MinEfficiency, MaxEfficiency},
		{"bauxite_footprint", p.BauxiteFootprint, MinBauxiteFootprint, MaxBauxiteFootprint},
		{"cell_voltage", p.CellVoltage, MinCellVoltage, MaxCellVoltage},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return fmt.Errorf("%w: %s=%g (allowed %g..%g)", ErrParameterRange, c.name, c.value, c.min, c.max)
		}
	}

	for tech, share := range p.ManualMix {
		if _, ok := factors[tech]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTechnology, tech)
		}
		if share < 0 || share > MaxMixShare {
			return fmt.Errorf("%w: mix share %s=%g (allowed 0..%g)", ErrParameterRange, tech, share, MaxMixShare)
		}
	}
	return nil
}
