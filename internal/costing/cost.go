// Package costing composes the per-tonne production cost of aluminium from
// electricity, labour, material, margin, and carbon-tax components.
package costing

import (
	"context"
	"fmt"

	"github.com/smelterlab/alufocus/internal/balance"
	"github.com/smelterlab/alufocus/internal/logging"
	"github.com/smelterlab/alufocus/internal/refdata"
	"github.com/smelterlab/alufocus/internal/scenario"
)

// PetcokePerTonneAl is the anode carbon consumption in tonnes of petcoke per
// tonne of aluminium, used by the weighted material-cost formulation.
const PetcokePerTonneAl = 0.4

// MaterialCostMode selects the material-cost formulation.
type MaterialCostMode int

const (
	// MaterialCostFlat sums alumina and petcoke market plus transport prices
	// as-is. This is the default formulation.
	MaterialCostFlat MaterialCostMode = iota

	// MaterialCostWeighted scales each material's price by its
	// stoichiometric consumption per tonne of aluminium and divides by
	// current efficiency, so material need follows production chemistry.
	MaterialCostWeighted

	// MaterialCostTrade prices materials from the observed materials-trade
	// shipments (weight-averaged price), falling back to the flat sum when
	// the country has no trade rows.
	MaterialCostTrade
)

// ParseMaterialCostMode converts a flag or config value into a mode.
func ParseMaterialCostMode(s string) (MaterialCostMode, error) {
	switch s {
	case "", "flat":
		return MaterialCostFlat, nil
	case "weighted":
		return MaterialCostWeighted, nil
	case "trade":
		return MaterialCostTrade, nil
	default:
		return MaterialCostFlat, fmt.Errorf("unknown material cost mode %q (expected flat, weighted, or trade)", s)
	}
}

// String returns the config-file name of the mode.
func (m MaterialCostMode) String() string {
	switch m {
	case MaterialCostFlat:
		return "flat"
	case MaterialCostWeighted:
		return "weighted"
	case MaterialCostTrade:
		return "trade"
	default:
		return "unknown"
	}
}

// Inputs are the per-country figures the cost composition consumes.
type Inputs struct {
	// EnergyKWhPerT is the smelter electricity demand per tonne of aluminium.
	EnergyKWhPerT float64

	// ElectricityPriceEURPerKWh is the scenario-effective electricity price.
	ElectricityPriceEURPerKWh float64

	// LabourCostEURPerT is the reference labour cost.
	LabourCostEURPerT float64

	// Alumina and Petcoke are the per-material reference cost records.
	Alumina refdata.MaterialCost
	Petcoke refdata.MaterialCost

	// TradeRows are the country's materials-trade observations, consulted
	// only in MaterialCostTrade mode.
	TradeRows []refdata.MaterialsTradeRow

	// FootprintKgPerT is the total CO2 footprint from the emissions engine,
	// in kg CO2 per tonne of aluminium. This is the only CO2 figure the
	// carbon cost may be derived from.
	FootprintKgPerT float64
}

// Breakdown is the composed cost of one tonne of aluminium, all in EUR/t.
// TotalCost always equals OperationalCost + MarginCost + CarbonCost.
type Breakdown struct {
	ElectricityCost float64 `json:"electricity_cost_eur_per_t"`
	LabourCost      float64 `json:"labour_cost_eur_per_t"`
	MaterialCost    float64 `json:"material_cost_eur_per_t"`
	OperationalCost float64 `json:"operational_cost_eur_per_t"`
	MarginCost      float64 `json:"margin_eur_per_t"`
	CarbonCost      float64 `json:"carbon_cost_eur_per_t"`
	TotalCost       float64 `json:"total_cost_eur_per_t"`
}

// Compose builds the cost breakdown for one country.
//
// The carbon cost converts the kg/t footprint to t/t exactly once, here, and
// multiplies by the carbon tax. No other path may price CO2.
func Compose(ctx context.Context, in Inputs, params scenario.Parameters, mode MaterialCostMode) Breakdown {
	b := Breakdown{
		ElectricityCost: in.EnergyKWhPerT * in.ElectricityPriceEURPerKWh,
		LabourCost:      in.LabourCostEURPerT,
		MaterialCost:    materialCost(in, params, mode),
	}

	b.OperationalCost = b.ElectricityCost + b.LabourCost + b.MaterialCost
	b.MarginCost = b.OperationalCost * params.MarginRate
	b.CarbonCost = in.FootprintKgPerT / balance.KgPerTonne * params.CarbonTax
	b.TotalCost = b.OperationalCost + b.MarginCost + b.CarbonCost

	logging.FromContext(ctx).Debug().
		Str("component", "costing").
		Str("material_mode", mode.String()).
		Float64("operational", b.OperationalCost).
		Float64("carbon", b.CarbonCost).
		Float64("total", b.TotalCost).
		Msg("cost breakdown composed")

	return b
}

// materialCost applies the selected material-cost formulation.
func materialCost(in Inputs, params scenario.Parameters, mode MaterialCostMode) float64 {
	switch mode {
	case MaterialCostWeighted:
		return (in.Alumina.Total()*balance.AluminaPerTonneAl +
			in.Petcoke.Total()*PetcokePerTonneAl) / params.CurrentEfficiency
	case MaterialCostTrade:
		if cost, ok := tradeAverage(in.TradeRows); ok {
			return cost
		}
		return in.Alumina.Total() + in.Petcoke.Total()
	default:
		return in.Alumina.Total() + in.Petcoke.Total()
	}
}

// tradeAverage returns the weight-averaged material price over the observed
// shipments. ok is false when there are no rows or no positive weight.
func tradeAverage(rows []refdata.MaterialsTradeRow) (float64, bool) {
	var weight, value float64
	for _, row := range rows {
		if row.WeightT <= 0 {
			continue
		}
		weight += row.WeightT
		value += row.WeightT * row.PriceEURPerT
	}
	if weight == 0 {
		return 0, false
	}
	return value / weight, true
}
