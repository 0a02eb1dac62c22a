package balance

import (
	"context"
	"fmt"

	"github.com/smelterlab/alufocus/internal/logging"
	"github.com/smelterlab/alufocus/internal/refdata"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors. Both are expected conditions for some countries and cause
// the country to be skipped, never the run to abort.
var (
	// ErrNoProduction indicates the mass balance resolves to zero or negative
	// aluminium output for the country.
	ErrNoProduction = constError("no aluminium production resolvable")

	// ErrNoEnergyData indicates the trade-flow table carries no energy or
	// grid-intensity observation for the country, so the electrolysis CO2
	// cannot be computed.
	ErrNoEnergyData = constError("no energy observations for country")
)

// Assumptions are the scenario inputs the mass balance depends on.
type Assumptions struct {
	// CurrentEfficiency is the achieved fraction of theoretical electrolytic
	// yield, in (0, 1].
	CurrentEfficiency float64

	// BauxiteFootprint is the mining footprint in t CO2 per t bauxite.
	BauxiteFootprint float64

	// CellVoltage is the electrolysis cell voltage in volts.
	CellVoltage float64
}

// Result is the self-consistent mass and emissions balance for one country.
// Masses and CO2 components are in megatonnes; the functional-unit intensity
// is in kg CO2 per tonne of aluminium.
type Result struct {
	Country refdata.CountryKey

	// Mass balance, Mt.
	BauxiteMt   float64
	AluminaMt   float64
	AluminiumMt float64

	// CO2 components, Mt.
	ReactionCO2Mt float64
	BauxiteCO2Mt  float64
	AluminaCO2Mt  float64
	AnodeCO2Mt    float64
	EnergyCO2Mt   float64
	TotalCO2Mt    float64

	// Electrolysis energy accounting. Mode 1 derives energy from cell
	// voltage; mode 2 reads the trade-table average. Both are priced with
	// the same grid intensity and averaged into EnergyCO2Mt.
	EnergyMode1KWhPerT float64
	EnergyMode2KWhPerT float64
	EnergyMode1CO2Mt   float64
	EnergyMode2CO2Mt   float64
	GridCO2KgPerKWh    float64

	// IntensityKgPerT is TotalCO2 normalized to one tonne of aluminium.
	IntensityKgPerT float64
}

// Compute derives the mass and emissions balance for one country from the
// trade-flow table.
//
// The country is unresolvable (ErrNoProduction) when its net bauxite supply
// or derived aluminium output is not positive, and unobservable
// (ErrNoEnergyData) when the table has no energy-intensity or grid-intensity
// rows for it. Callers treat both as "skip this country".
func Compute(
	ctx context.Context,
	flows []refdata.TradeFlowRow,
	country refdata.CountryKey,
	assume Assumptions,
) (Result, error) {
	log := logging.FromContext(ctx)

	var (
		bauxiteImports, bauxiteExports, bauxiteDomestic float64
		aluminaImports, aluminaExports                  float64
		energySum, gridSum                              float64
		energyN, gridN                                  int
	)
	for _, row := range flows {
		if row.BauxiteImporter == country {
			bauxiteImports += row.BauxiteImportT / TonneScale
		}
		if row.BauxiteExporter == country {
			bauxiteExports += row.BauxiteExportT / TonneScale
		}
		if row.BauxiteLocal == country {
			bauxiteDomestic += row.BauxiteLocalT / TonneScale
		}
		if row.AluminaImporter == country {
			aluminaImports += row.AluminaImportT / TonneScale
		}
		if row.AluminaExporter == country {
			aluminaExports += row.AluminaExportT / TonneScale
		}
		if row.EnergyCountry == country {
			energySum += row.EnergyKWhPerT
			energyN++
		}
		if row.GridCountry == country {
			gridSum += row.GridCO2
			gridN++
		}
	}

	totalBauxite := bauxiteImports + bauxiteDomestic - bauxiteExports
	if totalBauxite <= 0 {
		return Result{}, fmt.Errorf("%w: %s (net bauxite %.4f Mt)", ErrNoProduction, country, totalBauxite)
	}

	totalAlumina := totalBauxite*BauxiteGrade + (aluminaImports - aluminaExports)
	totalAluminium := totalAlumina / AluminaPerTonneAl * assume.CurrentEfficiency
	if totalAluminium <= 0 {
		return Result{}, fmt.Errorf("%w: %s (aluminium %.4f Mt)", ErrNoProduction, country, totalAluminium)
	}

	if energyN == 0 || gridN == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrNoEnergyData, country)
	}
	energyMode2 := energySum / float64(energyN)
	gridCO2 := gridSum / float64(gridN)
	energyMode1 := VoltageEnergyMWhPerVolt * assume.CellVoltage / assume.CurrentEfficiency * KWhPerMWh

	r := Result{
		Country:            country,
		BauxiteMt:          totalBauxite,
		AluminaMt:          totalAlumina,
		AluminiumMt:        totalAluminium,
		EnergyMode1KWhPerT: energyMode1,
		EnergyMode2KWhPerT: energyMode2,
		GridCO2KgPerKWh:    gridCO2,
	}

	r.ReactionCO2Mt = totalAluminium * ReactionCO2PerTonneAl / assume.CurrentEfficiency
	r.BauxiteCO2Mt = totalBauxite * assume.BauxiteFootprint
	r.AluminaCO2Mt = totalAlumina * BayerCO2KgPerT / KgPerTonne
	r.AnodeCO2Mt = totalAluminium * AnodeCO2PerTonneAl
	r.EnergyMode1CO2Mt = totalAluminium * energyMode1 * gridCO2 / KgPerTonne
	r.EnergyMode2CO2Mt = totalAluminium * energyMode2 * gridCO2 / KgPerTonne

	// Both electrolysis estimates enter the footprint with equal weight.
	r.EnergyCO2Mt = (r.EnergyMode1CO2Mt + r.EnergyMode2CO2Mt) / 2

	r.TotalCO2Mt = r.ReactionCO2Mt + r.BauxiteCO2Mt + r.AluminaCO2Mt + r.AnodeCO2Mt + r.EnergyCO2Mt
	r.IntensityKgPerT = r.TotalCO2Mt / totalAluminium * KgPerTonne

	log.Debug().
		Str("component", "balance").
		Str("country", string(country)).
		Float64("bauxite_mt", r.BauxiteMt).
		Float64("aluminium_mt", r.AluminiumMt).
		Float64("intensity_kg_per_t", r.IntensityKgPerT).
		Msg("mass and emissions balance computed")

	return r, nil
}

// AluminiumTonnes returns the absolute aluminium output in tonnes.
func (r Result) AluminiumTonnes() float64 {
	return r.AluminiumMt * TonneScale
}

// TotalCO2Tonnes returns the absolute CO2 footprint in tonnes.
func (r Result) TotalCO2Tonnes() float64 {
	return r.TotalCO2Mt * TonneScale
}
