package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/smelterlab/alufocus/internal/balance"
	"github.com/smelterlab/alufocus/internal/costing"
	"github.com/smelterlab/alufocus/internal/logging"
	"github.com/smelterlab/alufocus/internal/refdata"
	"github.com/smelterlab/alufocus/internal/scenario"
)

// Engine aggregates per-country scenario results. It holds only immutable
// reference state and is safe for reuse across estimation runs.
type Engine struct {
	store        *refdata.Store
	factors      scenario.Factors
	materialMode costing.MaterialCostMode
}

// New creates an Engine over a loaded reference store.
func New(store *refdata.Store, factors scenario.Factors, materialMode costing.MaterialCostMode) *Engine {
	return &Engine{store: store, factors: factors, materialMode: materialMode}
}

// EstimateScenario runs the full pipeline for every selected country and
// returns one result per country that survives the reference-data and
// mass-balance guards, in selection order.
//
// A nil or empty selection means every country in the electricity-mix table,
// sorted. Countries missing from any required table, or resolving to a
// degenerate balance, are skipped; skipping is logged but never fails the
// run. The only returned error is parameter validation failure.
func (e *Engine) EstimateScenario(
	ctx context.Context,
	params scenario.Parameters,
	countries []refdata.CountryKey,
) ([]CountryResult, error) {
	log := logging.FromContext(ctx)

	if err := params.Validate(e.factors); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if len(countries) == 0 {
		countries = e.store.Countries()
	}

	results := make([]CountryResult, 0, len(countries))
	for _, country := range countries {
		result, ok := e.estimateCountry(ctx, params, country)
		if !ok {
			continue
		}
		results = append(results, result)
	}

	log.Info().
		Str("component", "engine").
		Int("selected", len(countries)).
		Int("resolved", len(results)).
		Float64("carbon_tax", params.CarbonTax).
		Msg("scenario estimated")

	return results, nil
}

// estimateCountry runs the pipeline for one country. The boolean reports
// whether the country produced a result; every skip reason is logged at
// debug except degenerate scenario input, which warrants operator attention.
func (e *Engine) estimateCountry(
	ctx context.Context,
	params scenario.Parameters,
	country refdata.CountryKey,
) (CountryResult, bool) {
	log := logging.FromContext(ctx)

	skip := func(table string) (CountryResult, bool) {
		log.Debug().
			Str("component", "engine").
			Str("country", string(country)).
			Str("missing", table).
			Msg("country excluded: incomplete reference data")
		return CountryResult{}, false
	}

	profile, ok := e.store.Profile(country)
	if !ok {
		return skip("electricity_mix")
	}
	market, ok := e.store.Market(country)
	if !ok {
		return skip("electricity_price")
	}
	aluminaCost, ok := e.store.AluminaCost(country)
	if !ok {
		return skip("alumina_costs")
	}
	petcokeCost, ok := e.store.PetcokeCost(country)
	if !ok {
		return skip("petcoke_costs")
	}

	bal, err := balance.Compute(ctx, e.store.Flows(), country, balance.Assumptions{
		CurrentEfficiency: params.CurrentEfficiency,
		BauxiteFootprint:  params.BauxiteFootprint,
		CellVoltage:       params.CellVoltage,
	})
	if err != nil {
		if !errors.Is(err, balance.ErrNoProduction) && !errors.Is(err, balance.ErrNoEnergyData) {
			log.Warn().
				Str("component", "engine").
				Str("country", string(country)).
				Err(err).
				Msg("unexpected balance failure, country excluded")
			return CountryResult{}, false
		}
		log.Debug().
			Str("component", "engine").
			Str("country", string(country)).
			Err(err).
			Msg("country excluded: no resolvable balance")
		return CountryResult{}, false
	}

	supply, err := scenario.Resolve(ctx, params, profile, market, e.factors)
	if err != nil {
		// Degenerate scenario input: worth surfacing, but the run continues
		// with the remaining countries.
		log.Warn().
			Str("component", "engine").
			Str("country", string(country)).
			Err(err).
			Msg("scenario not resolvable for country")
		return CountryResult{}, false
	}

	costs := costing.Compose(ctx, costing.Inputs{
		EnergyKWhPerT:             profile.EnergyKWhPerT,
		ElectricityPriceEURPerKWh: supply.PriceEURPerKWh,
		LabourCostEURPerT:         profile.LabourCostEURPerT,
		Alumina:                   aluminaCost,
		Petcoke:                   petcokeCost,
		TradeRows:                 e.store.MaterialsTrade(country),
		FootprintKgPerT:           bal.IntensityKgPerT,
	}, params, e.materialMode)

	perTonne := func(componentMt float64) float64 {
		return componentMt / bal.AluminiumMt * balance.KgPerTonne
	}

	electricityCO2 := profile.EnergyKWhPerT * supply.CO2KgPerKWh

	return CountryResult{
		Country:                 string(country),
		ElectricityPrice:        supply.PriceEURPerKWh,
		Costs:                   costs,
		ElectricityCO2KgPerT:    electricityCO2,
		NonElectricityCO2KgPerT: bal.IntensityKgPerT - electricityCO2,
		TotalCO2KgPerT:          bal.IntensityKgPerT,
		Sources: CO2Breakdown{
			ElectricityKgPerT: perTonne(bal.EnergyCO2Mt),
			BauxiteKgPerT:     perTonne(bal.BauxiteCO2Mt),
			AluminaKgPerT:     perTonne(bal.AluminaCO2Mt),
			AnodeKgPerT:       perTonne(bal.AnodeCO2Mt),
			ReactionKgPerT:    perTonne(bal.ReactionCO2Mt),
		},
		AluminiumT: bal.AluminiumTonnes(),
		TotalCO2T:  bal.TotalCO2Tonnes(),
	}, true
}
