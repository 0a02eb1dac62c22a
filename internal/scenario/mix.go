package scenario

import (
	"context"
	"fmt"

	"github.com/smelterlab/alufocus/internal/logging"
	"github.com/smelterlab/alufocus/internal/refdata"
)

// Supply is the effective electricity supply for a country under one
// scenario: the price and grid CO2 intensity the cost and emissions engines
// should use.
type Supply struct {
	// PriceEURPerKWh is the effective electricity price.
	PriceEURPerKWh float64

	// CO2KgPerKWh is the effective grid CO2 intensity.
	CO2KgPerKWh float64

	// FromMix reports whether the supply was derived from a generation mix
	// (manual or reference) rather than taken from market data.
	FromMix bool

	// Shares holds the normalized mix when FromMix is true.
	Shares map[string]float64
}

// NormalizeShares divides every candidate share by the share sum so the
// result totals exactly 1.
//
// A zero-sum candidate falls back to the reference mix unchanged: the
// returned map is a copy of reference with no renormalization applied. The
// second return reports whether the fallback was taken.
func NormalizeShares(candidate, reference map[string]float64) (map[string]float64, bool) {
	var sum float64
	for _, share := range candidate {
		sum += share
	}

	if sum == 0 {
		out := make(map[string]float64, len(reference))
		for tech, share := range reference {
			out[tech] = share
		}
		return out, true
	}

	out := make(map[string]float64, len(candidate))
	for tech, share := range candidate {
		out[tech] = share / sum
	}
	return out, false
}

// Resolve derives the effective electricity supply for a country.
//
// Automated mode (no manual mix): the reference market record is passed
// through untouched. Manual mode: the candidate shares are normalized to sum
// to 1 and priced through the technology factors; a zero-sum candidate falls
// back to the country's reference mix. When that reference mix is itself
// absent or zero, ErrZeroMix is returned so the operator sees a validation
// message rather than a silently empty scenario.
func Resolve(
	ctx context.Context,
	params Parameters,
	profile refdata.ElectricityProfile,
	market refdata.ElectricityMarket,
	factors Factors,
) (Supply, error) {
	if params.ManualMix == nil {
		return Supply{
			PriceEURPerKWh: market.PriceEURPerKWh,
			CO2KgPerKWh:    market.CO2KgPerKWh,
		}, nil
	}

	shares, fellBack := NormalizeShares(params.ManualMix, profile.MixShares)
	if fellBack {
		logging.FromContext(ctx).Debug().
			Str("component", "scenario").
			Str("country", string(profile.Country)).
			Msg("manual mix sums to zero, using reference mix")

		var refSum float64
		for _, share := range shares {
			refSum += share
		}
		if refSum == 0 {
			return Supply{}, fmt.Errorf("%w: country %s", ErrZeroMix, profile.Country)
		}
		// The reference mix is used as stored; normalize it here so the
		// weighted averages below stay well defined.
		for tech := range shares {
			shares[tech] /= refSum
		}
	}

	supply := Supply{FromMix: true, Shares: shares}
	for tech, share := range shares {
		factor, ok := factors[tech]
		if !ok {
			return Supply{}, fmt.Errorf("%w: %s", ErrUnknownTechnology, tech)
		}
		supply.PriceEURPerKWh += share * factor.LCOEEURPerKWh
		supply.CO2KgPerKWh += share * factor.CO2KgPerKWh
	}
	return supply, nil
}
