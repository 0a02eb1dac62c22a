package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smelterlab/alufocus/internal/refdata"
)

const shareTolerance = 1e-6

func TestNormalizeShares(t *testing.T) {
	reference := map[string]float64{TechCoal: 40, TechHydro: 60}

	tests := []struct {
		name         string
		candidate    map[string]float64
		want         map[string]float64
		wantFallback bool
	}{
		{
			name:      "percent shares normalize to fractions",
			candidate: map[string]float64{TechCoal: 20, TechHydro: 80},
			want:      map[string]float64{TechCoal: 0.2, TechHydro: 0.8},
		},
		{
			name:      "already fractional",
			candidate: map[string]float64{TechWind: 0.25, TechSolar: 0.75},
			want:      map[string]float64{TechWind: 0.25, TechSolar: 0.75},
		},
		{
			name:      "uneven sum",
			candidate: map[string]float64{TechCoal: 1, TechGas: 2},
			want:      map[string]float64{TechCoal: 1.0 / 3, TechGas: 2.0 / 3},
		},
		{
			name:         "zero sum reproduces reference unchanged",
			candidate:    map[string]float64{TechCoal: 0, TechHydro: 0},
			want:         map[string]float64{TechCoal: 40, TechHydro: 60},
			wantFallback: true,
		},
		{
			name:         "empty candidate falls back",
			candidate:    map[string]float64{},
			want:         map[string]float64{TechCoal: 40, TechHydro: 60},
			wantFallback: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fellBack := NormalizeShares(tt.candidate, reference)
			assert.Equal(t, tt.wantFallback, fellBack)
			require.Len(t, got, len(tt.want))
			for tech, want := range tt.want {
				assert.InDelta(t, want, got[tech], shareTolerance, tech)
			}
		})
	}
}

func TestNormalizeShares_SumsToOne(t *testing.T) {
	got, fellBack := NormalizeShares(map[string]float64{
		TechCoal: 13.7, TechGas: 21.9, TechHydro: 5.1, TechWind: 0.4,
	}, nil)
	require.False(t, fellBack)

	var sum float64
	for _, share := range got {
		sum += share
	}
	assert.InDelta(t, 1.0, sum, shareTolerance)
}

func TestResolve_AutomatedModePassesMarketThrough(t *testing.T) {
	market := refdata.ElectricityMarket{Country: "Norway", PriceEURPerKWh: 0.05, CO2KgPerKWh: 0.02}

	supply, err := Resolve(context.Background(), Defaults(), refdata.ElectricityProfile{Country: "Norway"}, market, DefaultFactors())
	require.NoError(t, err)
	assert.Equal(t, 0.05, supply.PriceEURPerKWh)
	assert.Equal(t, 0.02, supply.CO2KgPerKWh)
	assert.False(t, supply.FromMix)
}

func TestResolve_ManualMix(t *testing.T) {
	params := Defaults()
	params.ManualMix = map[string]float64{TechCoal: 40, TechHydro: 60}

	supply, err := Resolve(context.Background(), params,
		refdata.ElectricityProfile{Country: "Norway"},
		refdata.ElectricityMarket{PriceEURPerKWh: 0.05, CO2KgPerKWh: 0.02},
		DefaultFactors())
	require.NoError(t, err)
	assert.True(t, supply.FromMix)

	// 0.4*0.09 + 0.6*0.05 and 0.4*0.820 + 0.6*0.024.
	assert.InDelta(t, 0.066, supply.PriceEURPerKWh, shareTolerance)
	assert.InDelta(t, 0.3424, supply.CO2KgPerKWh, shareTolerance)

	var sum float64
	for _, share := range supply.Shares {
		sum += share
	}
	assert.InDelta(t, 1.0, sum, shareTolerance)
}

func TestResolve_ZeroSumFallsBackToReferenceMix(t *testing.T) {
	params := Defaults()
	params.ManualMix = map[string]float64{TechCoal: 0, TechHydro: 0}

	profile := refdata.ElectricityProfile{
		Country:   "Norway",
		MixShares: map[string]float64{TechCoal: 40, TechHydro: 60},
	}

	supply, err := Resolve(context.Background(), params, profile,
		refdata.ElectricityMarket{PriceEURPerKWh: 0.05}, DefaultFactors())
	require.NoError(t, err)
	assert.InDelta(t, 0.066, supply.PriceEURPerKWh, shareTolerance)
	assert.InDelta(t, 0.3424, supply.CO2KgPerKWh, shareTolerance)
}

func TestResolve_ZeroMixEverywhereIsError(t *testing.T) {
	params := Defaults()
	params.ManualMix = map[string]float64{TechCoal: 0}

	_, err := Resolve(context.Background(), params,
		refdata.ElectricityProfile{Country: "Nowhere"},
		refdata.ElectricityMarket{}, DefaultFactors())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZeroMix)
}

func TestResolve_UnknownTechnology(t *testing.T) {
	params := Defaults()
	params.ManualMix = map[string]float64{"fusion": 100}

	_, err := Resolve(context.Background(), params,
		refdata.ElectricityProfile{Country: "Norway"},
		refdata.ElectricityMarket{}, DefaultFactors())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTechnology)
}
