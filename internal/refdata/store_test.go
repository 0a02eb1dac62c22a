package refdata

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSources(t *testing.T) Sources {
	t.Helper()
	return Sources{
		ElectricityMix: strings.NewReader(
			"country,energy_kwh_per_t,labour_cost_eur_per_t,coal,hydro\n" +
				"  Norway ,13500,420,2,98\n" +
				"China,13800,180,78,16\n" +
				",,,,\n" + // fully empty row, dropped
				"Iceland,13200,390,0,70\n"),
		ElectricityPrice: strings.NewReader(
			"country,avg_electricity_price_eur_per_kwh,avg_co2_kg_per_kwh\n" +
				"Norway,0.05,0.02\n" +
				"China,0.08,0.58\n"),
		AluminaCosts: strings.NewReader(
			"country,alumina_market_price_eur_per_t,alumina_transport_cost_eur_per_t\n" +
				"Norway,350,50\n" +
				"China,330,20\n"),
		PetcokeCosts: strings.NewReader(
			"country,petcoke_market_price_eur_per_t,petcoke_transport_cost_eur_per_t\n" +
				"Norway,250,50\n" +
				"China,240,30\n"),
		MaterialsTrade: strings.NewReader(
			"aluminium_country,weight,price_eur_per_t\n" +
				"Norway,\"1,200\",700\n" +
				"Norway,800,650\n"),
		TradeFlows: strings.NewReader(
			"Bauxite_destination_m,Bauxite_tonnes_m,Bauxite_destination_x,Bauxite_tonnes_x," +
				"Bauxite_local_country,Bauxite_local_tonnes,Alumina_destination_m,Alumina_tonnes_m," +
				"Alumina_destination_x,Alumina_tonnes_x,country1,avg_co2_kg_per_kwh,country2,energy_kwh_per_t\n" +
				"Norway,\"3,000,000\",,,,,,,,,Norway,0.02,Norway,13500\n" +
				",,China,\"2,000,000\",China,\"9,000,000\",,,,,China,0.58,China,13800\n" +
				"China,not-a-number,,,,,,,,,,,,\n"),
	}
}

func TestLoadSources_CleaningAndLookups(t *testing.T) {
	store, err := LoadSources(context.Background(), testSources(t))
	require.NoError(t, err)

	// Country names are trimmed at load: " Norway " joins as "Norway".
	profile, ok := store.Profile("Norway")
	require.True(t, ok)
	assert.Equal(t, 13500.0, profile.EnergyKWhPerT)
	assert.Equal(t, 420.0, profile.LabourCostEURPerT)
	require.True(t, profile.HasMix())
	assert.Equal(t, 2.0, profile.MixShares["coal"])
	assert.Equal(t, 98.0, profile.MixShares["hydro"])

	market, ok := store.Market("China")
	require.True(t, ok)
	assert.Equal(t, 0.08, market.PriceEURPerKWh)
	assert.Equal(t, 0.58, market.CO2KgPerKWh)

	alumina, ok := store.AluminaCost("Norway")
	require.True(t, ok)
	assert.Equal(t, 400.0, alumina.Total())

	petcoke, ok := store.PetcokeCost("China")
	require.True(t, ok)
	assert.Equal(t, 270.0, petcoke.Total())

	// Comma-grouped tonnages are coerced to numbers.
	flows := store.Flows()
	require.Len(t, flows, 3)
	assert.Equal(t, 3_000_000.0, flows[0].BauxiteImportT)
	assert.Equal(t, 2_000_000.0, flows[1].BauxiteExportT)
	assert.Equal(t, 9_000_000.0, flows[1].BauxiteLocalT)

	// Malformed numeric cells coerce to zero, never error.
	assert.Equal(t, 0.0, flows[2].BauxiteImportT)
	assert.Equal(t, CountryKey("China"), flows[2].BauxiteImporter)

	trade := store.MaterialsTrade("Norway")
	require.Len(t, trade, 2)
	assert.Equal(t, 1200.0, trade[0].WeightT)
}

func TestLoadSources_LookupMissIsAbsence(t *testing.T) {
	store, err := LoadSources(context.Background(), testSources(t))
	require.NoError(t, err)

	// Iceland has a profile but no market, material, or flow rows.
	_, ok := store.Profile("Iceland")
	assert.True(t, ok)
	_, ok = store.Market("Iceland")
	assert.False(t, ok)
	_, ok = store.AluminaCost("Iceland")
	assert.False(t, ok)
	_, ok = store.PetcokeCost("Iceland")
	assert.False(t, ok)
	assert.Empty(t, store.MaterialsTrade("Iceland"))
}

func TestLoadSources_CountriesSorted(t *testing.T) {
	store, err := LoadSources(context.Background(), testSources(t))
	require.NoError(t, err)

	assert.Equal(t, []CountryKey{"China", "Iceland", "Norway"}, store.Countries())
}

func TestLoadSources_MissingColumn(t *testing.T) {
	src := testSources(t)
	src.ElectricityPrice = strings.NewReader("country,price\nNorway,0.05\n")

	_, err := LoadSources(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadSources_EmptyTable(t *testing.T) {
	src := testSources(t)
	src.AluminaCosts = strings.NewReader("country,alumina_market_price_eur_per_t,alumina_transport_cost_eur_per_t\n")

	_, err := LoadSources(context.Background(), src)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestLoadSources_OptionalMaterialsTrade(t *testing.T) {
	src := testSources(t)
	src.MaterialsTrade = nil

	store, err := LoadSources(context.Background(), src)
	require.NoError(t, err)
	assert.Empty(t, store.MaterialsTrade("Norway"))
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "plain number", raw: "123.45", want: 123.45},
		{name: "comma grouped", raw: "1,234,567", want: 1234567},
		{name: "padded", raw: "  42 ", want: 42},
		{name: "empty", raw: "", want: 0},
		{name: "malformed", raw: "n/a", want: 0},
		{name: "nan literal", raw: "NaN", want: 0},
		{name: "negative", raw: "-3.5", want: -3.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseNumeric(tt.raw))
		})
	}
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, CountryKey("Norway"), NormalizeCountry("  Norway \t"))
	assert.Equal(t, CountryKey(""), NormalizeCountry("   "))
}
