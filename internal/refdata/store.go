package refdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/smelterlab/alufocus/internal/logging"
)

// Column names shared across the reference tables.
const (
	colCountry = "country"
	colEnergy  = "energy_kwh_per_t"
	colLabour  = "labour_cost_eur_per_t"
)

// Paths names the six reference CSV files on disk.
type Paths struct {
	ElectricityMix   string
	ElectricityPrice string
	AluminaCosts     string
	PetcokeCosts     string
	MaterialsTrade   string
	TradeFlows       string
}

// Store holds the cleaned reference tables. It is immutable after Load; all
// lookup methods are safe for concurrent use.
type Store struct {
	profiles  map[CountryKey]ElectricityProfile
	markets   map[CountryKey]ElectricityMarket
	alumina   map[CountryKey]MaterialCost
	petcoke   map[CountryKey]MaterialCost
	trade     map[CountryKey][]MaterialsTradeRow
	flows     []TradeFlowRow
	countries []CountryKey
}

// Load opens the six reference tables and builds a Store.
//
// The materials-trade table is an optional alternate cost source: a missing
// file is logged and skipped. Every other table must open and parse.
func Load(ctx context.Context, paths Paths) (*Store, error) {
	log := logging.FromContext(ctx)

	open := func(path string) (*os.File, error) {
		f, err := os.Open(path) //nolint:gosec // Paths come from operator configuration.
		if err != nil {
			return nil, fmt.Errorf("opening reference table %s: %w", path, err)
		}
		return f, nil
	}

	src := Sources{}

	mixFile, err := open(paths.ElectricityMix)
	if err != nil {
		return nil, err
	}
	defer mixFile.Close()
	src.ElectricityMix = mixFile

	priceFile, err := open(paths.ElectricityPrice)
	if err != nil {
		return nil, err
	}
	defer priceFile.Close()
	src.ElectricityPrice = priceFile

	aluminaFile, err := open(paths.AluminaCosts)
	if err != nil {
		return nil, err
	}
	defer aluminaFile.Close()
	src.AluminaCosts = aluminaFile

	petcokeFile, err := open(paths.PetcokeCosts)
	if err != nil {
		return nil, err
	}
	defer petcokeFile.Close()
	src.PetcokeCosts = petcokeFile

	flowsFile, err := open(paths.TradeFlows)
	if err != nil {
		return nil, err
	}
	defer flowsFile.Close()
	src.TradeFlows = flowsFile

	if paths.MaterialsTrade != "" {
		tradeFile, terr := os.Open(paths.MaterialsTrade) //nolint:gosec // Operator-configured path.
		if terr != nil {
			log.Warn().
				Str("component", "refdata").
				Str("path", paths.MaterialsTrade).
				Err(terr).
				Msg("materials-trade table unavailable, trade-based material costs disabled")
		} else {
			defer tradeFile.Close()
			src.MaterialsTrade = tradeFile
		}
	}

	return LoadSources(ctx, src)
}

// Sources is the reader form of Paths, used by Load and by tests.
// MaterialsTrade may be nil.
type Sources struct {
	ElectricityMix   io.Reader
	ElectricityPrice io.Reader
	AluminaCosts     io.Reader
	PetcokeCosts     io.Reader
	MaterialsTrade   io.Reader
	TradeFlows       io.Reader
}

// LoadSources builds a Store from raw table readers, applying the one-time
// cleaning pass (country trimming, comma stripping, numeric coercion,
// empty-row dropping) to every table.
func LoadSources(ctx context.Context, src Sources) (*Store, error) {
	log := logging.FromContext(ctx)

	s := &Store{
		profiles: make(map[CountryKey]ElectricityProfile),
		markets:  make(map[CountryKey]ElectricityMarket),
		alumina:  make(map[CountryKey]MaterialCost),
		petcoke:  make(map[CountryKey]MaterialCost),
		trade:    make(map[CountryKey][]MaterialsTradeRow),
	}

	if err := s.loadProfiles(src.ElectricityMix); err != nil {
		return nil, fmt.Errorf("electricity mix table: %w", err)
	}
	if err := s.loadMarkets(src.ElectricityPrice); err != nil {
		return nil, fmt.Errorf("electricity price table: %w", err)
	}
	if err := s.loadMaterial(src.AluminaCosts, "alumina", s.alumina); err != nil {
		return nil, fmt.Errorf("alumina cost table: %w", err)
	}
	if err := s.loadMaterial(src.PetcokeCosts, "petcoke", s.petcoke); err != nil {
		return nil, fmt.Errorf("petcoke cost table: %w", err)
	}
	if src.MaterialsTrade != nil {
		if err := s.loadMaterialsTrade(src.MaterialsTrade); err != nil {
			return nil, fmt.Errorf("materials trade table: %w", err)
		}
	}
	if err := s.loadFlows(src.TradeFlows); err != nil {
		return nil, fmt.Errorf("trade flow table: %w", err)
	}

	for key := range s.profiles {
		s.countries = append(s.countries, key)
	}
	sort.Slice(s.countries, func(i, j int) bool { return s.countries[i] < s.countries[j] })

	log.Info().
		Str("component", "refdata").
		Int("countries", len(s.countries)).
		Int("markets", len(s.markets)).
		Int("flow_rows", len(s.flows)).
		Msg("reference tables loaded")

	return s, nil
}

// readTable reads a CSV stream into a lowercased header index and cleaned
// records. Fully-empty rows are dropped here.
func readTable(r io.Reader) (map[string]int, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, ErrEmptyTable
		}
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	headers := make(map[string]int, len(header))
	for i, h := range header {
		headers[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken row is treated like a malformed cell:
			// skipped, not fatal.
			continue
		}
		if isEmptyRecord(record) {
			continue
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptyTable
	}
	return headers, rows, nil
}

// requireColumns verifies that every named column exists in the header map.
func requireColumns(headers map[string]int, names ...string) error {
	for _, name := range names {
		if _, ok := headers[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return nil
}

// loadProfiles parses the country electricity-mix table. Any column beyond
// the three fixed ones is interpreted as a generation-technology share keyed
// by its header name.
func (s *Store) loadProfiles(r io.Reader) error {
	headers, rows, err := readTable(r)
	if err != nil {
		return err
	}
	if err := requireColumns(headers, colCountry, colEnergy, colLabour); err != nil {
		return err
	}

	fixed := map[string]bool{colCountry: true, colEnergy: true, colLabour: true}
	var shareCols []string
	for name := range headers {
		if !fixed[name] {
			shareCols = append(shareCols, name)
		}
	}

	for _, record := range rows {
		key := NormalizeCountry(cell(record, headers, colCountry))
		if key == "" {
			continue
		}
		p := ElectricityProfile{
			Country:           key,
			EnergyKWhPerT:     parseNumeric(cell(record, headers, colEnergy)),
			LabourCostEURPerT: parseNumeric(cell(record, headers, colLabour)),
		}
		if len(shareCols) > 0 {
			p.MixShares = make(map[string]float64, len(shareCols))
			for _, name := range shareCols {
				v := parseNumeric(cell(record, headers, name))
				if v < 0 {
					v = 0
				}
				p.MixShares[name] = v
			}
		}
		s.profiles[key] = p
	}
	return nil
}

// loadMarkets parses the electricity price/CO2 table.
func (s *Store) loadMarkets(r io.Reader) error {
	headers, rows, err := readTable(r)
	if err != nil {
		return err
	}
	const (
		colPrice = "avg_electricity_price_eur_per_kwh"
		colCO2   = "avg_co2_kg_per_kwh"
	)
	if err := requireColumns(headers, colCountry, colPrice, colCO2); err != nil {
		return err
	}

	for _, record := range rows {
		key := NormalizeCountry(cell(record, headers, colCountry))
		if key == "" {
			continue
		}
		s.markets[key] = ElectricityMarket{
			Country:        key,
			PriceEURPerKWh: parseNumeric(cell(record, headers, colPrice)),
			CO2KgPerKWh:    parseNumeric(cell(record, headers, colCO2)),
		}
	}
	return nil
}

// loadMaterial parses a material cost table (alumina or petcoke). The price
// and transport column names are prefixed with the material name.
func (s *Store) loadMaterial(r io.Reader, material string, dst map[CountryKey]MaterialCost) error {
	headers, rows, err := readTable(r)
	if err != nil {
		return err
	}
	priceCol := material + "_market_price_eur_per_t"
	transportCol := material + "_transport_cost_eur_per_t"
	if err := requireColumns(headers, colCountry, priceCol, transportCol); err != nil {
		return err
	}

	for _, record := range rows {
		key := NormalizeCountry(cell(record, headers, colCountry))
		if key == "" {
			continue
		}
		dst[key] = MaterialCost{
			Country:              key,
			MarketPriceEURPerT:   parseNumeric(cell(record, headers, priceCol)),
			TransportCostEURPerT: parseNumeric(cell(record, headers, transportCol)),
		}
	}
	return nil
}

// loadMaterialsTrade parses the simplified materials-trade table.
func (s *Store) loadMaterialsTrade(r io.Reader) error {
	headers, rows, err := readTable(r)
	if err != nil {
		return err
	}
	const (
		colTradeCountry = "aluminium_country"
		colWeight       = "weight"
		colPrice        = "price_eur_per_t"
	)
	if err := requireColumns(headers, colTradeCountry, colWeight, colPrice); err != nil {
		return err
	}

	for _, record := range rows {
		key := NormalizeCountry(cell(record, headers, colTradeCountry))
		if key == "" {
			continue
		}
		s.trade[key] = append(s.trade[key], MaterialsTradeRow{
			Country:      key,
			WeightT:      parseNumeric(cell(record, headers, colWeight)),
			PriceEURPerT: parseNumeric(cell(record, headers, colPrice)),
		})
	}
	return nil
}

// loadFlows parses the bauxite/alumina trade-flow table.
func (s *Store) loadFlows(r io.Reader) error {
	headers, rows, err := readTable(r)
	if err != nil {
		return err
	}
	// Every flow column is optional per row, but the table must at least
	// declare the bauxite import columns to be usable.
	if err := requireColumns(headers, "bauxite_destination_m", "bauxite_tonnes_m"); err != nil {
		return err
	}

	for _, record := range rows {
		s.flows = append(s.flows, TradeFlowRow{
			BauxiteImporter: NormalizeCountry(cell(record, headers, "bauxite_destination_m")),
			BauxiteImportT:  parseNumeric(cell(record, headers, "bauxite_tonnes_m")),
			BauxiteExporter: NormalizeCountry(cell(record, headers, "bauxite_destination_x")),
			BauxiteExportT:  parseNumeric(cell(record, headers, "bauxite_tonnes_x")),
			BauxiteLocal:    NormalizeCountry(cell(record, headers, "bauxite_local_country")),
			BauxiteLocalT:   parseNumeric(cell(record, headers, "bauxite_local_tonnes")),
			AluminaImporter: NormalizeCountry(cell(record, headers, "alumina_destination_m")),
			AluminaImportT:  parseNumeric(cell(record, headers, "alumina_tonnes_m")),
			AluminaExporter: NormalizeCountry(cell(record, headers, "alumina_destination_x")),
			AluminaExportT:  parseNumeric(cell(record, headers, "alumina_tonnes_x")),
			GridCountry:     NormalizeCountry(cell(record, headers, "country1")),
			GridCO2:         parseNumeric(cell(record, headers, "avg_co2_kg_per_kwh")),
			EnergyCountry:   NormalizeCountry(cell(record, headers, "country2")),
			EnergyKWhPerT:   parseNumeric(cell(record, headers, "energy_kwh_per_t")),
		})
	}
	return nil
}

// Profile returns the electricity profile for a country.
func (s *Store) Profile(country CountryKey) (ElectricityProfile, bool) {
	p, ok := s.profiles[country]
	return p, ok
}

// Market returns the electricity market record for a country.
func (s *Store) Market(country CountryKey) (ElectricityMarket, bool) {
	m, ok := s.markets[country]
	return m, ok
}

// AluminaCost returns the alumina cost record for a country.
func (s *Store) AluminaCost(country CountryKey) (MaterialCost, bool) {
	c, ok := s.alumina[country]
	return c, ok
}

// PetcokeCost returns the petcoke cost record for a country.
func (s *Store) PetcokeCost(country CountryKey) (MaterialCost, bool) {
	c, ok := s.petcoke[country]
	return c, ok
}

// MaterialsTrade returns the materials-trade rows observed for a country.
// The returned slice is shared reference data and must not be mutated.
func (s *Store) MaterialsTrade(country CountryKey) []MaterialsTradeRow {
	return s.trade[country]
}

// Flows returns the full trade-flow table. The returned slice is shared
// reference data and must not be mutated.
func (s *Store) Flows() []TradeFlowRow {
	return s.flows
}

// Countries returns every country present in the electricity-mix table, in
// sorted order. This is the default selection for an estimation run.
func (s *Store) Countries() []CountryKey {
	out := make([]CountryKey, len(s.countries))
	copy(out, s.countries)
	return out
}
