package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
)

// csvExportDecimals is the rounding applied to every numeric export field.
const csvExportDecimals = 2

// csvHeader is the column order of the CSV export, the sole persisted
// artifact of an estimation run.
//
//nolint:gochecknoglobals // Fixed export schema.
var csvHeader = []string{
	"country",
	"electricity_price_eur_per_kwh",
	"electricity_cost_eur_per_t",
	"labour_cost_eur_per_t",
	"material_cost_eur_per_t",
	"margin_eur_per_t",
	"carbon_cost_eur_per_t",
	"total_cost_eur_per_t",
	"electricity_co2_kg_per_t",
	"non_electricity_co2_kg_per_t",
	"total_co2_kg_per_t",
	"aluminium_t",
	"total_co2_t",
}

// WriteCSV writes the result collection as the flat CSV export, numeric
// fields rounded to two decimals.
func WriteCSV(w io.Writer, results []CountryResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, r := range results {
		record := []string{
			r.Country,
			round(r.ElectricityPrice),
			round(r.Costs.ElectricityCost),
			round(r.Costs.LabourCost),
			round(r.Costs.MaterialCost),
			round(r.Costs.MarginCost),
			round(r.Costs.CarbonCost),
			round(r.Costs.TotalCost),
			round(r.ElectricityCO2KgPerT),
			round(r.NonElectricityCO2KgPerT),
			round(r.TotalCO2KgPerT),
			round(r.AluminiumT),
			round(r.TotalCO2T),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", r.Country, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// ExportCSV writes the CSV export to a file.
func ExportCSV(path string, results []CountryResult) error {
	f, err := os.Create(path) //nolint:gosec // Path comes from the operator's --export flag.
	if err != nil {
		return fmt.Errorf("creating export file %s: %w", path, err)
	}
	if err := WriteCSV(f, results); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export file %s: %w", path, err)
	}
	return nil
}

// round renders a float rounded half-up to two decimals. Decimal arithmetic
// avoids the float artifacts of fmt-based rounding at the export boundary.
func round(v float64) string {
	return decimal.NewFromFloat(v).Round(csvExportDecimals).String()
}
