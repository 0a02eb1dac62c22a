package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// OutputFormat selects how aggregated results are rendered.
type OutputFormat string

const (
	// OutputTable renders an aligned text table.
	OutputTable OutputFormat = "table"
	// OutputJSON renders an indented JSON array.
	OutputJSON OutputFormat = "json"
	// OutputCSV renders the flat CSV export format.
	OutputCSV OutputFormat = "csv"
)

// ParseOutputFormat validates a format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputTable, OutputJSON, OutputCSV:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected table, json, or csv)", s)
	}
}

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// RenderResults writes the result collection to w in the requested format.
func RenderResults(w io.Writer, results []CountryResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, results)
	case OutputCSV:
		return WriteCSV(w, results)
	default:
		return renderTable(w, results)
	}
}

func renderJSON(w io.Writer, results []CountryResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// renderTable writes an aligned text table of the headline columns. The full
// field set is available through the JSON and CSV formats.
func renderTable(w io.Writer, results []CountryResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No countries with complete reference data for this scenario.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintln(tw,
		"COUNTRY\tELEC €/t\tLABOUR €/t\tMATERIAL €/t\tMARGIN €/t\tCARBON €/t\tTOTAL €/t\tCO₂ kg/t"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Country,
			formatFloat(r.Costs.ElectricityCost, 2),
			formatFloat(r.Costs.LabourCost, 2),
			formatFloat(r.Costs.MaterialCost, 2),
			formatFloat(r.Costs.MarginCost, 2),
			formatFloat(r.Costs.CarbonCost, 2),
			formatFloat(r.Costs.TotalCost, 2),
			formatFloat(r.TotalCO2KgPerT, 0),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
