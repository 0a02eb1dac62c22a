package refdata

import (
	"math"
	"strconv"
	"strings"
)

// parseNumeric coerces a raw CSV cell into a float64.
//
// The source tables store some tonnage columns as comma-grouped strings
// ("1,234,567"). Commas are stripped before parsing. Empty, malformed, NaN,
// and infinite cells all coerce to 0: a bad cell contributes nothing to a
// balance instead of poisoning it.
func parseNumeric(raw string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// isEmptyRecord reports whether every cell in a CSV record is blank after
// trimming. Fully-empty rows are dropped during the cleaning pass.
func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// cell returns the record value at the header index for name, or "" when the
// column is absent or the record is short.
func cell(record []string, headers map[string]int, name string) string {
	idx, ok := headers[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}
