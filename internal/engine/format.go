package engine

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across environments.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// formatFloat formats a float with the given precision and thousand
// separators, e.g. formatFloat(1234.567, 2) -> "1,234.57".
func formatFloat(f float64, precision int) string {
	const base = 10
	multiplier := math.Pow(base, float64(precision))
	rounded := math.Round(f*multiplier) / multiplier

	if precision == 0 {
		return printer.Sprintf("%d", int64(rounded))
	}

	formatted := fmt.Sprintf(fmt.Sprintf("%%.%df", precision), rounded)
	if dot := strings.IndexByte(formatted, '.'); dot >= 0 {
		intPart := formatted[:dot]
		negative := strings.HasPrefix(intPart, "-")
		digits := strings.TrimPrefix(intPart, "-")
		var n int64
		valid := digits != ""
		for _, c := range digits {
			if c < '0' || c > '9' {
				valid = false
				break
			}
			n = n*base + int64(c-'0')
		}
		if valid {
			grouped := printer.Sprintf("%d", n)
			if negative {
				grouped = "-" + grouped
			}
			return grouped + formatted[dot:]
		}
	}
	return formatted
}
