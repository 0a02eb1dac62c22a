package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewCountriesCmd creates the "countries" subcommand listing the countries
// in the reference data and their table coverage.
func NewCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List countries and their reference-data coverage",
		Long: `List every country present in the electricity-mix table, whether it has the
electricity-price, alumina-cost, and petcoke-cost rows required to enter an
estimation result set, and whether a reference generation mix is available.`,
		RunE: runCountries,
	}
}

func runCountries(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := loadStore(cmd, cfg)
	if err != nil {
		return err
	}

	const pad = 2
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, pad, ' ', 0)
	if _, err := fmt.Fprintln(tw, "COUNTRY\tELECTRICITY\tALUMINA\tPETCOKE\tMIX"); err != nil {
		return err
	}

	mark := func(ok bool) string {
		if ok {
			return "yes"
		}
		return "-"
	}

	for _, country := range store.Countries() {
		_, hasMarket := store.Market(country)
		_, hasAlumina := store.AluminaCost(country)
		_, hasPetcoke := store.PetcokeCost(country)
		profile, _ := store.Profile(country)
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			country, mark(hasMarket), mark(hasAlumina), mark(hasPetcoke), mark(profile.HasMix())); err != nil {
			return err
		}
	}
	return tw.Flush()
}
