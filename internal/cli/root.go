// Package cli wires the alufocus cobra commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/smelterlab/alufocus/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root cobra command for the alufocus CLI.
// It wires up logging and the estimate and countries subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alufocus",
		Short:   "Aluminium production cost and CO₂ decision support",
		Long:    "alufocus estimates the cost (€/t) and carbon footprint (kg CO₂/t) of primary aluminium production by country under adjustable policy and technology parameters.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			config.CloseLogger()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to alufocus.yaml (optional)")
	cmd.PersistentFlags().String("data-dir", "", "directory containing the reference CSV tables")

	cmd.AddCommand(NewEstimateCmd(), NewCountriesCmd())
	return cmd
}

const rootCmdExample = `  # Estimate all countries under the default scenario
  alufocus estimate --data-dir ./data

  # Raise the carbon price and export the result table
  alufocus estimate --data-dir ./data --carbon-tax 120 --export results.csv

  # Manual generation mix (shares are normalized)
  alufocus estimate --data-dir ./data --mix coal=20,hydro=50,wind=30

  # Restrict to specific countries, JSON output
  alufocus estimate --data-dir ./data --countries Norway,Iceland --output json

  # List countries with complete reference coverage
  alufocus countries --data-dir ./data`
