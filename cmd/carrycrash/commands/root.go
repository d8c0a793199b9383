package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carrycrash",
	Short: "AUDJPY carry-crash research pipeline",
	Long: `carrycrash - AUDJPY carry-crash study

Builds weekly AUDJPY spot and carry returns from raw CSV exports, derives
a risk-reversal fear signal, and tests whether spikes in fear predict the
next weeks' returns (event study + Newey-West regressions).

Usage:
  go run ./cmd/carrycrash [command]

Examples:
  go run ./cmd/carrycrash study run
  go run ./cmd/carrycrash study run --horizon 8 --quantile 0.05
  go run ./cmd/carrycrash study run --config carrycrash.yaml --verbose`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "yaml config file (default: CARRYCRASH_CONFIG env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output with sanity diagnostics")
}
