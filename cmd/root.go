// Package cmd wires the foodsvc CLI: dataset generation, store loading,
// validation and KPI export.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/MohithS04/Food-service-sales/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "foodsvc [command]",
	Short: "Synthetic foodservice sales dataset generator and analytics loader",
	Long: `Generates a referentially-consistent synthetic foodservice distribution
dataset (master data, CRM events, weekly shipments 2015-2025), validates it,
loads it into SQLite or PostgreSQL, and exports dashboard KPI snapshots.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./foodsvc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
