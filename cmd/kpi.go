package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MohithS04/Food-service-sales/internal/analytics"
	"github.com/MohithS04/Food-service-sales/internal/config"
)

var kpiOutDir string

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Compute dashboard KPIs from a loaded store and export them as JSON",
	RunE:  runKPI,
}

func init() {
	rootCmd.AddCommand(kpiCmd)
	addStoreFlags(kpiCmd)
	kpiCmd.Flags().StringVar(&kpiOutDir, "out", "", "KPI output directory")
}

func runKPI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	db, dialect, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	outDir := cfg.Output.KPIDir
	if kpiOutDir != "" {
		outDir = kpiOutDir
	}
	exporter := &analytics.Exporter{
		DB:      db,
		Dialect: dialect,
		OutDir:  outDir,
		RunID:   uuid.New(),
	}
	if err := exporter.ExportAll(); err != nil {
		return err
	}
	fmt.Printf("  KPI snapshots written to %s\n", outDir)
	return nil
}
