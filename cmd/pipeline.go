package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MohithS04/Food-service-sales/internal/analytics"
	"github.com/MohithS04/Food-service-sales/internal/logging"
	"github.com/MohithS04/Food-service-sales/internal/store"
	"github.com/MohithS04/Food-service-sales/internal/validate"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full pipeline: generate, load into SQLite, validate, export KPIs",
	RunE:  runPipeline,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadGenerateConfig()
	if err != nil {
		return err
	}

	logging.Info().Msg("pipeline: generate")
	if err := generateAndWrite(cmd, cfg); err != nil {
		return err
	}

	logging.Info().Msg("pipeline: load sqlite")
	db, err := store.OpenSQLite(cfg.Output.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.LoadSQLite(db, cfg.Output.CSVDir); err != nil {
		return err
	}

	logging.Info().Msg("pipeline: validate store")
	report, err := validate.RunSQL(db)
	if err != nil {
		return err
	}
	printReport(report)
	if !report.Passed() {
		return fmt.Errorf("store validation failed")
	}

	logging.Info().Msg("pipeline: export kpis")
	exporter := &analytics.Exporter{
		DB:      db,
		Dialect: store.DialectSQLite,
		OutDir:  cfg.Output.KPIDir,
		RunID:   uuid.New(),
	}
	if err := exporter.ExportAll(); err != nil {
		return err
	}

	fmt.Printf("\n  Pipeline complete: %s, %s\n", cfg.Output.SQLitePath, cfg.Output.KPIDir)
	return nil
}
