package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/generator"
	"github.com/MohithS04/Food-service-sales/internal/store"
	"github.com/MohithS04/Food-service-sales/internal/validate"
)

var genFlags struct {
	seed      int64
	startDate string
	endDate   string
	operators int
	workers   int
	outDir    string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic dataset and write it as CSV files",
	Long: `Generates territories, distributors, products, sales reps, operators,
CRM accounts/opportunities/activities and weekly shipment facts, validates
the result in memory, and writes one CSV file per table. Nothing is written
when a hard validation check fails.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int64Var(&genFlags.seed, "seed", 0, "random seed (0 = config default)")
	generateCmd.Flags().StringVar(&genFlags.startDate, "start", "", "horizon start date YYYY-MM-DD")
	generateCmd.Flags().StringVar(&genFlags.endDate, "end", "", "horizon end date YYYY-MM-DD")
	generateCmd.Flags().IntVar(&genFlags.operators, "operators", 0, "operator count override")
	generateCmd.Flags().IntVarP(&genFlags.workers, "parallel", "p", 0, "max parallel shipment shards")
	generateCmd.Flags().StringVarP(&genFlags.outDir, "out", "o", "", "CSV output directory")
}

func loadGenerateConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if genFlags.seed != 0 {
		cfg.Seed = genFlags.seed
	}
	if genFlags.startDate != "" {
		cfg.StartDate = genFlags.startDate
	}
	if genFlags.endDate != "" {
		cfg.EndDate = genFlags.endDate
	}
	if genFlags.operators > 0 {
		cfg.Counts.Operators = genFlags.operators
	}
	if genFlags.workers > 0 {
		cfg.Shipments.Workers = genFlags.workers
	}
	if genFlags.outDir != "" {
		cfg.Output.CSVDir = genFlags.outDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadGenerateConfig()
	if err != nil {
		return err
	}
	return generateAndWrite(cmd, cfg)
}

func generateAndWrite(cmd *cobra.Command, cfg *config.Config) error {
	ds, stats, err := generator.Run(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("generate dataset: %w", err)
	}

	report := validate.Dataset(cfg, ds)
	printReport(report)
	if !report.Passed() {
		return fmt.Errorf("validation failed, nothing written")
	}

	if err := store.WriteCSVDir(cfg.Output.CSVDir, ds); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════")
	fmt.Println("  Generation Summary")
	fmt.Println("═══════════════════════════════════════════════")
	fmt.Printf("  Run ID:  %s\n", stats.RunID)
	fmt.Printf("  Seed:    %d\n", cfg.Seed)
	fmt.Printf("  Horizon: %s to %s\n", cfg.StartDate, cfg.EndDate)
	fmt.Println()
	for _, table := range sortedKeys(stats.Generated) {
		fmt.Printf("  %-15s %12d rows\n", table, stats.Generated[table])
	}
	if len(stats.Skipped) > 0 {
		fmt.Println()
		for _, reason := range sortedKeys(stats.Skipped) {
			fmt.Printf("  skipped %-30s %d\n", reason, stats.Skipped[reason])
		}
	}
	if len(stats.Defects) > 0 {
		fmt.Println()
		for _, reason := range sortedKeys(stats.Defects) {
			fmt.Printf("  defect  %-30s %d\n", reason, stats.Defects[reason])
		}
	}
	fmt.Printf("\n  Output: %s\n", cfg.Output.CSVDir)
	fmt.Println("═══════════════════════════════════════════════")
	return nil
}

func printReport(report *validate.Report) {
	fmt.Println()
	fmt.Println("── Validation ──────────────────────────────────")
	for _, c := range report.Checks {
		status := "ok"
		if !c.Passed() {
			status = "FAIL"
			if c.Severity == validate.SeveritySoft {
				status = "warn"
			}
		}
		line := fmt.Sprintf("  [%-4s] %-35s %d violations", status, c.Name, c.Violations)
		if c.Detail != "" {
			line += "  (" + c.Detail + ")"
		}
		fmt.Println(line)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
