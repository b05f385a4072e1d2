package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/store"
	"github.com/MohithS04/Food-service-sales/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run SQL consistency checks against a loaded store",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addStoreFlags(validateCmd)
}

// openStore opens the query-side handle for whichever driver the load
// flags select.
func openStore(cfg *config.Config) (*sql.DB, store.Dialect, error) {
	switch loadFlags.driver {
	case "sqlite":
		dbPath := cfg.Output.SQLitePath
		if loadFlags.dbPath != "" {
			dbPath = loadFlags.dbPath
		}
		db, err := store.OpenSQLite(dbPath)
		return db, store.DialectSQLite, err
	case "postgres":
		connStr, err := resolvePostgresConn()
		if err != nil {
			return nil, "", err
		}
		db, err := store.OpenPostgresDB(connStr)
		return db, store.DialectPostgres, err
	}
	return nil, "", fmt.Errorf("unknown driver %q (use sqlite or postgres)", loadFlags.driver)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	db, _, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	report, err := validate.RunSQL(db)
	if err != nil {
		return fmt.Errorf("run checks: %w", err)
	}
	printReport(report)
	if !report.Passed() {
		return fmt.Errorf("%d checks failed", len(report.Failures()))
	}
	fmt.Println("\n  All hard checks passed")
	return nil
}
