package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MohithS04/Food-service-sales/internal/config"
	"github.com/MohithS04/Food-service-sales/internal/logging"
	"github.com/MohithS04/Food-service-sales/internal/store"
)

var loadFlags struct {
	driver   string
	csvDir   string
	dbPath   string
	host     string
	port     int
	user     string
	password string
	dbName   string
	sslMode  string
}

const defaultPGPort = 5432

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-load the generated CSV files into SQLite or PostgreSQL",
	RunE:  runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	addStoreFlags(loadCmd)
	loadCmd.Flags().StringVar(&loadFlags.csvDir, "csv-dir", "", "CSV input directory")
}

// addStoreFlags registers the store-selection flags shared by every
// command that talks to a loaded database.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&loadFlags.driver, "driver", "sqlite", "target store: sqlite or postgres")
	cmd.Flags().StringVar(&loadFlags.dbPath, "db", "", "SQLite database path")
	cmd.Flags().StringVar(&loadFlags.host, "host", "", "PostgreSQL host (or FOODSVC_PGHOST env)")
	cmd.Flags().IntVar(&loadFlags.port, "port", 0, "PostgreSQL port (default 5432, or FOODSVC_PGPORT env)")
	cmd.Flags().StringVar(&loadFlags.user, "user", "", "PostgreSQL username (or FOODSVC_PGUSER env)")
	cmd.Flags().StringVar(&loadFlags.dbName, "dbname", "foodservice", "PostgreSQL database name")
	cmd.Flags().StringVar(&loadFlags.sslMode, "sslmode", "prefer", "PostgreSQL sslmode")
}

// promptPassword reads a password without echo, falling back to a plain
// line read when no terminal is attached.
func promptPassword(prompt string) string {
	fmt.Print(prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}
	return string(pass)
}

func resolvePostgresConn() (string, error) {
	if loadFlags.host == "" {
		loadFlags.host = os.Getenv("FOODSVC_PGHOST")
	}
	if loadFlags.port == 0 {
		if p := os.Getenv("FOODSVC_PGPORT"); p != "" {
			if port, err := strconv.Atoi(p); err == nil {
				loadFlags.port = port
			}
		}
	}
	if loadFlags.port == 0 {
		loadFlags.port = defaultPGPort
	}
	if loadFlags.user == "" {
		loadFlags.user = os.Getenv("FOODSVC_PGUSER")
	}
	if loadFlags.password == "" {
		loadFlags.password = os.Getenv("FOODSVC_PGPASSWORD")
		if loadFlags.password == "" {
			loadFlags.password = os.Getenv("PGPASSWORD")
		}
	}
	if loadFlags.host == "" || loadFlags.user == "" {
		return "", fmt.Errorf("postgres driver needs --host and --user (or FOODSVC_PGHOST / FOODSVC_PGUSER)")
	}
	if loadFlags.password == "" {
		loadFlags.password = promptPassword("  Password: ")
	}
	return store.BuildConnStr(loadFlags.host, loadFlags.port, loadFlags.user,
		loadFlags.password, loadFlags.dbName, loadFlags.sslMode), nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	csvDir := cfg.Output.CSVDir
	if loadFlags.csvDir != "" {
		csvDir = loadFlags.csvDir
	}

	switch loadFlags.driver {
	case "sqlite":
		dbPath := cfg.Output.SQLitePath
		if loadFlags.dbPath != "" {
			dbPath = loadFlags.dbPath
		}
		db, err := store.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := store.LoadSQLite(db, csvDir); err != nil {
			return err
		}
		logging.Info().Str("db", dbPath).Msg("load complete")
		return nil

	case "postgres":
		connStr, err := resolvePostgresConn()
		if err != nil {
			return err
		}
		if err := store.LoadPostgres(cmd.Context(), connStr, csvDir); err != nil {
			return err
		}
		logging.Info().Str("host", loadFlags.host).Str("db", loadFlags.dbName).Msg("load complete")
		return nil
	}
	return fmt.Errorf("unknown driver %q (use sqlite or postgres)", loadFlags.driver)
}
