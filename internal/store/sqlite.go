package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/MohithS04/Food-service-sales/internal/logging"
)

// sqliteBatchRows bounds the rows per INSERT statement. SQLite caps bound
// parameters per statement, so keep rows * columns well under that limit.
const sqliteBatchRows = 500

// OpenSQLite opens (creating if needed) a SQLite database with WAL mode,
// a busy timeout and foreign keys enforced.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return db, nil
}

// LoadSQLite creates the schema and bulk-loads every table from the CSV
// directory in FK-safe order, using chunked multi-row INSERTs inside
// transactions. Existing rows are cleared first so reloads are idempotent.
func LoadSQLite(db *sql.DB, csvDir string) error {
	tables := TablesInLoadOrder()
	for _, tmpl := range tables {
		for _, stmt := range DDL(tmpl, DialectSQLite) {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("create %s: %w", tmpl.Name, err)
			}
		}
	}
	// Clear in reverse order so children go before parents.
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.Exec("DELETE FROM " + tables[i].Name); err != nil {
			return fmt.Errorf("clear %s: %w", tables[i].Name, err)
		}
	}

	for _, tmpl := range tables {
		rows, err := ReadCSV(csvDir, tmpl.Name)
		if err != nil {
			return err
		}
		if err := insertBatches(db, tmpl, rows); err != nil {
			return fmt.Errorf("load %s: %w", tmpl.Name, err)
		}
		logging.Info().Str("table", tmpl.Name).Int("rows", len(rows)).Msg("table loaded")
	}
	return nil
}

func insertBatches(db *sql.DB, tmpl TableTemplate, rows [][]string) error {
	cols := ColumnNames(tmpl)
	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",") + ")"

	for start := 0; start < len(rows); start += sqliteBatchRows {
		end := start + sqliteBatchRows
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		placeholders := make([]string, len(batch))
		args := make([]interface{}, 0, len(batch)*len(cols))
		for i, row := range batch {
			placeholders[i] = rowPlaceholder
			for j, cell := range row {
				v, err := convertValue(tmpl.Columns[j], cell, DialectSQLite)
				if err != nil {
					return err
				}
				args = append(args, v)
			}
		}

		stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
			tmpl.Name, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(stmt, args...); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
