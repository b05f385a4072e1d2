package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MohithS04/Food-service-sales/internal/logging"
)

// pgCopyBatchRows bounds rows buffered per CopyFrom call.
const pgCopyBatchRows = 50_000

// BuildConnStr assembles a postgres connection URL.
func BuildConnStr(host string, port int, user, password, db, sslmode string) string {
	hostPort := host
	if port > 0 {
		hostPort = fmt.Sprintf("%s:%d", host, port)
	}
	if sslmode == "" {
		sslmode = "prefer"
	}
	u := &url.URL{
		Scheme:   "postgres",
		Host:     hostPort,
		Path:     "/" + db,
		RawQuery: "sslmode=" + sslmode,
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

// OpenPostgresDB opens a database/sql handle over pgx for the query-side
// consumers (validation, KPI export).
func OpenPostgresDB(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// LoadPostgres creates the schema and bulk-loads every table from the CSV
// directory using COPY in bounded batches. Tables are truncated first, in
// reverse dependency order, so reloads are idempotent.
func LoadPostgres(ctx context.Context, connStr, csvDir string) error {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	tables := TablesInLoadOrder()
	for _, tmpl := range tables {
		for _, stmt := range DDL(tmpl, DialectPostgres) {
			if _, err := conn.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("create %s: %w", tmpl.Name, err)
			}
		}
	}
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := conn.Exec(ctx, "TRUNCATE TABLE "+tables[i].Name+" CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", tables[i].Name, err)
		}
	}

	for _, tmpl := range tables {
		rows, err := ReadCSV(csvDir, tmpl.Name)
		if err != nil {
			return err
		}
		if err := copyTable(ctx, conn, tmpl, rows); err != nil {
			return fmt.Errorf("copy %s: %w", tmpl.Name, err)
		}
		logging.Info().Str("table", tmpl.Name).Int("rows", len(rows)).Msg("table loaded")
	}
	return nil
}

func copyTable(ctx context.Context, conn *pgx.Conn, tmpl TableTemplate, rows [][]string) error {
	cols := ColumnNames(tmpl)

	for start := 0; start < len(rows); start += pgCopyBatchRows {
		end := start + pgCopyBatchRows
		if end > len(rows) {
			end = len(rows)
		}
		batch := make([][]interface{}, 0, end-start)
		for _, row := range rows[start:end] {
			vals := make([]interface{}, len(row))
			for j, cell := range row {
				v, err := convertValue(tmpl.Columns[j], cell, DialectPostgres)
				if err != nil {
					return err
				}
				vals[j] = v
			}
			batch = append(batch, vals)
		}
		if _, err := conn.CopyFrom(ctx, pgx.Identifier{tmpl.Name}, cols, pgx.CopyFromRows(batch)); err != nil {
			return err
		}
	}
	return nil
}
