// Package warehouse is the relational staging sink: staging tables are
// truncated, bulk-loaded from a fixed-schema table, and then merged into
// long-lived tables by stored procedures owned by the database.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/dataeng-io/webanalytics-etl/internal/report"
)

// insertChunkSize caps the rows per INSERT statement to keep the statement
// and its placeholder count within server limits.
const insertChunkSize = 1000

// DB wraps one database handle. The caller owns exclusive write access to
// its staging tables for the lifetime of a task; there is no locking here.
type DB struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open connects and verifies the connection.
func Open(dsn string, log zerolog.Logger) (*DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("warehouse: opening connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("warehouse: pinging database: %w", err)
	}
	return &DB{db: db, log: log}, nil
}

// Close releases the underlying handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// Truncate empties a staging table ahead of a bulk load.
func (d *DB) Truncate(ctx context.Context, table string) error {
	d.log.Info().Str("table", table).Msg("truncating staging table")
	if _, err := d.db.ExecContext(ctx, "TRUNCATE TABLE "+quoteIdent(table)); err != nil {
		return fmt.Errorf("warehouse: truncating %s: %w", table, err)
	}
	return nil
}

// BulkInsert loads a fixed-schema table into the named staging table in
// chunks. The column list comes from the table's declared schema, never
// from runtime introspection of the destination.
func (d *DB) BulkInsert(ctx context.Context, t *report.Table, table string) error {
	if t.Empty() {
		d.log.Info().Str("table", table).Msg("no rows to insert")
		return nil
	}
	columns := t.Schema.Names()
	for start := 0; start < len(t.Rows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		chunk := t.Rows[start:end]

		stmt := insertStatement(table, columns, len(chunk))
		args := make([]any, 0, len(chunk)*len(columns))
		for _, row := range chunk {
			for i := range columns {
				if i < len(row) {
					args = append(args, row[i])
				} else {
					args = append(args, nil)
				}
			}
		}
		if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("warehouse: inserting rows %d-%d into %s: %w", start, end, table, err)
		}
	}
	d.log.Info().Str("table", table).Int("rows", len(t.Rows)).Msg("bulk insert complete")
	return nil
}

// ExecProcedure runs a stored procedure with positional arguments.
func (d *DB) ExecProcedure(ctx context.Context, name string, args ...any) error {
	d.log.Info().Str("procedure", name).Msg("executing stored procedure")
	if _, err := d.db.ExecContext(ctx, callStatement(name, len(args)), args...); err != nil {
		return fmt.Errorf("warehouse: executing procedure %s: %w", name, err)
	}
	return nil
}

func insertStatement(table string, columns []string, rowCount int) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	row := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"
	rows := make([]string, rowCount)
	for i := range rows {
		rows[i] = row
	}
	return "INSERT INTO " + quoteIdent(table) +
		" (" + strings.Join(quoted, ",") + ") VALUES " + strings.Join(rows, ",")
}

func callStatement(name string, argCount int) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", argCount), ",")
	return "CALL " + quoteIdent(name) + "(" + placeholders + ")"
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
