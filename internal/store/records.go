package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Column declares a table column.
type Column struct {
	Name string
	Type string // SQLite type affinity, e.g. "TEXT", "INTEGER", "REAL", "DATETIME"
}

// Row is a record keyed by column name.
type Row map[string]any

// CreateTable creates table with an "id TEXT PRIMARY KEY" column followed
// by columns. An "id" entry in columns is ignored.
func (s *Store) CreateTable(ctx context.Context, table string, columns ...Column) error {
	defs := []string{quoteIdent("id") + " TEXT PRIMARY KEY"}
	for _, c := range columns {
		if c.Name == "id" {
			continue
		}
		defs = append(defs, fmt.Sprintf("%s %s", quoteIdent(c.Name), c.Type))
	}

	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

// Insert writes row into table and returns its id. A row without an "id"
// gets a UUIDv7.
func (s *Store) Insert(ctx context.Context, table string, row Row) (string, error) {
	values := make(Row, len(row)+1)
	for k, v := range row {
		values[k] = v
	}

	id, ok := values["id"].(string)
	if !ok || id == "" {
		id = uuid.Must(uuid.NewV7()).String()
		values["id"] = id
	}

	// Sorted for deterministic statements.
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	slices.Sort(names)

	cols := make([]string, len(names))
	marks := make([]string, len(names))
	args := make([]any, len(names))
	for i, n := range names {
		cols[i] = quoteIdent(n)
		marks[i] = "?"
		args[i] = values[n]
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(cols, ", "), strings.Join(marks, ", "))
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return "", fmt.Errorf("insert into %s: %w", table, err)
	}
	return id, nil
}

// Rows runs a query and returns every result row.
// Column names repeated across joined relations keep the first value.
func (s *Store) Rows(ctx context.Context, query string, params ...any) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		row, err := scanRow(rows, names)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// Column runs a query and returns the named column from every row.
func (s *Store) Column(ctx context.Context, name, query string, params ...any) ([]any, error) {
	rows, err := s.Rows(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(rows))
	for i, r := range rows {
		v, ok := r[name]
		if !ok {
			return nil, fmt.Errorf("column %q not in result", name)
		}
		out[i] = v
	}
	return out, nil
}

func scanRow(rows *sql.Rows, names []string) (Row, error) {
	values := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	row := make(Row, len(names))
	for i, n := range names {
		if _, seen := row[n]; seen {
			continue
		}
		// TEXT columns scan as []byte into *any.
		if b, ok := values[i].([]byte); ok {
			row[n] = string(b)
			continue
		}
		row[n] = values[i]
	}
	return row, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
