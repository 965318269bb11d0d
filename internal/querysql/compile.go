package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/searchcond/internal/queryir"
)

// FoldFunc is the SQL function ilike folds both operands with.
const FoldFunc = "casefold"

// SQLCompiler compiles a Queryable to parameterized SQL for SQLite.
//
// All values are parameterized, never interpolated. Identifiers are
// quoted. Every query has an ORDER BY on the root binding for
// deterministic results.
//
// Case-sensitive LIKE relies on the connection running with
// PRAGMA case_sensitive_like = ON, and ilike on the casefold SQL function.
// Both are set up by package store.
type SQLCompiler struct {
	// OrderKey is the root column used for the mandatory ORDER BY.
	OrderKey queryir.FieldRef
}

// NewSQLCompiler creates a new SQLCompiler ordering by "id".
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{OrderKey: "id"}
}

// Compile converts a Queryable to parameterized SQL.
// Returns (sql, params, error) tuple.
func (c *SQLCompiler) Compile(q queryir.Queryable) (string, []any, error) {
	root := q.Root()
	if root.Table == "" || root.Alias == "" {
		return "", nil, fmt.Errorf("cannot compile query without a root binding")
	}

	var sb strings.Builder
	var params []any

	fmt.Fprintf(&sb, "SELECT %s.* FROM %s", QuoteIdent(root.Alias), relation(root))

	for _, j := range q.Joins() {
		fmt.Fprintf(&sb, " INNER JOIN %s ON %s = %s",
			relation(j.Binding),
			column(j.On.Left),
			column(j.On.Right))
	}

	filters := q.Filters()
	if len(filters) > 0 {
		parts := make([]string, 0, len(filters))
		for i, f := range filters {
			sql, fParams, err := c.CompilePredicate(f)
			if err != nil {
				return "", nil, fmt.Errorf("compile filter %d: %w", i, err)
			}
			parts = append(parts, sql)
			params = append(params, fParams...)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(parts, " AND "))
	}

	sb.WriteString(" ORDER BY ")
	sb.WriteString(c.stableOrderKey(root))

	return sb.String(), params, nil
}

// stableOrderKey returns the ORDER BY clause for a query.
// Uses COLLATE BINARY for deterministic text ordering.
func (c *SQLCompiler) stableOrderKey(root queryir.Binding) string {
	key := c.OrderKey
	if key == "" {
		key = "id"
	}
	return column(queryir.Col(root.Alias, key)) + " COLLATE BINARY ASC"
}

// CompilePredicate compiles a single predicate to a WHERE clause fragment.
// Returns (sql, params, error).
func (c *SQLCompiler) CompilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case nil:
		return "1 = 1", nil, nil
	case queryir.Compare:
		return c.compileCompare(pred)
	case queryir.Match:
		return c.compileMatch(pred)
	case queryir.And:
		return c.compileAnd(pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileCompare compiles a Compare predicate to "col op ?".
func (c *SQLCompiler) compileCompare(cmp queryir.Compare) (string, []any, error) {
	if !cmp.Op.Valid() {
		return "", nil, fmt.Errorf("unsupported comparison operator %q", cmp.Op)
	}
	return fmt.Sprintf("%s %s ?", column(cmp.Column), cmp.Op), []any{cmp.Value}, nil
}

// compileMatch compiles a Match predicate. Case-insensitive matches fold
// both sides with Unicode case folding; SQLite's LOWER only handles ASCII.
func (c *SQLCompiler) compileMatch(m queryir.Match) (string, []any, error) {
	escape := fmt.Sprintf(" ESCAPE '%c'", queryir.LikeEscape)
	if m.CaseInsensitive {
		return fmt.Sprintf("%s(%s) LIKE %s(?)%s", FoldFunc, column(m.Column), FoldFunc, escape), []any{m.Pattern}, nil
	}
	return fmt.Sprintf("%s LIKE ?%s", column(m.Column), escape), []any{m.Pattern}, nil
}

// compileAnd compiles a conjunction, parenthesized so it nests safely.
func (c *SQLCompiler) compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	parts := make([]string, 0, len(and.Predicates))
	var params []any
	for _, pred := range and.Predicates {
		sql, pParams, err := c.CompilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, pParams...)
	}

	if len(parts) == 1 {
		return parts[0], params, nil
	}
	return "(" + strings.Join(parts, " AND ") + ")", params, nil
}

// QuoteIdent quotes an identifier, doubling embedded quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func relation(b queryir.Binding) string {
	return QuoteIdent(b.Table) + " AS " + QuoteIdent(b.Alias)
}

func column(c queryir.ColumnRef) string {
	return QuoteIdent(c.Binding) + "." + QuoteIdent(string(c.Field))
}
