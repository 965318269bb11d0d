package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/searchcond/internal/criteria"
	"github.com/roach88/searchcond/internal/querysql"
	"github.com/roach88/searchcond/internal/search"
	"github.com/roach88/searchcond/internal/store"
)

// Harness is the scenario execution engine.
type Harness struct {
	store    *store.Store
	config   *criteria.Config
	compiler *querysql.SQLCompiler
	logger   *slog.Logger
}

// Option configures a scenario run.
type Option func(*Harness)

// WithLogger sets the logger for per-case debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Create and seed tables
// 3. Load the search config
// 4. Build, compile and execute every case, checking its expectation
//
// A case whose build fails is an observed outcome, not a Run error. Run
// fails only when the scenario itself cannot execute: bad seed data, an
// unloadable config or a query SQLite rejects.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	st, err := store.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	cfg, err := criteria.LoadFile(scenario.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if scenario.Strict {
		cfg.Strict = true
	}

	h := &Harness{
		store:    st,
		config:   cfg,
		compiler: querysql.NewSQLCompiler(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs by default
	}
	for _, opt := range opts {
		opt(h)
	}

	if err := h.seed(ctx, scenario.Tables); err != nil {
		return nil, fmt.Errorf("failed to seed tables: %w", err)
	}

	result := NewResult()
	for i, c := range scenario.Cases {
		name := scenario.CaseName(i)
		got, err := h.runCase(ctx, name, c.Params)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		result.Cases = append(result.Cases, got)

		for _, msg := range EvaluateExpect(c.Expect, got) {
			result.AddError(msg)
		}
	}

	h.logger.Debug("scenario executed",
		"scenario", scenario.Name,
		"cases", len(result.Cases),
		"pass", result.Pass,
	)
	return result, nil
}

// seed creates every table and inserts its rows.
func (h *Harness) seed(ctx context.Context, tables []Table) error {
	for _, t := range tables {
		columns := make([]store.Column, len(t.Columns))
		temporal := map[string]bool{}
		for i, c := range t.Columns {
			columns[i] = store.Column{Name: c.Name, Type: c.Type}
			temporal[c.Name] = isTemporal(c.Type)
		}
		if err := h.store.CreateTable(ctx, t.Name, columns...); err != nil {
			return err
		}

		for i, row := range t.Rows {
			values, err := normalizeRow(row, temporal)
			if err != nil {
				return fmt.Errorf("%s row %d: %w", t.Name, i, err)
			}
			if _, err := h.store.Insert(ctx, t.Name, values); err != nil {
				return err
			}
		}
		h.logger.Debug("table seeded", "table", t.Name, "rows", len(t.Rows))
	}
	return nil
}

// normalizeRow parses string values of temporal columns so they are stored
// in the same representation daterange bounds are bound with.
func normalizeRow(row map[string]any, temporal map[string]bool) (store.Row, error) {
	out := make(store.Row, len(row))
	for k, v := range row {
		if s, ok := v.(string); ok && temporal[k] {
			t, err := search.ParseDateTime(s)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", k, err)
			}
			out[k] = t
			continue
		}
		out[k] = v
	}
	return out, nil
}

func isTemporal(sqlType string) bool {
	switch strings.ToUpper(sqlType) {
	case "DATETIME", "TIMESTAMP", "DATE":
		return true
	default:
		return false
	}
}

// runCase builds, compiles and executes one case.
func (h *Harness) runCase(ctx context.Context, name string, params map[string]string) (CaseResult, error) {
	got := CaseResult{Name: name, Params: params, IDs: []string{}}

	q, err := h.config.Build(params)
	if err != nil {
		got.Error = errorCode(err)
		got.Message = err.Error()
		h.logger.Debug("case build failed", "case", name, "code", got.Error)
		return got, nil
	}

	sql, args, err := h.compiler.Compile(q)
	if err != nil {
		return got, err
	}
	got.SQL = sql
	got.Args = args

	values, err := h.store.Column(ctx, "id", sql, args...)
	if err != nil {
		return got, err
	}
	for _, v := range values {
		got.IDs = append(got.IDs, fmt.Sprint(v))
	}

	h.logger.Debug("case executed", "case", name, "selected", len(got.IDs))
	return got, nil
}

// errorCode returns the case error code for a build failure.
func errorCode(err error) string {
	var se *search.Error
	if errors.As(err, &se) {
		return string(se.Code)
	}
	return ErrorInvalidTerm
}
