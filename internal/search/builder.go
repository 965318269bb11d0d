package search

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/searchcond/internal/queryir"
)

// Builder applies search conditions to queryables.
//
// A Builder holds only configuration and is safe for concurrent use.
type Builder struct {
	strict bool
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithStrict makes unknown operators an error instead of a pass-through.
func WithStrict(strict bool) Option {
	return func(b *Builder) {
		b.strict = strict
	}
}

// WithLogger sets the logger used for debug output. Nil restores the
// default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder. The zero configuration is lenient.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b
}

// Strict reports whether unknown operators are rejected.
func (b *Builder) Strict() bool {
	return b.strict
}

var defaultBuilder = NewBuilder()

// Apply adds one search condition to q using the lenient default builder.
func Apply(q queryir.Queryable, field queryir.FieldRef, op Operator, term any, bindToBase bool) (queryir.Queryable, error) {
	return defaultBuilder.Apply(q, field, op, term, bindToBase)
}

// Apply returns q with the condition for op added.
//
// When op is not a supported operator, q is returned unchanged; in strict
// mode an UNKNOWN_OPERATOR error is returned alongside it. When the handler
// fails (a malformed daterange term), q is returned unchanged with the
// error. Errors carry the field and term.
func (b *Builder) Apply(q queryir.Queryable, field queryir.FieldRef, op Operator, term any, bindToBase bool) (queryir.Queryable, error) {
	h, ok := registry[op]
	if !ok {
		if b.strict {
			return q, withCriterion(unknownOperator(op), field, term)
		}
		b.logger.Debug("unknown search operator, condition skipped",
			"field", field,
			"operator", op,
		)
		return q, nil
	}

	col := ResolveColumn(q, field, bindToBase)
	pred, err := h(col, term)
	if err != nil {
		return q, withCriterion(err, field, term)
	}

	b.logger.Debug("search condition applied",
		"column", col.String(),
		"operator", op,
	)
	return q.Where(pred), nil
}

// ResolveColumn resolves field against the root binding when bindToBase is
// true, otherwise against the most recently joined binding.
func ResolveColumn(q queryir.Queryable, field queryir.FieldRef, bindToBase bool) queryir.ColumnRef {
	binding := q.Last()
	if bindToBase {
		binding = q.Root()
	}
	return queryir.Col(binding.Alias, field)
}

// Criterion is one search condition to apply.
type Criterion struct {
	Field      queryir.FieldRef
	Operator   Operator
	Term       any
	BindToBase bool
}

// ApplyAll folds criteria over q in order. The first failure aborts the
// fold; q is returned unchanged together with the error.
func (b *Builder) ApplyAll(q queryir.Queryable, criteria []Criterion) (queryir.Queryable, error) {
	out := q
	for i, c := range criteria {
		next, err := b.Apply(out, c.Field, c.Operator, c.Term, c.BindToBase)
		if err != nil {
			return q, fmt.Errorf("search criterion %d: %w", i, err)
		}
		out = next
	}
	return out, nil
}

// ApplyAll folds criteria over q with the lenient default builder.
func ApplyAll(q queryir.Queryable, criteria []Criterion) (queryir.Queryable, error) {
	return defaultBuilder.ApplyAll(q, criteria)
}

// withCriterion attaches field and term to a search error. Other errors are
// wrapped so the message still names them.
func withCriterion(err error, field queryir.FieldRef, term any) error {
	var se *Error
	if errors.As(err, &se) {
		annotated := *se
		annotated.Field = string(field)
		annotated.Term = term
		return &annotated
	}
	return fmt.Errorf("field %s, term %v: %w", field, term, err)
}
