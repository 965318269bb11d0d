package criteria

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/roach88/searchcond/internal/queryir"
	"github.com/roach88/searchcond/internal/search"
)

// Criteria converts request parameters into criteria, in config order.
// Parameters without a FieldConfig are ignored, as are configured params
// absent from the request.
func (c *Config) Criteria(params map[string]string) ([]search.Criterion, error) {
	var out []search.Criterion
	for _, f := range c.Fields {
		raw, ok := params[f.Param]
		if !ok {
			continue
		}
		term, err := convertTerm(f, raw)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", f.Param, err)
		}
		out = append(out, search.Criterion{
			Field:      queryir.FieldRef(f.Field),
			Operator:   search.Operator(f.Operator),
			Term:       term,
			BindToBase: f.BindToBase(),
		})
	}
	return out, nil
}

func convertTerm(f FieldConfig, raw string) (any, error) {
	if search.Operator(f.Operator) == search.OpDateRange {
		return raw, nil
	}
	switch f.Type {
	case "", TypeString:
		return raw, nil
	case TypeInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected integer: %w", err)
		}
		return n, nil
	case TypeFloat:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("expected number: %w", err)
		}
		return n, nil
	case TypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expected boolean: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown type %q", f.Type)
	}
}

// Build resolves params and folds them over the base queryable. Any failure
// aborts the whole build.
func (c *Config) Build(params map[string]string) (queryir.Queryable, error) {
	base, err := c.Queryable()
	if err != nil {
		return queryir.Queryable{}, err
	}

	criteria, err := c.Criteria(params)
	if err != nil {
		return queryir.Queryable{}, err
	}
	slog.Debug("search criteria resolved", "table", c.Table, "criteria", len(criteria))

	builder := search.NewBuilder(
		search.WithStrict(c.Strict),
		search.WithLogger(slog.Default()),
	)
	q, err := builder.ApplyAll(base, criteria)
	if err != nil {
		return queryir.Queryable{}, err
	}
	return q, nil
}
