package queryir

import (
	"fmt"

	"github.com/roach88/searchcond/internal/ir"
)

// Describe returns a canonical, JSON-shaped description of the plan.
// The description is stable: it depends only on bindings, joins and
// filters, never on how the value was constructed.
func (q Queryable) Describe() map[string]any {
	joins := make([]any, len(q.joins))
	for i, j := range q.joins {
		joins[i] = map[string]any{
			"alias": j.Alias,
			"table": j.Table,
			"on": map[string]any{
				"left":  j.On.Left.String(),
				"right": j.On.Right.String(),
			},
		}
	}

	filters := make([]any, len(q.filters))
	for i, f := range q.filters {
		filters[i] = DescribePredicate(f)
	}

	return map[string]any{
		"root": map[string]any{
			"alias": q.root.Alias,
			"table": q.root.Table,
		},
		"joins":   joins,
		"filters": filters,
	}
}

// DescribePredicate returns a canonical description of p.
func DescribePredicate(p Predicate) map[string]any {
	switch pred := p.(type) {
	case nil:
		return map[string]any{"kind": "true"}
	case Compare:
		return map[string]any{
			"kind":   "compare",
			"column": pred.Column.String(),
			"op":     string(pred.Op),
			"value":  pred.Value,
		}
	case Match:
		return map[string]any{
			"kind":             "match",
			"column":           pred.Column.String(),
			"pattern":          pred.Pattern,
			"case_insensitive": pred.CaseInsensitive,
		}
	case And:
		children := make([]any, len(pred.Predicates))
		for i, c := range pred.Predicates {
			children[i] = DescribePredicate(c)
		}
		return map[string]any{"kind": "and", "predicates": children}
	default:
		return map[string]any{"kind": fmt.Sprintf("%T", p)}
	}
}

// Fingerprint returns a content hash of the plan.
// Fails when a filter value has no canonical encoding.
func (q Queryable) Fingerprint() (string, error) {
	return ir.Fingerprint(ir.DomainPlan, q.Describe())
}

// PredicateFingerprint returns a content hash of a single predicate.
func PredicateFingerprint(p Predicate) (string, error) {
	return ir.Fingerprint(ir.DomainPredicate, DescribePredicate(p))
}
