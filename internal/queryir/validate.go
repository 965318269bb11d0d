package queryir

import (
	"fmt"
)

// ValidationResult contains the structural analysis of a plan.
type ValidationResult struct {
	// Valid is true when no warnings were produced.
	Valid bool

	// Warnings lists every structural problem found, in traversal order.
	Warnings []string
}

// Validate checks that a plan is well formed:
//  1. Root binding names a table and an alias
//  2. Aliases are unique across the binding chain
//  3. Join conditions reference bindings already in scope
//  4. Filter columns reference known bindings and non-empty fields
//  5. Comparison operators are known
//
// Validate does not inspect value types. A term that does not suit its
// column is a query-time concern.
//
// Validate is a pure function with no side effects.
func Validate(q Queryable) ValidationResult {
	v := &validator{
		warnings: []string{},
		aliases:  map[string]bool{},
	}
	v.validate(q)

	return ValidationResult{
		Valid:    len(v.warnings) == 0,
		Warnings: v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	warnings []string
	aliases  map[string]bool
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validate(q Queryable) {
	v.bind(q.root, "root")

	for i, j := range q.joins {
		where := fmt.Sprintf("join[%d]", i)
		// The joined binding is in scope for its own ON clause.
		v.bind(j.Binding, where)
		v.validateColumn(j.On.Left, where+".on.left")
		v.validateColumn(j.On.Right, where+".on.right")
	}

	for i, f := range q.filters {
		v.validatePredicate(f, fmt.Sprintf("filter[%d]", i))
	}
}

func (v *validator) bind(b Binding, where string) {
	if b.Table == "" {
		v.addWarning("%s: empty table name", where)
	}
	if b.Alias == "" {
		v.addWarning("%s: empty alias", where)
		return
	}
	if v.aliases[b.Alias] {
		v.addWarning("%s: duplicate alias %q", where, b.Alias)
	}
	v.aliases[b.Alias] = true
}

func (v *validator) validateColumn(c ColumnRef, where string) {
	if c.Field == "" {
		v.addWarning("%s: empty field name", where)
	}
	if !v.aliases[c.Binding] {
		v.addWarning("%s: unknown binding %q", where, c.Binding)
	}
}

func (v *validator) validatePredicate(p Predicate, where string) {
	switch pred := p.(type) {
	case nil:
		v.addWarning("%s: nil predicate", where)
	case Compare:
		v.validateColumn(pred.Column, where)
		if !pred.Op.Valid() {
			v.addWarning("%s: unknown comparison operator %q", where, pred.Op)
		}
	case Match:
		v.validateColumn(pred.Column, where)
	case And:
		for i, sub := range pred.Predicates {
			v.validatePredicate(sub, fmt.Sprintf("%s.and[%d]", where, i))
		}
	default:
		v.addWarning("%s: unknown predicate type %T", where, p)
	}
}
